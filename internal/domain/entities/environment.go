package entities

// EnvMode is the global environment mode. Live mode is only reachable once
// compliance is fully verified.
type EnvMode string

const (
	EnvModeTest EnvMode = "test"
	EnvModeLive EnvMode = "live"
)

// Valid reports whether m is a known mode
func (m EnvMode) Valid() bool {
	return m == EnvModeTest || m == EnvModeLive
}
