package entities

// OwnerPayload is one representative entry of an outgoing submission, keyed
// by wire field name. Only non-empty values are present.
type OwnerPayload map[string]string

// DocumentUpload is a decoded document ready for transfer.
type DocumentUpload struct {
	Field    string
	Filename string
	MimeType string
	Data     []byte
}

// RecordPayload is the outgoing submission body for the remote compliance
// service. Fields holds scalar wire fields; absent keys are simply not sent.
type RecordPayload struct {
	Fields    map[string]string
	Owners    []OwnerPayload
	Documents []DocumentUpload
}

// Empty reports whether the payload carries nothing at all.
func (p *RecordPayload) Empty() bool {
	return p == nil || (len(p.Fields) == 0 && len(p.Owners) == 0 && len(p.Documents) == 0)
}
