package usecases

import (
	"net/url"
	"strings"
	"sync"

	"merchant-kita.onboarding/internal/domain/entities"
)

// GateInput is everything the access decision needs. It is assembled by the
// middleware; the decision itself is pure.
type GateInput struct {
	SessionValid bool
	SessionID    string
	Role         string
	AllowedRoles []string
	HasMerchant  bool
	Progress     int
	LoadFailed   bool
	Path         string
	RawQuery     string
}

// GateDecision is either an admit or a redirect.
type GateDecision struct {
	Allow    bool
	Redirect string
}

func admit() GateDecision {
	return GateDecision{Allow: true}
}

func redirect(to string) GateDecision {
	return GateDecision{Redirect: to}
}

// Gate decides route access from session, role and compliance progress. The
// compliance redirect fires at most once per session so an incomplete
// merchant can still browse away from the wizard deliberately.
type Gate struct {
	mu         sync.Mutex
	redirected map[string]bool
}

// NewGate creates a new access gate
func NewGate() *Gate {
	return &Gate{redirected: make(map[string]bool)}
}

// Decide evaluates the gate for one request.
func (g *Gate) Decide(in GateInput) GateDecision {
	if !in.SessionValid {
		next := in.Path
		if in.RawQuery != "" {
			next += "?" + in.RawQuery
		}
		return redirect("/login?next=" + url.QueryEscape(next))
	}

	if len(in.AllowedRoles) > 0 && !roleAllowed(in.Role, in.AllowedRoles) {
		return redirect("/unauthorized")
	}

	// A failed record load admits rather than bouncing the merchant around
	// on stale data.
	if in.LoadFailed || !in.HasMerchant {
		return admit()
	}

	onCompliance := strings.HasPrefix(in.Path, "/compliance")

	if in.Progress < entities.ProgressSubmitted && !onCompliance {
		if g.markRedirected(in.SessionID) {
			return redirect("/compliance")
		}
		return admit()
	}

	if in.Progress >= entities.ProgressSubmitted && onCompliance {
		return redirect("/dashboard")
	}

	return admit()
}

// ResetSession clears the once-per-session redirect guard; called on login.
func (g *Gate) ResetSession(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.redirected, sessionID)
}

// markRedirected returns true the first time a session hits the compliance
// redirect.
func (g *Gate) markRedirected(sessionID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.redirected[sessionID] {
		return false
	}
	g.redirected[sessionID] = true
	return true
}

func roleAllowed(role string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(a, role) {
			return true
		}
	}
	return false
}
