package client

// Decision is the route guard's verdict for one navigation.
type Decision int

const (
	// Render allows the requested screen.
	Render Decision = iota
	// ShowLoading defers the verdict while the session is still unknown.
	ShowLoading
	// RedirectLogin sends the visitor to the login screen; the requested
	// location is preserved in GuardResult.From for post-login return.
	RedirectLogin
	// RedirectHome sends an authenticated visitor to their own role home
	// on a role mismatch.
	RedirectHome
)

// GuardResult carries the decision plus the redirect target when relevant.
type GuardResult struct {
	Decision Decision
	Target   string
	From     string
}

// HomePath maps a role to its landing route.
func HomePath(role string) string {
	switch role {
	case "admin":
		return "/admin"
	case "student":
		return "/student"
	default:
		return "/"
	}
}

// Guard decides, per navigation, whether to render a screen. requiredRole
// may be empty for screens any authenticated user can view. It must be
// re-evaluated on every navigation and on every session state change.
func Guard(s *Session, requiredRole, location string) GuardResult {
	switch s.State() {
	case StateUnknown:
		return GuardResult{Decision: ShowLoading}
	case StateAnonymous:
		return GuardResult{Decision: RedirectLogin, Target: "/login", From: location}
	}

	user := s.User()
	if requiredRole != "" && user.Role != requiredRole {
		return GuardResult{Decision: RedirectHome, Target: HomePath(user.Role)}
	}
	return GuardResult{Decision: Render}
}
