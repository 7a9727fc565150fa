package models

// Actor is the authenticated identity attached to a request after the session
// middleware has accepted its token. Operations branch on Role explicitly; there is
// no implicit fallthrough for an unknown role.
type Actor struct {
	ID   int64
	Role Role
}

func (a Actor) IsAdmin() bool   { return a.Role == RoleAdmin }
func (a Actor) IsTrainer() bool { return a.Role == RoleTrainer }
func (a Actor) IsClient() bool  { return a.Role == RoleClient }
