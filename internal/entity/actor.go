package entity

// Actor is the authenticated caller as seen by the use-case layer,
// extracted from the verified token by the auth middleware.
type Actor struct {
	ID       string
	Role     string
	Building string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
