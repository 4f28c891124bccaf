package user

import "context"

// ID identifies a user. Identity is issued by the external
// session provider; this service trusts it as given.
type ID int

// Role gates access to the admin review surface.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the caller identity extracted from a verified token.
type User struct {
	ID   ID
	Role Role
}

type contextKey struct{}

// NewContext returns a new Context that carries the user.
func NewContext(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, contextKey{}, u)
}

// FromContext returns the user stored in ctx, if any.
func FromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(contextKey{}).(*User)
	return u, ok
}
