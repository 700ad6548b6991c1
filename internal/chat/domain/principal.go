package domain

// Role of an authenticated principal, carried in the JWT claims.
type Role string

const (
	// RoleClient - end user booking bands
	RoleClient Role = "client"
	// RoleMusician - user who is a member of one or more bands
	RoleMusician Role = "musician"
	// RoleAdmin - administrative principal
	RoleAdmin Role = "admin"
)

// Principal is the already-authenticated caller of every service operation,
// supplied by the auth middleware.
type Principal struct {
	ID   string
	Role Role
}
