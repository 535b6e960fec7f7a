package account

// Actor is the authenticated caller a store operation runs on behalf of.
// Stores scope reads and writes to what the actor may see.
type Actor struct {
	userID string
	role   Role
}

// NewActor creates an Actor.
func NewActor(userID string, role Role) Actor {
	return Actor{userID: userID, role: role}
}

// SystemActor returns an actor that bypasses row scoping. It is used by
// the CLI seed command and by administrators.
func SystemActor() Actor {
	return Actor{role: RoleAdmin}
}

// UserID returns the caller's user id.
func (a Actor) UserID() string { return a.userID }

// Role returns the caller's role.
func (a Actor) Role() Role { return a.role }

// IsAdmin reports whether the actor sees every row.
func (a Actor) IsAdmin() bool { return a.role == RoleAdmin }

// Authenticated reports whether the actor carries an identity.
func (a Actor) Authenticated() bool { return a.userID != "" || a.role == RoleAdmin }
