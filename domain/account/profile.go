package account

import "time"

// Profile mirrors an identity-provider user in the relational store.
type Profile struct {
	id        string
	email     string
	fullName  string
	role      Role
	avatarURL string
	createdAt time.Time
	updatedAt time.Time
}

// NewProfile creates a Profile for an identity user.
func NewProfile(id, email, fullName string, role Role) Profile {
	return Profile{
		id:       id,
		email:    email,
		fullName: fullName,
		role:     role,
	}
}

// ReconstructProfile rebuilds a Profile from persistence.
func ReconstructProfile(id, email, fullName string, role Role, avatarURL string, createdAt, updatedAt time.Time) Profile {
	return Profile{
		id:        id,
		email:     email,
		fullName:  fullName,
		role:      role,
		avatarURL: avatarURL,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the identity user id.
func (p Profile) ID() string { return p.id }

// Email returns the email address.
func (p Profile) Email() string { return p.email }

// FullName returns the display name.
func (p Profile) FullName() string { return p.fullName }

// Role returns the account role.
func (p Profile) Role() Role { return p.role }

// AvatarURL returns the avatar URL, if any.
func (p Profile) AvatarURL() string { return p.avatarURL }

// CreatedAt returns the creation time.
func (p Profile) CreatedAt() time.Time { return p.createdAt }

// UpdatedAt returns the last update time.
func (p Profile) UpdatedAt() time.Time { return p.updatedAt }

// WithFullName returns a copy with the given display name.
func (p Profile) WithFullName(name string) Profile {
	p.fullName = name
	return p
}

// WithAvatarURL returns a copy with the given avatar URL.
func (p Profile) WithAvatarURL(url string) Profile {
	p.avatarURL = url
	return p
}
