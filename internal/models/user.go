package models

import "time"

const (
	RoleStudent   = "student"
	RoleRecruiter = "recruiter"
)

// ValidRole reports whether role is one of the roles accepted at registration.
func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleRecruiter
}

// PendingToken is a single-use secret with an expiry. A nil *PendingToken on a
// user means no token of that kind is outstanding; both fields are always
// persisted together so the pair is never observed half-applied.
type PendingToken struct {
	Value     string
	ExpiresAt time.Time
}

// Expired reports whether the token is no longer consumable at the given time.
func (t *PendingToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

type Profile struct {
	Bio                string   `json:"bio"`
	Skills             []string `json:"skills"`
	ProfilePhoto       string   `json:"profilePhoto"`
	Resume             string   `json:"resume"`
	ResumeOriginalName string   `json:"resumeOriginalName"`
}

type User struct {
	ID                string
	Fullname          string
	Email             string
	PhoneNumber       string
	PasswordHash      string
	Role              string
	IsEmailVerified   bool
	VerificationToken *PendingToken
	ResetToken        *PendingToken
	Profile           Profile
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// PublicUser is the projection returned to clients. It never carries the
// password hash or any pending token.
type PublicUser struct {
	ID          string  `json:"id"`
	Fullname    string  `json:"fullname"`
	Email       string  `json:"email"`
	PhoneNumber string  `json:"phoneNumber"`
	Role        string  `json:"role"`
	Profile     Profile `json:"profile"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		Fullname:    u.Fullname,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		Profile:     u.Profile,
	}
}
