package domain

import "time"

type User struct {
	ID                 string
	Email              string
	NormalizedEmail    string // lower-cased, trimmed; the token subject
	Username           string
	NormalizedUsername string
	DisplayName        string
	AvatarURL          *string // nullable
	PasswordHash       string  // argon2 encoded
	EmailConfirmed     bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
