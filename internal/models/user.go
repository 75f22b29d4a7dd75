package models

import "time"

// User represents a user stored in the 'users' table. PasswordHash and
// Salt never leave the service layer and are excluded from every
// response projection.
type User struct {
	ID           int64     `db:"id"`
	Email        string    `db:"email"`
	PasswordHash []byte    `db:"password_hash"`
	Salt         []byte    `db:"salt"`
	CreatedAt    time.Time `db:"created_at"`
}
