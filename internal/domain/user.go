package domain

// User is a registered account. Username is unique, case-sensitive and immutable.
// HashedPassword never leaves the service layer.
type User struct {
	Username       string
	Email          string
	FullName       *string
	HashedPassword string
}
