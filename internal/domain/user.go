package domain

import "time"

// User is a host-platform account. Accounts are owned by the platform; this
// service only reads them to confirm a notification's user exists.
type User struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	CreatedAt time.Time
}

// FullName returns the display name used in widget parameters.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
