package domain

import "time"

type User struct {
	ID         int64
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string
	IsActive   bool
	CreatedAt  time.Time
}

// UserProfile carries the optional display fields supplied by Telegram on
// first contact.
type UserProfile struct {
	Username  string
	FirstName string
	LastName  string
}
