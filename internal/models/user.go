package model

import (
	"strconv"
	"time"
)

const GuestSubjectPrefix = "anon:"

// User owns daylists. Guests have neither email nor password.
type User struct {
	ID           uint    `gorm:"primaryKey"`
	Email        *string `gorm:"uniqueIndex;size:320"`
	PasswordHash *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) IsGuest() bool {
	return u.Email == nil
}

// Subject is the stable token subject for the user: the email for registered
// users and "anon:<id>" for guests.
func (u *User) Subject() string {
	if u.Email != nil {
		return *u.Email
	}
	return GuestSubjectPrefix + strconv.FormatUint(uint64(u.ID), 10)
}
