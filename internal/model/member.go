package model

import "time"

type Member struct {
	ID           int64
	FName        string
	LName        string
	Address      string
	City         string
	Zip          string
	Phone        *string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

func (m Member) FullName() string {
	return m.FName + " " + m.LName
}

// Identity 由 session middleware 放入 request context
type Identity struct {
	MemberID  int64
	SessionID string
}
