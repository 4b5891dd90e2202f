package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered To-dogether account.
type User struct {
	ID        uuid.UUID  `json:"id"`
	Username  string     `json:"username"`
	ColorCode string     `json:"colorCode,omitempty"`
	CoupleID  *uuid.UUID `json:"coupleId,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// HasPartner reports whether the user has been paired into a couple.
func (u User) HasPartner() bool {
	return u.CoupleID != nil
}
