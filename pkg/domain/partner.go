package domain

import "github.com/google/uuid"

// PartnerOverview is the partner's profile together with their todo lists,
// as returned by the partner/overview endpoint.
type PartnerOverview struct {
	ID        uuid.UUID  `json:"id"`
	Username  string     `json:"username"`
	ColorCode string     `json:"colorCode,omitempty"`
	CoupleID  *uuid.UUID `json:"coupleId,omitempty"`
	TodoLists []TodoList `json:"todoLists"`
}
