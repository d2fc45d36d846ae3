package domain

import (
	"time"

	"github.com/google/uuid"
)

type Suggestion struct {
	ID            uuid.UUID `db:"id" json:"id"`
	UserID        uuid.UUID `db:"user_id" json:"userId"`
	VotingCycleID uuid.UUID `db:"voting_cycle_id" json:"votingCycleId"`
	Title         string    `db:"title" json:"title" validate:"required,max=500"`
	Author        string    `db:"author" json:"author" validate:"required,max=200"`
	Year          *int      `db:"year" json:"year" validate:"omitempty,gt=1000"`
	PageCount     *int      `db:"page_count" json:"pageCount" validate:"omitempty,gt=0"`
	Link          *string   `db:"link" json:"link" validate:"omitempty,max=1000"`
	MiscInfo      *string   `db:"misc_info" json:"miscInfo"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}
