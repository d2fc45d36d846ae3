package domain

import (
	"time"

	"github.com/google/uuid"
)

type CycleStatus string

const (
	CycleSuggesting CycleStatus = "suggesting"
	CycleVoting     CycleStatus = "voting"
	CycleCompleted  CycleStatus = "completed"
)

// VotingMode keeps the stored values "normal" and "ranking".
type VotingMode string

const (
	VotingModeApproval VotingMode = "normal"
	VotingModeRanked   VotingMode = "ranking"
)

func (m VotingMode) Valid() bool {
	return m == VotingModeApproval || m == VotingModeRanked
}

type VotingCycle struct {
	ID                 uuid.UUID   `db:"id" json:"id"`
	SuggestionDeadline time.Time   `db:"suggestion_deadline" json:"suggestionDeadline"`
	VotingDeadline     time.Time   `db:"voting_deadline" json:"votingDeadline"`
	Status             CycleStatus `db:"status" json:"status"`
	VotingMode         VotingMode  `db:"voting_mode" json:"votingMode"`
	CreatedAt          time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time   `db:"updated_at" json:"updatedAt"`
}

// Phase derives the lifecycle state from the deadlines. A cycle frozen as
// completed stays completed regardless of now.
func (c *VotingCycle) Phase(now time.Time) CycleStatus {
	if c.Status == CycleCompleted {
		return CycleCompleted
	}
	switch {
	case now.After(c.VotingDeadline):
		return CycleCompleted
	case now.After(c.SuggestionDeadline):
		return CycleVoting
	default:
		return CycleSuggesting
	}
}

// AcceptsSuggestions reports whether a suggestion may be created or edited
// at now. A cycle still stored as suggesting but past its deadline gets the
// deadline error rather than the phase error.
func (c *VotingCycle) AcceptsSuggestions(now time.Time) error {
	if c.Status == CycleSuggesting && now.After(c.SuggestionDeadline) {
		return ErrSuggestionDeadlinePassed
	}
	if c.Phase(now) != CycleSuggesting {
		return ErrNotSuggestingPhase
	}
	return nil
}

func (c *VotingCycle) AcceptsBallots(now time.Time) error {
	if c.Status == CycleVoting && now.After(c.VotingDeadline) {
		return ErrVotingDeadlinePassed
	}
	if c.Phase(now) != CycleVoting {
		return ErrNotVotingPhase
	}
	return nil
}
