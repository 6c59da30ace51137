package models

import "time"

// VoteRecord is a cast vote keyed by its one-way token. The token is the only
// linkage between the record and the act of casting it: no voter identifier
// is stored, and the token cannot be inverted without the original voter ID
// and the server salt. Records are append-only; the unique key on Token is
// the entire duplicate-vote-prevention mechanism.
type VoteRecord struct {
	Token     string    `json:"-" gorm:"primaryKey;size:64"`
	PollID    uint      `json:"poll_id" gorm:"index:idx_vote_poll_choice"`
	ChoiceID  uint      `json:"choice_id" gorm:"index:idx_vote_poll_choice"`
	CreatedAt time.Time `json:"created_at"`
}
