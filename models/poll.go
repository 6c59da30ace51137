package models

import (
	"time"

	"gorm.io/gorm"
)

type Poll struct {
	gorm.Model
	Question string     `json:"question"`
	Choices  []Choice   `json:"choices" gorm:"foreignKey:PollID"`
	IsActive bool       `json:"is_active"`
	OpensAt  *time.Time `json:"opens_at,omitempty"`
	ClosesAt *time.Time `json:"closes_at,omitempty"`
}

// OpenAt reports whether the poll accepts votes at the given time. A nil
// window bound is unbounded on that side.
func (p *Poll) OpenAt(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	if p.OpensAt != nil && now.Before(*p.OpensAt) {
		return false
	}
	if p.ClosesAt != nil && !now.Before(*p.ClosesAt) {
		return false
	}
	return true
}

// Choice represents one answer a poll offers. Votes is the maintained tally
// counter; depending on TALLY_MODE it is updated transactionally with each
// vote or recomputed in the background.
type Choice struct {
	gorm.Model
	PollID uint   `json:"poll_id"`
	Text   string `json:"text"`
	Votes  uint   `json:"votes"`
}
