// Package voting arbitrates vote submissions: it derives the one-way token
// for a (voter, poll) pair and lets the vote table's unique key decide
// whether the vote is a duplicate.
package voting

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/KevinRabun/TruePulse-sub002/models"
	"github.com/KevinRabun/TruePulse-sub002/token"
)

// Expected business outcomes. These are user-facing results of the
// at-most-one-vote and poll-window rules, not system faults; callers map
// them to client responses and must not log or retry them.
var (
	ErrPollClosed    = errors.New("poll is not open for voting")
	ErrInvalidChoice = errors.New("choice does not belong to poll")
	ErrDuplicateVote = errors.New("a vote was already recorded for this voter and poll")
)

// Tally maintenance modes, mirrored from config to keep this package free of
// the config globals.
const (
	TallySync     = "sync"
	TallyEventual = "eventual"
)

// Receipt describes an accepted vote. Token stays server-side: handlers must
// never serialize it to a client.
type Receipt struct {
	PollID   uint
	ChoiceID uint
	Token    string
}

// SubmitVote records a vote by voterID on pollID for choiceID.
//
// The voterID must come from the verified session identity, never from
// client input. The insert runs under the unique key on the vote token, so
// concurrent duplicate submissions resolve to exactly one stored record
// regardless of interleaving; there is no check-then-insert window. First
// vote wins: a duplicate submission neither reveals nor alters the original
// choice.
//
// Any error other than the three sentinel outcomes is an infrastructure
// fault; the whole call is idempotent and safe to retry.
func SubmitVote(db *gorm.DB, salt []byte, tallyMode string, voterID string, pollID, choiceID uint, now time.Time) (Receipt, error) {
	var poll models.Poll
	err := db.Preload("Choices").First(&poll, pollID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Receipt{}, ErrPollClosed
	}
	if err != nil {
		return Receipt{}, fmt.Errorf("load poll %d: %w", pollID, err)
	}
	if !poll.OpenAt(now) {
		return Receipt{}, ErrPollClosed
	}

	valid := false
	for _, c := range poll.Choices {
		if c.ID == choiceID {
			valid = true
			break
		}
	}
	if !valid {
		return Receipt{}, ErrInvalidChoice
	}

	tok := token.Compute(salt, voterID, formatPollID(pollID))
	record := models.VoteRecord{
		Token:     tok,
		PollID:    pollID,
		ChoiceID:  choiceID,
		CreatedAt: now,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			DoNothing: true,
		}).Create(&record)
		if res.Error != nil {
			return fmt.Errorf("insert vote record: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrDuplicateVote
		}
		if tallyMode == TallySync {
			if err := tx.Model(&models.Choice{}).Where("id = ?", choiceID).
				UpdateColumn("votes", gorm.Expr("votes + 1")).Error; err != nil {
				return fmt.Errorf("update tally: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return Receipt{}, err
	}

	return Receipt{PollID: pollID, ChoiceID: choiceID, Token: tok}, nil
}

// HasVoted reports whether voterID already has a vote stored for pollID. It
// recomputes the token and checks existence; the token never leaves the
// server, and no other voter's record is consulted.
func HasVoted(db *gorm.DB, salt []byte, voterID string, pollID uint) (bool, error) {
	tok := token.Compute(salt, voterID, formatPollID(pollID))
	var n int64
	if err := db.Model(&models.VoteRecord{}).Where("token = ?", tok).Count(&n).Error; err != nil {
		return false, fmt.Errorf("check vote record: %w", err)
	}
	return n > 0, nil
}

func formatPollID(pollID uint) string {
	return strconv.FormatUint(uint64(pollID), 10)
}
