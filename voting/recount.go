package voting

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/KevinRabun/TruePulse-sub002/models"
)

// Recount recomputes every choice tally from the stored vote records. Used
// in eventual tally mode, where SubmitVote does not touch the counters.
// Vote records are append-only, so counters only ever move up toward the
// true count; readers between recounts may transiently undercount.
func Recount(db *gorm.DB) error {
	type tally struct {
		PollID   uint
		ChoiceID uint
		N        uint
	}
	var tallies []tally
	err := db.Model(&models.VoteRecord{}).
		Select("poll_id, choice_id, COUNT(*) AS n").
		Group("poll_id, choice_id").
		Scan(&tallies).Error
	if err != nil {
		return fmt.Errorf("aggregate vote records: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, t := range tallies {
			if err := tx.Model(&models.Choice{}).Where("id = ? AND poll_id = ?", t.ChoiceID, t.PollID).
				UpdateColumn("votes", t.N).Error; err != nil {
				return fmt.Errorf("update tally for choice %d: %w", t.ChoiceID, err)
			}
		}
		return nil
	})
}

// Recounter periodically refreshes the tallies in the background.
type Recounter struct {
	db       *gorm.DB
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func NewRecounter(db *gorm.DB, interval time.Duration) *Recounter {
	return &Recounter{
		db:       db,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the recount loop. Call Stop to shut it down.
func (r *Recounter) Start() {
	go func() {
		defer close(r.done)
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := Recount(r.db); err != nil {
					log.Printf("tally recount failed: %v", err)
				}
			case <-r.stop:
				return
			}
		}
	}()
}

// Stop halts the recount loop and waits for it to exit.
func (r *Recounter) Stop() {
	close(r.stop)
	<-r.done
}
