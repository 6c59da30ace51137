// Package testutil provides shared helpers for package tests: an isolated
// in-memory database with the full schema, plus seed helpers.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/KevinRabun/TruePulse-sub002/models"
)

// Salt is the vote token salt used across tests.
var Salt = []byte("test-vote-token-salt")

// SetupTestDB opens a fresh in-memory database with the full schema. Each
// call gets its own database, so tests never see each other's rows. The
// connection pool is capped at one connection: shared-cache sqlite does not
// tolerate concurrent writers, and a single connection serializes them while
// still exercising the unique-key conflict path.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to access underlying DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&models.Voter{}, &models.Poll{}, &models.Choice{}, &models.VoteRecord{}); err != nil {
		t.Fatalf("Failed to migrate test schema: %v", err)
	}

	return db
}

// CreateTestPoll inserts a poll with the given choices and returns it with
// choice IDs populated.
func CreateTestPoll(t *testing.T, db *gorm.DB, active bool, choices ...string) models.Poll {
	t.Helper()

	poll := models.Poll{Question: "Test question?", IsActive: active}
	for _, text := range choices {
		poll.Choices = append(poll.Choices, models.Choice{Text: text})
	}
	if err := db.Create(&poll).Error; err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}
	return poll
}

// CreateWindowedPoll inserts an active poll whose voting window is
// [opensAt, closesAt); nil bounds are unbounded.
func CreateWindowedPoll(t *testing.T, db *gorm.DB, opensAt, closesAt *time.Time, choices ...string) models.Poll {
	t.Helper()

	poll := models.Poll{Question: "Windowed question?", IsActive: true, OpensAt: opensAt, ClosesAt: closesAt}
	for _, text := range choices {
		poll.Choices = append(poll.Choices, models.Choice{Text: text})
	}
	if err := db.Create(&poll).Error; err != nil {
		t.Fatalf("Failed to create windowed poll: %v", err)
	}
	return poll
}

// CreateTestVoter inserts a voter whose password is "password123".
func CreateTestVoter(t *testing.T, db *gorm.DB, email string, admin bool) models.Voter {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}
	voter := models.Voter{Name: "Test Voter", Email: email, Password: string(hashed), IsAdmin: admin}
	if err := db.Create(&voter).Error; err != nil {
		t.Fatalf("Failed to create test voter: %v", err)
	}
	return voter
}
