package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/KevinRabun/TruePulse-sub002/models"
)

// Tally maintenance modes. Sync updates the per-choice counter inside the
// same transaction as the vote insert; eventual leaves counters to the
// background recounter.
const (
	TallySync     = "sync"
	TallyEventual = "eventual"
)

// DB is the global database instance
var DB *gorm.DB
var JWTSecret []byte

// VoteTokenSalt is the server-held secret mixed into every vote token.
// Without it, anyone holding the vote table could enumerate known voter IDs
// and test membership by recomputing tokens.
var VoteTokenSalt []byte

var TallyMode string
var RecountInterval time.Duration

func LoadConfig() {
	// Load .env file
	err := godotenv.Load(".env")
	if err != nil {
		log.Printf("No .env file found, using environment variables")
	}

	// Set JWT secret key from environment variable
	JWTSecret = []byte(os.Getenv("JWT_SECRET"))
	if len(JWTSecret) == 0 {
		log.Fatalf("JWT_SECRET not set")
	}

	// The vote token salt is required, not optional: refuse to start without it.
	VoteTokenSalt = []byte(os.Getenv("VOTE_TOKEN_SALT"))
	if len(VoteTokenSalt) < 16 {
		log.Fatalf("VOTE_TOKEN_SALT must be set to at least 16 bytes")
	}

	TallyMode = os.Getenv("TALLY_MODE")
	if TallyMode == "" {
		TallyMode = TallySync
	}
	if TallyMode != TallySync && TallyMode != TallyEventual {
		log.Fatalf("TALLY_MODE must be %q or %q, got %q", TallySync, TallyEventual, TallyMode)
	}

	RecountInterval = 30 * time.Second
	if v := os.Getenv("RECOUNT_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			log.Fatalf("Invalid RECOUNT_INTERVAL: %q", v)
		}
		RecountInterval = d
	}
}

func ConnectDatabase() {
	// Load DB config from environment variables
	dbHost := os.Getenv("DB_HOST")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbPort := os.Getenv("DB_PORT")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		dbHost, dbUser, dbPassword, dbName, dbPort)

	var errDB error
	DB, errDB = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if errDB != nil {
		log.Fatalf("Error connecting to database: %v", errDB)
	}

	log.Println("Database connected successfully")

	if err := DB.AutoMigrate(&models.Voter{}, &models.Poll{}, &models.Choice{}, &models.VoteRecord{}); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
	log.Println("Database migrated successfully")
}
