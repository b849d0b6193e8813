package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/Monachawla1712/LivSorted-auth-service/internal/database"
)

// auth_cleanup is the cron companion of the API: it retires stale OTP rows
// and drops revoked refresh tokens past their retention window.
func main() {
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	now := time.Now().UTC()

	res1 := db.Exec(`UPDATE otp_tokens SET is_active = ? WHERE is_active = ? AND valid_till < ?`, false, true, now)
	if res1.Error != nil {
		log.Fatalf("cleanup otp_tokens failed: %v", res1.Error)
	}

	// Revoked rows are kept for 30 days so anomalous refresh attempts can be
	// investigated, then dropped.
	cutoff := now.AddDate(0, 0, -30)
	res2 := db.Exec(`DELETE FROM refresh_tokens WHERE revoked = ? AND updated_at < ?`, true, cutoff)
	if res2.Error != nil {
		log.Fatalf("cleanup refresh_tokens failed: %v", res2.Error)
	}

	log.Printf("auth cleanup completed otp_tokens=%d refresh_tokens=%d", res1.RowsAffected, res2.RowsAffected)
}
