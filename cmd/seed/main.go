package main

import (
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/Monachawla1712/LivSorted-auth-service/internal/database"
	"github.com/Monachawla1712/LivSorted-auth-service/internal/domain"
)

// seed migrates the schema and loads a minimal local dataset: one backoffice
// admin, one consumer on the SMS whitelist, and a franchise owner with an
// active store mapping.
func main() {
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		databaseURL = "auth.db"
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.OtpToken{},
		&domain.RefreshToken{},
		&domain.UserStoreMapping{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM user_store_mappings")
	db.Exec("DELETE FROM refresh_tokens")
	db.Exec("DELETE FROM otp_tokens")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")

	admin := domain.User{
		ID:          uuid.NewString(),
		Name:        "Admin",
		CountryCode: "91",
		PhoneNumber: "9999999999",
		Roles:       []domain.UserRole{domain.RoleVisitor, domain.RoleAdmin},
		IsActive:    true,
		IsVerified:  true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("seed admin failed:", err)
	}

	// Matches the default SMS whitelist, so the login code is always 1234.
	consumer := domain.User{
		ID:          uuid.NewString(),
		Name:        "Test Consumer",
		Greeting:    "Hello",
		CountryCode: "91",
		PhoneNumber: "9876543210",
		Roles:       []domain.UserRole{domain.RoleVisitor, domain.RoleConsumer},
		IsActive:    true,
		IsVerified:  true,
	}
	if err := db.Create(&consumer).Error; err != nil {
		log.Fatal("seed consumer failed:", err)
	}

	owner := domain.User{
		ID:          uuid.NewString(),
		Name:        "Franchise Owner",
		CountryCode: "91",
		PhoneNumber: "9000000001",
		Roles:       []domain.UserRole{domain.RoleVisitor, domain.RoleFranchiseOwner},
		IsActive:    true,
		IsVerified:  true,
	}
	if err := db.Create(&owner).Error; err != nil {
		log.Fatal("seed owner failed:", err)
	}
	mapping := domain.UserStoreMapping{
		UserID:   owner.ID,
		StoreID:  "store-1001",
		IsActive: true,
	}
	if err := db.Create(&mapping).Error; err != nil {
		log.Fatal("seed store mapping failed:", err)
	}

	log.Printf("seed completed users=3 store_mappings=1")
}
