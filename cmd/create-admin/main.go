package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/ahmed88lk/KindnessChain/internal/auth"
	"github.com/ahmed88lk/KindnessChain/internal/config"
	"github.com/ahmed88lk/KindnessChain/internal/db"
	"github.com/ahmed88lk/KindnessChain/internal/models"
)

func main() {
	name := flag.String("name", "Admin", "display name for the admin account")
	email := flag.String("email", "admin@kindnesschain.com", "admin email")
	password := flag.String("password", "", "admin password (required)")
	flag.Parse()

	if *password == "" {
		log.Fatal("a password is required: -password")
	}
	if err := auth.ValidatePassword(*password); err != nil {
		log.Fatalf("Invalid password: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := &models.User{
		ID:            uuid.NewString(),
		Name:          *name,
		Email:         *email,
		PasswordHash:  hash,
		Avatar:        "https://ui-avatars.com/api/?name=Admin&background=purple",
		KindnessCoins: cfg.StartingCoins,
		IsAmbassador:  true,
		Language:      "fr",
		Role:          models.RoleAdmin,
	}

	if err := database.CreateUser(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	fmt.Println("Admin account created.")
	fmt.Printf("Email: %s\n", admin.Email)
	fmt.Printf("ID:    %s\n", admin.ID)
}
