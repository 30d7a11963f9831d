// Package main provides admin management utilities for Prompthub.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"prompthub/internal/config"
	"prompthub/internal/database"
	"prompthub/internal/models"
	"prompthub/internal/repository"

	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/admin promote <username>      - Promote user to admin")
		fmt.Println("  go run ./cmd/admin demote <username>       - Demote user from admin")
		fmt.Println("  go run ./cmd/admin list-admins             - List all admins")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	switch command := os.Args[1]; command {
	case "promote":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin promote <username>")
			os.Exit(1)
		}
		setAdmin(db, os.Args[2], true)

	case "demote":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin demote <username>")
			os.Exit(1)
		}
		setAdmin(db, os.Args[2], false)

	case "list-admins":
		listAdmins(db)

	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

func setAdmin(db *gorm.DB, username string, admin bool) {
	ctx := context.Background()
	repo := repository.NewUserRepository(db)

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		log.Fatalf("Failed to look up user: %v", err)
	}
	if user == nil {
		log.Fatalf("User %q not found", username)
	}

	if err := repo.SetAdmin(ctx, user.ID, admin); err != nil {
		log.Fatalf("Failed to update user: %v", err)
	}

	verb := "promoted to"
	if !admin {
		verb = "demoted from"
	}
	fmt.Printf("User %s (ID %d) %s admin\n", user.Username, user.ID, verb)
}

func listAdmins(db *gorm.DB) {
	var admins []models.User
	if err := db.Where("is_admin = ?", true).Order("id").Find(&admins).Error; err != nil {
		log.Fatalf("Failed to list admins: %v", err)
	}

	if len(admins) == 0 {
		fmt.Println("No admins found. Bootstrap one with POST /users/bootstrap-admin.")
		return
	}

	fmt.Printf("Admins (%d):\n", len(admins))
	for _, admin := range admins {
		fmt.Printf("  %d\t%s\t%s\n", admin.ID, admin.Username, admin.Email)
	}
}
