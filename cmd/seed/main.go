// Command main runs the database seeder for Prompthub.
package main

import (
	"context"
	"flag"
	"log"

	"prompthub/internal/config"
	"prompthub/internal/database"
	"prompthub/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numPrompts := flag.Int("prompts", 120, "Number of prompts to create")
	feedbackRatio := flag.Float64("feedback-ratio", 0.3, "Fraction of (user, prompt) pairs that receive feedback")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	skipBcrypt := flag.Bool("skip-bcrypt", false, "Store plaintext demo passwords (dev fast mode)")
	randomSeed := flag.Int64("seed", 0, "Random seed (0 = time-based)")
	flag.Parse()

	log.Printf("Seeding: %d users, %d prompts, feedback ratio %.2f, clean=%v",
		*numUsers, *numPrompts, *feedbackRatio, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	opts := seed.Options{
		NumUsers:      *numUsers,
		NumPrompts:    *numPrompts,
		FeedbackRatio: *feedbackRatio,
		ShouldClean:   *shouldClean,
		SkipBcrypt:    *skipBcrypt,
		MaxDays:       90,
		RandomSeed:    *randomSeed,
	}

	if err := seed.Run(context.Background(), db, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Seeding complete")
}
