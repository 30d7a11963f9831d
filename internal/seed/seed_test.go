package seed

import (
	"context"
	"testing"

	"prompthub/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.School{},
		&models.Subject{},
		&models.Prompt{},
		&models.PromptFeedback{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

func TestSeedRunProducesConsistentCounters(t *testing.T) {
	db := setupSeedTestDB(t)

	opts := Options{
		NumUsers:      5,
		NumPrompts:    10,
		FeedbackRatio: 0.5,
		SkipBcrypt:    true,
		MaxDays:       30,
		RandomSeed:    1,
	}
	if err := Run(context.Background(), db, opts); err != nil {
		t.Fatalf("seed run: %v", err)
	}

	var users, prompts int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Prompt{}).Count(&prompts)
	if users != 5 {
		t.Fatalf("expected 5 users, got %d", users)
	}
	if prompts != 10 {
		t.Fatalf("expected 10 prompts, got %d", prompts)
	}

	// Denormalized counters must agree with the feedback rows for every prompt.
	var all []models.Prompt
	if err := db.Find(&all).Error; err != nil {
		t.Fatalf("load prompts: %v", err)
	}
	for _, prompt := range all {
		var likes, dislikes int64
		db.Model(&models.PromptFeedback{}).
			Where("prompt_id = ? AND feedback_type = ?", prompt.ID, models.FeedbackLike).
			Count(&likes)
		db.Model(&models.PromptFeedback{}).
			Where("prompt_id = ? AND feedback_type = ?", prompt.ID, models.FeedbackDislike).
			Count(&dislikes)
		if int64(prompt.Likes) != likes || int64(prompt.Dislikes) != dislikes {
			t.Fatalf("prompt %d counters (%d,%d) disagree with rows (%d,%d)",
				prompt.ID, prompt.Likes, prompt.Dislikes, likes, dislikes)
		}
	}
}

func TestSeedRunIsRepeatableWithClean(t *testing.T) {
	db := setupSeedTestDB(t)

	opts := Options{NumUsers: 3, NumPrompts: 4, SkipBcrypt: true, ShouldClean: true, RandomSeed: 2}
	for i := 0; i < 2; i++ {
		if err := Run(context.Background(), db, opts); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}

	var users int64
	db.Model(&models.User{}).Count(&users)
	if users != 3 {
		t.Fatalf("expected 3 users after clean re-run, got %d", users)
	}
}

func TestClean(t *testing.T) {
	db := setupSeedTestDB(t)

	if err := Run(context.Background(), db, Options{NumUsers: 2, NumPrompts: 2, SkipBcrypt: true, RandomSeed: 3}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := Clean(db); err != nil {
		t.Fatalf("clean: %v", err)
	}

	for _, model := range []any{&models.User{}, &models.Prompt{}, &models.PromptFeedback{}, &models.School{}, &models.Subject{}} {
		var count int64
		db.Model(model).Count(&count)
		if count != 0 {
			t.Fatalf("expected %T table empty, got %d", model, count)
		}
	}
}
