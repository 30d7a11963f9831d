package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"prompthub/internal/models"
	"prompthub/internal/service"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers   int
	NumPrompts int
	// FeedbackRatio is the fraction of (user, prompt) pairs that receive
	// feedback, between 0 and 1.
	FeedbackRatio float64
	ShouldClean   bool
	SkipBcrypt    bool
	MaxDays       int
	RandomSeed    int64
}

// DefaultOptions returns a preset suitable for local development.
func DefaultOptions() Options {
	return Options{
		NumUsers:      25,
		NumPrompts:    120,
		FeedbackRatio: 0.3,
		MaxDays:       90,
	}
}

var defaultSchools = map[string][]string{
	"School of Engineering":      {"Computer Science", "Electrical Engineering", "Mechanics"},
	"School of Natural Sciences": {"Mathematics", "Physics", "Chemistry", "Biology"},
	"School of Humanities":       {"History", "Philosophy", "Literature"},
	"School of Economics":        {"Microeconomics", "Statistics", "Finance"},
}

// Run populates the database with demo users, taxonomy, prompts, and
// feedback. Feedback is applied through the regular feedback engine so the
// denormalized counters on prompts stay consistent with the feedback rows.
func Run(ctx context.Context, db *gorm.DB, opts Options) error {
	if opts.ShouldClean {
		if err := Clean(db); err != nil {
			return err
		}
	}

	f := NewFactory(db, opts)

	var subjects []models.Subject
	for schoolName, subjectNames := range defaultSchools {
		school, err := f.CreateSchool(schoolName)
		if err != nil {
			return err
		}
		for _, name := range subjectNames {
			subject, err := f.CreateSubject(name, &school.ID)
			if err != nil {
				return err
			}
			subjects = append(subjects, *subject)
		}
	}
	slog.Info("seeded taxonomy", "subjects", len(subjects))

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return err
		}
		users = append(users, user)
	}
	slog.Info("seeded users", "count", len(users))

	prompts := make([]*models.Prompt, 0, opts.NumPrompts)
	for i := 0; i < opts.NumPrompts; i++ {
		author := users[f.rng.Intn(len(users))]
		subject := subjects[f.rng.Intn(len(subjects))]
		prompts = append(prompts, f.BuildPrompt(author, subject.Name))
	}
	if err := f.CreatePromptsBatch(prompts); err != nil {
		return err
	}
	slog.Info("seeded prompts", "count", len(prompts))

	applied, err := applyFeedback(ctx, db, f, users, prompts)
	if err != nil {
		return err
	}
	slog.Info("seeded feedback", "count", applied)
	return nil
}

// applyFeedback drives feedback through the real engine instead of inserting
// rows directly, so every like/dislike also adjusts the prompt counters.
func applyFeedback(ctx context.Context, db *gorm.DB, f *Factory, users []*models.User, prompts []*models.Prompt) (int, error) {
	engine := service.NewFeedbackService(db)
	applied := 0

	for _, user := range users {
		for _, prompt := range prompts {
			if f.rng.Float64() >= f.opts.FeedbackRatio {
				continue
			}
			feedbackType := models.FeedbackLike
			if f.rng.Intn(4) == 0 {
				feedbackType = models.FeedbackDislike
			}
			if _, err := engine.Apply(ctx, prompt.ID, user.ID, feedbackType); err != nil {
				var appErr *models.AppError
				if errors.As(err, &appErr) && appErr.Code == "CONFLICT" {
					continue
				}
				return applied, fmt.Errorf("seed feedback: %w", err)
			}
			applied++
		}
	}
	return applied, nil
}

// Clean removes all seeded rows. Feedback goes first so no counter updates
// fire against deleted prompts.
func Clean(db *gorm.DB) error {
	for _, model := range []any{
		&models.PromptFeedback{},
		&models.Prompt{},
		&models.Subject{},
		&models.School{},
		&models.User{},
	} {
		if err := db.Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("seed clean: %w", err)
		}
	}
	return nil
}
