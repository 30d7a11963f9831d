// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"prompthub/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	seed := opts.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gofakeit.Seed(seed)
	return &Factory{db: db, opts: opts, rng: rand.New(rand.NewSource(seed))}
}

var promptTitleTemplates = []string{
	"Explain %s like I'm five",
	"Socratic tutor for %s",
	"Generate practice problems on %s",
	"Summarize a lecture on %s",
	"Debate both sides of %s",
	"Write flashcards for %s",
	"Step-by-step walkthrough of %s",
	"Common misconceptions about %s",
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username:  fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
		Email:     gofakeit.Email(),
		Name:      gofakeit.Name(),
		Gender:    gofakeit.Gender(),
		Age:       fmt.Sprintf("%d", gofakeit.Number(18, 30)),
		StudentID: fmt.Sprintf("S%06d", gofakeit.Number(0, 999999)),
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("seed user: %w", err)
	}
	return user, nil
}

// CreateSchool persists a school, returning the existing row when the name
// is already taken so presets can be re-run.
func (f *Factory) CreateSchool(name string) (*models.School, error) {
	school := &models.School{Name: name}
	err := f.db.Where("name = ?", name).FirstOrCreate(school).Error
	if err != nil {
		return nil, fmt.Errorf("seed school: %w", err)
	}
	return school, nil
}

// CreateSubject persists a subject under the given school.
func (f *Factory) CreateSubject(name string, schoolID *uint) (*models.Subject, error) {
	subject := &models.Subject{Name: name, SchoolID: schoolID}
	err := f.db.Where("name = ?", name).FirstOrCreate(subject).Error
	if err != nil {
		return nil, fmt.Errorf("seed subject: %w", err)
	}
	return subject, nil
}

// BuildPrompt constructs a prompt without persisting it. Useful for batching.
func (f *Factory) BuildPrompt(user *models.User, subject string, overrides ...func(*models.Prompt)) *models.Prompt {
	topic := gofakeit.HackerNoun()
	if subject != "" {
		topic = subject
	}
	template := promptTitleTemplates[f.rng.Intn(len(promptTitleTemplates))]

	prompt := &models.Prompt{
		Title:   fmt.Sprintf(template, topic),
		Content: gofakeit.Paragraph(2, 4, 8, "\n"),
		Subject: subject,
		UserID:  user.ID,
	}

	// realistic created_at spread
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	prompt.CreatedAt = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(prompt)
	}
	return prompt
}

// CreatePromptsBatch persists multiple prompts in a single DB call.
func (f *Factory) CreatePromptsBatch(prompts []*models.Prompt) error {
	if len(prompts) == 0 {
		return nil
	}
	if err := f.db.Create(&prompts).Error; err != nil {
		return fmt.Errorf("seed prompts: %w", err)
	}
	return nil
}
