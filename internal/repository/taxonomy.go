package repository

import (
	"context"
	"errors"

	"prompthub/internal/models"

	"gorm.io/gorm"
)

// TaxonomyRepository manages the school/subject reference data.
// Entries are created by admins (or seed bootstrap) and never mutated in scope.
type TaxonomyRepository interface {
	ListSchools(ctx context.Context) ([]models.School, error)
	CreateSchool(ctx context.Context, school *models.School) error
	ListSubjects(ctx context.Context, schoolID *uint) ([]models.Subject, error)
	CreateSubject(ctx context.Context, subject *models.Subject) error
}

type taxonomyRepository struct {
	db *gorm.DB
}

// NewTaxonomyRepository returns a new TaxonomyRepository implementation.
func NewTaxonomyRepository(db *gorm.DB) TaxonomyRepository {
	return &taxonomyRepository{db: db}
}

func (r *taxonomyRepository) ListSchools(ctx context.Context) ([]models.School, error) {
	var schools []models.School
	if err := r.db.WithContext(ctx).Order("name").Find(&schools).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return schools, nil
}

func (r *taxonomyRepository) CreateSchool(ctx context.Context, school *models.School) error {
	if err := r.db.WithContext(ctx).Create(school).Error; err != nil {
		if IsUniqueConstraintError(err) {
			return models.NewConflictError("School already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *taxonomyRepository) ListSubjects(ctx context.Context, schoolID *uint) ([]models.Subject, error) {
	var subjects []models.Subject
	query := r.db.WithContext(ctx).Order("name")
	if schoolID != nil {
		query = query.Where("school_id = ?", *schoolID)
	}
	if err := query.Find(&subjects).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return subjects, nil
}

func (r *taxonomyRepository) CreateSubject(ctx context.Context, subject *models.Subject) error {
	if subject.SchoolID != nil {
		var school models.School
		if err := r.db.WithContext(ctx).First(&school, *subject.SchoolID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("School", *subject.SchoolID)
			}
			return models.NewInternalError(err)
		}
	}

	if err := r.db.WithContext(ctx).Create(subject).Error; err != nil {
		if IsUniqueConstraintError(err) {
			return models.NewConflictError("Subject already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}
