package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gompa/internal/models/db_models"
)

type LandmarkRepository interface {
	List(ctx context.Context, district string) ([]db_models.Landmark, error)
	GetByID(ctx context.Context, id string) (*db_models.Landmark, error)
	Upsert(ctx context.Context, landmarks []db_models.Landmark) error
}

type landmarkRepository struct {
	db *gorm.DB
}

func NewLandmarkRepository(db *gorm.DB) LandmarkRepository {
	return &landmarkRepository{db: db}
}

func (r *landmarkRepository) List(ctx context.Context, district string) ([]db_models.Landmark, error) {
	var out []db_models.Landmark
	q := r.db.WithContext(ctx).Order("name ASC")
	if district != "" {
		q = q.Where("LOWER(district) = LOWER(?)", district)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID matches the slug or one of the aliases and returns nil, nil when
// nothing matches.
func (r *landmarkRepository) GetByID(ctx context.Context, id string) (*db_models.Landmark, error) {
	var lm db_models.Landmark
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Or("? = ANY(aliases)", id).
		Order(clause.OrderBy{Expression: clause.Expr{SQL: "id = ? DESC", Vars: []interface{}{id}, WithoutParentheses: true}}).
		First(&lm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &lm, nil
}

func (r *landmarkRepository) Upsert(ctx context.Context, landmarks []db_models.Landmark) error {
	if len(landmarks) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "location", "district", "lat", "lng", "category", "aliases", "updated_at"}),
		}).
		Create(&landmarks).Error
}
