package repository

import (
	"github.com/ndthang/edubot/internal/model"
	"gorm.io/gorm"
)

type ResultRepository interface {
	Create(result *model.TestResult) error
	FindByIDWithDetails(id uint) (*model.TestResult, error)
	FindAllByUser(userID uint) ([]model.TestResult, error)
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) Create(result *model.TestResult) error {
	// Scores and the result_majors join rows are created through associations.
	return r.db.Create(result).Error
}

func (r *resultRepository) FindByIDWithDetails(id uint) (*model.TestResult, error) {
	var result model.TestResult
	err := r.db.
		Preload("Test").
		Preload("Scores", func(db *gorm.DB) *gorm.DB {
			return db.Order("result_scores.order_index ASC")
		}).
		Preload("Majors").
		First(&result, id).Error
	return &result, err
}

func (r *resultRepository) FindAllByUser(userID uint) ([]model.TestResult, error) {
	var results []model.TestResult
	err := r.db.
		Preload("Test").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error
	return results, err
}
