package repository

import (
	"github.com/ndthang/edubot/internal/dto"
	"github.com/ndthang/edubot/internal/model"
	"gorm.io/gorm"
)

type MajorRepository interface {
	FindAll(q dto.MajorQueryDTO) ([]model.Major, int64, error)
	FindByID(id uint) (*model.Major, error)
	FindByTrait(trait string) ([]model.Major, error)
}

type majorRepository struct {
	db *gorm.DB
}

func NewMajorRepository(db *gorm.DB) MajorRepository {
	return &majorRepository{db: db}
}

func (r *majorRepository) FindAll(q dto.MajorQueryDTO) ([]model.Major, int64, error) {
	query := r.db.Model(&model.Major{})
	if q.Search != "" {
		like := "%" + q.Search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ?", like, like)
	}
	if q.Department != "" {
		query = query.Where("department = ?", q.Department)
	}
	if q.Campus != "" {
		query = query.Where("campus = ?", q.Campus)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 20
	}

	var majors []model.Major
	err := query.Order("name ASC").
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Find(&majors).Error
	return majors, total, err
}

func (r *majorRepository) FindByID(id uint) (*model.Major, error) {
	var major model.Major
	if err := r.db.First(&major, id).Error; err != nil {
		return nil, err
	}
	return &major, nil
}

func (r *majorRepository) FindByTrait(trait string) ([]model.Major, error) {
	var majors []model.Major
	err := r.db.Where("traits LIKE ?", "%"+trait+"%").Order("name ASC").Find(&majors).Error
	return majors, err
}
