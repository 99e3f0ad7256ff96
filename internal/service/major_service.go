package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/ndthang/edubot/internal/dto"
	"github.com/ndthang/edubot/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var ErrMajorNotFound = errors.New("major not found")

type MajorService interface {
	ListMajors(q dto.MajorQueryDTO) (*dto.MajorListDTO, error)
	GetMajor(majorID uint) (*dto.MajorDTO, error)
}

type majorService struct {
	majorRepo repository.MajorRepository
}

func NewMajorService(majorRepo repository.MajorRepository) MajorService {
	return &majorService{majorRepo: majorRepo}
}

func (s *majorService) ListMajors(q dto.MajorQueryDTO) (*dto.MajorListDTO, error) {
	majors, total, err := s.majorRepo.FindAll(q)
	if err != nil {
		log.Error().Err(err).Msg("ListMajors: repository error")
		return nil, fmt.Errorf("error fetching majors: %w", err)
	}

	list := &dto.MajorListDTO{Total: total, Page: q.Page, Limit: q.Limit}
	for _, m := range majors {
		var out dto.MajorDTO
		if errCp := copier.Copy(&out, &m); errCp != nil {
			log.Error().Err(errCp).Uint("majorID", m.ID).Msg("ListMajors: copy to DTO failed")
			continue
		}
		list.Majors = append(list.Majors, out)
	}
	return list, nil
}

func (s *majorService) GetMajor(majorID uint) (*dto.MajorDTO, error) {
	major, err := s.majorRepo.FindByID(majorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMajorNotFound
		}
		return nil, fmt.Errorf("error fetching major %d: %w", majorID, err)
	}
	var out dto.MajorDTO
	if err := copier.Copy(&out, major); err != nil {
		return nil, fmt.Errorf("error preparing major response: %w", err)
	}
	return &out, nil
}
