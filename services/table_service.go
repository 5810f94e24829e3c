package services

import (
	"errors"

	"qrmenu/entity"
	"qrmenu/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TableService struct {
	DB   *gorm.DB
	Repo *repository.TableRepository
}

func NewTableService(db *gorm.DB, repo *repository.TableRepository) *TableService {
	return &TableService{DB: db, Repo: repo}
}

func (s *TableService) Create(restID uint, number int) (*entity.Table, error) {
	t := &entity.Table{
		Number:       number,
		QRCodeToken:  uuid.NewString(),
		IsActive:     true,
		RestaurantID: restID,
	}
	if number <= 0 {
		max, err := s.Repo.MaxNumber(s.DB, restID)
		if err != nil {
			return nil, err
		}
		t.Number = max + 1
	}
	if err := s.Repo.Create(s.DB, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TableService) List(restID uint) ([]entity.Table, error) {
	return s.Repo.List(restID)
}

// GetByToken resolves a scanned QR token to its active table.
func (s *TableService) GetByToken(token string) (*entity.Table, error) {
	t, err := s.Repo.GetByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// RegenerateToken replaces a table's QR token. Codes printed with the old
// token stop resolving the moment this commits.
func (s *TableService) RegenerateToken(restID, tableID uint) (*entity.Table, error) {
	t, err := s.Repo.Get(tableID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if t.RestaurantID != restID {
		return nil, ErrForbidden
	}
	t.QRCodeToken = uuid.NewString()
	if err := s.Repo.UpdateToken(t.ID, t.QRCodeToken); err != nil {
		return nil, err
	}
	return t, nil
}
