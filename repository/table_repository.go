package repository

import (
	"qrmenu/entity"

	"gorm.io/gorm"
)

type TableRepository struct {
	DB *gorm.DB
}

func NewTableRepository(db *gorm.DB) *TableRepository {
	return &TableRepository{DB: db}
}

func (r *TableRepository) Create(tx *gorm.DB, t *entity.Table) error {
	return tx.Create(t).Error
}

func (r *TableRepository) Get(id uint) (*entity.Table, error) {
	var t entity.Table
	if err := r.DB.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByToken resolves an active table from a scanned QR token. A
// regenerated token makes the old one stop resolving here.
func (r *TableRepository) GetByToken(token string) (*entity.Table, error) {
	var t entity.Table
	err := r.DB.Where("qr_code_token = ? AND is_active = ?", token, true).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TableRepository) List(restID uint) ([]entity.Table, error) {
	var tables []entity.Table
	err := r.DB.Where("restaurant_id = ?", restID).Order("number ASC").Find(&tables).Error
	return tables, err
}

// FirstActive returns the fallback table for walk-in/delivery orders
// submitted without a scanned QR code.
func (r *TableRepository) FirstActive(tx *gorm.DB, restID uint) (*entity.Table, error) {
	var t entity.Table
	err := tx.Where("restaurant_id = ? AND is_active = ?", restID, true).
		Order("number ASC").First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TableRepository) MaxNumber(tx *gorm.DB, restID uint) (int, error) {
	var row struct{ Max int }
	err := tx.Model(&entity.Table{}).
		Select("COALESCE(MAX(number), 0) AS max").
		Where("restaurant_id = ?", restID).
		Scan(&row).Error
	return row.Max, err
}

func (r *TableRepository) UpdateToken(tableID uint, token string) error {
	return r.DB.Model(&entity.Table{}).
		Where("id = ?", tableID).
		Update("qr_code_token", token).Error
}
