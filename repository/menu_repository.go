package repository

import (
	"qrmenu/entity"

	"gorm.io/gorm"
)

type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

func (r *MenuRepository) GetRestaurant(id uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.First(&rest, id).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *MenuRepository) RestaurantExists(id uint) (bool, error) {
	var cnt int64
	if err := r.DB.Model(&entity.Restaurant{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *MenuRepository) ListCategories(restID uint) ([]entity.Category, error) {
	var cats []entity.Category
	err := r.DB.Where("restaurant_id = ?", restID).
		Order("sort_order ASC, id ASC").
		Find(&cats).Error
	return cats, err
}

func (r *MenuRepository) ListAvailableDishes(restID uint) ([]entity.Dish, error) {
	var dishes []entity.Dish
	err := r.DB.Where("restaurant_id = ? AND is_available = ?", restID, true).
		Order("category_id ASC, id ASC").
		Find(&dishes).Error
	return dishes, err
}

// GetDishBasics loads just what pricing and validation need.
func (r *MenuRepository) GetDishBasics(id uint) (entity.Dish, error) {
	var d entity.Dish
	err := r.DB.Select("id, base_price, restaurant_id, is_available, name").First(&d, id).Error
	return d, err
}

func (r *MenuRepository) GetDish(id uint) (*entity.Dish, error) {
	var d entity.Dish
	if err := r.DB.First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// GetDishIngredients returns the dish's ingredient definitions with the
// ingredient preloaded (base price and name).
func (r *MenuRepository) GetDishIngredients(dishID uint) ([]entity.DishIngredient, error) {
	var defs []entity.DishIngredient
	err := r.DB.Preload("Ingredient").
		Where("dish_id = ?", dishID).
		Find(&defs).Error
	return defs, err
}

// ValidateDishesBelongToRestaurant checks every dish id exists under the
// given restaurant and is currently available, so orders cannot name
// dishes the menu hides.
func (r *MenuRepository) ValidateDishesBelongToRestaurant(dishIDs []uint, restID uint) (bool, error) {
	if len(dishIDs) == 0 {
		return true, nil
	}
	var cnt int64
	if err := r.DB.Model(&entity.Dish{}).
		Where("id IN ? AND restaurant_id = ? AND is_available = ?", dishIDs, restID, true).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt == int64(len(dishIDs)), nil
}
