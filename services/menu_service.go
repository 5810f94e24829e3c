package services

import (
	"errors"

	"qrmenu/repository"

	"gorm.io/gorm"
)

type MenuService struct {
	Menu   *repository.MenuRepository
	Tables *repository.TableRepository
}

func NewMenuService(menu *repository.MenuRepository, tables *repository.TableRepository) *MenuService {
	return &MenuService{Menu: menu, Tables: tables}
}

// ----- Customer menu view -----

type IngredientOption struct {
	IngredientID uint   `json:"ingredientId"`
	Name         string `json:"name"`
	UnitPrice    int64  `json:"unitPrice"` // base + dish surcharge, per extra unit
	IsOptional   bool   `json:"isOptional"`
	IsRemovable  bool   `json:"isRemovable"`
	IsIncluded   bool   `json:"isIncluded"`
}

type DishView struct {
	ID          uint               `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	BasePrice   int64              `json:"basePrice"`
	Picture     string             `json:"picture"`
	Ingredients []IngredientOption `json:"ingredients"`
}

type CategoryView struct {
	ID     uint       `json:"id"`
	Name   string     `json:"name"`
	Dishes []DishView `json:"dishes"`
}

type MenuView struct {
	RestaurantID   uint           `json:"restaurantId"`
	RestaurantName string         `json:"restaurantName"`
	TableID        uint           `json:"tableId"`
	TableNumber    int            `json:"tableNumber"`
	Locale         string         `json:"locale"`
	Categories     []CategoryView `json:"categories"`
}

// GetMenuByToken resolves a scanned QR token to the table's menu, with
// every display string resolved once, here at the data-access boundary.
func (s *MenuService) GetMenuByToken(token, locale string) (*MenuView, error) {
	table, err := s.Tables.GetByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rest, err := s.Menu.GetRestaurant(table.RestaurantID)
	if err != nil {
		return nil, err
	}
	if locale == "" {
		locale = rest.DefaultLocale
	}

	cats, err := s.Menu.ListCategories(rest.ID)
	if err != nil {
		return nil, err
	}
	dishes, err := s.Menu.ListAvailableDishes(rest.ID)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[uint][]DishView, len(cats))
	for _, d := range dishes {
		defs, err := s.Menu.GetDishIngredients(d.ID)
		if err != nil {
			return nil, err
		}
		opts := make([]IngredientOption, 0, len(defs))
		for _, def := range defs {
			opts = append(opts, IngredientOption{
				IngredientID: def.IngredientID,
				Name:         def.Ingredient.Name.Resolve(locale, rest.DefaultLocale),
				UnitPrice:    def.Ingredient.BasePrice + def.AdditionalPrice,
				IsOptional:   def.IsOptional,
				IsRemovable:  def.IsRemovable,
				IsIncluded:   def.IsIncludedByDefault,
			})
		}
		byCategory[d.CategoryID] = append(byCategory[d.CategoryID], DishView{
			ID:          d.ID,
			Name:        d.Name.Resolve(locale, rest.DefaultLocale),
			Description: d.Description.Resolve(locale, rest.DefaultLocale),
			BasePrice:   d.BasePrice,
			Picture:     d.Picture,
			Ingredients: opts,
		})
	}

	out := &MenuView{
		RestaurantID:   rest.ID,
		RestaurantName: rest.Name,
		TableID:        table.ID,
		TableNumber:    table.Number,
		Locale:         locale,
	}
	for _, c := range cats {
		out.Categories = append(out.Categories, CategoryView{
			ID:     c.ID,
			Name:   c.Name.Resolve(locale, rest.DefaultLocale),
			Dishes: byCategory[c.ID],
		})
	}
	return out, nil
}
