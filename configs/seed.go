package configs

import (
	"log"

	"qrmenu/entity"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SeedDemo creates a demo restaurant with staff, tables and a small menu
// on first run, so the boards have something to show.
func SeedDemo() error {
	db := DB()

	var count int64
	db.Model(&entity.Restaurant{}).Count(&count)
	if count > 0 {
		return nil
	}

	ownerPass := getEnv("OWNER_PASSWORD", "")
	if ownerPass == "" {
		log.Println("skip seeding: missing OWNER_PASSWORD")
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(ownerPass), bcrypt.DefaultCost)
	owner := entity.User{
		Email:     getEnv("OWNER_EMAIL", "owner@example.com"),
		Password:  string(hash),
		FirstName: "Demo",
		LastName:  "Owner",
		Role:      "owner",
	}
	if err := db.Create(&owner).Error; err != nil {
		return err
	}

	rest := entity.Restaurant{
		Name:          "Demo Bistro",
		Address:       "1 Demo Street",
		DefaultLocale: "en",
		UserID:        owner.ID,
	}
	if err := db.Create(&rest).Error; err != nil {
		return err
	}
	db.Model(&owner).Update("restaurant_id", rest.ID)

	for _, staff := range []entity.User{
		{Email: "kitchen@example.com", Password: string(hash), FirstName: "Demo", LastName: "Kitchen", Role: "kitchen", RestaurantID: rest.ID},
		{Email: "waiter@example.com", Password: string(hash), FirstName: "Demo", LastName: "Waiter", Role: "waiter", RestaurantID: rest.ID},
	} {
		if err := db.Create(&staff).Error; err != nil {
			return err
		}
	}

	for n := 1; n <= 4; n++ {
		table := entity.Table{
			Number:       n,
			QRCodeToken:  uuid.NewString(),
			IsActive:     true,
			RestaurantID: rest.ID,
		}
		if err := db.Create(&table).Error; err != nil {
			return err
		}
	}

	mains := entity.Category{
		Name:         entity.LocalizedText{"en": "Mains", "pt": "Pratos principais"},
		SortOrder:    1,
		RestaurantID: rest.ID,
	}
	if err := db.Create(&mains).Error; err != nil {
		return err
	}

	burger := entity.Dish{
		Name:         entity.LocalizedText{"en": "House Burger", "pt": "Hambúrguer da casa"},
		Description:  entity.LocalizedText{"en": "Beef, cheddar, house sauce"},
		BasePrice:    2000,
		IsAvailable:  true,
		CategoryID:   mains.ID,
		RestaurantID: rest.ID,
	}
	if err := db.Create(&burger).Error; err != nil {
		return err
	}

	bacon := entity.Ingredient{
		Name:         entity.LocalizedText{"en": "Bacon"},
		BasePrice:    250,
		RestaurantID: rest.ID,
	}
	if err := db.Create(&bacon).Error; err != nil {
		return err
	}
	return db.Create(&entity.DishIngredient{
		DishID:          burger.ID,
		IngredientID:    bacon.ID,
		AdditionalPrice: 100,
		IsOptional:      true,
	}).Error
}
