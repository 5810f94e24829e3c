package services

// IngredientPrice is one customizable ingredient of a dish as the pricing
// calculator sees it: the ingredient's own per-unit price plus the
// dish-specific surcharge.
type IngredientPrice struct {
	IngredientID    uint
	BasePrice       int64
	AdditionalPrice int64
}

// UnitPrice computes the price of one unit of a dish with the selected
// extra-ingredient quantities:
//
//	unit = base + Σ qty_i * (ingredientBase_i + additional_i)
//
// Quantities below zero are clamped to zero, quantity zero contributes
// nothing (the default state is already priced into the base), and
// quantities for ingredients the dish does not offer are ignored.
func UnitPrice(basePrice int64, ingredients []IngredientPrice, quantities map[uint]int) int64 {
	unit := basePrice
	for _, ing := range ingredients {
		qty := quantities[ing.IngredientID]
		if qty <= 0 {
			continue
		}
		unit += int64(qty) * (ing.BasePrice + ing.AdditionalPrice)
	}
	return unit
}
