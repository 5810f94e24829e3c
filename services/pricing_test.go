package services

import "testing"

func TestUnitPrice(t *testing.T) {
	bacon := IngredientPrice{IngredientID: 1, BasePrice: 250, AdditionalPrice: 100}
	cheese := IngredientPrice{IngredientID: 2, BasePrice: 200}
	ingredients := []IngredientPrice{bacon, cheese}

	tests := []struct {
		name       string
		base       int64
		quantities map[uint]int
		want       int64
	}{
		{"no selections returns base", 2000, nil, 2000},
		{"all zero returns base", 2000, map[uint]int{1: 0, 2: 0}, 2000},
		{"single add-on", 2000, map[uint]int{1: 1}, 2350},
		{"two units of one add-on", 2000, map[uint]int{1: 2}, 2700},
		{"mixed add-ons", 2000, map[uint]int{1: 1, 2: 3}, 2950},
		{"negative quantity clamped", 2000, map[uint]int{1: -5, 2: 1}, 2200},
		{"unknown ingredient ignored", 2000, map[uint]int{99: 4}, 2000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UnitPrice(tt.base, ingredients, tt.quantities)
			if got != tt.want {
				t.Errorf("UnitPrice = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestUnitPriceNoIngredients(t *testing.T) {
	if got := UnitPrice(1500, nil, map[uint]int{1: 3}); got != 1500 {
		t.Errorf("dish without customizable ingredients must price at base, got %d", got)
	}
}

func TestUnitPriceNeverBelowBase(t *testing.T) {
	ingredients := []IngredientPrice{{IngredientID: 1, BasePrice: 300, AdditionalPrice: 50}}
	for qty := -10; qty <= 10; qty++ {
		got := UnitPrice(1000, ingredients, map[uint]int{1: qty})
		if got < 1000 {
			t.Fatalf("qty %d priced below base: %d", qty, got)
		}
	}
}

func TestUnitPriceLinearInQuantity(t *testing.T) {
	ing := []IngredientPrice{{IngredientID: 1, BasePrice: 250, AdditionalPrice: 100}}
	base := UnitPrice(2000, ing, map[uint]int{1: 0})
	step := UnitPrice(2000, ing, map[uint]int{1: 1}) - base
	for qty := 1; qty <= 5; qty++ {
		got := UnitPrice(2000, ing, map[uint]int{1: qty})
		if got != base+int64(qty)*step {
			t.Fatalf("not linear at qty %d: got %d", qty, got)
		}
	}
}
