package catalog

// DefaultProducts returns the built-in drink menu used when no catalog file
// is configured.
func DefaultProducts() []Product {
	milkAndSweet := []Option{
		{ID: "extra-shot", Name: "Extra Shot", PriceDelta: 75},
		{ID: "oat-milk", Name: "Oat Milk", PriceDelta: 60},
		{ID: "almond-milk", Name: "Almond Milk", PriceDelta: 60},
		{ID: "vanilla-syrup", Name: "Vanilla Syrup", PriceDelta: 50},
		{ID: "whip", Name: "Whipped Cream", PriceDelta: 50},
		{ID: "no-whip", Name: "No Whip", PriceDelta: -25},
		{ID: "decaf", Name: "Decaf", PriceDelta: 0},
	}
	return []Product{
		{ID: "latte", Name: "Latte", BasePrice: 400, Options: milkAndSweet},
		{ID: "iced-latte", Name: "Iced Latte", BasePrice: 425, Options: milkAndSweet},
		{ID: "coffee", Name: "Coffee", BasePrice: 250, Options: []Option{
			{ID: "extra-shot", Name: "Extra Shot", PriceDelta: 75},
			{ID: "room-for-cream", Name: "Room for Cream", PriceDelta: 0},
			{ID: "decaf", Name: "Decaf", PriceDelta: 0},
		}},
		{ID: "matcha-latte", Name: "Matcha Latte", BasePrice: 475, Options: []Option{
			{ID: "oat-milk", Name: "Oat Milk", PriceDelta: 60},
			{ID: "almond-milk", Name: "Almond Milk", PriceDelta: 60},
			{ID: "vanilla-syrup", Name: "Vanilla Syrup", PriceDelta: 50},
		}},
		{ID: "espresso", Name: "Espresso", BasePrice: 300, Options: []Option{
			{ID: "extra-shot", Name: "Extra Shot", PriceDelta: 75},
			{ID: "decaf", Name: "Decaf", PriceDelta: 0},
		}},
		{ID: "water", Name: "Water", BasePrice: 150, Options: nil},
	}
}
