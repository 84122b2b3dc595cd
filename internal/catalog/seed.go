package catalog

import "github.com/alebedeva/cardforge/internal/domain"

// Seed loads the starter designs used when no admin has populated the
// catalog yet.
func (c *Catalog) Seed() {
	for _, card := range seedCards {
		c.Insert(card)
	}
}

var seedCards = []domain.Card{
	{
		ID:         "bday-balloons",
		Title:      "Birthday Balloons",
		PriceMinor: 499,
		ImageURL:   "/images/bday-balloons-front.jpg",
		Occasion:   "birthday",
		Zones: []domain.TextZone{
			{Name: "front", Placeholder: "Write your message", MaxLength: 40, FontFamily: "Caveat", TextColor: "#1f2a44", Align: "center", Customizable: true},
			{Name: "inside", Placeholder: "Add a personal note", MaxLength: 300, FontFamily: "Lora", TextColor: "#333333", Align: "left", Customizable: true},
		},
	},
	{
		ID:         "wedding-gold",
		Title:      "Golden Rings",
		PriceMinor: 799,
		ImageURL:   "/images/wedding-gold-front.jpg",
		Occasion:   "wedding",
		Zones: []domain.TextZone{
			{Name: "front", Placeholder: "To the happy couple", MaxLength: 30, FontFamily: "Playfair Display", TextColor: "#8a6d1d", Align: "center", Customizable: true},
			{Name: "inside", Placeholder: "Your wishes here", MaxLength: 300, FontFamily: "Lora", TextColor: "#333333", Align: "left", Customizable: true},
		},
	},
	{
		ID:         "thanks-floral",
		Title:      "Floral Thank You",
		PriceMinor: 449,
		ImageURL:   "/images/thanks-floral-front.jpg",
		Occasion:   "thank-you",
		Zones: []domain.TextZone{
			{Name: "front", Placeholder: "Thank you", MaxLength: 24, FontFamily: "Caveat", TextColor: "#355e3b", Align: "center", Customizable: false},
			{Name: "inside", Placeholder: "Say what it meant to you", MaxLength: 300, FontFamily: "Lora", TextColor: "#333333", Align: "left", Customizable: true},
		},
	},
	{
		ID:         "holiday-snow",
		Title:      "Snowy Evening",
		PriceMinor: 549,
		ImageURL:   "/images/holiday-snow-front.jpg",
		Occasion:   "holiday",
		Zones: []domain.TextZone{
			{Name: "front", Placeholder: "Season's Greetings", MaxLength: 30, FontFamily: "Playfair Display", TextColor: "#274472", Align: "center", Customizable: true},
			{Name: "inside", Placeholder: "Warm wishes for the new year", MaxLength: 300, FontFamily: "Lora", TextColor: "#333333", Align: "left", Customizable: true},
		},
	},
}
