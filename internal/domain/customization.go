package domain

// Customization is a sparse record of the text/style choices a shopper made
// for one card. Empty fields mean "keep the card's default".
type Customization struct {
	FrontText  string `json:"front_text,omitempty"`
	InsideText string `json:"inside_text,omitempty"`
	FontFamily string `json:"font_family,omitempty"`
	FontSize   int    `json:"font_size,omitempty"`
	TextColor  string `json:"text_color,omitempty"`
}

// PlaceholderCustomization builds the initial editing state from the card's
// zone templates: front/inside placeholders plus the front zone's styling.
func PlaceholderCustomization(card *Card) Customization {
	var c Customization
	if z := card.Zone("front"); z != nil {
		c.FrontText = z.Placeholder
		c.FontFamily = z.FontFamily
		c.TextColor = z.TextColor
	}
	if z := card.Zone("inside"); z != nil {
		c.InsideText = z.Placeholder
	}
	return c
}
