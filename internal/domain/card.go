package domain

import "time"

// TextZone describes one customizable text area on a card face.
type TextZone struct {
	Name         string `json:"name"`
	Placeholder  string `json:"placeholder"`
	MaxLength    int    `json:"max_length"`
	FontFamily   string `json:"font_family"`
	TextColor    string `json:"text_color"`
	Align        string `json:"align"`
	Customizable bool   `json:"customizable"`
}

type Card struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	PriceMinor     int64      `json:"price_minor"`
	ImageURL       string     `json:"image_url"`
	InsideImageURL string     `json:"inside_image_url,omitempty"`
	Occasion       string     `json:"occasion,omitempty"`
	Zones          []TextZone `json:"zones"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Zone returns the named zone, or nil if the card has no such zone.
func (c *Card) Zone(name string) *TextZone {
	for i := range c.Zones {
		if c.Zones[i].Name == name {
			return &c.Zones[i]
		}
	}
	return nil
}
