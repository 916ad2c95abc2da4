package product

import "time"

type Product struct {
	ID          string
	Slug        string
	Name        string
	Description string
	PriceCents  int64
	Image       string
	CreatedAt   time.Time
}

type NewProductInput struct {
	Slug        string
	Name        string
	Description string
	PriceCents  int64
	Image       string
}

// ProductResponse is the JSON shape served to storefront clients.
type ProductResponse struct {
	ID             string    `json:"id"`
	Slug           string    `json:"slug"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	PriceCents     int64     `json:"priceCents"`
	PriceFormatted string    `json:"priceFormatted"`
	Image          string    `json:"image"`
	CreatedAt      time.Time `json:"createdAt"`
}
