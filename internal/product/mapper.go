package product

import "codespace-shop/internal/money"

// ToResponse renders the display price in the store currency.
func ToResponse(p *Product, currency string) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		Slug:           p.Slug,
		Name:           p.Name,
		Description:    p.Description,
		PriceCents:     p.PriceCents,
		PriceFormatted: money.FormatCentsIn(p.PriceCents, currency),
		Image:          p.Image,
		CreatedAt:      p.CreatedAt,
	}
}

func ToResponses(products []*Product, currency string) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ToResponse(p, currency))
	}
	return out
}

// IndexByID keys products by id for line-item resolution.
func IndexByID(products []*Product) map[string]*Product {
	byID := make(map[string]*Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID
}
