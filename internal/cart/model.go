package cart

import "codespace-shop/internal/product"

// StorageKey is the fixed key every cart payload is stored under.
const StorageKey = "ecommerce-cart-v1"

// ProductSnapshot is the product as it looked when added. Its price is for
// display only; checkout re-prices from the catalog.
type ProductSnapshot struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"priceCents"`
	Image       string `json:"image"`
}

type Item struct {
	Product  ProductSnapshot `json:"product"`
	Quantity int             `json:"quantity"`
}

func (i Item) SubtotalCents() int64 {
	return i.Product.PriceCents * int64(i.Quantity)
}

func SnapshotOf(p *product.Product) ProductSnapshot {
	return ProductSnapshot{
		ID:          p.ID,
		Slug:        p.Slug,
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		Image:       p.Image,
	}
}
