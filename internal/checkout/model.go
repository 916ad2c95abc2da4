package checkout

// Request is the checkout body. Any price a client sends is ignored because
// there is no field to decode it into.
type Request struct {
	Email string        `json:"email"`
	Items []RequestItem `json:"items"`
}

type RequestItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Result is either a redirect to the hosted payment page or a bare
// acknowledgement when payments are disabled.
type Result struct {
	URL     string `json:"url,omitempty"`
	OK      bool   `json:"ok,omitempty"`
	OrderID string `json:"orderId,omitempty"`
}
