package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"codespace-shop/internal/checkout"
	"codespace-shop/internal/product"
)

var errProductNotFound = errors.New("product not found")

type apiClient struct {
	baseURL    string
	httpClient *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type apiError struct {
	Error string `json:"error"`
}

// statusError is a non-200 answer from the API.
type statusError struct {
	method  string
	path    string
	code    int
	message string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.method, e.path, e.code, e.message)
}

func (c *apiClient) listProducts(ctx context.Context) ([]product.ProductResponse, error) {
	var body struct {
		Products []product.ProductResponse `json:"products"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &body); err != nil {
		return nil, err
	}
	return body.Products, nil
}

func (c *apiClient) getProduct(ctx context.Context, slug string) (*product.Product, error) {
	var body struct {
		Product product.ProductResponse `json:"product"`
	}
	err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(slug), nil, &body)
	var se *statusError
	if errors.As(err, &se) && se.code == http.StatusNotFound {
		return nil, errProductNotFound
	}
	if err != nil {
		return nil, err
	}

	p := body.Product
	return &product.Product{
		ID:          p.ID,
		Slug:        p.Slug,
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		Image:       p.Image,
		CreatedAt:   p.CreatedAt,
	}, nil
}

func (c *apiClient) checkout(ctx context.Context, req checkout.Request) (*checkout.Result, error) {
	var res checkout.Result
	if err := c.do(ctx, http.MethodPost, "/api/checkout", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *apiClient) do(ctx context.Context, method, path string, in, out any) error {
	var body *bytes.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &statusError{method: method, path: path, code: resp.StatusCode, message: apiErr.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
