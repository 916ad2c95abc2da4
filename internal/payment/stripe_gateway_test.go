package payment

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/stripe/stripe-go/v82"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockRoundTripper func(req *http.Request) (*http.Response, error)

func (f MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

func sessionParams() SessionParams {
	return SessionParams{
		OrderID:       "order-123",
		CustomerEmail: "buyer@example.com",
		Currency:      "USD",
		SuccessURL:    "https://shop.example.com/checkout/success",
		CancelURL:     "https://shop.example.com/cart",
		LineItems: []LineItem{
			{Name: "Classic Tee", UnitAmountCents: 2500, Quantity: 2},
			{Name: "Hoodie", UnitAmountCents: 5500, Quantity: 1},
		},
	}
}

func TestNewStripeGateway(t *testing.T) {
	assert.Nil(t, NewStripeGateway(""))
	assert.NotNil(t, NewStripeGateway("sk_test"))
}

func TestStripeGateway_CreateCheckoutSession(t *testing.T) {
	gw := newStripeGateway("sk_test_secret")

	t.Run("Success", func(t *testing.T) {
		gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, http.MethodPost, req.Method)
			assert.Equal(t, "https://api.stripe.com/v1/checkout/sessions", req.URL.String())
			assert.Equal(t, "Bearer sk_test_secret", req.Header.Get("Authorization"))
			assert.Equal(t, stripe.APIVersion, req.Header.Get("Stripe-Version"))
			assert.Equal(t, "application/x-www-form-urlencoded", req.Header.Get("Content-Type"))

			raw, err := io.ReadAll(req.Body)
			require.NoError(t, err)
			form, err := url.ParseQuery(string(raw))
			require.NoError(t, err)

			assert.Equal(t, "payment", form.Get("mode"))
			assert.Equal(t, "buyer@example.com", form.Get("customer_email"))
			assert.Equal(t, "order-123", form.Get("metadata[orderId]"))
			assert.Equal(t, "usd", form.Get("line_items[0][price_data][currency]"))
			assert.Equal(t, "Classic Tee", form.Get("line_items[0][price_data][product_data][name]"))
			assert.Equal(t, "2500", form.Get("line_items[0][price_data][unit_amount]"))
			assert.Equal(t, "2", form.Get("line_items[0][quantity]"))
			assert.Equal(t, "5500", form.Get("line_items[1][price_data][unit_amount]"))
			assert.Equal(t, "https://shop.example.com/cart", form.Get("cancel_url"))
			assert.Equal(t, "order-123", form.Get("client_reference_id"))

			return jsonResponse(http.StatusOK, `{"id":"cs_test_1","url":"https://checkout.stripe.com/c/pay/cs_test_1"}`), nil
		})

		s, err := gw.CreateCheckoutSession(context.Background(), sessionParams())
		require.NoError(t, err)
		assert.Equal(t, "cs_test_1", s.ID)
		assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", s.URL)
	})

	t.Run("APIError", func(t *testing.T) {
		gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusBadRequest, `{"error":{"type":"invalid_request_error","message":"bad email"}}`), nil
		})

		_, err := gw.CreateCheckoutSession(context.Background(), sessionParams())
		assert.ErrorIs(t, err, ErrProviderError)
		assert.Contains(t, err.Error(), "bad email")
	})

	t.Run("NetworkErrorIsNotRetried", func(t *testing.T) {
		calls := 0
		gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) (*http.Response, error) {
			calls++
			return nil, errors.New("connection refused")
		})

		_, err := gw.CreateCheckoutSession(context.Background(), sessionParams())
		assert.ErrorContains(t, err, "connection refused")
		assert.Equal(t, 1, calls)
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `{invalid`), nil
		})

		_, err := gw.CreateCheckoutSession(context.Background(), sessionParams())
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrProviderError)
	})

	t.Run("MissingURL", func(t *testing.T) {
		gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `{"id":"cs_test_2"}`), nil
		})

		_, err := gw.CreateCheckoutSession(context.Background(), sessionParams())
		assert.ErrorIs(t, err, ErrMissingURL)
	})

	t.Run("NoLineItems", func(t *testing.T) {
		p := sessionParams()
		p.LineItems = nil

		_, err := gw.CreateCheckoutSession(context.Background(), p)
		assert.ErrorIs(t, err, ErrNoLineItems)
	})
}
