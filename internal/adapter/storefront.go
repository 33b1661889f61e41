package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/MKhiriev/go-storefront/models"
)

// Storefront API routes.
const (
	routeWaitlist = "/api/waitlist"
	routeProducts = "/api/products"
	routeHealth   = "/api/health"
)

type storefrontAPI struct {
	client *Client
}

// NewStorefrontAPI returns the typed endpoint set backed by client.
func NewStorefrontAPI(client *Client) StorefrontAPI {
	return &storefrontAPI{client: client}
}

func (s *storefrontAPI) SubmitWaitlist(ctx context.Context, entry models.WaitlistEntry) error {
	_, err := s.client.Post(ctx, routeWaitlist, entry, WithoutCache())
	return err
}

func (s *storefrontAPI) ListProducts(ctx context.Context, q models.ProductQuery) ([]models.Product, error) {
	opts := []RequestOption{
		WithQuery("category", q.Category),
		WithQuery("search", q.Search),
	}
	if q.Page > 0 {
		opts = append(opts, WithQuery("page", strconv.Itoa(q.Page)))
	}
	if q.Limit > 0 {
		opts = append(opts, WithQuery("limit", strconv.Itoa(q.Limit)))
	}

	resp, err := s.client.Get(ctx, routeProducts, nil, opts...)
	if err != nil {
		return nil, err
	}

	var products []models.Product
	if err := decodeData(resp, &products); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *storefrontAPI) GetProduct(ctx context.Context, id string) (models.Product, error) {
	resp, err := s.client.Get(ctx, routeProducts+"/"+url.PathEscape(id), nil)
	if err != nil {
		return models.Product{}, err
	}

	var product models.Product
	if err := decodeData(resp, &product); err != nil {
		return models.Product{}, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

func (s *storefrontAPI) Health(ctx context.Context) error {
	_, err := s.client.Get(ctx, routeHealth, nil, WithoutCache(), WithMaxAttempts(1))
	return err
}

// decodeData decodes the response body into v, unwrapping a
// {"success":..,"data":..} envelope when the server sends one.
func decodeData(resp *models.Response, v any) error {
	data := bytes.TrimSpace(resp.Data)
	if len(data) > 0 && data[0] == '{' {
		var envelope struct {
			Success *bool           `json:"success"`
			Data    json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(data, &envelope); err == nil && envelope.Success != nil {
			return (&models.Response{Data: envelope.Data}).Decode(v)
		}
	}
	return resp.Decode(v)
}
