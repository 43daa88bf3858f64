package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/naveenspark/campusnest/pkg/domain"
)

// ListProperties searches listings with filters, one page at a time.
func (c *Client) ListProperties(ctx context.Context, f domain.PropertyFilters, page, limit int) (*Page[domain.Property], error) {
	params := filterParams(f)
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))

	var props []domain.Property
	p, err := c.getPage(ctx, "/api/properties?"+params.Encode(), &props)
	if err != nil {
		return nil, fmt.Errorf("client.ListProperties: %w", err)
	}
	return &Page[domain.Property]{Items: props, Pagination: p}, nil
}

// RecentProperties returns the most recently listed properties.
func (c *Client) RecentProperties(ctx context.Context, limit int) ([]domain.Property, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	var props []domain.Property
	if err := c.get(ctx, "/api/properties/recent?"+params.Encode(), &props); err != nil {
		return nil, fmt.Errorf("client.RecentProperties: %w", err)
	}
	return props, nil
}

// GetProperty fetches a single property by ID.
func (c *Client) GetProperty(ctx context.Context, id string) (*domain.Property, error) {
	var p domain.Property
	if err := c.get(ctx, "/api/properties/"+url.PathEscape(id), &p); err != nil {
		return nil, fmt.Errorf("client.GetProperty: %w", err)
	}
	return &p, nil
}

func filterParams(f domain.PropertyFilters) url.Values {
	params := url.Values{}
	if f.Search != "" {
		params.Set("search", f.Search)
	}
	if f.City != "" {
		params.Set("city", f.City)
	}
	if f.University != "" {
		params.Set("university", f.University)
	}
	if f.PropertyType != "" {
		params.Set("propertyType", f.PropertyType)
	}
	if f.MinPrice > 0 {
		params.Set("minPrice", strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice > 0 {
		params.Set("maxPrice", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	}
	if f.Bedrooms > 0 {
		params.Set("bedrooms", strconv.Itoa(f.Bedrooms))
	}
	if len(f.Amenities) > 0 {
		params.Set("amenities", strings.Join(f.Amenities, ","))
	}
	if f.Sort != "" {
		params.Set("sort", f.Sort)
	}
	return params
}
