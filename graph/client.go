// Package graph implements the blockchain indexer client. The indexer
// exposes its materialized views over GraphQL; queries here request one
// page at a time with first/skip, newest entities first.
package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sljivkov/foodsync/domain"
)

// Client posts query documents to one subgraph endpoint.
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient creates a Client for the given subgraph endpoint.
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type gqlRequest struct {
	Query string `json:"query"`
}

type gqlError struct {
	Message string `json:"message"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

// query posts one document and decodes the data envelope into out.
func (c *Client) query(ctx context.Context, document string, out any) error {
	body, err := json.Marshal(gqlRequest{Query: document})
	if err != nil {
		return fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to query indexer: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("indexer returned non-200 status: %d", resp.StatusCode)
	}

	var envelope gqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if len(envelope.Errors) > 0 {
		return fmt.Errorf("indexer error: %s", envelope.Errors[0].Message)
	}

	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("failed to decode data: %w", err)
		}
	}

	return nil
}

// FetchCustomers returns one page of customer snapshots.
func (c *Client) FetchCustomers(ctx context.Context, first, skip int) ([]domain.RemoteCustomer, error) {
	document := fmt.Sprintf(`{
		customers(first: %d, skip: %d, orderBy: createdAt, orderDirection: desc) {
			id
			name
			email
			createdAt
		}
	}`, first, skip)

	var data struct {
		Customers []domain.RemoteCustomer `json:"customers"`
	}
	if err := c.query(ctx, document, &data); err != nil {
		return nil, err
	}

	return data.Customers, nil
}

// FetchRestaurants returns one page of restaurant snapshots.
func (c *Client) FetchRestaurants(ctx context.Context, first, skip int) ([]domain.RemoteRestaurant, error) {
	document := fmt.Sprintf(`{
		restaurants(first: %d, skip: %d, orderBy: createdAt, orderDirection: desc) {
			id
			name
			metadataUri
			active
			createdAt
		}
	}`, first, skip)

	var data struct {
		Restaurants []domain.RemoteRestaurant `json:"restaurants"`
	}
	if err := c.query(ctx, document, &data); err != nil {
		return nil, err
	}

	return data.Restaurants, nil
}

// FetchMenuItems returns one page of menu-item snapshots with the
// owning restaurant's natural key.
func (c *Client) FetchMenuItems(ctx context.Context, first, skip int) ([]domain.RemoteMenuItem, error) {
	document := fmt.Sprintf(`{
		menuItems(first: %d, skip: %d, orderBy: createdAt, orderDirection: desc) {
			id
			name
			price
			available
			restaurant { id }
			createdAt
		}
	}`, first, skip)

	var data struct {
		MenuItems []domain.RemoteMenuItem `json:"menuItems"`
	}
	if err := c.query(ctx, document, &data); err != nil {
		return nil, err
	}

	return data.MenuItems, nil
}

// FetchOrders returns one page of order snapshots with the customer and
// restaurant natural keys.
func (c *Client) FetchOrders(ctx context.Context, first, skip int) ([]domain.RemoteOrder, error) {
	document := fmt.Sprintf(`{
		orders(first: %d, skip: %d, orderBy: createdAt, orderDirection: desc) {
			id
			status
			paymentMethod
			slippageBps
			total
			customer { id }
			restaurant { id }
			createdAt
		}
	}`, first, skip)

	var data struct {
		Orders []domain.RemoteOrder `json:"orders"`
	}
	if err := c.query(ctx, document, &data); err != nil {
		return nil, err
	}

	return data.Orders, nil
}

// Meta performs a minimal health query. It does not inspect the
// indexing lag, only that the indexer answers.
func (c *Client) Meta(ctx context.Context) error {
	return c.query(ctx, `{ _meta { block { number } } }`, nil)
}
