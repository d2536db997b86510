package graph

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newGraphServer answers every query with the given data envelope and
// records the last document it received.
func newGraphServer(t *testing.T, data string, lastQuery *string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var req struct {
			Query string `json:"query"`
		}
		require.NoError(t, json.Unmarshal(body, &req))
		if lastQuery != nil {
			*lastQuery = req.Query
		}

		w.Write([]byte(`{"data":` + data + `}`))
	}))
}

func TestFetchCustomers(t *testing.T) {
	var query string
	server := newGraphServer(t, `{
		"customers": [
			{"id": "0xabc", "name": "alice", "email": "alice@example.com", "createdAt": "1700000000"}
		]
	}`, &query)
	defer server.Close()

	client := NewClient(server.URL)

	customers, err := client.FetchCustomers(context.Background(), 100, 0)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "0xabc", customers[0].ID)
	assert.Equal(t, "alice", customers[0].Name)
	assert.Equal(t, "alice@example.com", customers[0].Email)
	assert.Equal(t, int64(1700000000), customers[0].CreatedAt)

	assert.Contains(t, query, "customers(first: 100, skip: 0")
	assert.Contains(t, query, "orderDirection: desc")
}

func TestFetchRestaurants(t *testing.T) {
	server := newGraphServer(t, `{
		"restaurants": [
			{"id": "0xdef", "name": "pasta place", "metadataUri": "ipfs://menu", "active": true, "createdAt": "1700000001"}
		]
	}`, nil)
	defer server.Close()

	client := NewClient(server.URL)

	restaurants, err := client.FetchRestaurants(context.Background(), 50, 0)
	require.NoError(t, err)
	require.Len(t, restaurants, 1)
	assert.Equal(t, "pasta place", restaurants[0].Name)
	assert.Equal(t, "ipfs://menu", restaurants[0].MetadataURI)
	assert.True(t, restaurants[0].Active)
}

func TestFetchMenuItems(t *testing.T) {
	server := newGraphServer(t, `{
		"menuItems": [
			{"id": "1", "name": "margherita", "price": "12000000000000000000", "available": true, "restaurant": {"id": "0xdef"}, "createdAt": "1700000002"}
		]
	}`, nil)
	defer server.Close()

	client := NewClient(server.URL)

	items, err := client.FetchMenuItems(context.Background(), 100, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "12000000000000000000", items[0].PriceE18)
	assert.Equal(t, "0xdef", items[0].Restaurant.ID)
}

func TestFetchOrders(t *testing.T) {
	server := newGraphServer(t, `{
		"orders": [
			{"id": "7", "status": "Confirmed", "paymentMethod": "FOOD_TOKEN", "slippageBps": "50",
			 "total": "24000000000000000000", "customer": {"id": "0xabc"}, "restaurant": {"id": "0xdef"},
			 "createdAt": "1700000003"}
		]
	}`, nil)
	defer server.Close()

	client := NewClient(server.URL)

	orders, err := client.FetchOrders(context.Background(), 100, 0)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Confirmed", orders[0].Status)
	assert.Equal(t, "FOOD_TOKEN", orders[0].Payment)
	assert.Equal(t, int64(50), orders[0].SlippageBps)
	assert.Equal(t, "0xabc", orders[0].Customer.ID)
}

func TestQueryErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": null, "errors": [{"message": "field does not exist"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.FetchCustomers(context.Background(), 100, 0)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "field does not exist")
}

func TestQueryNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.Meta(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "non-200")
}

func TestMeta(t *testing.T) {
	var query string
	server := newGraphServer(t, `{"_meta": {"block": {"number": 12345}}}`, &query)
	defer server.Close()

	client := NewClient(server.URL)

	assert.NoError(t, client.Meta(context.Background()))
	assert.Contains(t, query, "_meta")
}
