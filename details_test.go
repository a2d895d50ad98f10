package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func detailResponse(token string) map[string]interface{} {
	return map[string]interface{}{
		"results": []interface{}{
			map[string]interface{}{
				"content": map[string]interface{}{
					"title": "Product for " + token,
					"pricing": map[string]interface{}{
						"online": []interface{}{
							map[string]interface{}{"seller": "ShopA", "price": 19.99, "currency": "USD", "seller_link": "https://shopa.example/p"},
							map[string]interface{}{"seller": "ShopB", "price": 21.5, "currency": "USD", "condition": "new"},
							map[string]interface{}{}, // dropped: neither seller nor price
						},
					},
				},
			},
		},
	}
}

// detailStub answers every per-product query with offers derived from the
// requested token; failTokens answer 500 instead.
func detailStub(t *testing.T, failTokens map[string]bool) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload oxylabsPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, sourceGoogleShoppingProduct, payload.Source)
		if failTokens[payload.Query] {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(detailResponse(payload.Query))
	}))
}

func TestFetchProductDetails(t *testing.T) {
	server := detailStub(t, nil)
	defer server.Close()

	client := newOxylabsClient(testClientConfig(server.URL))
	details, err := fetchProductDetails(context.Background(), client, "test", "tok-1", countryProfiles["united_states"])

	require.NoError(t, err)
	assert.Equal(t, "Product for tok-1", details.Title)
	require.Len(t, details.Offers, 2)
	assert.Equal(t, "ShopA", details.Offers[0].Seller)
	assert.Equal(t, 19.99, details.Offers[0].Price)
	assert.Equal(t, "https://shopa.example/p", details.Offers[0].DirectURL)
	assert.Equal(t, "new", details.Offers[1].Condition)
}

func TestFanOutDetailsIsolatesFailures(t *testing.T) {
	server := detailStub(t, map[string]bool{"tok-2": true})
	defer server.Close()

	client := newOxylabsClient(testClientConfig(server.URL))
	records := []ProductRecord{
		{Title: "A", DetailToken: "tok-1", ListingKind: listingOrganic},
		{Title: "B", DetailToken: "tok-2", ListingKind: listingOrganic},
		{Title: "C", ListingKind: listingOrganic}, // no token, skipped
		{Title: "D", DetailToken: "tok-3", ListingKind: listingPaid},
	}

	detailed := fanOutDetails(context.Background(), client, "test", records, countryProfiles["united_states"], 10, 0)

	require.Len(t, detailed, 2)
	assert.Equal(t, "A", detailed[0].Title)
	assert.Equal(t, "D", detailed[1].Title)

	// The failed and the token-less records keep nil offers.
	assert.NotEmpty(t, records[0].Offers)
	assert.Nil(t, records[1].Offers)
	assert.Nil(t, records[2].Offers)
	assert.NotEmpty(t, records[3].Offers)
}

func TestFanOutDetailsRespectsMaxProducts(t *testing.T) {
	server := detailStub(t, nil)
	defer server.Close()

	client := newOxylabsClient(testClientConfig(server.URL))
	records := []ProductRecord{
		{Title: "A", DetailToken: "tok-1"},
		{Title: "B", DetailToken: "tok-2"},
		{Title: "C", DetailToken: "tok-3"},
	}

	detailed := fanOutDetails(context.Background(), client, "test", records, countryProfiles["united_states"], 2, 0)
	assert.Len(t, detailed, 2)
	assert.Nil(t, records[2].Offers)
}

func TestFanOutDetailsIdempotent(t *testing.T) {
	server := detailStub(t, nil)
	defer server.Close()

	client := newOxylabsClient(testClientConfig(server.URL))
	records := []ProductRecord{
		{Title: "A", DetailToken: "tok-1"},
		{Title: "B", DetailToken: "tok-2"},
	}

	first := fanOutDetails(context.Background(), client, "test", records, countryProfiles["united_states"], 10, 0)
	snapshot := make([][]Offer, len(records))
	for i, record := range records {
		snapshot[i] = record.Offers
	}

	second := fanOutDetails(context.Background(), client, "test", records, countryProfiles["united_states"], 10, 0)
	require.Equal(t, len(first), len(second))
	for i, record := range records {
		assert.Equal(t, snapshot[i], record.Offers)
	}
}

func TestDecodeProductID(t *testing.T) {
	blob := []byte(`{"query":"wireless mouse","country":"canada"}`)

	payload, err := decodeProductID(base64.StdEncoding.EncodeToString(blob))
	require.NoError(t, err)
	assert.Equal(t, "wireless mouse", payload.Query)
	assert.Equal(t, "canada", payload.Country)

	payload, err = decodeProductID(base64.URLEncoding.EncodeToString(blob))
	require.NoError(t, err)
	assert.Equal(t, "wireless mouse", payload.Query)

	payload, err = decodeProductID(base64.RawURLEncoding.EncodeToString(blob))
	require.NoError(t, err)
	assert.Equal(t, "wireless mouse", payload.Query)
}

func TestDecodeProductIDErrors(t *testing.T) {
	_, err := decodeProductID("!!!not-base64!!!")
	assert.Error(t, err)

	_, err = decodeProductID(base64.StdEncoding.EncodeToString([]byte("plain text")))
	assert.Error(t, err)

	_, err = decodeProductID(base64.StdEncoding.EncodeToString([]byte(`{"country":"canada"}`)))
	assert.Error(t, err)
}
