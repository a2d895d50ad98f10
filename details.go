package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Offer is one merchant listing from the per-product source.
type Offer struct {
	Seller    string  `json:"seller,omitempty"`
	Price     float64 `json:"price,omitempty"`
	Currency  string  `json:"currency,omitempty"`
	DirectURL string  `json:"url,omitempty"`
	Condition string  `json:"condition,omitempty"`
}

// ProductDetails is the reshaped answer of the per-product source.
type ProductDetails struct {
	Title          string   `json:"title,omitempty"`
	Description    string   `json:"description,omitempty"`
	Rating         float64  `json:"rating,omitempty"`
	ReviewCount    int      `json:"reviews_count,omitempty"`
	Offers         []Offer  `json:"merchant_offers"`
	Specifications []string `json:"specifications,omitempty"`
}

// fetchProductDetails resolves an opaque result token against the per-product
// source. The token internals are passed through untouched.
func fetchProductDetails(ctx context.Context, client *oxylabsClient, requestID, token string, profile CountryProfile) (*ProductDetails, error) {
	payload := oxylabsPayload{
		Source:      sourceGoogleShoppingProduct,
		Domain:      profile.SearchDomain,
		Query:       token,
		Parse:       true,
		GeoLocation: profile.GeoLocation,
		Locale:      profile.Locale,
	}

	data, err := client.call(ctx, requestID, payload)
	if err != nil {
		return nil, err
	}

	results := asSlice(data["results"])
	if len(results) == 0 {
		return nil, fmt.Errorf("empty results for token")
	}
	content := asMap(asMap(results[0])["content"])
	if content == nil {
		return nil, fmt.Errorf("missing content for token")
	}

	details := &ProductDetails{
		Title:       asString(content["title"]),
		Description: asString(content["description"]),
		ReviewCount: asInt(content["reviews_count"]),
		Offers:      extractOffers(content),
	}
	if rating, ok := asFloat(content["rating"]); ok {
		details.Rating = rating
	}
	for _, section := range asSlice(content["specifications"]) {
		for _, item := range asSlice(asMap(section)["items"]) {
			entry := asMap(item)
			title := asString(entry["title"])
			value := asString(entry["value"])
			if title == "" && value == "" {
				continue
			}
			details.Specifications = append(details.Specifications, strings.TrimSpace(title+": "+value))
		}
	}
	return details, nil
}

// extractOffers reads merchant offers from content.pricing.online.
func extractOffers(content map[string]interface{}) []Offer {
	offers := []Offer{}
	pricing := asMap(content["pricing"])
	for _, entry := range asSlice(pricing["online"]) {
		item := asMap(entry)
		if len(item) == 0 {
			continue
		}
		offer := Offer{
			Seller:    asString(item["seller"]),
			Currency:  asString(item["currency"]),
			DirectURL: asString(item["seller_link"]),
			Condition: asString(item["condition"]),
		}
		if offer.DirectURL == "" {
			offer.DirectURL = asString(item["url"])
		}
		if price, ok := asFloat(item["price"]); ok {
			offer.Price = price
		}
		if offer.Seller == "" && offer.Price == 0 {
			continue
		}
		offers = append(offers, offer)
	}
	return offers
}

// fanOutDetails fills merchant offers for up to maxProducts records that
// carry a detail token. Calls run sequentially with a fixed inter-call delay
// on top of the shared limiter; one item failing leaves its offers null and
// never fails the batch. The returned slice lists the records that were
// enriched.
func fanOutDetails(ctx context.Context, client *oxylabsClient, requestID string, records []ProductRecord, profile CountryProfile, maxProducts int, delay time.Duration) []ProductRecord {
	detailed := []ProductRecord{}
	for i := range records {
		if len(detailed) >= maxProducts {
			break
		}
		if records[i].DetailToken == "" {
			continue
		}

		if len(detailed) > 0 && delay > 0 {
			select {
			case <-ctx.Done():
				return detailed
			case <-time.After(delay):
			}
		}

		details, err := fetchProductDetails(ctx, client, requestID, records[i].DetailToken, profile)
		if err != nil {
			logMessage(LogLevelWarning, "[RequestID: %s] Detail fetch failed for token %s: %v", requestID, records[i].DetailToken, err)
			continue
		}
		records[i].Offers = details.Offers
		detailed = append(detailed, records[i])
	}
	return detailed
}

// productIDPayload is the JSON blob carried inside a base64 product id.
type productIDPayload struct {
	Query   string `json:"query"`
	Country string `json:"country"`
}

// decodeProductID decodes a base64 product id into its query payload. Both
// standard and URL-safe encodings are accepted; callers historically sent
// either.
func decodeProductID(id string) (productIDPayload, error) {
	var payload productIDPayload

	raw, err := base64.StdEncoding.DecodeString(id)
	if err != nil {
		raw, err = base64.URLEncoding.DecodeString(id)
	}
	if err != nil {
		raw, err = base64.RawURLEncoding.DecodeString(id)
	}
	if err != nil {
		return payload, fmt.Errorf("invalid base64 product id: %w", err)
	}

	if err := json.Unmarshal(raw, &payload); err != nil {
		return payload, fmt.Errorf("invalid product id payload: %w", err)
	}
	if strings.TrimSpace(payload.Query) == "" {
		return payload, fmt.Errorf("product id payload missing query")
	}
	return payload, nil
}
