package main

import (
	"context"
	"strings"
)

// isASIN reports whether the trimmed text looks like an Amazon item
// identifier: exactly 10 alphanumeric characters. No checksum exists for
// ASINs, so none is validated.
func isASIN(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) != 10 {
		return false
	}
	for _, r := range trimmed {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		default:
			return false
		}
	}
	return true
}

// resolveAmazonTitle looks the ASIN up on the regional Amazon marketplace and
// returns the product title. The empty string means the title could not be
// resolved; callers fall back to searching the ASIN text literally.
func resolveAmazonTitle(ctx context.Context, client *oxylabsClient, requestID, asin string, profile CountryProfile) string {
	payload := oxylabsPayload{
		Source: sourceAmazonProduct,
		Domain: profile.MarketplaceDomain,
		Query:  asin,
		Parse:  true,
	}

	data, err := client.call(ctx, requestID, payload)
	if err != nil {
		logMessage(LogLevelWarning, "[RequestID: %s] Amazon title lookup failed for %s: %v", requestID, asin, err)
		return ""
	}

	results := asSlice(data["results"])
	if len(results) == 0 {
		return ""
	}
	content := asMap(asMap(results[0])["content"])
	return asString(content["title"])
}
