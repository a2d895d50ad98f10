package main

import (
	"sort"
	"strings"
)

// CountryProfile holds the marketplace parameters used when talking to the
// scraping API. SearchDomain is the Google TLD, MarketplaceDomain the Amazon
// one; they coincide for most regions but are kept separate because the two
// upstream sources are addressed independently.
type CountryProfile struct {
	Key               string `json:"key"`
	SearchDomain      string `json:"google_domain"`
	MarketplaceDomain string `json:"amazon_domain"`
	GeoLocation       string `json:"geo_location"`
	Locale            string `json:"locale"`
	Currency          string `json:"currency"`
}

// countryProfiles is loaded at process start and read-only afterwards. Keys
// are normalized country names (lowercased, spaces as underscores).
var countryProfiles = map[string]CountryProfile{
	"united_states":  {Key: "united_states", SearchDomain: "com", MarketplaceDomain: "com", GeoLocation: "United States", Locale: "en-us", Currency: "USD"},
	"united_kingdom": {Key: "united_kingdom", SearchDomain: "co.uk", MarketplaceDomain: "co.uk", GeoLocation: "United Kingdom", Locale: "en-gb", Currency: "GBP"},
	"canada":         {Key: "canada", SearchDomain: "ca", MarketplaceDomain: "ca", GeoLocation: "Canada", Locale: "en-ca", Currency: "CAD"},
	"australia":      {Key: "australia", SearchDomain: "com.au", MarketplaceDomain: "com.au", GeoLocation: "Australia", Locale: "en-au", Currency: "AUD"},
	"germany":        {Key: "germany", SearchDomain: "de", MarketplaceDomain: "de", GeoLocation: "Germany", Locale: "de-de", Currency: "EUR"},
	"france":         {Key: "france", SearchDomain: "fr", MarketplaceDomain: "fr", GeoLocation: "France", Locale: "fr-fr", Currency: "EUR"},
	"italy":          {Key: "italy", SearchDomain: "it", MarketplaceDomain: "it", GeoLocation: "Italy", Locale: "it-it", Currency: "EUR"},
	"spain":          {Key: "spain", SearchDomain: "es", MarketplaceDomain: "es", GeoLocation: "Spain", Locale: "es-es", Currency: "EUR"},
	"nigeria":        {Key: "nigeria", SearchDomain: "com.ng", MarketplaceDomain: "com", GeoLocation: "Nigeria", Locale: "en-ng", Currency: "NGN"},
	"india":          {Key: "india", SearchDomain: "co.in", MarketplaceDomain: "in", GeoLocation: "India", Locale: "en-in", Currency: "INR"},
	"japan":          {Key: "japan", SearchDomain: "co.jp", MarketplaceDomain: "co.jp", GeoLocation: "Japan", Locale: "ja-jp", Currency: "JPY"},
	"mexico":         {Key: "mexico", SearchDomain: "com.mx", MarketplaceDomain: "com.mx", GeoLocation: "Mexico", Locale: "es-mx", Currency: "MXN"},
}

// normalizeCountryKey lowercases and collapses spaces to underscores so that
// "United States" and "united_states" address the same profile.
func normalizeCountryKey(country string) string {
	normalized := strings.ToLower(strings.TrimSpace(country))
	normalized = strings.Join(strings.Fields(normalized), "_")
	return normalized
}

// profileFor returns the configuration for the given country name.
func profileFor(country string) (CountryProfile, bool) {
	profile, ok := countryProfiles[normalizeCountryKey(country)]
	return profile, ok
}

// supportedCountries returns the sorted list of valid country keys.
func supportedCountries() []string {
	keys := make([]string, 0, len(countryProfiles))
	for key := range countryProfiles {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
