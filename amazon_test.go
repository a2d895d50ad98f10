package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsASIN(t *testing.T) {
	valid := []string{
		"B0CJT9WCRD",
		"b0cjt9wcrd",
		"0123456789",
		"ABCDEFGHIJ",
		"  B0CJT9WCRD  ", // trimmed before checking
	}
	for _, input := range valid {
		assert.True(t, isASIN(input), "expected %q to be detected as an ASIN", input)
	}

	invalid := []string{
		"",
		"B0CJT9WCR",    // 9 chars
		"B0CJT9WCRDX",  // 11 chars
		"B0CJT9-CRD",   // punctuation
		"B0CJT9 CRD",   // inner space
		"wireless mouse",
		"èèèèèèèèèè", // 10 runes but not alphanumeric ASCII
	}
	for _, input := range invalid {
		assert.False(t, isASIN(input), "expected %q to be rejected", input)
	}
}
