// Package templates holds the dashboard page served over web4.
package templates

import (
	_ "embed"
	"strings"
)

const (
	PricesPlaceholder     = "%PRICES%"
	ValidatorsPlaceholder = "%VALIDATORS%"
)

//go:embed index.html
var indexHTML string

// Index returns the raw page with both placeholders in place.
func Index() string {
	return indexHTML
}

// RenderIndex substitutes the row fragments into the page. Fragments are inserted verbatim.
func RenderIndex(prices, validators string) string {
	return strings.NewReplacer(
		PricesPlaceholder, prices,
		ValidatorsPlaceholder, validators,
	).Replace(indexHTML)
}
