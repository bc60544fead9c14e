// Package entity defines the domain models for the symbollist feature.
package entity

// Symbol represents a tradable instrument offered by the dashboard.
type Symbol struct {
	Code   string // canonical instrument code (e.g., "EUR/USD")
	Name   string // human-readable name
	Market string // market classification (forex, index, metal, crypto)
}
