// Package domain contains the core business entities for DocDeck.
// These types have no dependencies on adapters or external services.
package domain
