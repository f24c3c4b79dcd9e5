// Package driven defines the driven ports (secondary adapters) for DocDeck.
// Driven ports are interfaces the core depends on; adapters implement them.
package driven
