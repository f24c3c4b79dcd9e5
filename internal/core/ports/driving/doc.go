// Package driving defines the driving ports (primary interfaces) for
// DocDeck. The CLI and TUI adapters drive the core through these.
package driving
