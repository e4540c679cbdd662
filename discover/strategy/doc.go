// Package strategy implements the resolution strategies that propose
// document URL candidates for a domain.
//
// Each strategy is independent and failure-tolerant: errors are logged at
// the strategy boundary and surface only as an empty candidate slice.
// Defaults returns the strategies in the engine's fixed priority order.
//
// The per-type rule tables (paths, link patterns, phrases) are data, not
// code; tuning them never touches a strategy implementation.
package strategy
