// Package discover implements the policy document discovery engine.
//
// The discover package provides:
// - The Candidate and DiscoveredDocument result models
// - The Engine orchestrating resolution strategies in priority order
// - The early-stop confidence policy and candidate aggregation
// - The deep link scanner refining hub-page results
// - Engine-level configuration and error codes
package discover
