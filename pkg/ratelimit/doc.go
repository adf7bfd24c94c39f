// Package ratelimit implements fixed-window request limiting keyed by
// client network address.
//
// # Algorithm
//
// Each key owns a bucket holding a request count and a window start time.
// A check increments the count and allows the request while the count is
// at or under the limit. The counter resets only when the full window has
// elapsed since the window start; reset is time-based, never count-based.
//
// Each key is therefore in one of two states: within-budget
// (count < limit) or throttled (count >= limit), transitioning back to
// within-budget automatically on window expiry.
//
// # Thread safety
//
// The bucket map is guarded by a single mutex so the read-check-increment
// sequence is atomic per key; a concurrent burst from one key cannot admit
// more requests than the limit.
//
// State is process-local and in-memory, lost on restart, and not shared
// across instances. The Limiter interface exists so a shared store can be
// substituted for multi-instance deployments.
package ratelimit
