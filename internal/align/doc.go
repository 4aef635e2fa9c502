// Package align transplants a behavior from one scorevideo log into another
// as a mark.
//
// A long observation is often recorded as several consecutive videos, each
// scored in its own log with times and frames counted from that video's
// start. To express a behavior from an earlier video relative to a later
// (destination) video, the offsets of every video boundary in between are
// accumulated:
//
//	frames = boundary(anchor log) - anchor.Frame
//	       + boundary(every later log in the chain)
//
// and the mark is inserted at -frames, because it precedes the destination's
// origin. Time is handled the same way.
//
// # Preconditions
//
// Logs in a chain must be consecutive and non-overlapping, and each log's
// boundary must be the instant the next log (or the destination, for the
// last one) begins. None of this is checked; a bad chain produces wrong
// offsets silently.
//
// # Matching
//
// Behaviors are matched with a regular expression anchored at the start of
// the description, so "Lights" matches "Lights On" but "On" does not. Only
// the first matching behavior of the first log with any match is used.
//
// CopyMark keeps the historical behavior of inserting a zero-offset mark when
// nothing matches. Use Resolve to inspect Alignment.Found, or CopyMarkStrict
// to get ErrBehaviorNotFound instead.
package align
