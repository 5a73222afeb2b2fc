// Package builtin provides reference plugins compiled into the harness.
// They are addressed as "builtin:<name>" and are used to check the harness
// itself: a passthrough must null against its input, a gain must change
// levels by a known amount and a delay must be found by latency detection.
package builtin
