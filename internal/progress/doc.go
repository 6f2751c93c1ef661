// Package progress aggregates transfer results into running counters and
// renders a periodic status line.
//
// All workers funnel their terminal results through Observe, which is the
// single point of serialized mutation; the display loop only ever reads
// snapshots.
package progress
