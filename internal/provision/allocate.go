package provision

import "fmt"

// Allocator formats sequential natural identifiers: a fixed prefix followed
// by a zero-padded sequence number (STF001, ADM0042). It never touches the
// store; the caller fetches the current maximum immediately before the batch
// write and tolerates collisions if a concurrent import raced it.
type Allocator struct {
	Prefix string
	Width  int
}

// Allocate returns count identifiers strictly greater than maxSequence, in
// increasing order with no gaps. Pure: the same inputs always yield the same
// sequence.
func (a Allocator) Allocate(maxSequence, count int) []string {
	ids := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		ids = append(ids, a.Format(maxSequence+i))
	}
	return ids
}

// Format renders one sequence number. Sequences wider than the configured
// width keep all their digits rather than truncating.
func (a Allocator) Format(sequence int) string {
	return fmt.Sprintf("%s%0*d", a.Prefix, a.Width, sequence)
}
