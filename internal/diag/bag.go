package diag

import (
	"fmt"
	"sort"

	"fortio.org/safecast"
)

// Bag holds a capacity-limited collection of diagnostics (§4.9). A
// diagnostics bag has no Lark-specific behavior to adapt — accumulate,
// cap, sort, dedup — so this stays close to the teacher's algorithm;
// the two diverge only in naming and comment style.
type Bag struct {
	items   []*Diagnostic
	maximum uint16
}

// NewBag creates a Bag that accepts at most maximum diagnostics.
func NewBag(maximum int) *Bag {
	cap16, err := safecast.Conv[uint16](maximum)
	if err != nil {
		panic(fmt.Errorf("diag: bag maximum overflow: %w", err))
	}
	return &Bag{
		items:   make([]*Diagnostic, 0, cap16),
		maximum: cap16,
	}
}

// Add appends d unless the bag is already at capacity. Returns false if
// d was dropped.
func (b *Bag) Add(d *Diagnostic) bool {
	if d == nil || len(b.items) >= int(b.maximum) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Cap returns the bag's capacity.
func (b *Bag) Cap() uint16 { return b.maximum }

// HasErrors reports whether any diagnostic is error severity or above.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any diagnostic is warning severity or above.
func (b *Bag) HasWarnings() bool {
	for _, d := range b.items {
		if d.Severity >= SevWarning {
			return true
		}
	}
	return false
}

// Len returns the number of diagnostics currently held.
func (b *Bag) Len() int { return len(b.items) }

// Items returns the bag's diagnostics. The slice aliases the bag's
// internal storage and must not be mutated by the caller.
func (b *Bag) Items() []*Diagnostic { return b.items }

// Merge appends another bag's diagnostics, growing capacity if needed.
func (b *Bag) Merge(other *Bag) {
	total, err := safecast.Conv[uint16](len(b.items) + len(other.items))
	if err != nil {
		panic(fmt.Errorf("diag: bag merge overflow: %w", err))
	}
	if total > b.maximum {
		b.maximum = total
	}
	b.items = append(b.items, other.items...)
}

// Sort orders diagnostics by file, start, end, severity (descending),
// then code (ascending) — the stable, deterministic order required for
// the external interface (§6) and for golden-file tests.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code.String() < dj.Code.String()
	})
}

// Dedup removes diagnostics that share both Code and Primary span,
// keeping the first occurrence.
func (b *Bag) Dedup() {
	seen := make(map[string]bool, len(b.items))
	b.keepWhere(func(d *Diagnostic) bool {
		key := d.Code.String() + ":" + d.Primary.String()
		if seen[key] {
			return false
		}
		seen[key] = true
		return true
	})
}

// Filter keeps only diagnostics for which keep returns true.
func (b *Bag) Filter(keep func(*Diagnostic) bool) {
	b.keepWhere(keep)
}

// keepWhere rebuilds items to hold only the entries keep accepts,
// shared by Dedup and Filter, which differ only in their predicate.
func (b *Bag) keepWhere(keep func(*Diagnostic) bool) {
	out := make([]*Diagnostic, 0, len(b.items))
	for _, d := range b.items {
		if keep(d) {
			out = append(out, d)
		}
	}
	b.items = out
}

// Transform replaces each diagnostic with the result of applying fn.
func (b *Bag) Transform(fn func(*Diagnostic) *Diagnostic) {
	for i := range b.items {
		next := fn(b.items[i])
		if next == nil {
			panic("diag: transform returned nil")
		}
		b.items[i] = next
	}
}
