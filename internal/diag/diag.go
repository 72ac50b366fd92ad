// Package diag collects diagnostics produced while loading hierarchy
// descriptions. The lowering core itself does not report through this
// package: its failures are invariant violations and panic.
package diag

import "fmt"

// Severity orders diagnostics from advisory to fatal.
type Severity uint8

const (
	SevNote Severity = iota
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevNote:
		return "note"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	default:
		return fmt.Sprintf("Severity(%d)", s)
	}
}

// Code identifies a diagnostic class.
type Code uint16

const (
	UnknownCode Code = 0

	// Hierarchy file problems.
	HierBadSyntax        Code = 1001
	HierUnknownSupertype Code = 1002
	HierUnknownType      Code = 1003
	HierDuplicateClass   Code = 1004
	HierDuplicateMember  Code = 1005
	HierBadVisibility    Code = 1006
	HierBadKind          Code = 1007
	HierSetterImmutable  Code = 1008
)

// Diagnostic is one reported problem, anchored to a file position.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	File     string
	Line     int
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s:%d: %s: %s", d.File, d.Line, d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.File, d.Severity, d.Message)
}

// Bag accumulates diagnostics up to a fixed capacity.
type Bag struct {
	items []Diagnostic
	max   int
}

// NewBag creates a bag that holds at most max diagnostics.
func NewBag(max int) *Bag {
	return &Bag{
		items: make([]Diagnostic, 0, min(max, 64)),
		max:   max,
	}
}

// Add appends a diagnostic, honoring the capacity limit. Returns false
// when the bag is full and the diagnostic was dropped.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// HasErrors reports whether any diagnostic is an error.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// Items returns the collected diagnostics.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Len reports the number of collected diagnostics.
func (b *Bag) Len() int { return len(b.items) }
