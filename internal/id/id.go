package id

import (
	"fmt"
	"strconv"
	"strings"
)

// Sequence hands out strictly increasing transaction IDs.
type Sequence struct {
	next int
}

// NewSequence returns a Sequence whose first ID is next (minimum 1).
func NewSequence(next int) *Sequence {
	if next < 1 {
		next = 1
	}
	return &Sequence{next: next}
}

// After returns a Sequence seeded above the highest of ids.
func After(ids []int) *Sequence {
	maxID := 0
	for _, v := range ids {
		if v > maxID {
			maxID = v
		}
	}
	return NewSequence(maxID + 1)
}

// Next returns the next ID and advances the counter.
func (s *Sequence) Next() int {
	v := s.next
	s.next++
	return v
}

// Peek returns the ID the next call to Next will return.
func (s *Sequence) Peek() int {
	return s.next
}

// Observe moves the counter past an ID that was assigned elsewhere
// (loaded from disk, for example). IDs are never reused.
func (s *Sequence) Observe(v int) {
	if v >= s.next {
		s.next = v + 1
	}
}

// Format renders a transaction ID for display: 7 -> "#7".
func Format(v int) string {
	return fmt.Sprintf("#%d", v)
}

// Parse accepts "7" or "#7" and returns the numeric ID.
func Parse(s string) (int, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if s == "" {
		return 0, fmt.Errorf("empty transaction ID")
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid transaction ID %q: %w", s, err)
	}
	if v < 1 {
		return 0, fmt.Errorf("invalid transaction ID %q: must be positive", s)
	}
	return v, nil
}
