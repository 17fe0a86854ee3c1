package jsondiff

import "fmt"

// Stats holds per-kind operation counts for a patch.
type Stats struct {
	Adds     int `json:"adds,omitempty"`
	Removes  int `json:"removes,omitempty"`
	Replaces int `json:"replaces,omitempty"`
	Moves    int `json:"moves,omitempty"`
}

// Stats counts the operations in p by kind.
func (p Patch) Stats() Stats {
	var s Stats
	for _, op := range p {
		switch op.(type) {
		case Add:
			s.Adds++
		case Remove:
			s.Removes++
		case Replace:
			s.Replaces++
		case Move:
			s.Moves++
		}
	}
	return s
}

// Total returns the number of operations counted.
func (s Stats) Total() int {
	return s.Adds + s.Removes + s.Replaces + s.Moves
}

// String renders a one-line summary, e.g. "2 adds. 1 remove. 0 replaces."
// Moves are only mentioned when present.
func (s Stats) String() string {
	out := fmt.Sprintf("%d %s. %d %s. %d %s.",
		s.Adds, plural(s.Adds, "add"),
		s.Removes, plural(s.Removes, "remove"),
		s.Replaces, plural(s.Replaces, "replace"))
	if s.Moves > 0 {
		out += fmt.Sprintf(" %d %s.", s.Moves, plural(s.Moves, "move"))
	}
	return out
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
