package model

// ObjectSet is a deduplicating collection of page objects. Structurally
// identical objects collapse on insert; iteration follows first-insertion
// order, which keeps extraction deterministic for identical input bytes.
type ObjectSet struct {
	seen  map[PageObject]struct{}
	order []PageObject
}

// NewObjectSet returns an empty set.
func NewObjectSet() *ObjectSet {
	return &ObjectSet{seen: make(map[PageObject]struct{})}
}

// Insert adds obj unless a structurally equal object is already present.
// It reports whether the object was added.
func (s *ObjectSet) Insert(obj PageObject) bool {
	if _, ok := s.seen[obj]; ok {
		return false
	}
	s.seen[obj] = struct{}{}
	s.order = append(s.order, obj)
	return true
}

// Contains reports whether a structurally equal object is in the set.
func (s *ObjectSet) Contains(obj PageObject) bool {
	_, ok := s.seen[obj]
	return ok
}

// Len returns the number of distinct objects.
func (s *ObjectSet) Len() int {
	return len(s.order)
}

// Objects returns every object in insertion order. The returned slice is
// shared with the set and must not be modified.
func (s *ObjectSet) Objects() []PageObject {
	return s.order
}

// Texts returns the text objects in insertion order.
func (s *ObjectSet) Texts() []Text {
	var texts []Text
	for _, obj := range s.order {
		if t, ok := obj.(Text); ok {
			texts = append(texts, t)
		}
	}
	return texts
}

// Lines returns the line objects in insertion order.
func (s *ObjectSet) Lines() []Line {
	var lines []Line
	for _, obj := range s.order {
		if l, ok := obj.(Line); ok {
			lines = append(lines, l)
		}
	}
	return lines
}

// Merge inserts every object of other into s, keeping s's order for
// objects already present.
func (s *ObjectSet) Merge(other *ObjectSet) {
	for _, obj := range other.order {
		s.Insert(obj)
	}
}
