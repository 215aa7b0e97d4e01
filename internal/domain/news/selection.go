package news

import "slices"

// Selection is a non-empty, insertion-ordered set of category labels.
type Selection struct {
	order []string
}

// NewSelection builds a selection from the given labels, defaulting to DefaultCategory.
func NewSelection(initial ...string) *Selection {
	s := &Selection{}
	for _, label := range initial {
		label = NormalizeCategory(label)
		if label == "" || s.IsActive(label) {
			continue
		}
		s.order = append(s.order, label)
	}
	if len(s.order) == 0 {
		s.order = []string{DefaultCategory}
	}
	return s
}

// Toggle removes the category if active, adds it otherwise.
// Removing the last category re-inserts DefaultCategory. Blank labels are ignored.
func (s *Selection) Toggle(category string) {
	category = NormalizeCategory(category)
	if category == "" {
		return
	}
	if idx := slices.Index(s.order, category); idx >= 0 {
		s.order = slices.Delete(s.order, idx, idx+1)
	} else {
		s.order = append(s.order, category)
	}
	if len(s.order) == 0 {
		s.order = append(s.order, DefaultCategory)
	}
}

// Clear resets the selection to exactly DefaultCategory.
func (s *Selection) Clear() {
	s.order = []string{DefaultCategory}
}

// IsActive reports whether the category is selected.
func (s *Selection) IsActive(category string) bool {
	return slices.Contains(s.order, NormalizeCategory(category))
}

// ActiveCount returns the number of selected categories.
func (s *Selection) ActiveCount() int {
	return len(s.order)
}

// Categories returns the selected categories in selection order.
func (s *Selection) Categories() []string {
	return slices.Clone(s.order)
}
