package cheat

import "strings"

// FilteredView is the visible subset of the corpus for a query.
type FilteredView struct {
	Categories       []string
	CheatsByCategory map[string][]Cheat
}

// Filter computes the categories and cheats visible for query. It is a pure
// function of (query, index) and is cheap enough to call on every keystroke.
//
// Matching is case-insensitive substring: a cheat matches on title, body, or
// any tag; a category is visible when the query matches its name or at least
// one cheat inside it. "all" is always visible. Matches keep the index's
// natural order; there is no relevance scoring.
func Filter(query string, idx *Index) FilteredView {
	view := FilteredView{CheatsByCategory: map[string][]Cheat{}}
	if query == "" {
		for _, cat := range idx.Categories() {
			view.Categories = append(view.Categories, cat)
			view.CheatsByCategory[cat] = idx.CheatsIn(cat)
		}
		return view
	}

	q := strings.ToLower(query)
	for _, cat := range idx.Categories() {
		var matched []Cheat
		for _, c := range idx.CheatsIn(cat) {
			if cheatMatches(c, q) {
				matched = append(matched, c)
			}
		}
		nameHit := strings.Contains(strings.ToLower(cat), q)
		if cat != CategoryAll && len(matched) == 0 && !nameHit {
			continue
		}
		view.Categories = append(view.Categories, cat)
		view.CheatsByCategory[cat] = matched
	}
	return view
}

func cheatMatches(c Cheat, loweredQuery string) bool {
	if strings.Contains(strings.ToLower(c.Title), loweredQuery) {
		return true
	}
	if strings.Contains(strings.ToLower(c.Body), loweredQuery) {
		return true
	}
	for _, tag := range c.Tags {
		if strings.Contains(tag, loweredQuery) {
			return true
		}
	}
	return false
}
