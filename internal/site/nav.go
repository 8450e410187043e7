package site

import (
	"github.com/ziadkadry99/cheatsheet/internal/subjects"
)

// NavItem is one link in a navigation section.
type NavItem struct {
	ID          string
	Title       string
	Description string
	Route       string
	Active      bool
}

// Section is a category heading with its subjects.
type Section struct {
	Title string
	Items []NavItem
}

// BuildSections groups the catalog by category, in category order and
// catalog order within each category. Empty categories are left out.
// prefix is prepended to each subject route ("" for cheatsheet pages,
// "/docs" for the docs sidebar). The item whose ID equals active is marked.
func BuildSections(cat *subjects.Catalog, prefix, active string) []Section {
	var sections []Section
	for _, c := range subjects.Categories {
		list := cat.ByCategory(c)
		if len(list) == 0 {
			continue
		}
		sec := Section{Title: string(c)}
		for _, s := range list {
			sec.Items = append(sec.Items, NavItem{
				ID:          s.ID,
				Title:       s.Title,
				Description: s.Description,
				Route:       prefix + s.Route(),
				Active:      s.ID == active,
			})
		}
		sections = append(sections, sec)
	}
	return sections
}
