package subjects

import "testing"

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	if c.Len() != 24 {
		t.Fatalf("catalog size = %d, want 24", c.Len())
	}

	py, ok := c.Get("python")
	if !ok {
		t.Fatal("python missing from catalog")
	}
	if py.CheatsheetName != "Python Cheatsheet" {
		t.Errorf("CheatsheetName = %q, want %q", py.CheatsheetName, "Python Cheatsheet")
	}
	if py.Route() != "/python" {
		t.Errorf("Route = %q, want /python", py.Route())
	}
	if py.Category != CategoryLanguages {
		t.Errorf("Category = %q, want %q", py.Category, CategoryLanguages)
	}
}

func TestGetCaseInsensitive(t *testing.T) {
	c := Default()
	if _, ok := c.Get("  React "); !ok {
		t.Error("Get should trim and lowercase the id")
	}
	if _, ok := c.Get("cobol"); ok {
		t.Error("unknown subject should not be found")
	}
}

func TestEveryCategoryPopulated(t *testing.T) {
	c := Default()
	total := 0
	for _, cat := range Categories {
		got := c.ByCategory(cat)
		if len(got) == 0 {
			t.Errorf("category %q has no subjects", cat)
		}
		total += len(got)
	}
	if total != c.Len() {
		t.Errorf("categorized subjects = %d, want %d", total, c.Len())
	}
}

func TestNewCatalogDropsDuplicates(t *testing.T) {
	c := NewCatalog([]Subject{
		{ID: "go", Title: "Go"},
		{ID: "go", Title: "Other"},
		{ID: "rust", Title: "Rust"},
	})
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	g, _ := c.Get("go")
	if g.Title != "Go" {
		t.Errorf("first definition should win, got %q", g.Title)
	}
	all := c.All()
	all[0].Title = "mutated"
	if g2, _ := c.Get("go"); g2.Title != "Go" {
		t.Error("All must return a copy")
	}
}
