package subjects

import "strings"

// Category groups subjects on the home page and in the docs sidebar.
type Category string

const (
	CategoryLanguages Category = "Programming Languages"
	CategoryWeb       Category = "Web Technologies"
	CategoryBackend   Category = "Backend & Databases"
	CategoryDevOps    Category = "DevOps & Tools"
	CategoryMobile    Category = "Mobile Development"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryLanguages,
	CategoryWeb,
	CategoryBackend,
	CategoryDevOps,
	CategoryMobile,
}

// Subject is the static descriptor of one cheatsheet.
type Subject struct {
	ID             string
	Title          string // Short display name, e.g. "C++".
	CheatsheetName string // Page heading and fallback title, e.g. "C++ Cheatsheet".
	Description    string
	DocumentFile   string // Preferred content file; empty lets the resolver pick by ID.
	Category       Category
	Keywords       []string
}

// Route is the URL path of the subject's page.
func (s Subject) Route() string {
	return "/" + s.ID
}

// Catalog is an ordered, immutable set of subjects.
type Catalog struct {
	list []Subject
	byID map[string]int
}

// NewCatalog builds a catalog. Later duplicates of an ID are dropped.
func NewCatalog(list []Subject) *Catalog {
	c := &Catalog{byID: make(map[string]int, len(list))}
	for _, s := range list {
		if _, dup := c.byID[s.ID]; dup {
			continue
		}
		c.byID[s.ID] = len(c.list)
		c.list = append(c.list, s)
	}
	return c
}

// All returns the subjects in catalog order. The slice is a copy.
func (c *Catalog) All() []Subject {
	out := make([]Subject, len(c.list))
	copy(out, c.list)
	return out
}

// Get looks a subject up by ID, case-insensitively.
func (c *Catalog) Get(id string) (Subject, bool) {
	i, ok := c.byID[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return Subject{}, false
	}
	return c.list[i], true
}

// ByCategory returns the subjects of one category in catalog order.
func (c *Catalog) ByCategory(cat Category) []Subject {
	var out []Subject
	for _, s := range c.list {
		if s.Category == cat {
			out = append(out, s)
		}
	}
	return out
}

// Len reports the number of subjects.
func (c *Catalog) Len() int { return len(c.list) }

// Default returns the built-in catalog.
func Default() *Catalog {
	return NewCatalog(defaultSubjects)
}

var defaultSubjects = []Subject{
	{ID: "python", Title: "Python", Category: CategoryLanguages,
		Description: "Learn Python fundamentals, data structures, and popular frameworks for web development",
		Keywords:    []string{"python", "py", "django", "flask", "pandas", "numpy", "machine learning"}},
	{ID: "javascript", Title: "JavaScript", Category: CategoryLanguages,
		Description: "Master modern JavaScript: ES6+ syntax, async programming, and the DOM",
		Keywords:    []string{"js", "javascript", "es6", "es2020", "nodejs", "react", "vue", "angular"}},
	{ID: "typescript", Title: "TypeScript", Category: CategoryLanguages,
		Description: "Typed JavaScript at scale: types, interfaces, generics, and tooling",
		Keywords:    []string{"typescript", "ts", "types", "interfaces", "generics"}},
	{ID: "java", Title: "Java", Category: CategoryLanguages,
		Description: "Object-oriented programming on the JVM, collections, and the Spring ecosystem",
		Keywords:    []string{"java", "jvm", "spring", "oop", "android", "maven", "gradle"}},
	{ID: "cpp", Title: "C++", Category: CategoryLanguages,
		Description: "Modern C++: the STL, memory management, and performance techniques",
		Keywords:    []string{"cpp", "c++", "stl", "algorithms", "memory management", "performance"}},
	{ID: "c", Title: "C", Category: CategoryLanguages,
		Description: "Pointers, memory, and systems programming in C",
		Keywords:    []string{"c", "pointers", "memory", "system programming", "embedded"}},
	{ID: "csharp", Title: "C#", Category: CategoryLanguages,
		Description: "C# and .NET essentials: LINQ, async/await, and ASP.NET",
		Keywords:    []string{"csharp", "c#", "dotnet", ".net", "visual studio", "wpf", "asp.net"}},
	{ID: "go", Title: "Go", Category: CategoryLanguages,
		Description: "Go syntax, goroutines, channels, and building microservices",
		Keywords:    []string{"go", "golang", "goroutines", "concurrency", "microservices"}},
	{ID: "rust", Title: "Rust", Category: CategoryLanguages,
		Description: "Ownership, borrowing, and memory-safe systems programming with Rust",
		Keywords:    []string{"rust", "memory safety", "systems programming", "cargo", "ownership"}},
	{ID: "swift", Title: "Swift", Category: CategoryMobile,
		Description: "Swift language fundamentals and SwiftUI for iOS development",
		Keywords:    []string{"swift", "ios", "swiftui", "uikit", "xcode", "apple"}},
	{ID: "kotlin", Title: "Kotlin", Category: CategoryMobile,
		Description: "Kotlin for Android: coroutines, Jetpack, and multiplatform",
		Keywords:    []string{"kotlin", "android", "jetpack", "coroutines", "multiplatform"}},
	{ID: "html", Title: "HTML", Category: CategoryWeb,
		Description: "Semantic HTML5 markup, forms, and accessibility",
		Keywords:    []string{"html", "html5", "markup", "semantic", "accessibility", "forms"}},
	{ID: "css", Title: "CSS", Category: CategoryWeb,
		Description: "Selectors, flexbox, grid, and responsive design",
		Keywords:    []string{"css", "styles", "flexbox", "grid", "sass", "less", "responsive"}},
	{ID: "react", Title: "React", Category: CategoryWeb,
		Description: "Components, hooks, and state management with React",
		Keywords:    []string{"react", "jsx", "hooks", "components", "state", "redux", "nextjs"}},
	{ID: "vue", Title: "Vue.js", Category: CategoryWeb,
		Description: "Vue.js components, the Composition API, and Nuxt",
		Keywords:    []string{"vue", "vuejs", "composition api", "nuxt", "vuex"}},
	{ID: "angular", Title: "Angular", Category: CategoryWeb,
		Description: "Angular modules, services, RxJS, and the CLI",
		Keywords:    []string{"angular", "typescript", "rxjs", "material", "cli"}},
	{ID: "nodejs", Title: "Node.js", Category: CategoryBackend,
		Description: "Server-side JavaScript with Node.js, npm, and Express",
		Keywords:    []string{"node", "nodejs", "express", "npm", "backend", "server"}},
	{ID: "sql", Title: "SQL", Category: CategoryBackend,
		Description: "Queries, joins, indexes, and transactions in SQL",
		Keywords:    []string{"sql", "database", "mysql", "postgres", "query", "joins", "transactions"}},
	{ID: "mongodb", Title: "MongoDB", Category: CategoryBackend,
		Description: "Documents, queries, and the aggregation pipeline in MongoDB",
		Keywords:    []string{"mongodb", "nosql", "aggregation", "mongoose", "atlas"}},
	{ID: "postgresql", Title: "PostgreSQL", Category: CategoryBackend,
		Description: "PostgreSQL features: JSONB, window functions, and performance tuning",
		Keywords:    []string{"postgresql", "postgres", "sql", "acid", "jsonb"}},
	{ID: "git", Title: "Git", Category: CategoryDevOps,
		Description: "Version control with Git: branching, merging, and rebasing",
		Keywords:    []string{"git", "github", "version control", "commit", "branch", "merge", "rebase"}},
	{ID: "docker", Title: "Docker", Category: CategoryDevOps,
		Description: "Containers, Dockerfiles, and Compose",
		Keywords:    []string{"docker", "containers", "dockerfile", "compose", "kubernetes"}},
	{ID: "linux", Title: "Linux", Category: CategoryDevOps,
		Description: "Shell commands, permissions, and process management on Linux",
		Keywords:    []string{"linux", "bash", "shell", "terminal", "commands", "ubuntu", "centos"}},
	{ID: "flutter", Title: "Flutter", Category: CategoryMobile,
		Description: "Cross-platform apps with Flutter widgets and Dart",
		Keywords:    []string{"flutter", "dart", "cross-platform", "mobile", "widgets"}},
}

func init() {
	for i := range defaultSubjects {
		if defaultSubjects[i].CheatsheetName == "" {
			defaultSubjects[i].CheatsheetName = defaultSubjects[i].Title + " Cheatsheet"
		}
	}
}
