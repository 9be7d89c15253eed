package brew

// Category distinguishes the two kinds of Homebrew packages.
type Category string

const (
	// Formula is a command line package installed into the Homebrew cellar.
	Formula Category = "formula"
	// Cask is a graphical application installed under /Applications.
	Cask Category = "cask"
)

// Categories returns all categories in processing order: formulae first,
// then casks. Casks regularly depend on formulae, never the reverse.
func Categories() []Category {
	return []Category{Formula, Cask}
}

func (c Category) String() string {
	return string(c)
}

// Valid reports whether c names a known category.
func (c Category) Valid() bool {
	return c == Formula || c == Cask
}

// Label returns the plural label used in progress lines and reports.
func (c Category) Label() string {
	switch c {
	case Formula:
		return "formulae"
	case Cask:
		return "casks"
	}
	return string(c)
}

// flag returns the brew command line flag selecting this category.
func (c Category) flag() string {
	return "--" + string(c)
}
