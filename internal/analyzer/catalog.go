package analyzer

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed recipe_titles.txt
var defaultCatalog string

// Catalog is the ordered list of candidate recipe titles. Order is
// significant: it breaks score ties.
type Catalog struct {
	titles []string
}

// NewCatalog builds a Catalog from titles, dropping blanks and later
// duplicates while keeping first-seen order.
func NewCatalog(titles []string) Catalog {
	seen := make(map[string]struct{}, len(titles))
	out := make([]string, 0, len(titles))
	for _, title := range titles {
		title = strings.TrimRight(title, "\r")
		if strings.TrimSpace(title) == "" {
			continue
		}
		if _, ok := seen[title]; ok {
			continue
		}
		seen[title] = struct{}{}
		out = append(out, title)
	}
	return Catalog{titles: out}
}

// ParseCatalog reads one title per line.
func ParseCatalog(r io.Reader) (Catalog, error) {
	var titles []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		titles = append(titles, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	return NewCatalog(titles), nil
}

// LoadCatalog reads the catalog file at path. An empty path returns the
// built-in catalog.
func LoadCatalog(path string) (Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultCatalog(), nil
	}
	file, err := os.Open(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("open catalog: %w", err)
	}
	defer file.Close()
	catalog, err := ParseCatalog(file)
	if err != nil {
		return Catalog{}, err
	}
	if catalog.Len() == 0 {
		return Catalog{}, fmt.Errorf("catalog %s has no titles", path)
	}
	return catalog, nil
}

// DefaultCatalog returns the built-in title list.
func DefaultCatalog() Catalog {
	catalog, _ := ParseCatalog(strings.NewReader(defaultCatalog))
	return catalog
}

// Titles returns a copy of the titles in catalog order.
func (c Catalog) Titles() []string {
	return append([]string(nil), c.titles...)
}

// Len returns the number of titles.
func (c Catalog) Len() int {
	return len(c.titles)
}
