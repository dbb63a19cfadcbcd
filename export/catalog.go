package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/brianvoe/gofakeit/v7"
)

// CatalogBook is one catalog row: the metadata attached to a simulated book
// when the dataset is exported.
type CatalogBook struct {
	Title    string
	Author   string
	Category string
}

// LoadCatalog reads book metadata from a CSV dump (kindle catalog shape: a
// header row naming at least title, author and category_name columns). Rows
// without an author are skipped and titles are de-duplicated, keeping the
// first occurrence. At most maxBooks rows are returned.
func LoadCatalog(path string, maxBooks int) ([]CatalogBook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read catalog header: %w", err)
	}
	cols := map[string]int{}
	for i, name := range header {
		cols[name] = i
	}
	for _, required := range []string{"title", "author", "category_name"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("catalog %s: missing column %q", path, required)
		}
	}

	var books []CatalogBook
	seenTitles := map[string]bool{}
	for len(books) < maxBooks {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog row: %w", err)
		}
		title := row[cols["title"]]
		author := row[cols["author"]]
		if author == "" || seenTitles[title] {
			continue
		}
		seenTitles[title] = true
		books = append(books, CatalogBook{
			Title:    title,
			Author:   author,
			Category: row[cols["category_name"]],
		})
	}
	return books, nil
}

// SyntheticCatalog generates maxBooks fake catalog rows with unique titles.
// Used when no CSV catalog is supplied.
func SyntheticCatalog(maxBooks int, seed uint64) []CatalogBook {
	faker := gofakeit.New(seed)
	books := make([]CatalogBook, 0, maxBooks)
	seenTitles := map[string]bool{}
	for len(books) < maxBooks {
		title := faker.BookTitle()
		if seenTitles[title] {
			// Small built-in title pool; suffix a word to keep titles unique.
			title = fmt.Sprintf("%s %s", title, faker.NounAbstract())
			if seenTitles[title] {
				continue
			}
		}
		seenTitles[title] = true
		books = append(books, CatalogBook{
			Title:    title,
			Author:   faker.BookAuthor(),
			Category: faker.BookGenre(),
		})
	}
	return books
}

// Categories extracts the distinct category names from a catalog in first-seen
// order and returns them with a map from category name to 0-based category id.
func Categories(books []CatalogBook) ([]string, map[string]int) {
	var names []string
	ids := map[string]int{}
	for _, b := range books {
		if _, ok := ids[b.Category]; !ok {
			ids[b.Category] = len(names)
			names = append(names, b.Category)
		}
	}
	return names, ids
}
