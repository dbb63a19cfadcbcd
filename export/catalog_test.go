package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalogCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCatalog_FiltersAndDeduplicates(t *testing.T) {
	path := writeCatalogCSV(t, `asin,title,author,category_name
B001,Go in Anger,A. Author,Programming
B002,No Author Book,,Programming
B003,Go in Anger,B. Other,Programming
B004,Quiet Rivers,C. Writer,Fiction
B005,Winter Maps,D. Poet,Travel
`)

	books, err := LoadCatalog(path, 10)

	require.NoError(t, err)
	require.Len(t, books, 3, "authorless row and duplicate title are skipped")
	assert.Equal(t, CatalogBook{Title: "Go in Anger", Author: "A. Author", Category: "Programming"}, books[0])
	assert.Equal(t, "Quiet Rivers", books[1].Title)
	assert.Equal(t, "Winter Maps", books[2].Title)
}

func TestLoadCatalog_TruncatesToMaxBooks(t *testing.T) {
	path := writeCatalogCSV(t, `title,author,category_name
A,x,c
B,x,c
C,x,c
`)

	books, err := LoadCatalog(path, 2)

	require.NoError(t, err)
	assert.Len(t, books, 2)
}

func TestLoadCatalog_MissingColumn(t *testing.T) {
	path := writeCatalogCSV(t, `title,author
A,x
`)

	_, err := LoadCatalog(path, 5)

	assert.ErrorContains(t, err, "category_name")
}

func TestSyntheticCatalog_UniqueTitlesAndDeterministic(t *testing.T) {
	a := SyntheticCatalog(40, 42)
	b := SyntheticCatalog(40, 42)

	require.Len(t, a, 40)
	assert.Equal(t, a, b)

	titles := map[string]bool{}
	for _, book := range a {
		assert.False(t, titles[book.Title], "duplicate title %q", book.Title)
		titles[book.Title] = true
		assert.NotEmpty(t, book.Author)
		assert.NotEmpty(t, book.Category)
	}
}

func TestCategories_FirstSeenOrder(t *testing.T) {
	books := []CatalogBook{
		{Category: "Fiction"},
		{Category: "Travel"},
		{Category: "Fiction"},
		{Category: "Poetry"},
	}

	names, ids := Categories(books)

	assert.Equal(t, []string{"Fiction", "Travel", "Poetry"}, names)
	assert.Equal(t, map[string]int{"Fiction": 0, "Travel": 1, "Poetry": 2}, ids)
}
