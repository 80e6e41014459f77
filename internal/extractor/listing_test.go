package extractor

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/rera-scraper/internal/entity"
)

func listingHTML(rows ...string) string {
	var b strings.Builder
	b.WriteString(`<table class="table"><tr><th>Sl</th><th>Regd No</th><th>Name</th><th>Action</th></tr>`)
	for _, r := range rows {
		b.WriteString(r)
	}
	b.WriteString(`</table>`)
	return b.String()
}

func dataRow(i int) string {
	return fmt.Sprintf(`<tr><td>%d</td><td> RP/%02d </td><td> Project %d </td><td><a href="/projects/%d">View Details</a></td></tr>`, i, i, i, i)
}

func TestParseListing(t *testing.T) {
	doc := mustDoc(t, listingHTML(dataRow(1), dataRow(2)))

	entries, err := NewListingParser("table.table", 6).Parse(doc)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, ListingEntry{Row: entity.ListingRow{
		RegistrationNumber: "RP/01",
		ProjectName:        "Project 1",
		DetailLink:         "/projects/1",
	}}, entries[0])
	assert.Equal(t, "/projects/2", entries[1].Row.DetailLink)
}

func TestParseListingCapsRows(t *testing.T) {
	var rows []string
	for i := 1; i <= 10; i++ {
		rows = append(rows, dataRow(i))
	}
	doc := mustDoc(t, listingHTML(rows...))

	entries, err := NewListingParser("table.table", 6).Parse(doc)
	require.NoError(t, err)
	require.Len(t, entries, 6)
	assert.Equal(t, "RP/06", entries[5].Row.RegistrationNumber)
}

func TestParseListingSkipsShortRows(t *testing.T) {
	doc := mustDoc(t, listingHTML(
		`<tr><td>1</td><td>only two</td></tr>`,
		dataRow(2),
	))

	entries, err := NewListingParser("table.table", 6).Parse(doc)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, SkipTooFewColumns, entries[0].Skip)
	assert.Equal(t, SkipNone, entries[1].Skip)
}

func TestParseListingMissingLink(t *testing.T) {
	doc := mustDoc(t, listingHTML(
		`<tr><td>1</td><td>RP/01</td><td>No Link Project</td><td><a>View Details</a></td></tr>`,
	))

	entries, err := NewListingParser("table.table", 6).Parse(doc)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, SkipMissingLink, entries[0].Skip)
	assert.Equal(t, "No Link Project", entries[0].Row.ProjectName)
}

func TestParseListingLinkFromLastColumn(t *testing.T) {
	doc := mustDoc(t, listingHTML(
		`<tr><td>1</td><td><a href="/wrong">RP/01</a></td><td>P</td><td>-</td><td><a href="/right">View</a></td></tr>`,
	))

	entries, err := NewListingParser("table.table", 6).Parse(doc)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "/right", entries[0].Row.DetailLink)
}

func TestParseListingMissingTable(t *testing.T) {
	doc := mustDoc(t, `<table class="grid"><tr><td>x</td></tr></table>`)

	_, err := NewListingParser("table.table", 6).Parse(doc)
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestParseListingHeaderOnly(t *testing.T) {
	doc := mustDoc(t, listingHTML())

	entries, err := NewListingParser("table.table", 6).Parse(doc)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
