package extractor

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/rera-scraper/internal/entity"
)

var ErrTableNotFound = errors.New("project table not found")

// SkipReason explains why a listing row produced no record.
type SkipReason string

const (
	SkipNone          SkipReason = ""
	SkipTooFewColumns SkipReason = "too_few_columns"
	SkipMissingLink   SkipReason = "missing_link"
)

const minColumns = 3

// ListingEntry is one inspected table row. Row is only partially filled when
// Skip is set: ProjectName is known for SkipMissingLink, nothing for
// SkipTooFewColumns.
type ListingEntry struct {
	Row  entity.ListingRow
	Skip SkipReason
}

// ListingParser reads project rows from the registry's listing table.
type ListingParser struct {
	tableSelector string
	maxRows       int
}

func NewListingParser(tableSelector string, maxRows int) *ListingParser {
	return &ListingParser{tableSelector: tableSelector, maxRows: maxRows}
}

// Parse inspects the data rows following the header row, at most maxRows of
// them. Registration number and project name come from the second and third
// cells; the detail link is the first anchor with an href in the last cell.
func (p *ListingParser) Parse(doc *goquery.Document) ([]ListingEntry, error) {
	if doc == nil {
		return nil, ErrNoDocument
	}

	table := doc.Find(p.tableSelector).First()
	if table.Length() == 0 {
		return nil, ErrTableNotFound
	}

	rows := table.Find("tr")
	end := 1 + p.maxRows
	if end > rows.Length() {
		end = rows.Length()
	}

	var entries []ListingEntry
	for i := 1; i < end; i++ {
		entries = append(entries, parseRow(rows.Eq(i)))
	}
	return entries, nil
}

func parseRow(tr *goquery.Selection) ListingEntry {
	cols := tr.Find("td")
	if cols.Length() < minColumns {
		return ListingEntry{Skip: SkipTooFewColumns}
	}

	row := entity.ListingRow{
		RegistrationNumber: strings.TrimSpace(cols.Eq(1).Text()),
		ProjectName:        strings.TrimSpace(cols.Eq(2).Text()),
	}

	href, ok := cols.Last().Find("a[href]").First().Attr("href")
	if !ok {
		return ListingEntry{Row: row, Skip: SkipMissingLink}
	}
	row.DetailLink = href
	return ListingEntry{Row: row}
}
