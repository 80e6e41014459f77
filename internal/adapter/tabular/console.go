package tabular

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/user/rera-scraper/internal/entity"
)

// ConsoleRenderer prints records as a table.
type ConsoleRenderer struct {
	out io.Writer
}

func NewConsoleRenderer(out io.Writer) *ConsoleRenderer {
	return &ConsoleRenderer{out: out}
}

// Render prints the records under a "Scraped Projects:" title.
func (c *ConsoleRenderer) Render(records []entity.ProjectRecord) {
	fmt.Fprintln(c.out, "\nScraped Projects:")

	t := table.NewWriter()
	t.SetOutputMirror(c.out)

	header := table.Row{}
	for _, col := range entity.Columns {
		header = append(header, col)
	}
	t.AppendHeader(header)

	for _, rec := range records {
		row := table.Row{}
		for _, v := range rec.Values() {
			row = append(row, v)
		}
		t.AppendRow(row)
	}

	t.SetStyle(table.StyleLight)
	// Keep the column names exactly as they appear in the CSV header.
	t.Style().Format.Header = text.FormatDefault
	t.Render()
}

func (c *ConsoleRenderer) Saved(path string) {
	fmt.Fprintf(c.out, "\nData saved to '%s'\n", path)
}
