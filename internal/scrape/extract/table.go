// Package extract pulls tables and the season record out of page markup.
package extract

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"mlbwar-engine/internal/domain"
	"mlbwar-engine/internal/scrape/util"

	"github.com/PuerkitoBio/goquery"
)

var ErrTableNotFound = errors.New("table not found")

// Table finds the element with the given id and parses the table it is (or
// wraps). Tables hidden inside HTML comments are found too.
func Table(html, id string) (domain.Table, error) {
	sel, err := findTable(html, id)
	if err != nil {
		return domain.Table{}, err
	}
	if sel == nil {
		sel, err = findTable(util.Uncomment(html), id)
		if err != nil {
			return domain.Table{}, err
		}
	}
	if sel == nil {
		return domain.Table{}, fmt.Errorf("%w: id=%q", ErrTableNotFound, id)
	}
	return parseTable(sel), nil
}

func findTable(html, id string) (*goquery.Selection, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	sel := doc.Find(`[id="` + id + `"]`).First()
	if sel.Length() == 0 {
		return nil, nil
	}
	if goquery.NodeName(sel) != "table" {
		sel = sel.Find("table").First()
		if sel.Length() == 0 {
			return nil, nil
		}
	}
	return sel, nil
}

func parseTable(table *goquery.Selection) domain.Table {
	var header []string
	if tr := table.ChildrenFiltered("thead").Find("tr").Last(); tr.Length() > 0 {
		header = rowCells(tr)
	}

	var rows [][]string
	table.ChildrenFiltered("tbody").ChildrenFiltered("tr").Each(func(_ int, tr *goquery.Selection) {
		if skipRow(tr) {
			return
		}
		cells := rowCells(tr)
		if len(cells) == 0 {
			return
		}
		if header == nil {
			header = cells
			return
		}
		rows = append(rows, cells)
	})

	cols := domain.UniqueColumns(header)
	for i, r := range rows {
		rows[i] = fit(r, len(cols))
	}
	return domain.Table{Columns: cols, Rows: rows}
}

// repeated in-body header rows and spacer rows
func skipRow(tr *goquery.Selection) bool {
	class := tr.AttrOr("class", "")
	for _, c := range strings.Fields(class) {
		switch c {
		case "thead", "over_header", "spacer", "partial_table":
			return true
		}
	}
	return false
}

func rowCells(tr *goquery.Selection) []string {
	var out []string
	tr.ChildrenFiltered("th,td").Each(func(_ int, cell *goquery.Selection) {
		text := util.CleanText(cell.Text())
		span, err := strconv.Atoi(cell.AttrOr("colspan", "1"))
		if err != nil || span < 1 {
			span = 1
		}
		for i := 0; i < span; i++ {
			out = append(out, text)
		}
	})
	return out
}

func fit(row []string, n int) []string {
	if len(row) == n {
		return row
	}
	if len(row) > n {
		return row[:n]
	}
	out := make([]string, n)
	copy(out, row)
	return out
}
