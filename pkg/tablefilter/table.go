// Package tablefilter hides table rows that do not match a search query as
// the user types.
package tablefilter

import (
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-cotizador/pkg/page"
)

// Row is one body row of a table.
type Row struct {
	Cells   []string
	Visible bool
}

// Text is the row text used for matching: the cells joined by single spaces.
func (r Row) Text() string {
	return strings.Join(r.Cells, " ")
}

// Table holds a header row and the body rows below it. The header is never
// filtered.
type Table struct {
	ID string

	mu     sync.RWMutex
	header []string
	rows   []Row
}

// New builds a table with every body row visible.
func New(id string, header []string, rows ...[]string) *Table {
	t := &Table{ID: id, header: header, rows: make([]Row, 0, len(rows))}
	for _, cells := range rows {
		t.rows = append(t.rows, Row{Cells: cells, Visible: true})
	}
	return t
}

// FromDocument reads the table with id from a server-rendered page. The
// first row is taken as the header.
func FromDocument(doc *page.Document, id string) (*Table, error) {
	if doc == nil {
		return nil, fmt.Errorf("tablefilter: page is nil")
	}
	rows, err := doc.TableRows(id)
	if err != nil {
		return nil, fmt.Errorf("tablefilter: %w", err)
	}
	if len(rows) == 0 {
		return New(id, nil), nil
	}
	return New(id, rows[0], rows[1:]...), nil
}

// Header returns the header cells.
func (t *Table) Header() []string {
	return t.header
}

// Rows returns a snapshot of the body rows.
func (t *Table) Rows() []Row {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	return out
}

// VisibleRows returns the cells of the rows currently shown.
func (t *Table) VisibleRows() [][]string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out [][]string
	for _, r := range t.rows {
		if r.Visible {
			out = append(out, r.Cells)
		}
	}
	return out
}

// Filter shows the rows whose text contains query, ignoring case, and hides
// the rest. An empty query shows every row. It returns the number of rows
// left visible.
func (t *Table) Filter(query string) int {
	needle := strings.ToLower(query)

	t.mu.Lock()
	defer t.mu.Unlock()
	shown := 0
	for i := range t.rows {
		visible := strings.Contains(strings.ToLower(t.rows[i].Text()), needle)
		t.rows[i].Visible = visible
		if visible {
			shown++
		}
	}
	return shown
}
