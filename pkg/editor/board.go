package editor

import (
	"sync"

	"github.com/goliatone/go-cotizador/pkg/page"
)

// Display ids of the totals shown on a quote page.
const (
	DisplayTransportCost = "display-gastos-traslado"
	DisplayNet           = "valor-neto"
	DisplayTax           = "valor-iva"
	DisplayGross         = "valor-total"
)

// TotalsFields lists the totals display ids in page order.
func TotalsFields() []string {
	return []string{DisplayTransportCost, DisplayNet, DisplayTax, DisplayGross}
}

// Board holds the text of the totals displayed on a quote page and records
// which of them were patched.
type Board struct {
	mu      sync.Mutex
	text    map[string]string
	patched []string
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{text: make(map[string]string)}
}

// BoardFromDocument reads the totals from a rendered quote page. Missing ids
// are skipped.
func BoardFromDocument(doc *page.Document) *Board {
	b := NewBoard()
	if doc == nil {
		return b
	}
	for _, id := range TotalsFields() {
		if text, err := doc.Text(id); err == nil {
			b.text[id] = text
		}
	}
	return b
}

// Text returns the displayed text of id.
func (b *Board) Text(id string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text[id]
}

// Set replaces the text of id.
func (b *Board) Set(id, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text[id] = text
	b.patched = append(b.patched, id)
}

// Patched lists the ids written through Set, in order.
func (b *Board) Patched() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.patched))
	copy(out, b.patched)
	return out
}
