// Package page reads the server-rendered quote pages: the anti-forgery field,
// text of elements addressed by id, table rows and select options. It is the
// read side of the
// "reload and re-derive" cycle used after every mutation.
package page

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-cotizador/pkg/form"
)

// CSRFFieldName is the hidden input Django embeds in every form.
const CSRFFieldName = "csrfmiddlewaretoken"

// ErrNotFound is returned when an addressed element does not exist.
var ErrNotFound = errors.New("page: element not found")

// Document is a parsed HTML page.
type Document struct {
	root *html.Node
	ids  map[string]*html.Node
}

// Parse reads an HTML document from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("page: parse: %w", err)
	}
	doc := &Document{root: root, ids: make(map[string]*html.Node)}
	walk(root, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		if id := attr(n, "id"); id != "" {
			if _, seen := doc.ids[id]; !seen {
				doc.ids[id] = n
			}
		}
	})
	return doc, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// InputValue returns the value attribute of the first input named name.
func (d *Document) InputValue(name string) (string, bool) {
	var (
		value string
		found bool
	)
	walk(d.root, func(n *html.Node) {
		if found || n.Type != html.ElementNode || n.DataAtom != atom.Input {
			return
		}
		if attr(n, "name") == name {
			value = attr(n, "value")
			found = true
		}
	})
	return value, found
}

// CSRFToken returns the page-embedded anti-forgery token.
func (d *Document) CSRFToken() (string, error) {
	token, ok := d.InputValue(CSRFFieldName)
	if !ok || token == "" {
		return "", fmt.Errorf("%w: input %q", ErrNotFound, CSRFFieldName)
	}
	return token, nil
}

// Text returns the whitespace-normalised text content of the element with id.
func (d *Document) Text(id string) (string, error) {
	node, ok := d.ids[id]
	if !ok {
		return "", fmt.Errorf("%w: #%s", ErrNotFound, id)
	}
	return normalizeSpace(textContent(node)), nil
}

// TableRows returns the cell texts of every row of the table with id, the
// header row included, in document order.
func (d *Document) TableRows(id string) ([][]string, error) {
	node, ok := d.ids[id]
	if !ok {
		return nil, fmt.Errorf("%w: #%s", ErrNotFound, id)
	}
	if node.DataAtom != atom.Table {
		return nil, fmt.Errorf("page: #%s is <%s>, not a table", id, node.Data)
	}

	var rows [][]string
	walk(node, func(n *html.Node) {
		if n.Type != html.ElementNode || n.DataAtom != atom.Tr {
			return
		}
		var cells []string
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.DataAtom == atom.Td || c.DataAtom == atom.Th) {
				cells = append(cells, normalizeSpace(textContent(c)))
			}
		}
		rows = append(rows, cells)
	})
	return rows, nil
}

// SelectOptions returns the options of the select with id. data-* attributes
// are kept in Attrs without their prefix, so data-precio becomes "precio".
func (d *Document) SelectOptions(id string) ([]form.Option, error) {
	node, ok := d.ids[id]
	if !ok {
		return nil, fmt.Errorf("%w: #%s", ErrNotFound, id)
	}
	if node.DataAtom != atom.Select {
		return nil, fmt.Errorf("page: #%s is <%s>, not a select", id, node.Data)
	}

	var options []form.Option
	walk(node, func(n *html.Node) {
		if n.Type != html.ElementNode || n.DataAtom != atom.Option {
			return
		}
		label := normalizeSpace(textContent(n))
		opt := form.Option{Value: label, Label: label}
		for _, a := range n.Attr {
			switch {
			case a.Key == "value":
				opt.Value = a.Val
			case strings.HasPrefix(a.Key, "data-"):
				if opt.Attrs == nil {
					opt.Attrs = make(map[string]string)
				}
				opt.Attrs[strings.TrimPrefix(a.Key, "data-")] = a.Val
			}
		}
		options = append(options, opt)
	})
	return options, nil
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	})
	return b.String()
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
