package editor

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-cotizador/pkg/apiclient"
	"github.com/goliatone/go-cotizador/pkg/page"
)

type stubFetcher struct {
	markup string
	err    error
	paths  []string
}

func (s *stubFetcher) FetchPage(_ context.Context, path string) (*page.Document, error) {
	s.paths = append(s.paths, path)
	if s.err != nil {
		return nil, s.err
	}
	return page.ParseString(s.markup)
}

func TestPageRefresher_StoresDocumentAndSeedsToken(t *testing.T) {
	fetcher := &stubFetcher{markup: `<form><input type="hidden" name="csrfmiddlewaretoken" value="rotated"></form><span id="valor-total">$1.190.000</span>`}
	tokens := &apiclient.PageToken{}
	r := NewPageRefresher(fetcher, apiclient.QuotePath("42"), tokens, nil)

	if r.Document() != nil {
		t.Fatalf("expected no document before refresh")
	}
	if err := r.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if got, _ := tokens.Token(context.Background()); got != "rotated" {
		t.Fatalf("expected rotated token, got %q", got)
	}
	if got := r.Board().Text(DisplayGross); got != "$1.190.000" {
		t.Fatalf("unexpected total %q", got)
	}
	if len(fetcher.paths) != 1 || fetcher.paths[0] != "/cotizaciones/42/" {
		t.Fatalf("unexpected fetches %v", fetcher.paths)
	}
}

func TestPageRefresher_PageWithoutToken(t *testing.T) {
	tokens := &apiclient.PageToken{}
	tokens.Set("kept")
	r := NewPageRefresher(&stubFetcher{markup: `<p>sin formulario</p>`}, "/cotizaciones/42/", tokens, nil)

	if err := r.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if got, _ := tokens.Token(context.Background()); got != "kept" {
		t.Fatalf("expected token kept, got %q", got)
	}
}

func TestPageRefresher_FetchError(t *testing.T) {
	boom := errors.New("boom")
	r := NewPageRefresher(&stubFetcher{err: boom}, "/cotizaciones/42/", nil, nil)
	if err := r.Refresh(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if r.Document() != nil {
		t.Fatalf("expected no document after failure")
	}
}
