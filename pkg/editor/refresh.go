package editor

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-cotizador/pkg/apiclient"
	"github.com/goliatone/go-cotizador/pkg/page"
)

// PageFetcher loads a server-rendered page.
type PageFetcher interface {
	FetchPage(ctx context.Context, path string) (*page.Document, error)
}

// PageRefresher re-fetches a page after each mutation, the way a browser
// reload would. The fresh document replaces the previous one and its
// anti-forgery token re-seeds tokens.
type PageRefresher struct {
	fetcher PageFetcher
	path    string
	tokens  *apiclient.PageToken
	logger  *zap.Logger

	mu  sync.RWMutex
	doc *page.Document
}

// NewPageRefresher builds a refresher for path. tokens may be nil.
func NewPageRefresher(fetcher PageFetcher, path string, tokens *apiclient.PageToken, logger *zap.Logger) *PageRefresher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PageRefresher{fetcher: fetcher, path: path, tokens: tokens, logger: logger}
}

// Refresh implements Refresher.
func (r *PageRefresher) Refresh(ctx context.Context) error {
	doc, err := r.fetcher.FetchPage(ctx, r.path)
	if err != nil {
		return err
	}
	if r.tokens != nil {
		if err := r.tokens.Seed(doc); err != nil {
			if !errors.Is(err, page.ErrNotFound) {
				return err
			}
			r.logger.Debug("refreshed page carries no anti-forgery token", zap.String("path", r.path))
		}
	}
	r.mu.Lock()
	r.doc = doc
	r.mu.Unlock()
	return nil
}

// Document returns the last fetched page, nil before the first refresh.
func (r *PageRefresher) Document() *page.Document {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.doc
}

// Board reads the totals of the last fetched page.
func (r *PageRefresher) Board() *Board {
	return BoardFromDocument(r.Document())
}
