package carousel

import (
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Target is an element that can be brought into view.
type Target interface {
	ScrollIntoView()
}

// TargetFunc adapts a function to Target.
type TargetFunc func()

// ScrollIntoView implements Target.
func (f TargetFunc) ScrollIntoView() { f() }

// Anchors intercepts clicks on in-page "#id" links.
type Anchors struct {
	mu      sync.RWMutex
	targets map[string]Target
	logger  *zap.Logger
}

// NewAnchors builds an empty registry. A nil logger discards.
func NewAnchors(logger *zap.Logger) *Anchors {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Anchors{targets: make(map[string]Target), logger: logger}
}

// Register makes id reachable by anchor links.
func (a *Anchors) Register(id string, t Target) {
	a.mu.Lock()
	a.targets[id] = t
	a.mu.Unlock()
}

// HandleClick processes a click on a link with href. Links starting with "#"
// are intercepted: the default navigation is prevented (true is returned)
// and the target, when it exists, is scrolled into view. Other links are
// left alone.
func (a *Anchors) HandleClick(href string) bool {
	id, ok := strings.CutPrefix(href, "#")
	if !ok {
		return false
	}

	a.mu.RLock()
	target, found := a.targets[id]
	a.mu.RUnlock()
	if !found || id == "" {
		a.logger.Debug("anchor target not found", zap.String("href", href))
		return true
	}
	target.ScrollIntoView()
	return true
}
