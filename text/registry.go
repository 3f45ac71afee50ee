package text

import (
	"fmt"
	"sync"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Provider resolves a font identity to a parsed font.
// Providers are passed explicitly to the atlas cache and the renderer;
// there is no process-wide font registry.
type Provider interface {
	Font(id Identity) (*Font, error)
}

// Registry is an in-memory Provider.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	fonts map[Identity]*Font
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{fonts: make(map[Identity]*Font)}
}

// Register adds f under its identity, replacing any previous font.
func (r *Registry) Register(f *Font) {
	r.mu.Lock()
	r.fonts[f.Identity()] = f
	r.mu.Unlock()
}

// RegisterData parses data and registers the result under id.
func (r *Registry) RegisterData(id Identity, data []byte, opts ...FontOption) (*Font, error) {
	f, err := NewFont(data, id, opts...)
	if err != nil {
		return nil, err
	}
	r.Register(f)
	return f, nil
}

// Font implements Provider.
func (r *Registry) Font(id Identity) (*Font, error) {
	r.mu.RLock()
	f, ok := r.fonts[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFont, id)
	}
	return f, nil
}

// Len returns the number of registered fonts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.fonts)
}

// RegisterGoFonts registers Go Regular as DefaultIdentity and Go Mono as
// MonospaceIdentity.
func RegisterGoFonts(r *Registry) error {
	if _, err := r.RegisterData(DefaultIdentity, goregular.TTF); err != nil {
		return err
	}
	if _, err := r.RegisterData(MonospaceIdentity, gomono.TTF); err != nil {
		return err
	}
	return nil
}
