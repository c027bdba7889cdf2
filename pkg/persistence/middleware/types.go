package middleware

import (
	"context"

	"github.com/aretw0/glint/pkg/domain"
	"github.com/aretw0/glint/pkg/ports"
)

// Middleware allows wrapping an Adapter to add behavior.
type Middleware func(ports.Adapter) ports.Adapter

// Chain applies middlewares so that the first one is the outermost.
func Chain(adapter ports.Adapter, mws ...Middleware) ports.Adapter {
	for i := len(mws) - 1; i >= 0; i-- {
		adapter = mws[i](adapter)
	}
	return adapter
}

// passthrough forwards the optional capabilities of the wrapped adapter.
type passthrough struct {
	next ports.Adapter
}

func (p passthrough) Namespace() ports.Namespace {
	return p.next.Namespace()
}

func (p passthrough) List(ctx context.Context) ([]string, error) {
	lister, ok := p.next.(ports.Lister)
	if !ok {
		return nil, domain.ErrListUnsupported
	}
	return lister.List(ctx)
}
