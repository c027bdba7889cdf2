package middleware

import (
	"context"
	"regexp"

	"github.com/aretw0/glint/pkg/domain"
	"github.com/aretw0/glint/pkg/ports"
)

// Mask replaces values of matching fields.
const Mask = "***"

type piiMiddleware struct {
	passthrough
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks values of fields whose names match the patterns.
// Masking applies to what is persisted; the caller's record is left untouched.
func NewPIIMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.Adapter) ports.Adapter {
		return &piiMiddleware{passthrough: passthrough{next: next}, patterns: patterns}
	}
}

func (m *piiMiddleware) Save(ctx context.Context, key string, rec domain.Record) error {
	cloned := rec.Clone()
	maskMap(cloned, m.patterns)
	return m.next.Save(ctx, key, cloned)
}

func (m *piiMiddleware) Load(ctx context.Context, key string) (domain.Record, error) {
	return m.next.Load(ctx, key)
}

func (m *piiMiddleware) Delete(ctx context.Context, key string) error {
	return m.next.Delete(ctx, key)
}

func maskMap(m map[string]any, patterns []*regexp.Regexp) {
	for k, v := range m {
		masked := false
		for _, p := range patterns {
			if p.MatchString(k) {
				m[k] = Mask
				masked = true
				break
			}
		}
		if masked {
			continue
		}

		switch sub := v.(type) {
		case map[string]any:
			maskMap(sub, patterns)
		case domain.Record:
			maskMap(sub, patterns)
		}
	}
}
