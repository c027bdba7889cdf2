package domain

import (
	"math"

	"github.com/mitchellh/mapstructure"
)

// Record is the session state persisted for one session id.
// Values are whatever the application put there: strings, numbers, nested maps, slices.
type Record map[string]any

// Cookie is the typed view of the "cookie" field that session middlewares keep inside a record.
// MaxAge is expressed in milliseconds.
type Cookie struct {
	MaxAge         *float64 `json:"maxAge,omitempty" mapstructure:"maxAge"`
	OriginalMaxAge *float64 `json:"originalMaxAge,omitempty" mapstructure:"originalMaxAge"`
	Expires        any      `json:"expires,omitempty" mapstructure:"expires"`
	Path           string   `json:"path,omitempty" mapstructure:"path"`
	Domain         string   `json:"domain,omitempty" mapstructure:"domain"`
	Secure         bool     `json:"secure,omitempty" mapstructure:"secure"`
	HTTPOnly       bool     `json:"httpOnly,omitempty" mapstructure:"httpOnly"`
	SameSite       any      `json:"sameSite,omitempty" mapstructure:"sameSite"`
}

// Cookie decodes the record's cookie field.
// It reports false when the field is missing or does not have the shape of a cookie.
func (r Record) Cookie() (Cookie, bool) {
	raw, ok := r[FieldCookie]
	if !ok || raw == nil {
		return Cookie{}, false
	}

	switch c := raw.(type) {
	case Cookie:
		return c, true
	case *Cookie:
		if c == nil {
			return Cookie{}, false
		}
		return *c, true
	}

	var c Cookie
	if err := mapstructure.Decode(raw, &c); err != nil {
		return Cookie{}, false
	}
	return c, true
}

// MaxAge returns the cookie max-age in milliseconds, if the record carries a numeric one.
// Only the maxAge entry is read; other cookie fields may hold any type.
func (r Record) MaxAge() (float64, bool) {
	raw, ok := r[FieldCookie]
	if !ok || raw == nil {
		return 0, false
	}

	var maxAge *float64
	switch c := raw.(type) {
	case Cookie:
		maxAge = c.MaxAge
	case *Cookie:
		if c != nil {
			maxAge = c.MaxAge
		}
	default:
		var view struct {
			MaxAge *float64 `mapstructure:"maxAge"`
		}
		if err := mapstructure.Decode(raw, &view); err != nil {
			return 0, false
		}
		maxAge = view.MaxAge
	}

	if maxAge == nil || math.IsNaN(*maxAge) || math.IsInf(*maxAge, 0) {
		return 0, false
	}
	return *maxAge, true
}

// Clone returns a deep copy of nested maps and slices; leaf values are shared.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	return Record(deepCopyMap(r))
}

func deepCopyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return deepCopyMap(t)
	case Record:
		return Record(deepCopyMap(t))
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = deepCopyValue(item)
		}
		return out
	default:
		return v
	}
}
