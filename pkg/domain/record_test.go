package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/glint/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_MaxAge(t *testing.T) {
	maxAge := 5000.0

	tests := []struct {
		name   string
		record domain.Record
		want   float64
		ok     bool
	}{
		{"nested map float", domain.Record{"cookie": map[string]any{"maxAge": 120000.0}}, 120000, true},
		{"nested map int", domain.Record{"cookie": map[string]any{"maxAge": 3000}}, 3000, true},
		{"record value", domain.Record{"cookie": domain.Record{"maxAge": int64(7000)}}, 7000, true},
		{"typed cookie", domain.Record{"cookie": domain.Cookie{MaxAge: &maxAge}}, 5000, true},
		{"typed cookie pointer", domain.Record{"cookie": &domain.Cookie{MaxAge: &maxAge}}, 5000, true},
		{"json number", domain.Record{"cookie": map[string]any{"maxAge": json.Number("60000")}}, 60000, true},
		{"no cookie", domain.Record{"user": "jdoe"}, 0, false},
		{"nil cookie", domain.Record{"cookie": nil}, 0, false},
		{"cookie not a map", domain.Record{"cookie": "oops"}, 0, false},
		{"null max age", domain.Record{"cookie": map[string]any{"maxAge": nil}}, 0, false},
		{"string max age", domain.Record{"cookie": map[string]any{"maxAge": "120000"}}, 0, false},
		{"missing max age", domain.Record{"cookie": map[string]any{"path": "/"}}, 0, false},
		{"secure as string", domain.Record{"cookie": map[string]any{"maxAge": 120000, "secure": "auto"}}, 120000, true},
		{"path as number", domain.Record{"cookie": map[string]any{"maxAge": 120000, "path": 1}}, 120000, true},
		{"httpOnly as number", domain.Record{"cookie": map[string]any{"maxAge": 120000, "httpOnly": 1}}, 120000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.record.MaxAge()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecord_CookieFromJSON(t *testing.T) {
	var rec domain.Record
	err := json.Unmarshal([]byte(`{"cookie":{"maxAge":86400000,"path":"/","httpOnly":true,"sameSite":"lax"},"n":1}`), &rec)
	require.NoError(t, err)

	c, ok := rec.Cookie()
	require.True(t, ok)
	require.NotNil(t, c.MaxAge)
	assert.Equal(t, 86400000.0, *c.MaxAge)
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.HTTPOnly)
	assert.Equal(t, "lax", c.SameSite)
}

func TestRecord_Clone(t *testing.T) {
	original := domain.Record{
		"user":    "jdoe",
		"details": map[string]any{"city": "Recife"},
		"tags":    []any{"a", map[string]any{"b": 1}},
	}

	cloned := original.Clone()
	cloned["user"] = "other"
	cloned["details"].(map[string]any)["city"] = "Olinda"
	cloned["tags"].([]any)[1].(map[string]any)["b"] = 2

	assert.Equal(t, "jdoe", original["user"])
	assert.Equal(t, "Recife", original["details"].(map[string]any)["city"])
	assert.Equal(t, 1, original["tags"].([]any)[1].(map[string]any)["b"])

	assert.Nil(t, domain.Record(nil).Clone())
}
