package glint_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/glint"
	"github.com/aretw0/glint/internal/config"
	"github.com/aretw0/glint/pkg/adapters/memory"
	"github.com/aretw0/glint/pkg/domain"
	"github.com/aretw0/glint/pkg/session"
)

// ExampleOpen opens an in-memory store from the default configuration.
func ExampleOpen() {
	cfg := config.Default()
	cfg.Prefix = "sess:"

	svc, err := glint.Open(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer svc.Close()

	ctx := context.Background()
	rec := domain.Record{"user": "jdoe", "cookie": map[string]any{"maxAge": 3600000}}
	if err := svc.Set(ctx, "abc", rec); err != nil {
		log.Fatal(err)
	}

	loaded, _ := svc.Get(ctx, "abc")
	fmt.Println(loaded["user"], loaded["_ttl"])
	// Output: jdoe 3600
}

// Example_bridge uses the session bridge directly over an adapter.
func Example_bridge() {
	store, err := session.New(session.Config{Adapter: memory.NewStore(), TTL: 300})
	if err != nil {
		log.Fatal(err)
	}

	rec := domain.Record{}
	_ = store.Set(context.Background(), "abc", rec)
	fmt.Println(rec["_ttl"])

	missing, err := store.Get(context.Background(), "nobody")
	fmt.Println(missing == nil, err)
	// Output:
	// 300
	// true <nil>
}
