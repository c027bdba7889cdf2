/*
Package session implements the bridge between a web framework's session store contract
and a pluggable storage adapter.

A Bridge prefixes session ids into storage keys, annotates saved records with a
time-to-live field and otherwise passes every call, and every adapter error, straight
through to the adapter. It holds no mutable state, so one Bridge can serve any number
of goroutines.

	adapter := memory.NewStore()
	store, err := session.New(session.Config{Adapter: adapter, Prefix: "sess:"})
	if err != nil {
		log.Fatal(err)
	}

	rec := domain.Record{"user": "jdoe", "cookie": map[string]any{"maxAge": 3600000}}
	_ = store.Set(ctx, "abc", rec) // persists {"user": ..., "cookie": ..., "_ttl": 3600}
*/
package session
