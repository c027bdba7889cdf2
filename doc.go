/*
Package glint persists web sessions through pluggable storage adapters.

A session store built on glint prefixes each session id into a storage key, annotates
every saved record with a time-to-live in seconds and hands the record to an adapter
(memory, Redis, LevelDB or plain files). Adapter errors reach the caller unchanged;
a session that does not exist is reported as a nil record, not as an error.

# Usage

Open builds the adapter, the middleware chain and the session bridge from a configuration.

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/glint"
		"github.com/aretw0/glint/internal/config"
		"github.com/aretw0/glint/pkg/domain"
	)

	func main() {
		svc, err := glint.Open(config.Default())
		if err != nil {
			log.Fatal(err)
		}
		defer svc.Close()

		ctx := context.Background()
		rec := domain.Record{"user": "jdoe", "cookie": map[string]any{"maxAge": 3600000}}
		if err := svc.Set(ctx, "abc", rec); err != nil {
			log.Fatal(err)
		}
		// rec["_ttl"] == int64(3600)
	}

Applications that already own an adapter can skip configuration entirely and use
session.New directly; see package session.

# Adapters

  - pkg/adapters/memory: bounded LRU, for tests and single-process servers.
  - pkg/adapters/redis: Redis via go-redis, with an optional fixed key expiration.
  - pkg/adapters/leveldb: embedded LevelDB, one database directory per database name.
  - internal/adapters/file: one JSON file per session.

Adapters may be wrapped by the middlewares in pkg/persistence/middleware
(metrics, PII masking, encryption at rest). The gorilla/sessions integration lives in
pkg/adapters/gorilla and the admin HTTP API in pkg/adapters/http.
*/
package glint
