/*
Package domain contains the core types shared by the glint session bridge and its adapters.

It is kept free of I/O: nothing here knows how a record is stored, only what it looks like.

# Key Entities

  - Record: the open-ended session state persisted per session id.
  - Cookie: the typed view of a record's "cookie" field, used to derive the TTL.
  - StoreEvent / LifecycleHooks: notifications emitted after successful store operations.
*/
package domain
