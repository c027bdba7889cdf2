/*
Package ports defines the driven ports (interfaces) of glint.

These interfaces decouple the session bridge from concrete backends, so the same
bridge works over memory, Redis, LevelDB, files or anything a caller supplies.

# Key Interfaces

  - Adapter: raw keyed Load/Save/Delete against a backing store.
  - Namespace: optional database/type naming exposed by an Adapter.
  - Lister: optional key enumeration.
  - Store: the Get/Set/Destroy contract a web framework expects from a session store.
*/
package ports
