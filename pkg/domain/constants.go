package domain

const (
	// DefaultDatabase is the database name assigned to adapters that have none.
	DefaultDatabase = "glint"

	// DefaultType is the record type assigned to adapters that have none.
	DefaultType = "session"

	// DefaultTTLAttribute is the record field that receives the computed TTL.
	DefaultTTLAttribute = "_ttl"

	// OneDay is the fallback TTL in seconds.
	OneDay = 86400
)

// Field names of the cookie sub-structure, as written by session middlewares.
const (
	FieldCookie = "cookie"
	FieldMaxAge = "maxAge"
)
