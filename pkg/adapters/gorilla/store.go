// Package gorilla exposes a ports.Store as a gorilla/sessions store.
//
// The browser cookie only carries the signed session id; values are kept in the
// session record. Each saved record gets a "cookie" field mirroring the session
// options, so the bridge derives the record's TTL from Options.MaxAge.
package gorilla

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aretw0/glint/pkg/domain"
	"github.com/aretw0/glint/pkg/ports"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

// ErrReservedKey is returned by Save when a session value uses a field name the store writes itself.
var ErrReservedKey = errors.New("gorilla: session value uses a reserved key")

// Store implements sessions.Store on top of a ports.Store.
type Store struct {
	Codecs  []securecookie.Codec
	Options *sessions.Options // default configuration

	// TTLAttribute is the record field holding the TTL; it is never copied into Values.
	TTLAttribute string

	store ports.Store
	newID func() string
}

var _ sessions.Store = (*Store)(nil)

// New returns a Store persisting sessions through store.
// keyPairs are passed to securecookie.CodecsFromPairs: authentication key first,
// then an optional encryption key, repeated for rotation.
func New(store ports.Store, keyPairs ...[]byte) *Store {
	s := &Store{
		Codecs: securecookie.CodecsFromPairs(keyPairs...),
		Options: &sessions.Options{
			Path:     "/",
			MaxAge:   domain.OneDay,
			HttpOnly: true,
		},
		TTLAttribute: domain.DefaultTTLAttribute,
		store:        store,
		newID:        uuid.NewString,
	}
	s.MaxAge(s.Options.MaxAge)
	return s
}

// MaxAge sets the maximum age for the store and the underlying cookie codecs.
func (s *Store) MaxAge(age int) {
	s.Options.MaxAge = age
	for _, codec := range s.Codecs {
		if sc, ok := codec.(*securecookie.SecureCookie); ok {
			sc.MaxAge(age)
		}
	}
}

// Get returns the session cached in the request registry, loading it on first use.
func (s *Store) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New loads the session named by the request cookie.
// It always returns a session, marked IsNew when nothing could be loaded.
func (s *Store) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.Options
	session.Options = &opts
	session.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}
	if err := securecookie.DecodeMulti(name, c.Value, &session.ID, s.Codecs...); err != nil {
		session.ID = ""
		return session, err
	}

	rec, err := s.store.Get(r.Context(), session.ID)
	if err != nil {
		return session, err
	}
	if rec == nil {
		// Unknown ids are not reused.
		session.ID = ""
		return session, nil
	}

	for k, v := range rec {
		if k == domain.FieldCookie || k == s.TTLAttribute {
			continue
		}
		session.Values[k] = v
	}
	session.IsNew = false
	return session, nil
}

// Save persists the session and writes its cookie.
// A MaxAge of zero or less removes the record and expires the cookie.
func (s *Store) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	ctx := r.Context()

	if session.Options.MaxAge <= 0 {
		if session.ID != "" {
			if err := s.store.Destroy(ctx, session.ID); err != nil {
				return err
			}
		}
		expired := *session.Options
		expired.MaxAge = -1
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", &expired))
		return nil
	}

	rec, err := s.record(session)
	if err != nil {
		return err
	}

	if session.ID == "" {
		session.ID = s.newID()
	}
	if err := s.store.Set(ctx, session.ID, rec); err != nil {
		return err
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.Codecs...)
	if err != nil {
		return fmt.Errorf("failed to encode session cookie: %w", err)
	}
	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

func (s *Store) record(session *sessions.Session) (domain.Record, error) {
	rec := make(domain.Record, len(session.Values)+1)
	for k, v := range session.Values {
		key, ok := k.(string)
		if !ok {
			return nil, fmt.Errorf("gorilla: session value key %v (%T) is not a string", k, k)
		}
		if key == domain.FieldCookie || key == s.TTLAttribute {
			return nil, fmt.Errorf("%w: %q", ErrReservedKey, key)
		}
		rec[key] = v
	}

	opts := session.Options
	rec[domain.FieldCookie] = map[string]any{
		domain.FieldMaxAge: float64(opts.MaxAge) * 1000,
		"path":             opts.Path,
		"domain":           opts.Domain,
		"secure":           opts.Secure,
		"httpOnly":         opts.HttpOnly,
	}
	return rec, nil
}
