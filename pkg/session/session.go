package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/pastevault/backend/pkg/crypto"
)

const ttl = 24 * time.Hour

type record struct {
	values    map[any]any
	expiresAt time.Time
}

// Store keeps session values server-side, keyed by a random session id; the
// cookie carries only the signed id. Deleting a value is therefore final: a
// replayed copy of the cookie points at the same server record and finds the
// value gone.
type Store struct {
	name   string
	codecs []securecookie.Codec

	mu      sync.Mutex
	records map[string]*record
}

func NewStore(name string, keypairs ...[]byte) *Store {
	return &Store{
		name:    name,
		codecs:  securecookie.CodecsFromPairs(keypairs...),
		records: make(map[string]*record),
	}
}

// Get returns the caller's session. A missing, unreadable or expired cookie
// yields a fresh empty session.
func (s *Store) Get(r *http.Request) *sessions.Session {
	session := &sessions.Session{
		Values:  make(map[any]any),
		IsNew:   true,
		Options: s.options(),
	}

	cookie, err := r.Cookie(s.name)
	if err != nil {
		return session
	}

	var id string
	if err := securecookie.DecodeMulti(s.name, cookie.Value, &id, s.codecs...); err != nil {
		return session
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.records[id]
	if !ok {
		return session
	}

	if time.Now().After(stored.expiresAt) {
		delete(s.records, id)
		return session
	}

	session.ID = id
	session.IsNew = false
	session.Values = stored.values
	return session
}

func (s *Store) Save(w http.ResponseWriter, session *sessions.Session) error {
	if session.ID == "" {
		id, err := crypto.GenerateRandomString()
		if err != nil {
			return err
		}
		session.ID = id
	}

	s.mu.Lock()
	s.records[session.ID] = &record{
		values:    session.Values,
		expiresAt: time.Now().Add(ttl),
	}
	s.mu.Unlock()

	encoded, err := securecookie.EncodeMulti(s.name, session.ID, s.codecs...)
	if err != nil {
		return err
	}

	http.SetCookie(w, sessions.NewCookie(s.name, encoded, session.Options))
	return nil
}

func (s *Store) options() *sessions.Options {
	return &sessions.Options{
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
