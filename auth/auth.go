package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	SessionCookie = "trends_session"
	SessionTTL    = 7 * 24 * time.Hour
)

// HashPassword hashes a password with SHA-256. Matches the existing user
// records; migrating to bcrypt requires a rehash-on-login pass first.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func VerifyPassword(plain, hashed string) bool {
	return subtle.ConstantTimeCompare([]byte(HashPassword(plain)), []byte(hashed)) == 1
}

type session struct {
	userID    primitive.ObjectID
	expiresAt time.Time
}

// Sessions is an in-memory session store keyed by opaque cookie values.
// Sessions expire lazily on lookup.
type Sessions struct {
	mu   sync.Mutex
	byID map[string]session
}

func NewSessions() *Sessions {
	return &Sessions{byID: make(map[string]session)}
}

// Create registers a new session for the user and returns its ID.
func (s *Sessions) Create(userID primitive.ObjectID) string {
	buf := make([]byte, 24)
	rand.Read(buf)
	id := hex.EncodeToString(buf)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[id] = session{userID: userID, expiresAt: time.Now().Add(SessionTTL)}
	return id
}

// Lookup resolves a session ID to a user ID, expiring stale sessions.
func (s *Sessions) Lookup(id string) (primitive.ObjectID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.byID[id]
	if !ok {
		return primitive.NilObjectID, false
	}
	if time.Now().After(sess.expiresAt) {
		delete(s.byID, id)
		return primitive.NilObjectID, false
	}
	return sess.userID, true
}

func (s *Sessions) Destroy(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, id)
}
