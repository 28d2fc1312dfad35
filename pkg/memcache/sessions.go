// pkg/mem/sessions.go
package mem

import (
	"time"

	"github.com/patrickmn/go-cache"
	"superagent/internal/models/chat_models"
)

type SessionStore interface {
	Get(key string) (*chat_models.Session, bool)

	// Put stores s and restarts its idle timer.
	Put(key string, s *chat_models.Session)

	Delete(key string)

	// Lock serialises work on one session key. Callers must invoke the
	// returned func exactly once.
	Lock(key string) (unlock func())
}

// CacheSessionStore keeps sessions in process memory and evicts the ones left
// idle for longer than the ttl.
type CacheSessionStore struct {
	cache *cache.Cache
	ttl   time.Duration
	locks *KeyedMutex
}

// NewCacheSessionStore creates the store. A zero cleanupInterval disables the
// background janitor; expired entries are still never returned.
func NewCacheSessionStore(ttl, cleanupInterval time.Duration) *CacheSessionStore {
	return &CacheSessionStore{
		cache: cache.New(ttl, cleanupInterval),
		ttl:   ttl,
		locks: NewKeyedMutex(),
	}
}

func (s *CacheSessionStore) Get(key string) (*chat_models.Session, bool) {
	v, ok := s.cache.Get(key)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*chat_models.Session)
	return sess, ok
}

func (s *CacheSessionStore) Put(key string, sess *chat_models.Session) {
	s.cache.Set(key, sess, s.ttl)
}

func (s *CacheSessionStore) Delete(key string) {
	s.cache.Delete(key)
}

func (s *CacheSessionStore) Lock(key string) func() {
	return s.locks.Lock(key)
}

func (s *CacheSessionStore) Len() int {
	return s.cache.ItemCount()
}
