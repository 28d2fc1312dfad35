package memcache_fx

import (
	"go.uber.org/fx"
	"superagent/internal/config"
	mem "superagent/pkg/memcache"
)

var Module = fx.Provide(provideSessionStore)

func provideSessionStore(cfg config.Config) mem.SessionStore {
	return mem.NewCacheSessionStore(cfg.Session.TTL, cfg.Session.CleanupInterval)
}
