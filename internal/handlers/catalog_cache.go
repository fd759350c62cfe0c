package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/studio-booking/internal/cache"
)

const (
	cacheKeyPublicConfig    = "config:public"
	cacheKeyActiveServices  = "services:active"
	cacheKeyEquipmentStats  = "equipment:stats"
	cacheKeyActiveEquipment = "equipment:active"
)

// invalidate drops cached reads after a write. A failure only leaves stale
// entries until their TTL expires, so it is logged and the write still succeeds.
func invalidate(c *gin.Context, store cache.Cache, keys ...string) {
	if err := store.Delete(c.Request.Context(), keys...); err != nil {
		slog.WarnContext(c.Request.Context(), "cache invalidation failed", "keys", keys, "error", err)
	}
}
