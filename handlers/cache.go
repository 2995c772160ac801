package handlers

import (
	"net/http"

	"sage-portal/cache"

	"github.com/gin-gonic/gin"
)

// purgeableCache is implemented by caches that expire entries in process.
// Redis expires keys on its own and has nothing to report here.
type purgeableCache interface {
	Purge() int
	Stats() map[string]interface{}
}

type CacheHandler struct {
	cache cache.LocationCache
}

func NewCacheHandler(c cache.LocationCache) *CacheHandler {
	return &CacheHandler{cache: c}
}

// GetCacheStats handles GET /api/v1/admin/cache/stats
func (h *CacheHandler) GetCacheStats(c *gin.Context) {
	pc, ok := h.cache.(purgeableCache)
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"status": "success",
			"stats":  gin.H{"backend": "redis"},
		})
		return
	}
	stats := pc.Stats()
	stats["backend"] = "memory"
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"stats":  stats,
	})
}

// PurgeCache handles POST /api/v1/admin/cache/purge
func (h *CacheHandler) PurgeCache(c *gin.Context) {
	removed := 0
	if pc, ok := h.cache.(purgeableCache); ok {
		removed = pc.Purge()
	}
	c.JSON(http.StatusOK, gin.H{"status": "purged", "removed": removed})
}
