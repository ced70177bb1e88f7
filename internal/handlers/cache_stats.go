package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yourorg/stationboard/internal/cache"
)

// ============================================================================
// CACHE STATISTICS ENDPOINT
// ============================================================================
// Endpoint para monitorear el estado del caché en producción
// GET /api/stats/cache

// CacheStatsHandler expone las estadísticas del almacén de tableros.
type CacheStatsHandler struct {
	store *cache.Store
}

// NewCacheStatsHandler crea el handler sobre el almacén compartido.
func NewCacheStatsHandler(store *cache.Store) *CacheStatsHandler {
	return &CacheStatsHandler{store: store}
}

// GetCacheStats retorna cuántos tableros hay cacheados y su tamaño.
func (h *CacheStatsHandler) GetCacheStats(c *fiber.Ctx) error {
	stats := h.store.GetStats()

	return c.JSON(fiber.Map{
		"status": "ok",
		"summary": fiber.Map{
			"total_boards": stats.TotalBoards,
		},
		"boards": stats.Boards,
	})
}
