package routes

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/yourorg/stationboard/internal/handlers"
	"github.com/yourorg/stationboard/internal/hub"
	"github.com/yourorg/stationboard/internal/middleware"
)

// Deps son los handlers ya construidos que el router cablea a sus rutas.
type Deps struct {
	Flights      *handlers.FlightsHandler
	StationBoard *handlers.BoardHandler
	AirportBoard *handlers.BoardHandler
	CacheStats   *handlers.CacheStatsHandler
	Hub          *hub.Hub

	AllowedOrigins []string
}

func Register(app *fiber.App, deps Deps) {
	// ============================================================================
	// CORS - LISTA BLANCA DE ORÍGENES
	// ============================================================================
	// Solo los frontends configurados pueden consumir el API desde navegador.
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(deps.AllowedOrigins, ","),
		AllowMethods: "GET",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// ============================================================================
	// API PÚBLICA (Endpoints para el frontend)
	// ============================================================================
	api := app.Group("/api")

	// Health check (sin rate limiting, también en la raíz)
	app.Get("/health", handlers.Health)
	api.Get("/health", handlers.Health)

	// Tablero de vuelos en formato upstream: /api/flights?arr_iata=X | dep_iata=X
	api.Get("/flights", middleware.RateLimiter(), deps.Flights.GetFlights)

	// Estadísticas del caché de tableros
	api.Get("/stats/cache", deps.CacheStats.GetCacheStats)

	// ============================================================================
	// TABLEROS COMPLETOS (llegadas + salidas)
	// RATE LIMITING: el tablero ferroviario scrapea con Chrome en cada miss
	// ============================================================================
	app.Get("/station/:code", middleware.ScrapingRateLimiter(), deps.StationBoard.GetBoard)
	app.Get("/airport/:code", middleware.RateLimiter(), deps.AirportBoard.GetBoard)

	// ============================================================================
	// TABLERO EN VIVO POR WEBSOCKET
	// ============================================================================
	app.Use("/ws/board", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/board", websocket.New(func(c *websocket.Conn) {
		deps.Hub.Handle(c)
	}))
}
