package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/yourorg/stationboard/internal/board"
	"github.com/yourorg/stationboard/internal/browser"
	"github.com/yourorg/stationboard/internal/cache"
	"github.com/yourorg/stationboard/internal/config"
	"github.com/yourorg/stationboard/internal/flightapi"
	"github.com/yourorg/stationboard/internal/handlers"
	"github.com/yourorg/stationboard/internal/hub"
	"github.com/yourorg/stationboard/internal/poll"
	"github.com/yourorg/stationboard/internal/renfe"
	"github.com/yourorg/stationboard/internal/routes"
	"github.com/yourorg/stationboard/internal/schedule"
)

func main() {
	_ = godotenv.Load()

	// ============================================================================
	// CONFIGURACIÓN - UNA VARIABLE INVÁLIDA ABORTA EL ARRANQUE
	// ============================================================================
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	station := schedule.Station{Code: cfg.StationCode, Name: cfg.StationName}
	airport := schedule.Station{Code: cfg.AirportCode, Name: cfg.AirportName}

	// ============================================================================
	// NAVEGADOR HEADLESS - COMPARTIDO ENTRE TICKS DE SONDEO
	// ============================================================================
	br := browser.New(browser.Options{
		ExecPath:    cfg.ChromePath,
		PageTimeout: cfg.PageTimeout,
	})

	// ============================================================================
	// FUENTES DE DATOS CON CACHÉ Y DEGRADACIÓN
	// ============================================================================
	trainAdapter := renfe.New(br, cfg.BoardURL, station, cfg.IncludeCommuter)
	flightClient := flightapi.New(cfg.FlightAPIURL, cfg.FlightAPIKey, airport, cfg.Window)

	store := cache.NewStore()
	trainSource := cache.NewSource(store, station.Code, cfg.TrainTTL, trainAdapter.Fetch)
	flightSource := cache.NewSource(store, airport.Code, cfg.FlightTTL, flightClient.Fetch)

	trainBoard := board.NewService(station, trainSource, cfg.Window)
	airportBoard := board.NewService(airport, flightSource, cfg.Window)

	// ============================================================================
	// SONDEO EN SEGUNDO PLANO + PUSH POR WEBSOCKET
	// ============================================================================
	liveHub := hub.New()
	tickTimeout := cfg.PageTimeout + 15*time.Second

	stopTrains := poll.New(trainBoard, cfg.PollInterval, tickTimeout, liveHub.BroadcastSnapshot).Start()
	stopFlights := poll.New(airportBoard, cfg.PollInterval, tickTimeout, liveHub.BroadcastSnapshot).Start()

	// ============================================================================
	// HTTP
	// ============================================================================
	app := fiber.New()
	app.Use(logger.New())

	routes.Register(app, routes.Deps{
		Flights:        handlers.NewFlightsHandler(flightSource, airport),
		StationBoard:   handlers.NewBoardHandler(trainBoard),
		AirportBoard:   handlers.NewBoardHandler(airportBoard),
		CacheStats:     handlers.NewCacheStatsHandler(store),
		Hub:            liveHub,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	// ============================================================================
	// GRACEFUL SHUTDOWN
	// ============================================================================
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("🛑 Señal de terminación recibida, cerrando servidor...")

		stopTrains()
		stopFlights()
		br.Close()

		if err := app.Shutdown(); err != nil {
			log.Printf("⚠️  Error cerrando servidor: %v", err)
		}
		log.Println("✅ Servidor cerrado correctamente")
		os.Exit(0)
	}()

	log.Printf("🚀 Servidor escuchando en :%s", cfg.Port)
	log.Println("📍 Endpoints disponibles:")
	log.Println("   GET /api/health                - Health check")
	log.Println("   GET /api/flights?arr_iata=X    - Llegadas de vuelos")
	log.Println("   GET /api/flights?dep_iata=X    - Salidas de vuelos")
	log.Println("   GET /station/:code             - Tablero ferroviario completo")
	log.Println("   GET /airport/:code             - Tablero aéreo completo")
	log.Println("   GET /api/stats/cache           - Estadísticas del caché")
	log.Println("   GET /ws/board                  - Tablero en vivo (WebSocket)")

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
