package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/yourorg/stationboard/internal/cache"
	"github.com/yourorg/stationboard/internal/schedule"
)

// FlightsHandler sirve el tablero de vuelos en el formato del API upstream:
// un objeto con la lista bajo "data".
type FlightsHandler struct {
	source  *cache.Source
	airport schedule.Station
}

// NewFlightsHandler crea el handler de vuelos sobre la capa de caché.
func NewFlightsHandler(source *cache.Source, airport schedule.Station) *FlightsHandler {
	return &FlightsHandler{source: source, airport: airport}
}

// GetFlights atiende GET /api/flights?arr_iata=XXX | dep_iata=XXX.
// Exactamente uno de los dos parámetros debe venir; eso es un error del
// cliente (400). Un upstream caído NO lo es: se responde 200 con data vacía
// para que el tablero del frontend siga renderizando.
func (h *FlightsHandler) GetFlights(c *fiber.Ctx) error {
	arr := c.Query("arr_iata")
	dep := c.Query("dep_iata")

	if (arr == "") == (dep == "") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "se requiere exactamente uno de arr_iata o dep_iata",
		})
	}

	direction := schedule.DirectionArrival
	code := arr
	if dep != "" {
		direction = schedule.DirectionDeparture
		code = dep
	}

	// Solo servimos el aeropuerto configurado; otro código no es un fallo
	// del servicio, simplemente no hay datos para él.
	if !strings.EqualFold(code, h.airport.Code) {
		return c.JSON(fiber.Map{"data": []schedule.Entry{}})
	}

	entries, err := h.source.Get(c.Context(), direction)
	if err != nil {
		log.Printf("❌ [FLIGHTS] %s %s: %v", direction, code, err)
		entries = nil
	}
	if entries == nil {
		entries = []schedule.Entry{}
	}

	return c.JSON(fiber.Map{"data": entries})
}
