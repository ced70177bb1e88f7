package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/yourorg/stationboard/internal/board"
	"github.com/yourorg/stationboard/internal/schedule"
	"github.com/yourorg/stationboard/internal/validation"
)

// BoardHandler sirve el tablero completo de una terminal (estación o
// aeropuerto) con llegadas y salidas juntas.
type BoardHandler struct {
	svc *board.Service
}

// NewBoardHandler crea el handler sobre un servicio de tablero.
func NewBoardHandler(svc *board.Service) *BoardHandler {
	return &BoardHandler{svc: svc}
}

// BoardResponse es el payload de /station/:code y /airport/:code. Las listas
// van siempre presentes, vacías en el peor caso: el frontend nunca recibe
// null ni datos inventados.
type BoardResponse struct {
	Estacion    string           `json:"estacion"`
	Codigo      string           `json:"codigo"`
	FetchID     string           `json:"fetch_id"`
	Llegadas    []schedule.Entry `json:"llegadas"`
	Salidas     []schedule.Entry `json:"salidas"`
	EnVivo      bool             `json:"en_vivo"`
	Actualizado string           `json:"actualizado"`
}

// GetBoard atiende GET /station/:code (o /airport/:code). Un código que no
// es la terminal configurada es 404; todo fallo upstream degrada a 200 con
// listas vacías.
func (h *BoardHandler) GetBoard(c *fiber.Ctx) error {
	code := c.Params("code")
	if err := validation.ValidateTerminalCode(code, "code"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	station := h.svc.Station()
	if !strings.EqualFold(code, station.Code) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "terminal desconocida: " + code,
		})
	}

	snap := h.svc.Snapshot(c.Context())

	return c.JSON(BoardResponse{
		Estacion:    snap.StationLabel,
		Codigo:      snap.StationCode,
		FetchID:     snap.FetchID,
		Llegadas:    snap.Arrivals,
		Salidas:     snap.Departures,
		EnVivo:      snap.IsLiveData,
		Actualizado: snap.FetchedAt.Format("15:04:05"),
	})
}
