package board

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yourorg/stationboard/internal/cache"
	"github.com/yourorg/stationboard/internal/schedule"
)

// Service arma el tablero completo de una terminal: pide llegadas y salidas
// en paralelo a través de la capa de caché, recorta a la ventana horaria y
// ordena por proximidad. Si una dirección falla queda como lista vacía; si
// fallan las dos el snapshot sale marcado como no-vivo. Nunca se inventan
// datos de muestra.
type Service struct {
	station schedule.Station
	source  *cache.Source
	window  time.Duration
	now     func() time.Time
}

// NewService crea el servicio de tablero para una terminal.
func NewService(station schedule.Station, source *cache.Source, window time.Duration) *Service {
	return &Service{
		station: station,
		source:  source,
		window:  window,
		now:     time.Now,
	}
}

// SetClock reemplaza el reloj (solo tests).
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// Station retorna la terminal que sirve este servicio.
func (s *Service) Station() schedule.Station { return s.station }

// Snapshot obtiene el estado actual del tablero. Siempre retorna un snapshot
// bien formado: los fallos por dirección se degradan a listas vacías.
func (s *Service) Snapshot(ctx context.Context) schedule.Snapshot {
	var (
		wg         sync.WaitGroup
		arrivals   []schedule.Entry
		departures []schedule.Entry
		errArr     error
		errDep     error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		arrivals, errArr = s.source.Get(ctx, schedule.DirectionArrival)
	}()
	go func() {
		defer wg.Done()
		departures, errDep = s.source.Get(ctx, schedule.DirectionDeparture)
	}()
	wg.Wait()

	if errArr != nil {
		log.Printf("❌ [BOARD] %s llegadas: %v", s.station.Code, errArr)
		arrivals = nil
	}
	if errDep != nil {
		log.Printf("❌ [BOARD] %s salidas: %v", s.station.Code, errDep)
		departures = nil
	}

	now := s.now()
	nowMin := schedule.NowMinutes(now)
	windowMin := int(s.window.Minutes())

	arrivals = schedule.SortByUpcoming(schedule.WithinWindow(arrivals, nowMin, windowMin), nowMin)
	departures = schedule.SortByUpcoming(schedule.WithinWindow(departures, nowMin, windowMin), nowMin)

	snap := schedule.Snapshot{
		StationLabel: s.station.Name,
		StationCode:  s.station.Code,
		FetchID:      uuid.NewString(),
		FetchedAt:    now,
		Arrivals:     arrivals,
		Departures:   departures,
		IsLiveData:   errArr == nil || errDep == nil,
	}

	log.Printf("✅ [BOARD] %s: %d llegadas, %d salidas (live=%t)", s.station.Code, len(snap.Arrivals), len(snap.Departures), snap.IsLiveData)
	return snap
}
