package cache

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/yourorg/stationboard/internal/schedule"
)

// ============================================================================
// CACHE SERVICE - TABLEROS EN MEMORIA CON TTL Y DEGRADACIÓN
// ============================================================================
// Caché thread-safe por (dirección, código de estación). A diferencia de un
// caché TTL clásico, los payloads vencidos NO se purgan: son el fallback
// "viejo pero disponible" cuando la fuente upstream falla. Cada entrada se
// reemplaza entera de una sola escritura; un lector nunca observa una
// entrada a medio actualizar.

// Key identifica un tablero cacheado.
type Key struct {
	Direction schedule.Direction
	Station   string
}

func (k Key) String() string {
	return string(k.Direction) + ":" + k.Station
}

// Entry es el payload cacheado de un tablero con su timestamp de fetch.
type Entry struct {
	Payload   []schedule.Entry
	FetchedAt time.Time
}

// Store es el almacén compartido entre ticks de sondeo.
type Store struct {
	mu    sync.RWMutex
	items map[Key]Entry
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{items: make(map[Key]Entry)}
}

// Set reemplaza la entrada completa para la key.
func (s *Store) Set(key Key, payload []schedule.Entry, fetchedAt time.Time) {
	s.mu.Lock()
	s.items[key] = Entry{Payload: payload, FetchedAt: fetchedAt}
	s.mu.Unlock()
}

// GetFresh retorna el payload solo si su edad es menor al TTL dado.
func (s *Store) GetFresh(key Key, ttl time.Duration, now time.Time) ([]schedule.Entry, bool) {
	s.mu.RLock()
	item, found := s.items[key]
	s.mu.RUnlock()

	if !found || now.Sub(item.FetchedAt) >= ttl {
		return nil, false
	}
	return item.Payload, true
}

// GetStale retorna el payload sin importar su edad: es el resultado degradado
// cuando la fuente en vivo no responde.
func (s *Store) GetStale(key Key) ([]schedule.Entry, time.Time, bool) {
	s.mu.RLock()
	item, found := s.items[key]
	s.mu.RUnlock()

	if !found {
		return nil, time.Time{}, false
	}
	return item.Payload, item.FetchedAt, true
}

// Count retorna el número de tableros cacheados.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Stats son las estadísticas expuestas en /api/stats/cache.
type Stats struct {
	TotalBoards int            `json:"total_boards"`
	Boards      map[string]int `json:"boards"` // key → entradas cacheadas
}

// GetStats retorna estadísticas actuales del caché.
func (s *Store) GetStats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		TotalBoards: len(s.items),
		Boards:      make(map[string]int, len(s.items)),
	}
	for key, item := range s.items {
		stats.Boards[key.String()] = len(item.Payload)
	}
	return stats
}

// FetchFunc obtiene el tablero en vivo de una dirección desde el adaptador.
type FetchFunc func(ctx context.Context, direction schedule.Direction) ([]schedule.Entry, error)

// Source envuelve un adaptador con la política de frescura: hit fresco →
// cacheado; miss → fetch y sobreescritura; fetch fallido → payload viejo si
// existe; sin nada → el error se propaga.
type Source struct {
	store   *Store
	station string
	ttl     time.Duration
	fetch   FetchFunc
	now     func() time.Time
}

// NewSource crea la capa de frescura sobre un adaptador.
func NewSource(store *Store, station string, ttl time.Duration, fetch FetchFunc) *Source {
	return &Source{
		store:   store,
		station: station,
		ttl:     ttl,
		fetch:   fetch,
		now:     time.Now,
	}
}

// SetClock reemplaza el reloj (solo tests).
func (s *Source) SetClock(now func() time.Time) { s.now = now }

// Get retorna el tablero para una dirección aplicando TTL y degradación.
func (s *Source) Get(ctx context.Context, direction schedule.Direction) ([]schedule.Entry, error) {
	key := Key{Direction: direction, Station: s.station}

	if payload, ok := s.store.GetFresh(key, s.ttl, s.now()); ok {
		return payload, nil
	}

	payload, err := s.fetch(ctx, direction)
	if err == nil {
		s.store.Set(key, payload, s.now())
		return payload, nil
	}

	// Fuente caída: servir lo último que tengamos, aunque esté vencido
	if stale, fetchedAt, ok := s.store.GetStale(key); ok {
		log.Printf("⚠️ [CACHE] %s sin datos en vivo (%v), sirviendo tablero de %s", key, err, fetchedAt.Format("15:04:05"))
		return stale, nil
	}

	return nil, fmt.Errorf("tablero %s no disponible: %w", key, err)
}
