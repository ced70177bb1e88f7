package schedule

import (
	"regexp"
	"sort"
	"strconv"
	"time"
)

// minutesPerDay es el módulo de toda la aritmética horaria del tablero.
const minutesPerDay = 24 * 60

var timePattern = regexp.MustCompile(`([01]?\d|2[0-3]):([0-5]\d)`)

// ParseTimeToMinutes busca un patrón H:MM o HH:MM en cualquier parte del texto
// y lo convierte a minutos desde medianoche. Retorna ok=false si no hay hora.
func ParseTimeToMinutes(text string) (Minutes, bool) {
	match := timePattern.FindStringSubmatch(text)
	if match == nil {
		return 0, false
	}
	h, _ := strconv.Atoi(match[1])
	m, _ := strconv.Atoi(match[2])
	return NewMinutes(h, m), true
}

// ComputeDelayMinutes calcula (estimated - scheduled) mod 1440. El módulo es
// el contrato: una salida programada a las 23:58 con estimada a las 00:05
// tiene 7 minutos de retraso, nunca un valor negativo.
func ComputeDelayMinutes(scheduled, estimated Minutes) int {
	diff := (int(estimated) - int(scheduled)) % minutesPerDay
	if diff < 0 {
		diff += minutesPerDay
	}
	return diff
}

// DeriveEstimatedTime calcula la hora estimada como (scheduled + delay) mod 1440.
func DeriveEstimatedTime(scheduled Minutes, delayMinutes int) Minutes {
	return Minutes((int(scheduled) + delayMinutes) % minutesPerDay)
}

// NowMinutes convierte un instante a minutos desde medianoche local.
func NowMinutes(now time.Time) Minutes {
	return NewMinutes(now.Hour(), now.Minute())
}

// untilNext retorna cuántos minutos faltan para la hora programada de la
// entrada, siempre en 0..1439. Una entrada que "acaba de pasar" queda casi
// al final del rango en vez de saltar al frente como negativo.
func untilNext(e Entry, now Minutes) int {
	diff := (int(e.Scheduled) - int(now)) % minutesPerDay
	if diff < 0 {
		diff += minutesPerDay
	}
	return diff
}

// SortByUpcoming ordena las entradas por proximidad a "now" cruzando la
// medianoche: con now=00:01, una entrada de 00:10 va antes que una de 23:59.
// El orden es estable para no reordenar entradas con la misma hora.
func SortByUpcoming(entries []Entry, now Minutes) []Entry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return untilNext(sorted[i], now) < untilNext(sorted[j], now)
	})
	return sorted
}

// WithinWindow filtra las entradas cuya hora programada cae dentro de la
// ventana de anticipación (en minutos) contada desde "now". Las entradas más
// lejanas se excluyen, no solo se ordenan al final.
func WithinWindow(entries []Entry, now Minutes, windowMinutes int) []Entry {
	kept := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if untilNext(e, now) <= windowMinutes {
			kept = append(kept, e)
		}
	}
	return kept
}
