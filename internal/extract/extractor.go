package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yourorg/stationboard/internal/schedule"
)

// ============================================================================
// RECORD EXTRACTOR - RECUPERA ENTRADAS DESDE FILAS DE TEXTO RUIDOSO
// ============================================================================
// Cada heurística es una función con nombre propio para poder probarla de
// forma aislada, en vez de una cadena de regex inline. El orden de aplicación
// y los fallbacks reproducen el comportamiento de los tableros de operador:
// primero la posición esperada del campo, después un barrido de toda la fila.

var (
	timesPattern     = regexp.MustCompile(`([01]?\d|2[0-3]):([0-5]\d)`)
	servicePattern   = regexp.MustCompile(`\b([A-Z]{2,5})[- ]?(\d{2,5})\b`)
	numericIDPattern = regexp.MustCompile(`^\d{2,5}$`)
	delayPattern     = regexp.MustCompile(`(?i)(?:\+\s*(\d{1,3})\b|(\d{1,3})\s*min(?:utos)?\b)`)
	platformPattern  = regexp.MustCompile(`(?i)(?:v[ií]a|and[ée]n|puerta|gate|platform|track)\s*:?\s*([A-Z]?\d{1,3}[A-Z]?)`)
	bareGatePattern  = regexp.MustCompile(`^[A-Z]\d{1,3}$`)
	placePattern     = regexp.MustCompile(`^[A-ZÁÉÍÓÚÑ][\p{L}][\p{L} .\-']+$`)
)

// palabras típicas de filas de cabecera de los tableros
var headerWords = []string{"hora", "destino", "origen", "tren", "vuelo", "llegadas", "salidas", "estado", "compañía"}

// IsHeaderRow detecta filas de cabecera: solo etiquetas de columna, sin hora.
func IsHeaderRow(frags []string) bool {
	if _, _, _, ok := TimesFromFragments(frags); ok {
		return false
	}
	joined := strings.ToLower(strings.Join(frags, " "))
	for _, w := range headerWords {
		if strings.Contains(joined, w) {
			return true
		}
	}
	return false
}

// TimesFromFragments recupera la hora programada y, si existe, la estimada.
// Camino rápido: el primer fragmento (posición habitual de la columna de
// hora). Fallback: barrer todos los fragmentos y quedarse con el primero que
// contenga una hora. Un par "HH:MMHH:MM" concatenado sin separador, o
// "HH:MM/HH:MM", se divide en programada/estimada.
func TimesFromFragments(frags []string) (scheduled schedule.Minutes, estimated *schedule.Minutes, fragIdx int, ok bool) {
	for i, frag := range frags {
		matches := timesPattern.FindAllString(frag, 2)
		if len(matches) == 0 {
			continue
		}
		scheduled, _ = schedule.ParseTimeToMinutes(matches[0])
		if len(matches) == 2 {
			est, _ := schedule.ParseTimeToMinutes(matches[1])
			estimated = &est
		}
		return scheduled, estimated, i, true
	}
	return 0, nil, -1, false
}

// CarrierFromFragments intenta resolver identificador y operador: primero
// contra fragmentos con forma de "número de servicio" (PREFIJO + dígitos),
// después contra el texto completo de la fila.
func CarrierFromFragments(frags []string) (identifier, carrier string, category schedule.Category, fragIdx int, ok bool) {
	for i, frag := range frags {
		if id, name, cat, found := serviceCode(strings.TrimSpace(frag)); found {
			return id, name, cat, i, true
		}
	}
	// Fallback: la fila completa, por si el código viene pegado a otro texto
	if id, name, cat, found := serviceCode(strings.Join(frags, " ")); found {
		return id, name, cat, -1, true
	}
	return "", "", schedule.CategoryUnknown, -1, false
}

func serviceCode(text string) (identifier, carrier string, category schedule.Category, ok bool) {
	for _, m := range servicePattern.FindAllStringSubmatch(text, -1) {
		if info, known := LookupCarrier(m[1]); known {
			return m[1] + "-" + m[2], info.Name, info.Category, true
		}
	}
	return "", "", schedule.CategoryUnknown, false
}

// NumericIDFromFragments busca un fragmento que sea solo dígitos (un número
// de servicio sin prefijo reconocible).
func NumericIDFromFragments(frags []string) (string, int, bool) {
	for i, frag := range frags {
		if numericIDPattern.MatchString(strings.TrimSpace(frag)) {
			return strings.TrimSpace(frag), i, true
		}
	}
	return "", -1, false
}

// SynthesizeIdentifier fabrica un identificador de relleno con la posición de
// la fila, para que ninguna entrada salga con identificador vacío.
func SynthesizeIdentifier(rowIdx int) string {
	return fmt.Sprintf("SVC-%d", rowIdx+1)
}

// DelayFromFragments reconoce texto explícito de retraso: "33 min",
// "+15", "10 minutos". Solo se usa cuando el par de horas no resolvió nada.
func DelayFromFragments(frags []string) (int, bool) {
	for _, frag := range frags {
		m := delayPattern.FindStringSubmatch(frag)
		if m == nil {
			continue
		}
		raw := m[1]
		if raw == "" {
			raw = m[2]
		}
		if minutes, err := strconv.Atoi(raw); err == nil && minutes > 0 {
			return minutes, true
		}
	}
	return 0, false
}

// PlatformFromFragments reconoce "vía 4", "andén 2", "puerta B12" o un código
// de puerta suelto (una letra + dígitos).
func PlatformFromFragments(frags []string) (string, int, bool) {
	for i, frag := range frags {
		if m := platformPattern.FindStringSubmatch(frag); m != nil {
			return m[1], i, true
		}
	}
	for i, frag := range frags {
		if bareGatePattern.MatchString(strings.TrimSpace(frag)) {
			return strings.TrimSpace(frag), i, true
		}
	}
	return "", -1, false
}

// StatusFromFragments resuelve el estado a partir del vocabulario del tablero.
// Un estado específico (cancelado, embarque, finalizado) pisa al derivado del
// retraso.
func StatusFromFragments(frags []string, delayMinutes int) schedule.Status {
	joined := strings.ToLower(strings.Join(frags, " "))
	switch {
	case strings.Contains(joined, "cancelado") || strings.Contains(joined, "anulado") || strings.Contains(joined, "cancelled"):
		return schedule.StatusCancelled
	case strings.Contains(joined, "embarque") || strings.Contains(joined, "embarcando") || strings.Contains(joined, "efectuó salida") || strings.Contains(joined, "despegado"):
		return schedule.StatusBoarding
	case strings.Contains(joined, "aterrizado") || strings.Contains(joined, "finalizado") || strings.Contains(joined, "llegó"):
		return schedule.StatusLanded
	case delayMinutes > 0:
		return schedule.StatusDelayed
	default:
		return schedule.StatusOnTime
	}
}

// PlaceFromFragments busca el fragmento con forma de nombre de lugar
// (empieza en mayúscula, sin dígitos) que no fue consumido por las otras
// heurísticas.
func PlaceFromFragments(frags []string, used map[int]bool) (string, bool) {
	for i, frag := range frags {
		if used[i] {
			continue
		}
		frag = strings.TrimSpace(frag)
		if !placePattern.MatchString(frag) {
			continue
		}
		if strings.ContainsAny(frag, "0123456789") {
			continue
		}
		// Descartar vocabulario de estado que también es título
		if s := StatusFromFragments([]string{frag}, 0); s != schedule.StatusOnTime {
			continue
		}
		return frag, true
	}
	return "", false
}

// Row intenta recuperar una Entry desde los fragmentos de celda de una fila.
// Retorna ok=false para descartes duros: cabeceras, filas con menos de dos
// fragmentos no vacíos o sin ninguna hora reconocible. Una fila descartada
// jamás aborta el procesamiento de sus hermanas.
func Row(frags []string, rowIdx int, direction schedule.Direction, localName string) (schedule.Entry, bool) {
	nonEmpty := make([]string, 0, len(frags))
	for _, f := range frags {
		if strings.TrimSpace(f) != "" {
			nonEmpty = append(nonEmpty, strings.TrimSpace(f))
		}
	}

	if len(nonEmpty) < 2 || IsHeaderRow(nonEmpty) {
		return schedule.Entry{}, false
	}

	// Sin hora programada no hay entrada: invariante del modelo de datos.
	scheduled, estimated, timeIdx, ok := TimesFromFragments(nonEmpty)
	if !ok {
		return schedule.Entry{}, false
	}

	used := map[int]bool{timeIdx: true}

	identifier, carrier, category, idIdx, found := CarrierFromFragments(nonEmpty)
	if !found {
		carrier = schedule.CarrierUnknown
		category = schedule.CategoryUnknown
		identifier = SynthesizeIdentifier(rowIdx)
		// Un código solo-numérico sin prefijo conocido marca su fragmento
		// como consumido para no confundirlo con un nombre de lugar.
		_, idIdx, _ = NumericIDFromFragments(nonEmpty)
	}
	if idIdx >= 0 {
		used[idIdx] = true
	}

	// El par programada/estimada manda; el texto de retraso explícito es
	// solo el fallback.
	delay := 0
	if estimated != nil {
		delay = schedule.ComputeDelayMinutes(scheduled, *estimated)
	} else if textDelay, hasDelay := DelayFromFragments(nonEmpty); hasDelay {
		delay = textDelay
		est := schedule.DeriveEstimatedTime(scheduled, delay)
		estimated = &est
	}

	platform, platIdx, _ := PlatformFromFragments(nonEmpty)
	if platIdx >= 0 {
		used[platIdx] = true
	}

	place, hasPlace := PlaceFromFragments(nonEmpty, used)
	if !hasPlace {
		place = schedule.CarrierUnknown
	}

	entry := schedule.Entry{
		Identifier:  identifier,
		CarrierName: carrier,
		Scheduled:   scheduled,
		Estimated:   estimated,
		DelayMin:    delay,
		Status:      StatusFromFragments(nonEmpty, delay),
		Platform:    platform,
		Direction:   direction,
		Category:    category,
	}

	// Exactamente un extremo es el punto local fijo, según la dirección.
	if direction == schedule.DirectionArrival {
		entry.Origin = place
		entry.Destination = localName
	} else {
		entry.Origin = localName
		entry.Destination = place
	}

	return entry, true
}

// Rows procesa todas las filas de una tabla. Las filas que no producen una
// entrada válida se descartan en silencio.
func Rows(rows [][]string, direction schedule.Direction, localName string) []schedule.Entry {
	entries := make([]schedule.Entry, 0, len(rows))
	for i, frags := range rows {
		if entry, ok := Row(frags, i, direction, localName); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}
