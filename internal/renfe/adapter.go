package renfe

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/yourorg/stationboard/internal/extract"
	"github.com/yourorg/stationboard/internal/schedule"
)

// Renderer es la capacidad externa de "renderizar página y devolver el DOM".
// En producción la implementa el handle de Chrome headless; en tests, un fake.
type Renderer interface {
	RenderHTML(ctx context.Context, url, waitSelector string) (string, error)
}

// Adapter scrapea el tablero de la estación desde la página pública del
// operador y delega cada fila al extractor.
type Adapter struct {
	renderer        Renderer
	boardURL        string // plantilla con %s para el código de estación
	station         schedule.Station
	includeCommuter bool
}

// New crea el adaptador del tablero ferroviario.
func New(renderer Renderer, boardURL string, station schedule.Station, includeCommuter bool) *Adapter {
	return &Adapter{
		renderer:        renderer,
		boardURL:        boardURL,
		station:         station,
		includeCommuter: includeCommuter,
	}
}

// Fetch obtiene el tablero de una dirección. Todo fallo (navegación, timeout,
// página sin tablas) se reporta como error explícito; nunca escapa un pánico.
func (a *Adapter) Fetch(ctx context.Context, direction schedule.Direction) ([]schedule.Entry, error) {
	url := fmt.Sprintf(a.boardURL, a.station.Code)

	html, err := a.renderer.RenderHTML(ctx, url, "table")
	if err != nil {
		return nil, fmt.Errorf("tablero %s de %s: %w", direction, a.station.Code, err)
	}

	return a.parseBoard(html, direction)
}

func (a *Adapter) parseBoard(html string, direction schedule.Direction) ([]schedule.Entry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parseando HTML del tablero: %w", err)
	}

	tables := doc.Find("table")
	if tables.Length() == 0 {
		return nil, fmt.Errorf("la página renderizada no contiene tablas de horarios")
	}

	var rows [][]string
	found := false

	tables.EachWithBreak(func(i int, table *goquery.Selection) bool {
		guessed, how := classifyTable(table, i)
		// La clasificación es una heurística frágil: dejarla visible en el
		// log para poder diagnosticar una tabla mal clasificada.
		log.Printf("🔍 [RENFE] tabla %d clasificada como %s (%s)", i, guessed, how)
		if guessed != direction {
			return true
		}
		rows = tableRows(table)
		found = true
		return false
	})

	if !found {
		return nil, fmt.Errorf("ninguna tabla clasificó como %s", direction)
	}

	entries := extract.Rows(rows, direction, a.station.Name)
	if !a.includeCommuter {
		entries = WithoutCommuter(entries)
	}

	log.Printf("✅ [RENFE] %s: %d entradas extraídas de %d filas", direction, len(entries), len(rows))
	return entries, nil
}

// classifyTable decide si una tabla es de llegadas o salidas: primero por el
// texto de cabecera/caption, y si es ambiguo, por convención posicional
// (primera tabla llegadas, segunda salidas).
func classifyTable(table *goquery.Selection, index int) (schedule.Direction, string) {
	header := strings.ToLower(table.Find("caption, thead, th").Text())
	switch {
	case strings.Contains(header, "llegada"):
		return schedule.DirectionArrival, "por cabecera"
	case strings.Contains(header, "salida"):
		return schedule.DirectionDeparture, "por cabecera"
	}
	if index%2 == 0 {
		return schedule.DirectionArrival, "por posición"
	}
	return schedule.DirectionDeparture, "por posición"
}

// tableRows aplana cada <tr> en la lista de textos de sus celdas.
func tableRows(table *goquery.Selection) [][]string {
	var rows [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var frags []string
		tr.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			frags = append(frags, strings.TrimSpace(cell.Text()))
		})
		if len(frags) > 0 {
			rows = append(rows, frags)
		}
	})
	return rows
}

// WithoutCommuter filtra las entradas de cercanías/regionales: un tablero de
// larga distancia no las muestra.
func WithoutCommuter(entries []schedule.Entry) []schedule.Entry {
	kept := make([]schedule.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Category == schedule.CategoryCommuter {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}
