package flightapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/yourorg/stationboard/internal/extract"
	"github.com/yourorg/stationboard/internal/schedule"
)

// Client es el adaptador del API público de vuelos. A diferencia del tablero
// ferroviario scrapeado, aquí los registros ya vienen estructurados y se
// mapean directo, sin heurísticas de texto ruidoso; pero el upstream puede
// devolver registros sueltos, así que igual se aplican el filtro de
// consistencia (el extremo local debe ser nuestro aeropuerto) y la ventana
// horaria.
type Client struct {
	baseURL    string
	apiKey     string
	airport    schedule.Station
	window     time.Duration
	httpClient *http.Client
	now        func() time.Time
}

// New crea el cliente del API de vuelos.
func New(baseURL, apiKey string, airport schedule.Station, window time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		airport: airport,
		window:  window,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		now: time.Now,
	}
}

// SetClock reemplaza el reloj (solo tests).
func (c *Client) SetClock(now func() time.Time) { c.now = now }

// apiEndpoint es el extremo salida/llegada de un registro del API.
type apiEndpoint struct {
	Airport   string `json:"airport"`
	IATA      string `json:"iata"`
	Scheduled string `json:"scheduled"`
	Estimated string `json:"estimated"`
	Gate      string `json:"gate"`
	Delay     *int   `json:"delay"`
}

// flightRecord es un registro crudo del API de vuelos.
type flightRecord struct {
	FlightStatus string      `json:"flight_status"`
	Departure    apiEndpoint `json:"departure"`
	Arrival      apiEndpoint `json:"arrival"`
	Airline      struct {
		Name string `json:"name"`
		IATA string `json:"iata"`
	} `json:"airline"`
	Flight struct {
		IATA   string `json:"iata"`
		Number string `json:"number"`
	} `json:"flight"`
}

type apiResponse struct {
	Data []flightRecord `json:"data"`
}

// Fetch obtiene los vuelos de una dirección para el aeropuerto configurado.
func (c *Client) Fetch(ctx context.Context, direction schedule.Direction) ([]schedule.Entry, error) {
	records, err := c.fetchRecords(ctx, direction)
	if err != nil {
		return nil, err
	}

	entries := make([]schedule.Entry, 0, len(records))
	for i, rec := range records {
		entry, ok := c.mapRecord(rec, i, direction)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}

	nowMin := schedule.NowMinutes(c.now())
	entries = schedule.WithinWindow(entries, nowMin, int(c.window.Minutes()))

	log.Printf("✅ [FLIGHTS] %s %s: %d vuelos (%d registros crudos)", direction, c.airport.Code, len(entries), len(records))
	return entries, nil
}

// fetchRecords hace el GET con reintentos acotados por backoff exponencial.
func (c *Client) fetchRecords(ctx context.Context, direction schedule.Direction) ([]flightRecord, error) {
	query := url.Values{}
	query.Set("access_key", c.apiKey)
	if direction == schedule.DirectionArrival {
		query.Set("arr_iata", c.airport.Code)
	} else {
		query.Set("dep_iata", c.airport.Code)
	}
	endpoint := c.baseURL + "/flights?" + query.Encode()

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)

	return backoff.RetryWithData(func() ([]flightRecord, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("consultando API de vuelos: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("API de vuelos respondió %d", resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("leyendo respuesta del API: %w", err)
		}

		var parsed apiResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			return nil, backoff.Permanent(fmt.Errorf("respuesta del API malformada: %w", err))
		}
		return parsed.Data, nil
	}, b)
}

// mapRecord convierte un registro del API en una Entry. Un registro sin hora
// programada o cuyo extremo local no es nuestro aeropuerto se descarta.
func (c *Client) mapRecord(rec flightRecord, idx int, direction schedule.Direction) (schedule.Entry, bool) {
	local, remote := rec.Arrival, rec.Departure
	if direction == schedule.DirectionDeparture {
		local, remote = rec.Departure, rec.Arrival
	}

	// Filtro de consistencia: el API puede devolver registros apenas
	// relacionados con la consulta.
	if local.IATA != c.airport.Code {
		return schedule.Entry{}, false
	}

	scheduled, ok := parseAPITime(local.Scheduled)
	if !ok {
		return schedule.Entry{}, false
	}

	entry := schedule.Entry{
		Identifier:  rec.Flight.IATA,
		CarrierName: rec.Airline.Name,
		Scheduled:   scheduled,
		Platform:    local.Gate,
		Direction:   direction,
		Category:    schedule.CategoryLongDistance,
	}
	if entry.Identifier == "" {
		entry.Identifier = extract.SynthesizeIdentifier(idx)
	}
	if entry.CarrierName == "" {
		entry.CarrierName = schedule.CarrierUnknown
	}

	if estimated, ok := parseAPITime(local.Estimated); ok && estimated != scheduled {
		entry.Estimated = &estimated
		entry.DelayMin = schedule.ComputeDelayMinutes(scheduled, estimated)
	} else if local.Delay != nil && *local.Delay > 0 {
		entry.DelayMin = *local.Delay
		est := schedule.DeriveEstimatedTime(scheduled, entry.DelayMin)
		entry.Estimated = &est
	}

	entry.Status = mapStatus(rec.FlightStatus, entry.DelayMin)

	if direction == schedule.DirectionArrival {
		entry.Origin = remote.Airport
		entry.Destination = c.airport.Name
	} else {
		entry.Origin = c.airport.Name
		entry.Destination = remote.Airport
	}
	if direction == schedule.DirectionArrival && entry.Origin == "" {
		entry.Origin = schedule.CarrierUnknown
	}
	if direction == schedule.DirectionDeparture && entry.Destination == "" {
		entry.Destination = schedule.CarrierUnknown
	}

	return entry, true
}

// parseAPITime extrae la hora local del timestamp ISO del API.
func parseAPITime(raw string) (schedule.Minutes, bool) {
	if raw == "" {
		return 0, false
	}
	for _, layout := range []string{"2006-01-02T15:04:05-07:00", "2006-01-02T15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return schedule.NewMinutes(t.Hour(), t.Minute()), true
		}
	}
	return 0, false
}

// mapStatus traduce el vocabulario de estado del API al conjunto cerrado.
func mapStatus(apiStatus string, delayMinutes int) schedule.Status {
	switch apiStatus {
	case "cancelled", "incident":
		return schedule.StatusCancelled
	case "active":
		return schedule.StatusBoarding
	case "landed":
		return schedule.StatusLanded
	}
	if delayMinutes > 0 {
		return schedule.StatusDelayed
	}
	return schedule.StatusOnTime
}
