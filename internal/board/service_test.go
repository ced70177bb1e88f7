package board

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/yourorg/stationboard/internal/cache"
	"github.com/yourorg/stationboard/internal/schedule"
)

var estacion = schedule.Station{Code: "YJV", Name: "Valencia Joaquín Sorolla"}

func relojFijo(h, m int) func() time.Time {
	return func() time.Time {
		return time.Date(2026, 8, 30, h, m, 0, 0, time.UTC)
	}
}

func newService(t *testing.T, fetch cache.FetchFunc) *Service {
	t.Helper()
	source := cache.NewSource(cache.NewStore(), estacion.Code, time.Minute, fetch)
	return NewService(estacion, source, 12*time.Hour)
}

func TestSnapshotOrdenaYFiltraPorVentana(t *testing.T) {
	fetch := func(ctx context.Context, d schedule.Direction) ([]schedule.Entry, error) {
		if d == schedule.DirectionArrival {
			return []schedule.Entry{
				{Identifier: "AVE-300", Scheduled: schedule.NewMinutes(23, 59), Direction: d},
				{Identifier: "AVE-100", Scheduled: schedule.NewMinutes(0, 10), Direction: d},
				{Identifier: "AVE-200", Scheduled: schedule.NewMinutes(15, 0), Direction: d}, // a 15h: fuera
			}, nil
		}
		return []schedule.Entry{
			{Identifier: "IRYO-1", Scheduled: schedule.NewMinutes(8, 30), Direction: d},
		}, nil
	}

	svc := newService(t, fetch)
	svc.SetClock(relojFijo(0, 1))

	snap := svc.Snapshot(context.Background())

	if !snap.IsLiveData {
		t.Error("con ambas direcciones vivas el snapshot debe ser live")
	}
	if snap.FetchID == "" || snap.StationCode != "YJV" {
		t.Errorf("identidad del snapshot: %q / %q", snap.FetchID, snap.StationCode)
	}

	// AVE-200 (15:00, a casi 15h) queda fuera de la ventana de 12h.
	if len(snap.Arrivals) != 2 {
		t.Fatalf("esperaba 2 llegadas dentro de ventana, got %d", len(snap.Arrivals))
	}
	// A las 00:01, 00:10 está a 9 min y 23:59 a casi un día: 00:10 va primero.
	if snap.Arrivals[0].Identifier != "AVE-100" || snap.Arrivals[1].Identifier != "AVE-300" {
		t.Errorf("orden por proximidad cruzando medianoche: %+v", snap.Arrivals)
	}

	if len(snap.Departures) != 1 || snap.Departures[0].Identifier != "IRYO-1" {
		t.Errorf("salidas: %+v", snap.Departures)
	}
}

func TestSnapshotVacioNuncaFabricaDatos(t *testing.T) {
	fetch := func(ctx context.Context, d schedule.Direction) ([]schedule.Entry, error) {
		return nil, errors.New("upstream caído")
	}

	svc := newService(t, fetch)
	snap := svc.Snapshot(context.Background())

	if snap.IsLiveData {
		t.Error("con ambas direcciones caídas el snapshot no es live")
	}
	if len(snap.Arrivals) != 0 || len(snap.Departures) != 0 {
		t.Errorf("un snapshot degradado va vacío, jamás con datos inventados: %+v", snap)
	}

	// El JSON debe llevar arrays vacíos, no null.
	raw, err := json.Marshal(snap)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `"arrivals":[]`) || !strings.Contains(string(raw), `"departures":[]`) {
		t.Errorf("snapshot degradado debe serializar arrays vacíos: %s", raw)
	}
}

func TestSnapshotDireccionCaidaQuedaVacia(t *testing.T) {
	fetch := func(ctx context.Context, d schedule.Direction) ([]schedule.Entry, error) {
		if d == schedule.DirectionDeparture {
			return nil, errors.New("tabla de salidas no clasificó")
		}
		return []schedule.Entry{
			{Identifier: "AVE-100", Scheduled: schedule.NewMinutes(10, 0), Direction: d},
		}, nil
	}

	svc := newService(t, fetch)
	svc.SetClock(relojFijo(9, 0))

	snap := svc.Snapshot(context.Background())

	if !snap.IsLiveData {
		t.Error("con una dirección viva el snapshot sigue siendo live")
	}
	if len(snap.Arrivals) != 1 {
		t.Errorf("la dirección sana se sirve igual: %+v", snap.Arrivals)
	}
	if len(snap.Departures) != 0 {
		t.Errorf("la dirección caída queda vacía: %+v", snap.Departures)
	}
}
