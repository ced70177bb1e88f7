package poll

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/yourorg/stationboard/internal/schedule"
)

type fakeService struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeService) Snapshot(ctx context.Context) schedule.Snapshot {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return schedule.Snapshot{StationCode: "YJV", Arrivals: []schedule.Entry{}, Departures: []schedule.Entry{}}
}

func (f *fakeService) Station() schedule.Station {
	return schedule.Station{Code: "YJV", Name: "Valencia Joaquín Sorolla"}
}

func (f *fakeService) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestStartTickInmediato(t *testing.T) {
	svc := &fakeService{}
	var mu sync.Mutex
	received := 0

	p := New(svc, time.Hour, time.Second, func(schedule.Snapshot) {
		mu.Lock()
		received++
		mu.Unlock()
	})
	stop := p.Start()
	defer stop()

	// El primer tick no espera al intervalo.
	deadline := time.After(2 * time.Second)
	for svc.count() == 0 {
		select {
		case <-deadline:
			t.Fatal("el primer tick debe salir al arrancar, no tras el intervalo")
		case <-time.After(5 * time.Millisecond):
		}
	}

	stop()
	mu.Lock()
	defer mu.Unlock()
	if received != 1 {
		t.Errorf("el snapshot del tick debe llegar al callback, got %d", received)
	}
}

func TestStopCortaTicksFuturos(t *testing.T) {
	svc := &fakeService{}

	p := New(svc, 10*time.Millisecond, time.Second, nil)
	stop := p.Start()

	time.Sleep(50 * time.Millisecond)
	stop()
	after := svc.count()
	if after == 0 {
		t.Fatal("esperaba al menos un tick antes de parar")
	}

	time.Sleep(50 * time.Millisecond)
	if svc.count() != after {
		t.Errorf("tras stop no debe haber ticks nuevos: %d → %d", after, svc.count())
	}
}

func TestStopEsIdempotente(t *testing.T) {
	svc := &fakeService{}
	p := New(svc, time.Hour, time.Second, nil)
	stop := p.Start()

	stop()
	stop() // segunda llamada no debe entrar en pánico ni bloquearse
}
