package poll

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/yourorg/stationboard/internal/schedule"
)

// Snapshotter es lo que el sondeador necesita de un servicio de tablero.
type Snapshotter interface {
	Snapshot(ctx context.Context) schedule.Snapshot
	Station() schedule.Station
}

// Poller refresca un tablero en segundo plano a intervalo fijo y entrega cada
// snapshot al callback. Un tick que falla o tarda no mata al sondeador: el
// siguiente tick sale igual.
type Poller struct {
	svc         Snapshotter
	interval    time.Duration
	tickTimeout time.Duration
	onSnapshot  func(schedule.Snapshot)

	stopOnce sync.Once
	done     chan struct{}
	finished chan struct{}
}

// New crea el sondeador. onSnapshot puede ser nil si nadie consume los ticks.
func New(svc Snapshotter, interval, tickTimeout time.Duration, onSnapshot func(schedule.Snapshot)) *Poller {
	return &Poller{
		svc:         svc,
		interval:    interval,
		tickTimeout: tickTimeout,
		onSnapshot:  onSnapshot,
		done:        make(chan struct{}),
		finished:    make(chan struct{}),
	}
}

// Start arranca el loop de sondeo con un tick inmediato. Retorna la función
// de parada, que es idempotente y no interrumpe un tick en curso: solo
// garantiza que no habrá ticks futuros.
func (p *Poller) Start() (stop func()) {
	log.Printf("🔄 [POLL] %s: sondeo cada %s", p.svc.Station().Code, p.interval)

	go func() {
		defer close(p.finished)

		p.tick()

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-p.done:
				log.Printf("🛑 [POLL] %s: sondeo detenido", p.svc.Station().Code)
				return
			case <-ticker.C:
				p.tick()
			}
		}
	}()

	return func() {
		p.stopOnce.Do(func() { close(p.done) })
		<-p.finished
	}
}

func (p *Poller) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), p.tickTimeout)
	defer cancel()

	snap := p.svc.Snapshot(ctx)
	if p.onSnapshot != nil {
		p.onSnapshot(snap)
	}
}
