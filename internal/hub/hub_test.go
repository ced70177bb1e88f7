package hub

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/yourorg/stationboard/internal/schedule"
)

func TestEncodeBoardMessage(t *testing.T) {
	snap := schedule.Snapshot{
		StationLabel: "Valencia Joaquín Sorolla",
		StationCode:  "YJV",
		FetchID:      "abc-123",
		FetchedAt:    time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
		Arrivals:     []schedule.Entry{},
		Departures:   []schedule.Entry{},
		IsLiveData:   true,
	}

	raw, err := encodeBoardMessage(snap)
	if err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		Type     string            `json:"type"`
		Station  string            `json:"station"`
		Snapshot schedule.Snapshot `json:"snapshot"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Type != "board" || decoded.Station != "YJV" {
		t.Errorf("sobre del mensaje: %+v", decoded)
	}
	if decoded.Snapshot.FetchID != "abc-123" {
		t.Errorf("el snapshot debe viajar completo: %+v", decoded.Snapshot)
	}
}

func TestBroadcastRecuerdaElUltimoSnapshot(t *testing.T) {
	h := New()

	h.BroadcastSnapshot(schedule.Snapshot{StationCode: "YJV", FetchID: "uno"})
	h.BroadcastSnapshot(schedule.Snapshot{StationCode: "YJV", FetchID: "dos"})
	h.BroadcastSnapshot(schedule.Snapshot{StationCode: "VLC", FetchID: "tres"})

	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.latest) != 2 {
		t.Fatalf("esperaba un último mensaje por terminal, got %d", len(h.latest))
	}

	var msg boardMessage
	if err := json.Unmarshal(h.latest["YJV"], &msg); err != nil {
		t.Fatal(err)
	}
	if msg.Snapshot.FetchID != "dos" {
		t.Errorf("el último snapshot de YJV debe ser el más reciente: %s", msg.Snapshot.FetchID)
	}
}
