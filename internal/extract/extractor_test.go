package extract

import (
	"testing"

	"github.com/yourorg/stationboard/internal/schedule"
)

func TestTimesFromFragmentsCaminoRapido(t *testing.T) {
	sched, est, idx, ok := TimesFromFragments([]string{"14:30", "AVE-2143", "Madrid"})
	if !ok || idx != 0 {
		t.Fatalf("esperaba hora en el primer fragmento, ok=%v idx=%d", ok, idx)
	}
	if sched != schedule.NewMinutes(14, 30) || est != nil {
		t.Errorf("esperaba 14:30 sin estimada, got %v / %v", sched, est)
	}
}

func TestTimesFromFragmentsBarrido(t *testing.T) {
	_, _, idx, ok := TimesFromFragments([]string{"AVE-2143", "Madrid", "sale 09:05"})
	if !ok || idx != 2 {
		t.Errorf("esperaba encontrar la hora en el fragmento 2, ok=%v idx=%d", ok, idx)
	}
}

func TestTimesFromFragmentsParConcatenado(t *testing.T) {
	// Par programada/estimada pegado sin separador: "22:1022:43"
	sched, est, _, ok := TimesFromFragments([]string{"22:1022:43", "ALVIA-661"})
	if !ok {
		t.Fatal("esperaba ok")
	}
	if sched != schedule.NewMinutes(22, 10) {
		t.Errorf("programada: esperaba 22:10, got %s", sched)
	}
	if est == nil || *est != schedule.NewMinutes(22, 43) {
		t.Fatalf("estimada: esperaba 22:43, got %v", est)
	}
	if d := schedule.ComputeDelayMinutes(sched, *est); d != 33 {
		t.Errorf("retraso: esperaba 33, got %d", d)
	}
}

func TestTimesFromFragmentsParConBarra(t *testing.T) {
	sched, est, _, ok := TimesFromFragments([]string{"22:10/22:43"})
	if !ok || sched != schedule.NewMinutes(22, 10) || est == nil || *est != schedule.NewMinutes(22, 43) {
		t.Errorf("par con barra mal dividido: %v / %v", sched, est)
	}
}

func TestCarrierFromFragments(t *testing.T) {
	id, carrier, cat, _, ok := CarrierFromFragments([]string{"08:30", "AVE 2143", "Barcelona"})
	if !ok {
		t.Fatal("esperaba resolver el operador")
	}
	if id != "AVE-2143" || carrier != "Renfe AVE" || cat != schedule.CategoryLongDistance {
		t.Errorf("got %s / %s / %s", id, carrier, cat)
	}

	// Fallback sobre la fila completa
	id, _, _, idx, ok := CarrierFromFragments([]string{"tren IB1234 con retraso"})
	if !ok || id != "IB-1234" || idx != -1 {
		t.Errorf("fallback de fila completa: id=%s idx=%d ok=%v", id, idx, ok)
	}

	// Prefijo desconocido no resuelve
	if _, _, _, _, ok := CarrierFromFragments([]string{"XQZ-999"}); ok {
		t.Error("un prefijo desconocido no debe resolver operador")
	}
}

func TestDelayFromFragments(t *testing.T) {
	cases := []struct {
		frag string
		want int
		ok   bool
	}{
		{"33 min", 33, true},
		{"+15", 15, true},
		{"10 minutos", 10, true},
		{"en hora", 0, false},
	}
	for _, c := range cases {
		got, ok := DelayFromFragments([]string{c.frag})
		if ok != c.ok || got != c.want {
			t.Errorf("DelayFromFragments(%q) = %d,%v; esperado %d,%v", c.frag, got, ok, c.want, c.ok)
		}
	}
}

func TestPlatformFromFragments(t *testing.T) {
	if p, _, ok := PlatformFromFragments([]string{"vía 4"}); !ok || p != "4" {
		t.Errorf("vía 4 → %q (%v)", p, ok)
	}
	if p, _, ok := PlatformFromFragments([]string{"Puerta B12"}); !ok || p != "B12" {
		t.Errorf("Puerta B12 → %q (%v)", p, ok)
	}
	// Código de puerta suelto: una letra + dígitos
	if p, _, ok := PlatformFromFragments([]string{"K23"}); !ok || p != "K23" {
		t.Errorf("K23 → %q (%v)", p, ok)
	}
	if _, _, ok := PlatformFromFragments([]string{"Madrid"}); ok {
		t.Error("Madrid no es un andén")
	}
}

func TestRowDescartaSinHora(t *testing.T) {
	// Fila sin patrón de hora: descarte duro, sin pánico
	_, ok := Row([]string{"Sin hora", "AVE-1234", "Madrid"}, 0, schedule.DirectionArrival, "Valencia")
	if ok {
		t.Error("una fila sin hora reconocible debe descartarse")
	}
}

func TestRowDescartaCabecerasYFilasCortas(t *testing.T) {
	if _, ok := Row([]string{"Hora", "Destino", "Tren", "Vía"}, 0, schedule.DirectionDeparture, "Valencia"); ok {
		t.Error("una fila de cabecera debe descartarse")
	}
	if _, ok := Row([]string{"12:30"}, 0, schedule.DirectionDeparture, "Valencia"); ok {
		t.Error("una fila con un solo fragmento debe descartarse")
	}
}

func TestRowLlegadaCompleta(t *testing.T) {
	entry, ok := Row([]string{"22:1022:43", "ALVIA-00661", "Madrid", "vía 7"}, 3, schedule.DirectionArrival, "Valencia Joaquín Sorolla")
	if !ok {
		t.Fatal("esperaba una entrada válida")
	}
	if entry.Identifier != "ALVIA-00661" {
		t.Errorf("identifier: %s", entry.Identifier)
	}
	if entry.CarrierName != "Renfe Alvia" {
		t.Errorf("carrier: %s", entry.CarrierName)
	}
	if entry.Scheduled != schedule.NewMinutes(22, 10) || entry.DelayMin != 33 {
		t.Errorf("horas: %s retraso=%d", entry.Scheduled, entry.DelayMin)
	}
	if entry.Status != schedule.StatusDelayed {
		t.Errorf("status: %s", entry.Status)
	}
	if entry.Platform != "7" {
		t.Errorf("platform: %s", entry.Platform)
	}
	// En una llegada el destino es el punto local fijo
	if entry.Origin != "Madrid" || entry.Destination != "Valencia Joaquín Sorolla" {
		t.Errorf("extremos: %s → %s", entry.Origin, entry.Destination)
	}
	if entry.Direction != schedule.DirectionArrival {
		t.Errorf("direction: %s", entry.Direction)
	}
}

func TestRowSalidaFijaElOrigen(t *testing.T) {
	entry, ok := Row([]string{"09:15", "AVE-2143", "Barcelona Sants"}, 0, schedule.DirectionDeparture, "Valencia Joaquín Sorolla")
	if !ok {
		t.Fatal("esperaba una entrada válida")
	}
	if entry.Origin != "Valencia Joaquín Sorolla" || entry.Destination != "Barcelona Sants" {
		t.Errorf("extremos: %s → %s", entry.Origin, entry.Destination)
	}
	if entry.Status != schedule.StatusOnTime || entry.DelayMin != 0 {
		t.Errorf("sin retraso esperado: %s / %d", entry.Status, entry.DelayMin)
	}
}

func TestRowSintetizaIdentificador(t *testing.T) {
	entry, ok := Row([]string{"10:00", "12345", "Sevilla"}, 4, schedule.DirectionDeparture, "Valencia")
	if !ok {
		t.Fatal("esperaba una entrada válida")
	}
	if entry.Identifier != "SVC-5" {
		t.Errorf("esperaba identificador sintetizado SVC-5, got %s", entry.Identifier)
	}
	if entry.CarrierName != schedule.CarrierUnknown {
		t.Errorf("esperaba operador centinela, got %s", entry.CarrierName)
	}
}

func TestRowCancelado(t *testing.T) {
	entry, ok := Row([]string{"18:45", "REG-100", "Cuenca", "Cancelado"}, 0, schedule.DirectionDeparture, "Valencia")
	if !ok {
		t.Fatal("esperaba una entrada válida")
	}
	if entry.Status != schedule.StatusCancelled {
		t.Errorf("status: %s", entry.Status)
	}
	if entry.Category != schedule.CategoryCommuter {
		t.Errorf("category: %s", entry.Category)
	}
}

func TestRowsDescartaSoloLasInvalidas(t *testing.T) {
	rows := [][]string{
		{"Hora", "Tren", "Destino"},
		{"10:00", "AVE-100", "Madrid"},
		{"Sin hora", "AVE-1234", "Madrid"},
		{"11:30", "IRYO-220", "Barcelona Sants"},
	}

	entries := Rows(rows, schedule.DirectionDeparture, "Valencia")

	// Una fila menos que las candidatas no-cabecera: la fila sin hora se cae
	if len(entries) != 2 {
		t.Fatalf("esperaba 2 entradas, got %d", len(entries))
	}
	if entries[0].Identifier != "AVE-100" || entries[1].Identifier != "IRYO-220" {
		t.Errorf("entradas inesperadas: %s, %s", entries[0].Identifier, entries[1].Identifier)
	}
}
