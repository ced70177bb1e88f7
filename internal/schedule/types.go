package schedule

import (
	"fmt"
	"time"
)

// Minutes representa una hora del día como minutos desde medianoche (0..1439).
// Todo el núcleo trabaja en la zona horaria local de la estación; aquí no se
// hace ninguna conversión de zona.
type Minutes int

// NewMinutes construye un Minutes a partir de horas y minutos.
func NewMinutes(h, m int) Minutes {
	return Minutes(h*60 + m)
}

// Hour retorna la componente de horas.
func (m Minutes) Hour() int { return int(m) / 60 }

// Minute retorna la componente de minutos.
func (m Minutes) Minute() int { return int(m) % 60 }

// String formatea como "HH:MM".
func (m Minutes) String() string {
	return fmt.Sprintf("%02d:%02d", m.Hour(), m.Minute())
}

// MarshalJSON serializa como string "HH:MM" para el frontend.
func (m Minutes) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// Direction indica si una entrada pertenece al tablero de llegadas o salidas.
// Se fija al extraer la fila y no se muta después.
type Direction string

const (
	DirectionArrival   Direction = "llegada"
	DirectionDeparture Direction = "salida"
)

// Status es el conjunto cerrado de estados de una entrada.
type Status string

const (
	StatusOnTime    Status = "en hora"
	StatusDelayed   Status = "retrasado"
	StatusBoarding  Status = "embarque"   // embarcando / efectuó salida
	StatusLanded    Status = "finalizado" // aterrizado / llegó
	StatusCancelled Status = "cancelado"
)

// Category clasifica el servicio a grandes rasgos. Solo se usa para filtrar
// categorías que el consumidor no quiere (ej: cercanías fuera de un tablero
// de larga distancia).
type Category string

const (
	CategoryLongDistance Category = "larga-distancia"
	CategoryCommuter     Category = "cercanias"
	CategoryUnknown      Category = "desconocida"
)

// CarrierUnknown es el centinela cuando no se pudo resolver el operador.
const CarrierUnknown = "Desconocido"

// Entry es el registro unificado de llegadas y salidas, trenes y vuelos.
// Una Entry es inmutable una vez construida: la extracción produce una entrada
// completa y válida o descarta la candidata, nunca emite entradas a medias.
type Entry struct {
	Identifier  string    `json:"identifier"`
	CarrierName string    `json:"carrier_name"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Scheduled   Minutes   `json:"scheduled_time"`
	Estimated   *Minutes  `json:"estimated_time,omitempty"`
	DelayMin    int       `json:"delay_minutes"`
	Status      Status    `json:"status"`
	Platform    string    `json:"platform,omitempty"`
	Direction   Direction `json:"direction"`
	Category    Category  `json:"category"`
}

// Station identifica el punto local fijo del tablero (estación o aeropuerto).
type Station struct {
	Code string
	Name string
}

// Snapshot es el resultado de una consulta completa al servicio de tablero.
// Cuando no hay datos en vivo, Arrivals/Departures van VACÍOS: nunca se
// fabrican entradas de muestra.
type Snapshot struct {
	StationLabel string    `json:"station_label"`
	StationCode  string    `json:"station_code"`
	FetchID      string    `json:"fetch_id"`
	FetchedAt    time.Time `json:"fetched_at"`
	Arrivals     []Entry   `json:"arrivals"`
	Departures   []Entry   `json:"departures"`
	IsLiveData   bool      `json:"is_live_data"`
}
