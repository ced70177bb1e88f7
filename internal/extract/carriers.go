package extract

import "github.com/yourorg/stationboard/internal/schedule"

// carrierInfo asocia un prefijo de código de servicio con el nombre legible
// del operador y su categoría gruesa.
type carrierInfo struct {
	Name     string
	Category schedule.Category
}

// carrierPrefixes es la tabla de prefijos conocidos, del más largo al más
// corto al momento de buscar. Cubre operadores ferroviarios españoles y las
// aerolíneas más frecuentes en los tableros que consumimos.
var carrierPrefixes = map[string]carrierInfo{
	// Trenes de larga distancia
	"AVE":   {"Renfe AVE", schedule.CategoryLongDistance},
	"AVLO":  {"Renfe Avlo", schedule.CategoryLongDistance},
	"ALVIA": {"Renfe Alvia", schedule.CategoryLongDistance},
	"ALV":   {"Renfe Alvia", schedule.CategoryLongDistance},
	"IRYO":  {"Iryo", schedule.CategoryLongDistance},
	"OUIGO": {"Ouigo", schedule.CategoryLongDistance},
	"TALGO": {"Renfe Talgo", schedule.CategoryLongDistance},
	"IC":    {"Renfe Intercity", schedule.CategoryLongDistance},
	"MD":    {"Renfe Media Distancia", schedule.CategoryLongDistance},

	// Trenes de cercanías / regionales
	"REG": {"Renfe Regional", schedule.CategoryCommuter},
	"CER": {"Renfe Cercanías", schedule.CategoryCommuter},
	"CIV": {"Renfe Cercanías", schedule.CategoryCommuter},

	// Aerolíneas (código IATA)
	"IB": {"Iberia", schedule.CategoryLongDistance},
	"VY": {"Vueling", schedule.CategoryLongDistance},
	"UX": {"Air Europa", schedule.CategoryLongDistance},
	"FR": {"Ryanair", schedule.CategoryLongDistance},
	"LH": {"Lufthansa", schedule.CategoryLongDistance},
	"AF": {"Air France", schedule.CategoryLongDistance},
	"BA": {"British Airways", schedule.CategoryLongDistance},
}

// LookupCarrier resuelve un prefijo contra la tabla de operadores.
func LookupCarrier(prefix string) (carrierInfo, bool) {
	info, ok := carrierPrefixes[prefix]
	return info, ok
}
