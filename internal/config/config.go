package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ============================================================================
// CONFIGURACIÓN - VARIABLES DE ENTORNO
// ============================================================================
// Toda la configuración entra por variables de entorno (cargadas de .env por
// godotenv en main). Una variable requerida ausente o un valor mal formado es
// un ConfigError: el proceso no arranca a medias con defaults inventados para
// credenciales o terminales.

// ConfigError describe una variable de entorno ausente o inválida.
type ConfigError struct {
	Variable string
	Reason   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuración inválida: %s (%s)", e.Variable, e.Reason)
}

// Config agrupa toda la configuración del servicio.
type Config struct {
	Port string

	// Terminal ferroviaria scrapeada
	StationCode     string
	StationName     string
	BoardURL        string // plantilla con %s para el código de estación
	IncludeCommuter bool
	ChromePath      string
	PageTimeout     time.Duration

	// Aeropuerto consultado por API
	AirportCode  string
	AirportName  string
	FlightAPIURL string
	FlightAPIKey string

	// Frescura y sondeo
	TrainTTL     time.Duration
	FlightTTL    time.Duration
	Window       time.Duration
	PollInterval time.Duration

	AllowedOrigins []string
}

// Load construye la configuración desde el entorno y la valida.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		StationCode:     getEnv("STATION_CODE", ""),
		StationName:     getEnv("STATION_NAME", ""),
		BoardURL:        getEnv("BOARD_URL", ""),
		IncludeCommuter: getEnv("INCLUDE_COMMUTER", "false") == "true",
		ChromePath:      getEnv("CHROME_PATH", ""),
		PageTimeout:     time.Duration(getEnvInt("PAGE_TIMEOUT_SECONDS", 30)) * time.Second,
		AirportCode:     getEnv("AIRPORT_CODE", ""),
		AirportName:     getEnv("AIRPORT_NAME", ""),
		FlightAPIURL:    getEnv("FLIGHT_API_URL", "https://api.aviationstack.com/v1"),
		FlightAPIKey:    getEnv("FLIGHT_API_KEY", ""),
		TrainTTL:        time.Duration(getEnvInt("TRAIN_TTL_SECONDS", 300)) * time.Second,
		FlightTTL:       time.Duration(getEnvInt("FLIGHT_TTL_SECONDS", 30)) * time.Second,
		Window:          time.Duration(getEnvInt("LOOKAHEAD_HOURS", 12)) * time.Hour,
		PollInterval:    time.Duration(getEnvInt("POLL_INTERVAL_SECONDS", 60)) * time.Second,
		AllowedOrigins:  splitOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	required := []struct{ name, value string }{
		{"STATION_CODE", c.StationCode},
		{"STATION_NAME", c.StationName},
		{"BOARD_URL", c.BoardURL},
		{"AIRPORT_CODE", c.AirportCode},
		{"AIRPORT_NAME", c.AirportName},
		{"FLIGHT_API_KEY", c.FlightAPIKey},
	}
	for _, r := range required {
		if r.value == "" {
			return &ConfigError{Variable: r.name, Reason: "variable requerida sin valor"}
		}
	}

	if !strings.Contains(c.BoardURL, "%s") {
		return &ConfigError{Variable: "BOARD_URL", Reason: "debe ser una plantilla con %s para el código de estación"}
	}
	if c.Window <= 0 {
		return &ConfigError{Variable: "LOOKAHEAD_HOURS", Reason: "debe ser positivo"}
	}
	if c.PollInterval <= 0 {
		return &ConfigError{Variable: "POLL_INTERVAL_SECONDS", Reason: "debe ser positivo"}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
