package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// CodeError representa un error de validación de un código de terminal
type CodeError struct {
	Field   string
	Value   string
	Message string
}

func (e *CodeError) Error() string {
	return fmt.Sprintf("%s: %s (valor: %q)", e.Field, e.Message, e.Value)
}

// Los códigos de terminal (IATA de aeropuerto, código de estación) son
// alfanuméricos cortos; cualquier otra cosa en la URL es un typo o un intento
// de inyección y se rechaza antes de tocar las fuentes de datos.
var codePattern = regexp.MustCompile(`^[A-Z0-9]{2,5}$`)

// ValidateTerminalCode valida el código de terminal de un path.
func ValidateTerminalCode(code, fieldName string) error {
	if code == "" {
		return &CodeError{
			Field:   fieldName,
			Value:   code,
			Message: "código vacío",
		}
	}

	if !codePattern.MatchString(strings.ToUpper(code)) {
		return &CodeError{
			Field:   fieldName,
			Value:   code,
			Message: "debe ser alfanumérico de 2 a 5 caracteres",
		}
	}

	return nil
}
