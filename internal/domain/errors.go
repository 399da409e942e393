package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Se envuelven con contexto legible: fmt.Errorf("%w: ...", domain.ErrConflict) y se comparan con errors.Is.
var (
	ErrValidation           = errors.New("entrada inválida")
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrConfirmationRequired = errors.New("se requiere confirmación explícita")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrStorageUnavailable   = errors.New("almacenamiento de archivos no disponible")
)
