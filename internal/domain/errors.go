package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrLotRequired       = errors.New("el ítem maneja lotes: lote requerido")

	// Configuración cambiaria: falta la tasa o la tasa activa es cero con método DIVIDE.
	ErrExchangeNotConfigured = errors.New("tasa de cambio no configurada")
	ErrExchangeRateZero      = errors.New("tasa de cambio en cero")

	// Estados de usuario: mensajes en inglés porque los consume el frontend legado.
	ErrUserAlreadyInactive = errors.New("user already inactive")
	ErrUserAlreadyActive   = errors.New("user already active")
)
