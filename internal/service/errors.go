package service

import "errors"

// Errores de negocio exportados (los usa el controller). Los de almacenamiento
// (ErrNotFound, ErrDuplicate, ErrStorage) vienen del paquete repository.
var (
	ErrForbidden = errors.New("forbidden")
)
