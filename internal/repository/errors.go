package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound  = errors.New("registro no encontrado")
	ErrDuplicate = errors.New("registro duplicado")
	ErrStorage   = errors.New("error de almacenamiento")
)

// storageErr traduce errores del driver a los errores del repositorio.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

// findAll decodifica todos los documentos del cursor. Nunca devuelve nil.
func findAll[T any](ctx context.Context, col *mongo.Collection, op string, filter any, opts ...*options.FindOptions) ([]*T, error) {
	cur, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer cur.Close(ctx)

	out := []*T{}
	for cur.Next(ctx) {
		var v T
		if err := cur.Decode(&v); err != nil {
			return nil, storageErr(op, err)
		}
		out = append(out, &v)
	}
	if err := cur.Err(); err != nil {
		return nil, storageErr(op, err)
	}
	return out, nil
}
