package model

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name" validate:"required,max=100"`
	Description string             `bson:"description,omitempty" json:"description,omitempty" validate:"max=500"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty" validate:"omitempty,url"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewCategory crea una categoría activa.
func NewCategory(name, description, image string) *Category {
	return &Category{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Image:       strings.TrimSpace(image),
		IsActive:    true,
	}
}
