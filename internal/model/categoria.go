package model

import (
	"time"

	"github.com/google/uuid"
)

// Categoria classifies produtos (pratos, bebidas, sobremesas…). The kitchen
// board groups items by mesa then by categoria.
type Categoria struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string    `gorm:"uniqueIndex;not null"`
	Descricao *string
	Ativo     bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Categoria) TableName() string { return "categorias" }
