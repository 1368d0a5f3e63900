package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Produto is a catalog entry. Preco is copied into ComandaItem at order time.
type Produto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome        string    `gorm:"index;not null"`
	Descricao   *string
	CategoriaID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Preco       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// TempoPreparoMin is the kitchen prep-time estimate in minutes
	TempoPreparoMin int  `gorm:"not null;default:15"`
	Ativo           bool `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Categoria *Categoria      `gorm:"foreignKey:CategoriaID"`
	Insumos   []ProdutoInsumo `gorm:"foreignKey:ProdutoID"`
}

func (Produto) TableName() string { return "produtos" }
