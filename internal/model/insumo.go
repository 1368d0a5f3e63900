package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Insumo is a raw material consumed by produtos (via ProdutoInsumo).
type Insumo struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome          string          `gorm:"uniqueIndex;not null"`
	UnidadeMedida string          `gorm:"not null;default:'un'"` // un | kg | g | l | ml
	EstoqueAtual  decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	EstoqueMinimo decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	CustoUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Ativo         bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Insumo) TableName() string { return "insumos" }

// ProdutoInsumo links a produto to the insumos it consumes per unit sold.
type ProdutoInsumo struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProdutoID  uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_produto_insumo;not null"`
	InsumoID   uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_produto_insumo;not null"`
	Quantidade decimal.Decimal `gorm:"type:decimal(12,3);not null"`

	Produto *Produto `gorm:"foreignKey:ProdutoID"`
	Insumo  *Insumo  `gorm:"foreignKey:InsumoID"`
}

func (ProdutoInsumo) TableName() string { return "produto_insumos" }

// EntradaEstoque records stock received (purchases, adjustments in).
// Entries are immutable — corrections create inverse SaidaEstoque rows.
type EntradaEstoque struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InsumoID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	Quantidade    decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	CustoUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Motivo        string          `gorm:"not null;default:'compra'"` // compra | ajuste | devolucao
	Observacao    *string
	CreatedAt     time.Time

	Insumo *Insumo `gorm:"foreignKey:InsumoID"`
}

func (EntradaEstoque) TableName() string { return "entradas_estoque" }

// SaidaEstoque records stock consumed. Tipo "venda" rows are created
// automatically inside the sale transaction; ReferenciaID links the venda.
type SaidaEstoque struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InsumoID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	Quantidade   decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Tipo         string          `gorm:"not null"` // venda | perda | ajuste
	Motivo       *string
	ReferenciaID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time

	Insumo *Insumo `gorm:"foreignKey:InsumoID"`
}

func (SaidaEstoque) TableName() string { return "saidas_estoque" }
