package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Turno is one operator's cash-register session.
// Invariant: at most one turno with Ativo=true at any time — enforced by the
// service on open and backed by a partial unique index (see infra.NewDatabase).
type Turno struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// Operator is a dual identity: exactly one of PerfilID / FuncionarioID is set
	PerfilID        *uuid.UUID       `gorm:"type:uuid;index"`
	FuncionarioID   *uuid.UUID       `gorm:"type:uuid;index"`
	ValorAbertura   decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	ValorFechamento *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Ativo           bool             `gorm:"not null;default:true"`
	Observacoes     *string
	AbertoEm        time.Time
	FechadoEm       *time.Time

	Vendas []Venda `gorm:"foreignKey:TurnoID"`
}

func (Turno) TableName() string { return "turnos" }
