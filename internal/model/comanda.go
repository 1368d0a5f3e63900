package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Comanda statuses.
const (
	ComandaAberta           = "aberta"
	ComandaEmPreparo        = "em_preparo"
	ComandaProntaParaFechar = "pronta_para_fechar"
	ComandaFechada          = "fechada"
	ComandaCancelada        = "cancelada"
)

// ComandaItem statuses. Forward-only: pendente → aguardando → preparando →
// pronto → entregue; cancelado is reachable from any pre-entregue state.
const (
	ItemPendente   = "pendente"
	ItemAguardando = "aguardando"
	ItemPreparando = "preparando"
	ItemPronto     = "pronto"
	ItemEntregue   = "entregue"
	ItemCancelado  = "cancelado"
)

// Comanda is an order ticket associated with a mesa or a stand-alone tab.
// ValorTotal is derived — always SUM(quantidade × preco_unitario) over
// non-cancelled items; the lifecycle service recomputes it inside the same
// transaction as every item mutation.
type Comanda struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// Numero is assigned from a PostgreSQL sequence — display number for staff
	Numero int        `gorm:"uniqueIndex;not null"`
	MesaID *uuid.UUID `gorm:"type:uuid;index"`
	// Operator is a dual identity: exactly one of PerfilID / FuncionarioID is set
	PerfilID      *uuid.UUID      `gorm:"type:uuid;index"`
	FuncionarioID *uuid.UUID      `gorm:"type:uuid;index"`
	Status        string          `gorm:"type:varchar(30);not null;default:'aberta'"`
	ValorTotal    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	AbertaEm      time.Time
	FechadaEm     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Mesa  *Mesa         `gorm:"foreignKey:MesaID"`
	Itens []ComandaItem `gorm:"foreignKey:ComandaID"`
}

func (Comanda) TableName() string { return "comandas" }

// ComandaItem is one order line. PrecoUnitario is a snapshot of the product
// price at add time, decoupled from later catalog changes.
type ComandaItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ComandaID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProdutoID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	Quantidade    int             `gorm:"not null"`
	PrecoUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Status        string          `gorm:"type:varchar(20);not null;default:'pendente'"`
	// EnviadoCozinha gates kitchen-board visibility, separate from Status
	EnviadoCozinha bool `gorm:"not null;default:false"`
	Observacao     *string
	// Cancellation audit — required when Status becomes cancelado
	MotivoCancelamento *string
	CanceladoPor       *uuid.UUID `gorm:"type:uuid"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Produto *Produto `gorm:"foreignKey:ProdutoID"`
	Comanda *Comanda `gorm:"foreignKey:ComandaID"`
}

func (ComandaItem) TableName() string { return "comanda_itens" }
