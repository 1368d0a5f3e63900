package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Accepted payment methods.
const (
	PagamentoDinheiro      = "dinheiro"
	PagamentoPix           = "pix"
	PagamentoCartaoCredito = "cartao_credito"
	PagamentoCartaoDebito  = "cartao_debito"
)

// Venda fiscal statuses — NFC-e emission runs asynchronously after the sale
// commits; a failed emission never invalidates the sale itself.
const (
	FiscalPendente  = "pendente"
	FiscalEmitida   = "emitida"
	FiscalRejeitada = "rejeitada"
	FiscalErro      = "erro"
)

// Venda is a finalized payment event closing a comanda against the active
// turno. Created once, immutable thereafter.
type Venda struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ComandaID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	TurnoID   uuid.UUID `gorm:"type:uuid;index;not null"`
	// Operator is a dual identity: exactly one of PerfilID / FuncionarioID is set
	PerfilID       *uuid.UUID      `gorm:"type:uuid"`
	FuncionarioID  *uuid.UUID      `gorm:"type:uuid"`
	ValorBruto     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ValorDesconto  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ValorFinal     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FormaPagamento string          `gorm:"type:varchar(20);not null"` // dinheiro | pix | cartao_credito | cartao_debito
	FiscalStatus   string          `gorm:"type:varchar(20);not null;default:'pendente'"`
	// ChaveNFCe is the access key returned by the fiscal sidecar
	ChaveNFCe *string `gorm:"type:varchar(50);column:chave_nfce"`
	// PDFPath is relative to PDF_STORAGE_PATH env var
	PDFPath *string `gorm:"column:pdf_path"`
	// Retry fields — used by retry_cron to re-attempt failed NFC-e emissions
	RetryCount  int        `gorm:"not null;default:0"`
	NextRetryAt *time.Time `gorm:"column:next_retry_at"`
	LastError   *string
	CreatedAt   time.Time

	Comanda *Comanda `gorm:"foreignKey:ComandaID"`
	Turno   *Turno   `gorm:"foreignKey:TurnoID"`
}

func (Venda) TableName() string { return "vendas" }
