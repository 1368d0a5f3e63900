package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// FinalizarVendaRequest closes a comanda through the point-of-sale flow.
type FinalizarVendaRequest struct {
	ComandaID      string          `json:"comanda_id"      validate:"required,uuid"`
	FormaPagamento string          `json:"forma_pagamento" validate:"required,oneof=dinheiro pix cartao_credito cartao_debito"`
	ValorDesconto  decimal.Decimal `json:"valor_desconto"  validate:"min=0"`
	// ClienteEmail: optional — when present, the email worker mails the recibo PDF.
	ClienteEmail *string `json:"cliente_email" validate:"omitempty,email"`
}

// VendaFilter is bound from the query string of GET /v1/vendas.
type VendaFilter struct {
	Data    string `form:"data"`     // YYYY-MM-DD; empty = today
	TurnoID string `form:"turno_id"` // optional
	Page    int    `form:"page,default=1"   validate:"min=1"`
	Limit   int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type VendaResponse struct {
	ID             string          `json:"id"`
	ComandaID      string          `json:"comanda_id"`
	ComandaNumero  int             `json:"comanda_numero"`
	TurnoID        string          `json:"turno_id"`
	ValorBruto     decimal.Decimal `json:"valor_bruto"`
	ValorDesconto  decimal.Decimal `json:"valor_desconto"`
	ValorFinal     decimal.Decimal `json:"valor_final"`
	FormaPagamento string          `json:"forma_pagamento"`
	FiscalStatus   string          `json:"fiscal_status"`
	CreatedAt      string          `json:"created_at"`
}

type VendaListResponse struct {
	Data  []VendaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
