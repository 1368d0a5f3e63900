package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirTurnoRequest struct {
	ValorAbertura decimal.Decimal `json:"valor_abertura" validate:"min=0"`
}

type FecharTurnoRequest struct {
	ValorFechamento decimal.Decimal `json:"valor_fechamento" validate:"min=0"`
	Observacoes     *string         `json:"observacoes"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type TurnoResponse struct {
	ID              string           `json:"id"`
	Operador        string           `json:"operador"`
	ValorAbertura   decimal.Decimal  `json:"valor_abertura"`
	ValorFechamento *decimal.Decimal `json:"valor_fechamento,omitempty"`
	Ativo           bool             `json:"ativo"`
	Observacoes     *string          `json:"observacoes,omitempty"`
	AbertoEm        string           `json:"aberto_em"`
	FechadoEm       *string          `json:"fechado_em,omitempty"`
}

// ResumoTurnoResponse is the closing summary: totals per payment method plus
// the expected cash amount (abertura + vendas em dinheiro).
type ResumoTurnoResponse struct {
	Turno            TurnoResponse              `json:"turno"`
	TotalVendas      decimal.Decimal            `json:"total_vendas"`
	QtdVendas        int                        `json:"qtd_vendas"`
	PorFormaPagto    map[string]decimal.Decimal `json:"por_forma_pagamento"`
	DinheiroEsperado decimal.Decimal            `json:"dinheiro_esperado"`
}
