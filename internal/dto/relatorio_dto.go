package dto

import "github.com/shopspring/decimal"

// ─── Response DTOs ───────────────────────────────────────────────────────────

// RelatorioDiarioResponse summarizes one day of operation.
type RelatorioDiarioResponse struct {
	Data            string                     `json:"data"` // YYYY-MM-DD
	TotalVendas     decimal.Decimal            `json:"total_vendas"`
	QtdVendas       int                        `json:"qtd_vendas"`
	TicketMedio     decimal.Decimal            `json:"ticket_medio"`
	PorFormaPagto   map[string]decimal.Decimal `json:"por_forma_pagamento"`
	ComandasAbertas int                        `json:"comandas_abertas"`
}

// ProdutoMaisVendido is one row of the top-products report.
type ProdutoMaisVendido struct {
	ProdutoID  string          `json:"produto_id"`
	Nome       string          `json:"nome"`
	Quantidade int             `json:"quantidade"`
	Faturado   decimal.Decimal `json:"faturado"`
}
