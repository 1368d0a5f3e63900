package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarInsumoRequest struct {
	Nome          string          `json:"nome"           validate:"required,min=2,max=150"`
	UnidadeMedida string          `json:"unidade_medida" validate:"required,oneof=un kg g l ml"`
	EstoqueMinimo decimal.Decimal `json:"estoque_minimo" validate:"min=0"`
	CustoUnitario decimal.Decimal `json:"custo_unitario" validate:"min=0"`
}

type RegistrarEntradaRequest struct {
	InsumoID      string          `json:"insumo_id"      validate:"required,uuid"`
	Quantidade    decimal.Decimal `json:"quantidade"     validate:"required"`
	CustoUnitario decimal.Decimal `json:"custo_unitario" validate:"min=0"`
	Motivo        string          `json:"motivo"         validate:"required,oneof=compra ajuste devolucao"`
	Observacao    *string         `json:"observacao"`
}

type RegistrarSaidaRequest struct {
	InsumoID   string          `json:"insumo_id"  validate:"required,uuid"`
	Quantidade decimal.Decimal `json:"quantidade" validate:"required"`
	Tipo       string          `json:"tipo"       validate:"required,oneof=perda ajuste"`
	Motivo     *string         `json:"motivo"`
}

// VincularInsumoRequest links an insumo consumption to a produto.
type VincularInsumoRequest struct {
	ProdutoID  string          `json:"produto_id" validate:"required,uuid"`
	InsumoID   string          `json:"insumo_id"  validate:"required,uuid"`
	Quantidade decimal.Decimal `json:"quantidade" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type InsumoResponse struct {
	ID            string          `json:"id"`
	Nome          string          `json:"nome"`
	UnidadeMedida string          `json:"unidade_medida"`
	EstoqueAtual  decimal.Decimal `json:"estoque_atual"`
	EstoqueMinimo decimal.Decimal `json:"estoque_minimo"`
	CustoUnitario decimal.Decimal `json:"custo_unitario"`
	Ativo         bool            `json:"ativo"`
}

// AlertaEstoqueResponse flags insumos at or below their minimum stock level.
type AlertaEstoqueResponse struct {
	InsumoID      string          `json:"insumo_id"`
	Nome          string          `json:"nome"`
	EstoqueAtual  decimal.Decimal `json:"estoque_atual"`
	EstoqueMinimo decimal.Decimal `json:"estoque_minimo"`
	UnidadeMedida string          `json:"unidade_medida"`
}
