package dto

import "github.com/shopspring/decimal"

// ─── Filter / Request DTOs ───────────────────────────────────────────────────

// ProdutoFilter is bound from the query string of GET /v1/produtos.
type ProdutoFilter struct {
	Nome        string `form:"nome"`
	CategoriaID string `form:"categoria_id"`
	// Ativo: "false" = inativos, "all" = todos, anything else = ativos (default)
	Ativo string `form:"ativo"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CriarProdutoRequest struct {
	Nome            string          `json:"nome"              validate:"required,min=2,max=150"`
	Descricao       *string         `json:"descricao"`
	CategoriaID     string          `json:"categoria_id"      validate:"required,uuid"`
	Preco           decimal.Decimal `json:"preco"             validate:"required"`
	TempoPreparoMin int             `json:"tempo_preparo_min" validate:"omitempty,min=1,max=240"`
}

type AtualizarProdutoRequest struct {
	Nome            string           `json:"nome"              validate:"omitempty,min=2,max=150"`
	Descricao       *string          `json:"descricao"`
	CategoriaID     string           `json:"categoria_id"      validate:"omitempty,uuid"`
	Preco           *decimal.Decimal `json:"preco"`
	TempoPreparoMin int              `json:"tempo_preparo_min" validate:"omitempty,min=1,max=240"`
}

type CriarCategoriaRequest struct {
	Nome      string  `json:"nome" validate:"required,min=2,max=100"`
	Descricao *string `json:"descricao"`
}

type AtualizarCategoriaRequest struct {
	Nome      string  `json:"nome" validate:"omitempty,min=2,max=100"`
	Descricao *string `json:"descricao"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProdutoResponse struct {
	ID              string          `json:"id"`
	Nome            string          `json:"nome"`
	Descricao       *string         `json:"descricao,omitempty"`
	Categoria       string          `json:"categoria"`
	CategoriaID     string          `json:"categoria_id"`
	Preco           decimal.Decimal `json:"preco"`
	TempoPreparoMin int             `json:"tempo_preparo_min"`
	Ativo           bool            `json:"ativo"`
}

type ProdutoListResponse struct {
	Data  []ProdutoResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

type CategoriaResponse struct {
	ID        string  `json:"id"`
	Nome      string  `json:"nome"`
	Descricao *string `json:"descricao,omitempty"`
	Ativo     bool    `json:"ativo"`
}
