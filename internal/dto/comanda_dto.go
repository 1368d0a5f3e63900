package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// AdicionarItemRequest adds one line to a comanda. When ComandaID is empty and
// MesaID is set, the lifecycle service creates the comanda implicitly if the
// mesa has no open one.
type AdicionarItemRequest struct {
	MesaID     *string `json:"mesa_id"    validate:"omitempty,uuid"`
	ComandaID  *string `json:"comanda_id" validate:"omitempty,uuid"`
	ProdutoID  string  `json:"produto_id" validate:"required,uuid"`
	Quantidade int     `json:"quantidade" validate:"required,min=1"`
	Observacao *string `json:"observacao" validate:"omitempty,max=300"`
}

type EnviarCozinhaRequest struct {
	ItemIDs []string `json:"item_ids" validate:"required,min=1,dive,uuid"`
}

type CancelarItemRequest struct {
	Motivo string `json:"motivo" validate:"required,min=3"`
}

type CancelarComandaRequest struct {
	Motivo string `json:"motivo" validate:"required,min=3"`
}

// ComandaFilter is bound from the query string of GET /v1/comandas.
type ComandaFilter struct {
	Status string `form:"status"` // aberta | em_preparo | pronta_para_fechar | fechada | cancelada | all
	Data   string `form:"data"`   // YYYY-MM-DD; empty = today
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ComandaItemResponse struct {
	ID             string          `json:"id"`
	Produto        string          `json:"produto"`
	Categoria      string          `json:"categoria"`
	Quantidade     int             `json:"quantidade"`
	PrecoUnitario  decimal.Decimal `json:"preco_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Status         string          `json:"status"`
	EnviadoCozinha bool            `json:"enviado_cozinha"`
	Observacao     *string         `json:"observacao,omitempty"`
}

type ComandaResponse struct {
	ID         string                `json:"id"`
	Numero     int                   `json:"numero"`
	MesaNumero *int                  `json:"mesa_numero,omitempty"`
	Status     string                `json:"status"`
	ValorTotal decimal.Decimal       `json:"valor_total"`
	Itens      []ComandaItemResponse `json:"itens"`
	AbertaEm   string                `json:"aberta_em"`
	FechadaEm  *string               `json:"fechada_em,omitempty"`
}

type ComandaListResponse struct {
	Data  []ComandaResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// ─── Kitchen board ───────────────────────────────────────────────────────────

// CozinhaItem is one card on the kitchen board.
type CozinhaItem struct {
	ItemID          string  `json:"item_id"`
	ComandaNumero   int     `json:"comanda_numero"`
	Produto         string  `json:"produto"`
	Quantidade      int     `json:"quantidade"`
	Status          string  `json:"status"`
	TempoPreparoMin int     `json:"tempo_preparo_min"`
	Observacao      *string `json:"observacao,omitempty"`
	EnviadoEm       string  `json:"enviado_em"`
}

// CozinhaCategoria groups board items by product category within a mesa.
type CozinhaCategoria struct {
	Categoria string        `json:"categoria"`
	Itens     []CozinhaItem `json:"itens"`
}

// CozinhaMesa groups board items by mesa. MesaNumero is 0 for stand-alone
// comandas (balcão).
type CozinhaMesa struct {
	MesaNumero int                `json:"mesa_numero"`
	Categorias []CozinhaCategoria `json:"categorias"`
}

type CozinhaBoardResponse struct {
	Mesas []CozinhaMesa `json:"mesas"`
}
