package handler

import (
	"errors"
	"net/http"

	"chefcomanda/internal/apierror"
	"chefcomanda/internal/dto"
	"chefcomanda/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VendasHandler struct{ svc service.VendaService }

func NewVendasHandler(svc service.VendaService) *VendasHandler { return &VendasHandler{svc: svc} }

// Finalizar godoc
// @Summary Finaliza o pagamento de uma comanda
// @Description Registra a venda em transação única: fecha a comanda, libera a
// mesa e baixa os insumos vinculados. A emissão da NFC-e sai assíncrona depois
// do commit.
// @Tags vendas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.FinalizarVendaRequest true "Comanda, forma de pagamento e desconto"
// @Success 201 {object} dto.VendaResponse
// @Failure 400 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/vendas [post]
func (h *VendasHandler) Finalizar(c *gin.Context) {
	var req dto.FinalizarVendaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Finalizar(c.Request.Context(), operadorFrom(c), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrComandaJaFaturada):
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
		case errors.Is(err, service.ErrComandaNaoEncontrada):
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		}
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Buscar godoc
// @Summary Busca uma venda pelo ID
// @Tags vendas
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID da venda"
// @Success 200 {object} dto.VendaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/vendas/{id} [get]
func (h *VendasHandler) Buscar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Buscar(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Venda não encontrada"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar godoc
// @Summary Lista vendas com filtros
// @Tags vendas
// @Produce json
// @Security BearerAuth
// @Param data query string false "Data YYYY-MM-DD (default: hoje)"
// @Param forma_pagamento query string false "dinheiro | pix | cartao_credito | cartao_debito"
// @Param page query int false "Página (default 1)"
// @Param limit query int false "Registros por página (default 50)"
// @Success 200 {object} dto.VendaListResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/vendas [get]
func (h *VendasHandler) Listar(c *gin.Context) {
	var filter dto.VendaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar vendas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
