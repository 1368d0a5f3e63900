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

type ComandasHandler struct{ svc service.ComandaService }

func NewComandasHandler(svc service.ComandaService) *ComandasHandler {
	return &ComandasHandler{svc: svc}
}

// AdicionarItem godoc
// @Summary Lança um item em uma comanda
// @Description Quando comanda_id vem vazio e mesa_id preenchido, abre a comanda
// implicitamente se a mesa não tiver uma aberta. O preço do produto é congelado
// no momento do lançamento.
// @Tags comandas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AdicionarItemRequest true "Item a lançar"
// @Success 201 {object} dto.ComandaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/comandas/itens [post]
func (h *ComandasHandler) AdicionarItem(c *gin.Context) {
	var req dto.AdicionarItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AdicionarItem(c.Request.Context(), operadorFrom(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// EnviarParaCozinha godoc
// @Summary Envia itens pendentes da comanda para a cozinha
// @Tags comandas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID da comanda"
// @Param body body dto.EnviarCozinhaRequest true "IDs dos itens"
// @Success 200 {object} dto.ComandaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/comandas/{id}/enviar [post]
func (h *ComandasHandler) EnviarParaCozinha(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.EnviarCozinhaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.EnviarParaCozinha(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrComandaNaoEncontrada) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CancelarItem godoc
// @Summary Cancela um item da comanda
// @Description Exige motivo. Itens entregues ou de comanda fechada são imutáveis.
// @Tags comandas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param item_id path string true "UUID do item"
// @Param body body dto.CancelarItemRequest true "Motivo do cancelamento"
// @Success 200 {object} dto.ComandaResponse
// @Failure 400 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/comandas/itens/{item_id} [delete]
func (h *ComandasHandler) CancelarItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.CancelarItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CancelarItem(c.Request.Context(), operadorFrom(c), itemID, req.Motivo)
	if err != nil {
		if errors.Is(err, service.ErrComandaFechada) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MarcarProntaParaFechar godoc
// @Summary Marca a comanda como pronta para fechar
// @Description A mesa passa para aguardando_pagamento até o caixa finalizar a venda.
// @Tags comandas
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID da comanda"
// @Success 200 {object} dto.ComandaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/comandas/{id}/pronta-para-fechar [post]
func (h *ComandasHandler) MarcarProntaParaFechar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.MarcarProntaParaFechar(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrComandaNaoEncontrada) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancelar godoc
// @Summary Cancela a comanda inteira
// @Description Cancela todos os itens não entregues e libera a mesa. Exige motivo.
// @Tags comandas
// @Accept json
// @Security BearerAuth
// @Param id path string true "UUID da comanda"
// @Param body body dto.CancelarComandaRequest true "Motivo do cancelamento"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/comandas/{id} [delete]
func (h *ComandasHandler) Cancelar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.CancelarComandaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.CancelarComanda(c.Request.Context(), operadorFrom(c), id, req.Motivo); err != nil {
		if errors.Is(err, service.ErrComandaNaoEncontrada) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Buscar godoc
// @Summary Busca uma comanda pelo ID
// @Tags comandas
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID da comanda"
// @Success 200 {object} dto.ComandaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/comandas/{id} [get]
func (h *ComandasHandler) Buscar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Buscar(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Comanda não encontrada"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar godoc
// @Summary Lista comandas com filtro por status e data
// @Tags comandas
// @Produce json
// @Security BearerAuth
// @Param status query string false "aberta | em_preparo | pronta_para_fechar | fechada | cancelada | all"
// @Param data query string false "Data YYYY-MM-DD (default: hoje)"
// @Param page query int false "Página (default 1)"
// @Param limit query int false "Registros por página (default 50)"
// @Success 200 {object} dto.ComandaListResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/comandas [get]
func (h *ComandasHandler) Listar(c *gin.Context) {
	var filter dto.ComandaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar comandas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
