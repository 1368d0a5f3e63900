package handler

import (
	"net/http"

	"chefcomanda/internal/apierror"
	"chefcomanda/internal/dto"
	"chefcomanda/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EstoqueHandler struct{ svc service.EstoqueService }

func NewEstoqueHandler(svc service.EstoqueService) *EstoqueHandler {
	return &EstoqueHandler{svc: svc}
}

// CriarInsumo godoc
// @Summary Cadastra um novo insumo
// @Tags estoque
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarInsumoRequest true "Dados do insumo"
// @Success 201 {object} dto.InsumoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/estoque/insumos [post]
func (h *EstoqueHandler) CriarInsumo(c *gin.Context) {
	var req dto.CriarInsumoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CriarInsumo(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarInsumos godoc
// @Summary Lista os insumos com saldo atual
// @Tags estoque
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.InsumoResponse
// @Router /v1/estoque/insumos [get]
func (h *EstoqueHandler) ListarInsumos(c *gin.Context) {
	resp, err := h.svc.ListarInsumos(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar insumos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarEntrada godoc
// @Summary Registra entrada de estoque (compra, ajuste, devolução)
// @Tags estoque
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RegistrarEntradaRequest true "Dados da entrada"
// @Success 200 {object} dto.InsumoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/estoque/entradas [post]
func (h *EstoqueHandler) RegistrarEntrada(c *gin.Context) {
	var req dto.RegistrarEntradaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarEntrada(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarSaida godoc
// @Summary Registra saída manual de estoque (perda, ajuste)
// @Description Saídas por venda são automáticas no fechamento da comanda.
// @Tags estoque
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RegistrarSaidaRequest true "Dados da saída"
// @Success 200 {object} dto.InsumoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/estoque/saidas [post]
func (h *EstoqueHandler) RegistrarSaida(c *gin.Context) {
	var req dto.RegistrarSaidaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarSaida(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Alertas godoc
// @Summary Insumos com saldo abaixo do mínimo
// @Tags estoque
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.AlertaEstoqueResponse
// @Router /v1/estoque/alertas [get]
func (h *EstoqueHandler) Alertas(c *gin.Context) {
	resp, err := h.svc.Alertas(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao consultar alertas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VincularInsumo godoc
// @Summary Vincula um insumo a um produto (ficha técnica)
// @Description A quantidade vinculada é baixada do estoque a cada unidade vendida.
// @Tags estoque
// @Accept json
// @Security BearerAuth
// @Param body body dto.VincularInsumoRequest true "Produto, insumo e quantidade"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/estoque/vinculos [post]
func (h *EstoqueHandler) VincularInsumo(c *gin.Context) {
	var req dto.VincularInsumoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.VincularInsumo(c.Request.Context(), req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoverVinculo godoc
// @Summary Remove um vínculo produto-insumo
// @Tags estoque
// @Security BearerAuth
// @Param id path string true "UUID do vínculo"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/estoque/vinculos/{id} [delete]
func (h *EstoqueHandler) RemoverVinculo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.RemoverVinculo(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
