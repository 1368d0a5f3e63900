package handler

import (
	"errors"
	"net/http"

	"chefcomanda/internal/apierror"
	"chefcomanda/internal/dto"
	"chefcomanda/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MesasHandler struct{ svc service.MesaService }

func NewMesasHandler(svc service.MesaService) *MesasHandler { return &MesasHandler{svc: svc} }

// Criar godoc
// @Summary Cadastra uma nova mesa
// @Tags mesas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarMesaRequest true "Número e capacidade"
// @Success 201 {object} dto.MesaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/mesas [post]
func (h *MesasHandler) Criar(c *gin.Context) {
	var req dto.CriarMesaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Lista as mesas do salão com status ao vivo
// @Tags mesas
// @Produce json
// @Security BearerAuth
// @Param incluir_inativas query bool false "Inclui mesas desativadas"
// @Success 200 {array} dto.MesaResponse
// @Router /v1/mesas [get]
func (h *MesasHandler) Listar(c *gin.Context) {
	incluirInativas := c.Query("incluir_inativas") == "true"
	resp, err := h.svc.Listar(c.Request.Context(), incluirInativas)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar mesas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Buscar godoc
// @Summary Busca uma mesa pelo ID
// @Tags mesas
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID da mesa"
// @Success 200 {object} dto.MesaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/mesas/{id} [get]
func (h *MesasHandler) Buscar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Buscar(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Mesa não encontrada"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Atualizar godoc
// @Summary Atualiza capacidade ou status manual da mesa
// @Description Só aceita os status manuais livre, reservada e manutencao. Os
// status ocupada e aguardando_pagamento são controlados pelo ciclo de vida da comanda.
// @Tags mesas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID da mesa"
// @Param body body dto.AtualizarMesaRequest true "Campos a atualizar"
// @Success 200 {object} dto.MesaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/mesas/{id} [put]
func (h *MesasHandler) Atualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.AtualizarMesaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Mesa não encontrada"))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Desativar godoc
// @Summary Desativa uma mesa (soft delete)
// @Tags mesas
// @Security BearerAuth
// @Param id path string true "UUID da mesa"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/mesas/{id} [delete]
func (h *MesasHandler) Desativar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Desativar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Reativar godoc
// @Summary Reativa uma mesa desativada
// @Tags mesas
// @Security BearerAuth
// @Param id path string true "UUID da mesa"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/mesas/{id}/reativar [patch]
func (h *MesasHandler) Reativar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Reativar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
