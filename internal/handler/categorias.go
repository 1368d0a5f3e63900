package handler

import (
	"net/http"

	"chefcomanda/internal/apierror"
	"chefcomanda/internal/dto"
	"chefcomanda/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CategoriasHandler struct{ svc service.CategoriaService }

func NewCategoriasHandler(svc service.CategoriaService) *CategoriasHandler {
	return &CategoriasHandler{svc: svc}
}

// Criar godoc
// @Summary Cadastra uma nova categoria do cardápio
// @Tags categorias
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarCategoriaRequest true "Dados da categoria"
// @Success 201 {object} dto.CategoriaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/categorias [post]
func (h *CategoriasHandler) Criar(c *gin.Context) {
	var req dto.CriarCategoriaRequest
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
// @Summary Lista as categorias ativas
// @Tags categorias
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CategoriaResponse
// @Router /v1/categorias [get]
func (h *CategoriasHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar categorias"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Atualizar godoc
// @Summary Atualiza uma categoria
// @Tags categorias
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID da categoria"
// @Param body body dto.AtualizarCategoriaRequest true "Campos a atualizar"
// @Success 200 {object} dto.CategoriaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/categorias/{id} [put]
func (h *CategoriasHandler) Atualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.AtualizarCategoriaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Desativar godoc
// @Summary Desativa uma categoria sem produtos ativos
// @Tags categorias
// @Security BearerAuth
// @Param id path string true "UUID da categoria"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/categorias/{id} [delete]
func (h *CategoriasHandler) Desativar(c *gin.Context) {
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
