package handler

import (
	"net/http"

	"chefcomanda/internal/apierror"
	"chefcomanda/internal/dto"
	"chefcomanda/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FuncionariosHandler struct{ svc service.AuthService }

func NewFuncionariosHandler(svc service.AuthService) *FuncionariosHandler {
	return &FuncionariosHandler{svc: svc}
}

// Criar godoc
// @Summary Cadastra um novo funcionário
// @Tags funcionarios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarFuncionarioRequest true "Dados do funcionário"
// @Success 201 {object} dto.FuncionarioResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/funcionarios [post]
func (h *FuncionariosHandler) Criar(c *gin.Context) {
	var req dto.CriarFuncionarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CriarFuncionario(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Lista funcionários
// @Tags funcionarios
// @Produce json
// @Security BearerAuth
// @Param incluir_inativos query bool false "Inclui funcionários desativados"
// @Success 200 {array} dto.FuncionarioResponse
// @Router /v1/funcionarios [get]
func (h *FuncionariosHandler) Listar(c *gin.Context) {
	incluirInativos := c.Query("incluir_inativos") == "true"
	resp, err := h.svc.ListarFuncionarios(c.Request.Context(), incluirInativos)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar funcionários"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Atualizar godoc
// @Summary Atualiza nome, papel ou senha de um funcionário
// @Tags funcionarios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID do funcionário"
// @Param body body dto.AtualizarFuncionarioRequest true "Campos a atualizar"
// @Success 200 {object} dto.FuncionarioResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/funcionarios/{id} [put]
func (h *FuncionariosHandler) Atualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.AtualizarFuncionarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AtualizarFuncionario(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Desativar godoc
// @Summary Desativa um funcionário (soft delete)
// @Tags funcionarios
// @Security BearerAuth
// @Param id path string true "UUID do funcionário"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/funcionarios/{id} [delete]
func (h *FuncionariosHandler) Desativar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.DesativarFuncionario(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Reativar godoc
// @Summary Reativa um funcionário desativado
// @Tags funcionarios
// @Security BearerAuth
// @Param id path string true "UUID do funcionário"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/funcionarios/{id}/reativar [patch]
func (h *FuncionariosHandler) Reativar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.ReativarFuncionario(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
