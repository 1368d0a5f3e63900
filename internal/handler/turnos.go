package handler

import (
	"errors"
	"net/http"
	"strconv"

	"chefcomanda/internal/apierror"
	"chefcomanda/internal/dto"
	"chefcomanda/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TurnosHandler struct{ svc service.TurnoService }

func NewTurnosHandler(svc service.TurnoService) *TurnosHandler { return &TurnosHandler{svc: svc} }

// Abrir godoc
// @Summary Abre um novo turno de caixa
// @Description No máximo um turno ativo por vez; abrir com outro ativo é erro.
// @Tags turnos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AbrirTurnoRequest true "Valor de abertura"
// @Success 201 {object} dto.TurnoResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/turnos/abrir [post]
func (h *TurnosHandler) Abrir(c *gin.Context) {
	var req dto.AbrirTurnoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Abrir(c.Request.Context(), operadorFrom(c), req)
	if err != nil {
		if errors.Is(err, service.ErrTurnoJaAberto) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Fechar godoc
// @Summary Fecha o turno ativo
// @Description Bloqueado enquanto houver comandas abertas. Retorna o resumo do
// turno com totais por forma de pagamento e o dinheiro esperado na gaveta.
// @Tags turnos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.FecharTurnoRequest true "Valor contado no fechamento"
// @Success 200 {object} dto.ResumoTurnoResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/turnos/fechar [post]
func (h *TurnosHandler) Fechar(c *gin.Context) {
	var req dto.FecharTurnoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Fechar(c.Request.Context(), operadorFrom(c), req)
	if err != nil {
		if errors.Is(err, service.ErrComandasAbertas) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Atual godoc
// @Summary Turno ativo no momento
// @Tags turnos
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.TurnoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/turnos/atual [get]
func (h *TurnosHandler) Atual(c *gin.Context) {
	resp, err := h.svc.Atual(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Não há turno aberto"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Resumo godoc
// @Summary Resumo financeiro de um turno
// @Tags turnos
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID do turno"
// @Success 200 {object} dto.ResumoTurnoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/turnos/{id}/resumo [get]
func (h *TurnosHandler) Resumo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Resumo(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Turno não encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Historico godoc
// @Summary Histórico paginado de turnos
// @Tags turnos
// @Produce json
// @Security BearerAuth
// @Param page query int false "Página (default 1)"
// @Param limit query int false "Registros por página (default 20)"
// @Success 200 {object} map[string]interface{}
// @Router /v1/turnos [get]
func (h *TurnosHandler) Historico(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	turnos, total, err := h.svc.Historico(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar turnos"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  turnos,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}
