package handler

import (
	"net/http"
	"strconv"

	"chefcomanda/internal/apierror"
	"chefcomanda/internal/service"

	"github.com/gin-gonic/gin"
)

type RelatoriosHandler struct{ svc service.RelatorioService }

func NewRelatoriosHandler(svc service.RelatorioService) *RelatoriosHandler {
	return &RelatoriosHandler{svc: svc}
}

// Diario godoc
// @Summary Relatório consolidado de um dia
// @Tags relatorios
// @Produce json
// @Security BearerAuth
// @Param data query string false "Data YYYY-MM-DD (default: hoje)"
// @Success 200 {object} dto.RelatorioDiarioResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/relatorios/diario [get]
func (h *RelatoriosHandler) Diario(c *gin.Context) {
	resp, err := h.svc.Diario(c.Request.Context(), c.Query("data"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ProdutosMaisVendidos godoc
// @Summary Ranking de produtos mais vendidos no dia
// @Tags relatorios
// @Produce json
// @Security BearerAuth
// @Param data query string false "Data YYYY-MM-DD (default: hoje)"
// @Param limit query int false "Tamanho do ranking (default 10)"
// @Success 200 {array} dto.ProdutoMaisVendido
// @Failure 400 {object} apierror.APIError
// @Router /v1/relatorios/produtos-mais-vendidos [get]
func (h *RelatoriosHandler) ProdutosMaisVendidos(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 100 {
		limit = 10
	}
	resp, err := h.svc.ProdutosMaisVendidos(c.Request.Context(), c.Query("data"), limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
