package handler

import (
	"errors"
	"net/http"

	"chefcomanda/internal/apierror"
	"chefcomanda/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CozinhaHandler struct{ svc service.ComandaService }

func NewCozinhaHandler(svc service.ComandaService) *CozinhaHandler {
	return &CozinhaHandler{svc: svc}
}

// Board godoc
// @Summary Painel da cozinha agrupado por mesa e categoria
// @Description Lista os itens em produção (aguardando, preparando, pronto),
// agrupados por mesa e, dentro da mesa, por categoria do produto.
// @Tags cozinha
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CozinhaBoardResponse
// @Router /v1/cozinha/board [get]
func (h *CozinhaHandler) Board(c *gin.Context) {
	resp, err := h.svc.CozinhaBoard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao montar o painel da cozinha"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AvancarItem godoc
// @Summary Avança um item para o próximo status de preparo
// @Description Transições estritamente sequenciais: aguardando → preparando → pronto → entregue.
// @Tags cozinha
// @Produce json
// @Security BearerAuth
// @Param item_id path string true "UUID do item"
// @Success 200 {object} dto.ComandaItemResponse
// @Failure 400 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/cozinha/itens/{item_id}/avancar [post]
func (h *CozinhaHandler) AvancarItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.AvancarItem(c.Request.Context(), itemID)
	if err != nil {
		if errors.Is(err, service.ErrTransicaoInvalida) || errors.Is(err, service.ErrComandaFechada) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
