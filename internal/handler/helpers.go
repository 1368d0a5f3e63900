package handler

import (
	"net/http"
	"reflect"

	"chefcomanda/internal/apierror"
	"chefcomanda/internal/middleware"
	"chefcomanda/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// operadorFrom builds the acting identity out of the JWT claims. The tipo
// claim decides which of the two id fields is set.
func operadorFrom(c *gin.Context) service.Operador {
	claims := middleware.GetClaims(c)
	id, _ := uuid.Parse(claims.UserID)
	if claims.Tipo == service.TipoFuncionario {
		return service.Operador{FuncionarioID: &id}
	}
	return service.Operador{PerfilID: &id}
}
