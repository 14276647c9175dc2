package handler

import (
	"net/http"

	"github.com/kevinpineda22/backend-Dotacion/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Envelope{Error: "JSON inválido", Details: err.Error()})
		return false
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Envelope{Error: "Error de validación", Details: err.Error()})
		return false
	}
	return true
}

// respondError translates any error through the taxonomy envelope.
func respondError(c *gin.Context, err error) {
	status, env := apierror.ToEnvelope(err)
	c.JSON(status, env)
}

// parseID extracts and validates the :id route param. Returns uuid.Nil and
// writes the response when invalid.
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.Envelope{Error: "ID inválido"})
		return uuid.Nil, false
	}
	return id, true
}
