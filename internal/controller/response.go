package controller

import (
	"errors"
	"net/http"

	"fulfillment-service/internal/dto"
	"fulfillment-service/internal/model"
	"fulfillment-service/internal/repository"
	"fulfillment-service/internal/service"

	"github.com/gin-gonic/gin"
)

// respondError traduce errores de servicio/repositorio a status HTTP + sobre.
// resource se usa en los mensajes ("Category not found").
func respondError(c *gin.Context, err error, resource string) {
	_ = c.Error(err)

	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		env := dto.Fail("Validation failed", err)
		env.Details = verr.Violations
		c.JSON(http.StatusBadRequest, env)
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.Fail(resource+" not found", err))
	case errors.Is(err, repository.ErrDuplicate):
		c.JSON(http.StatusConflict, dto.Fail(resource+" already exists", err))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.Fail("You cannot access this "+resource, err))
	default:
		c.JSON(http.StatusInternalServerError, dto.Fail("Error processing "+resource, err))
	}
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, dto.Fail("Invalid request body", err))
}

// actor devuelve el usuario que dejó el AuthMiddleware en el contexto.
func actor(c *gin.Context) (string, bool) {
	perms := c.GetStringSlice("userPermissions")
	return c.GetString("userID"), service.IsAdmin(perms)
}
