package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/diyath7/small-shop-system/internal/apierror"
	"github.com/diyath7/small-shop-system/internal/dto"
	"github.com/diyath7/small-shop-system/internal/service"
)

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login godoc
// @Summary Exchange credentials for a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		// Bad credentials are a 401, not a 400.
		var validation *service.ValidationError
		if errors.As(err, &validation) {
			c.JSON(http.StatusUnauthorized, apierror.New(validation.Error()))
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
