package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stagehub/stagehub/internal/app/models/dto"
	"github.com/stagehub/stagehub/internal/pkg/auth"
)

// HealthController exposes liveness and token diagnostics endpoints
type HealthController struct {
	jwtService *auth.JWTService
}

// NewHealthController creates a new HealthController
func NewHealthController(jwtService *auth.JWTService) *HealthController {
	return &HealthController{jwtService: jwtService}
}

// Ping reports liveness
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} dto.APIResponse "Service is up"
// @Router /health/ping [get]
func (c *HealthController) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("pong"))
}

// CheckToken reports the state of the presented bearer token
// @Summary Inspect the presented token
// @Description Validates the Authorization header token and reports whether it is valid, expired or invalid, with its claims when valid
// @Tags health
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dto.APIResponse{data=dto.TokenCheckResponse} "Token is valid"
// @Failure 401 {object} dto.ErrorResponse "Token missing, expired or invalid"
// @Router /health/check-token [get]
func (c *HealthController) CheckToken(ctx *gin.Context) {
	tokenString, err := auth.ExtractBearerToken(ctx.GetHeader("Authorization"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Missing or malformed Authorization header")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	claims, err := c.jwtService.ValidateToken(tokenString)
	if err != nil {
		code := dto.ErrorCodeInvalidToken
		message := "Token is invalid"
		if errors.Is(err, auth.ErrExpiredToken) {
			code = dto.ErrorCodeExpiredToken
			message = "Token is expired"
		}
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
		return
	}

	resp := dto.TokenCheckResponse{
		Message: "Token is valid",
		Claims: map[string]string{
			"username": claims.Username,
			"role":     claims.RoleName,
			"subject":  claims.Subject,
			"issuer":   claims.Issuer,
		},
	}
	if claims.ExpiresAt != nil {
		resp.Claims["expiresAt"] = claims.ExpiresAt.Time.Format("2006-01-02T15:04:05Z07:00")
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
