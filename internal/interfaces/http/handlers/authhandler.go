package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/helpdesk-inc/helpdesk/internal/application/user/usecases"
	"github.com/helpdesk-inc/helpdesk/internal/shared/authorization"
	"github.com/helpdesk-inc/helpdesk/internal/shared/config"
	"github.com/helpdesk-inc/helpdesk/internal/shared/errors"
	"github.com/helpdesk-inc/helpdesk/internal/shared/logger"
	"github.com/helpdesk-inc/helpdesk/internal/shared/utils"
)

type LoginRequest struct {
	Username string `form:"username" json:"username" validate:"notblank,max=50"`
	Password string `form:"password" json:"password" validate:"required"`
}

type LoginResponse struct {
	Username  string `json:"username"`
	Role      string `json:"role"`
	ExpiresIn int64  `json:"expires_in"`
}

type AuthHandler struct {
	loginUseCase loginUseCase
	cookieConfig config.CookieConfig
	logger       logger.Interface
}

func NewAuthHandler(loginUC loginUseCase, cookieConfig config.CookieConfig, logger logger.Interface) *AuthHandler {
	return &AuthHandler{
		loginUseCase: loginUC,
		cookieConfig: cookieConfig,
		logger:       logger,
	}
}

// Login handles POST /login
// @Summary Console login
// @Description Sets the session cookie on success
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param credentials body LoginRequest true "Username and password"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), usecases.LoginCommand{
		Username:  req.Username,
		Password:  req.Password,
		IPAddress: c.RemoteIP(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SetSessionCookie(c, h.cookieConfig, result.Token, int(result.ExpiresIn.Seconds()))

	utils.SuccessResponse(c, http.StatusOK, "login successful", LoginResponse{
		Username:  result.Auth.Username,
		Role:      result.Auth.Role.String(),
		ExpiresIn: int64(result.ExpiresIn.Seconds()),
	})
}

// Logout handles POST /logout
// @Summary Console logout
// @Tags auth
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	auth := authorization.GetAuthContext(c)

	utils.ClearSessionCookie(c, h.cookieConfig)
	h.logger.Infow("user logged out", "user_id", auth.UserID, "username", auth.Username)

	utils.SuccessResponse(c, http.StatusOK, "logout successful", nil)
}
