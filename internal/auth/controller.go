package auth

import (
	"net/http"
	"strings"

	"notesapi/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

func (c *Controller) Signup(ctx *gin.Context) {
	var req SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	user, err := c.service.Signup(ctx.Request.Context(), &req)
	if err != nil {
		switch err {
		case ErrAccountExists:
			response.RespondJSON(ctx, "error", http.StatusConflict, "Account already exists", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create user", nil, nil)
		}
		return
	}

	resp := SignupResponse{
		User:   user,
		Detail: "User successfully created. Check your email for confirmation.",
	}
	response.RespondJSON(ctx, "success", http.StatusCreated, "User registered successfully", resp, nil)
}

func (c *Controller) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	pair, err := c.service.Login(ctx.Request.Context(), &req)
	if err != nil {
		switch err {
		case ErrInvalidEmail:
			response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Invalid email", nil, nil)
		case ErrEmailNotConfirmed:
			response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Email not confirmed", nil, nil)
		case ErrInvalidPassword:
			response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Invalid password", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to login", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Login successful", pair, nil)
}

func (c *Controller) RefreshToken(ctx *gin.Context) {
	token, ok := bearerToken(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "authorization header format must be Bearer {token}", nil, nil)
		return
	}

	pair, err := c.service.RefreshAccess(ctx.Request.Context(), token)
	if err != nil {
		switch err {
		case ErrInvalidRefreshToken, ErrInvalidSignature, ErrTokenExpired, ErrWrongScope:
			response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Invalid refresh token", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to refresh token", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Token refreshed successfully", pair, nil)
}

func (c *Controller) ConfirmedEmail(ctx *gin.Context) {
	token := ctx.Param("token")

	already, err := c.service.ConfirmEmail(ctx.Request.Context(), token)
	if err != nil {
		switch err {
		case ErrVerification:
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Verification error", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to confirm email", nil, nil)
		}
		return
	}

	if already {
		response.RespondJSON(ctx, "success", http.StatusOK, "Your email is already confirmed", nil, nil)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Email confirmed", nil, nil)
}

func (c *Controller) RequestEmail(ctx *gin.Context) {
	var req RequestEmailRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	already, err := c.service.RequestEmailConfirmation(ctx.Request.Context(), req.Email)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to request confirmation", nil, nil)
		return
	}

	if already {
		response.RespondJSON(ctx, "success", http.StatusOK, "Your email is already confirmed", nil, nil)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Check your email for confirmation.", nil, nil)
}

func bearerToken(ctx *gin.Context) (string, bool) {
	header := ctx.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}
