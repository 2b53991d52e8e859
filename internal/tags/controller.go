package tags

import (
	"errors"
	"net/http"
	"strconv"

	"notesapi/internal/shared/middleware"
	"notesapi/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
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

func (c *Controller) GetTags(ctx *gin.Context) {
	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	skip, _ := strconv.Atoi(ctx.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "100"))

	tagList, err := c.service.GetTags(ctx.Request.Context(), user.ID, skip, limit)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get tags", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Tags retrieved successfully", tagList, nil)
}

func (c *Controller) GetTag(ctx *gin.Context) {
	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	tagID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid tag ID", nil, err.Error())
		return
	}

	tag, err := c.service.GetTag(ctx.Request.Context(), tagID, user.ID)
	if err != nil {
		c.respondServiceError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Tag retrieved successfully", tag, nil)
}

func (c *Controller) CreateTag(ctx *gin.Context) {
	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req TagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	tag, err := c.service.CreateTag(ctx.Request.Context(), user.ID, req)
	if err != nil {
		if errors.Is(err, ErrTagExists) {
			response.RespondJSON(ctx, "error", http.StatusConflict, "Tag already exists", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create tag", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Tag created successfully", tag, nil)
}

func (c *Controller) UpdateTag(ctx *gin.Context) {
	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	tagID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid tag ID", nil, err.Error())
		return
	}

	var req TagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	tag, err := c.service.UpdateTag(ctx.Request.Context(), tagID, user.ID, req)
	if err != nil {
		if errors.Is(err, ErrTagExists) {
			response.RespondJSON(ctx, "error", http.StatusConflict, "Tag already exists", nil, nil)
			return
		}
		c.respondServiceError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Tag updated successfully", tag, nil)
}

func (c *Controller) DeleteTag(ctx *gin.Context) {
	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	tagID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid tag ID", nil, err.Error())
		return
	}

	tag, err := c.service.DeleteTag(ctx.Request.Context(), tagID, user.ID)
	if err != nil {
		c.respondServiceError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Tag deleted successfully", tag, nil)
}

func (c *Controller) respondServiceError(ctx *gin.Context, err error) {
	if errors.Is(err, ErrTagNotFound) {
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Tag not found", nil, nil)
		return
	}
	response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Internal server error", nil, nil)
}
