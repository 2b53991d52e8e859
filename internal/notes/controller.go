package notes

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

func (c *Controller) GetNotes(ctx *gin.Context) {
	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	skip, _ := strconv.Atoi(ctx.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "100"))

	noteList, err := c.service.GetNotes(ctx.Request.Context(), user.ID, skip, limit)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get notes", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Notes retrieved successfully", noteList, nil)
}

func (c *Controller) GetNote(ctx *gin.Context) {
	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	noteID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid note ID", nil, err.Error())
		return
	}

	note, err := c.service.GetNote(ctx.Request.Context(), noteID, user.ID)
	if err != nil {
		c.respondServiceError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Note retrieved successfully", note, nil)
}

func (c *Controller) CreateNote(ctx *gin.Context) {
	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req CreateNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	note, err := c.service.CreateNote(ctx.Request.Context(), user.ID, req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create note", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Note created successfully", note, nil)
}

func (c *Controller) UpdateNote(ctx *gin.Context) {
	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	noteID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid note ID", nil, err.Error())
		return
	}

	var req UpdateNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	note, err := c.service.UpdateNote(ctx.Request.Context(), noteID, user.ID, req)
	if err != nil {
		c.respondServiceError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Note updated successfully", note, nil)
}

func (c *Controller) UpdateStatus(ctx *gin.Context) {
	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	noteID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid note ID", nil, err.Error())
		return
	}

	var req UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	note, err := c.service.UpdateStatus(ctx.Request.Context(), noteID, user.ID, req)
	if err != nil {
		c.respondServiceError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Note status updated successfully", note, nil)
}

func (c *Controller) DeleteNote(ctx *gin.Context) {
	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	noteID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid note ID", nil, err.Error())
		return
	}

	note, err := c.service.DeleteNote(ctx.Request.Context(), noteID, user.ID)
	if err != nil {
		c.respondServiceError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Note deleted successfully", note, nil)
}

func (c *Controller) respondServiceError(ctx *gin.Context, err error) {
	if errors.Is(err, ErrNoteNotFound) {
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Note not found", nil, nil)
		return
	}
	response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Internal server error", nil, nil)
}
