package contacts

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

func (c *Controller) GetContacts(ctx *gin.Context) {
	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	skip, _ := strconv.Atoi(ctx.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "100"))

	// An optional ?q= filter switches the listing into search mode.
	query := ctx.Query("q")

	var (
		contactList []ContactResponse
		err         error
	)
	if query != "" {
		contactList, err = c.service.SearchContacts(ctx.Request.Context(), user.ID, query, skip, limit)
	} else {
		contactList, err = c.service.GetContacts(ctx.Request.Context(), user.ID, skip, limit)
	}
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get contacts", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Contacts retrieved successfully", contactList, nil)
}

func (c *Controller) GetUpcomingBirthdays(ctx *gin.Context) {
	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	contactList, err := c.service.GetUpcomingBirthdays(ctx.Request.Context(), user.ID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get upcoming birthdays", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Upcoming birthdays retrieved successfully", contactList, nil)
}

func (c *Controller) GetContact(ctx *gin.Context) {
	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	contactID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid contact ID", nil, err.Error())
		return
	}

	contact, err := c.service.GetContact(ctx.Request.Context(), contactID, user.ID)
	if err != nil {
		c.respondServiceError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Contact retrieved successfully", contact, nil)
}

func (c *Controller) CreateContact(ctx *gin.Context) {
	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req ContactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	contact, err := c.service.CreateContact(ctx.Request.Context(), user.ID, req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create contact", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Contact created successfully", contact, nil)
}

func (c *Controller) UpdateContact(ctx *gin.Context) {
	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	contactID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid contact ID", nil, err.Error())
		return
	}

	var req ContactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	contact, err := c.service.UpdateContact(ctx.Request.Context(), contactID, user.ID, req)
	if err != nil {
		c.respondServiceError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Contact updated successfully", contact, nil)
}

func (c *Controller) DeleteContact(ctx *gin.Context) {
	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	contactID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid contact ID", nil, err.Error())
		return
	}

	contact, err := c.service.DeleteContact(ctx.Request.Context(), contactID, user.ID)
	if err != nil {
		c.respondServiceError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Contact deleted successfully", contact, nil)
}

func (c *Controller) respondServiceError(ctx *gin.Context, err error) {
	if errors.Is(err, ErrContactNotFound) {
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Contact not found", nil, nil)
		return
	}
	response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Internal server error", nil, nil)
}
