package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"promptkeep/services/message-api/internal/domain/pagination"
	"promptkeep/services/message-api/internal/domain/persona"
	"promptkeep/services/message-api/internal/infrastructure/auth"
	"promptkeep/services/message-api/internal/infrastructure/metrics"
	"promptkeep/services/message-api/internal/infrastructure/observability"
	"promptkeep/services/message-api/internal/interfaces/httpserver/requests"
	"promptkeep/services/message-api/internal/interfaces/httpserver/responses"
	"promptkeep/services/message-api/internal/utils/platformerrors"
)

// PersonaHandler exposes HTTP entrypoints for the Personas API.
type PersonaHandler struct {
	service persona.Service
	log     zerolog.Logger
}

// NewPersonaHandler constructs the handler.
func NewPersonaHandler(service persona.Service, log zerolog.Logger) *PersonaHandler {
	return &PersonaHandler{
		service: service,
		log:     log.With().Str("handler", "persona").Logger(),
	}
}

// Create handles POST /v1/personas
// @Summary Create a persona
// @Description Creates a prompt template; names are unique per user
// @Tags Personas
// @Accept json
// @Produce json
// @Param request body requests.CreatePersonaRequest true "Persona to create"
// @Success 201 {object} responses.PersonaPayload
// @Failure 400 {object} responses.ErrorResponse
// @Failure 401 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /v1/personas [post]
func (h *PersonaHandler) Create(c *gin.Context) {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "missing identity", "persona-create-auth-001")
		return
	}

	var req requests.CreatePersonaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body", "persona-create-body-001")
		return
	}

	p, err := h.service.Create(c.Request.Context(), identity.UserID, persona.CreateParams{
		Name:        req.Name,
		Description: req.Description,
		Prompt:      req.Prompt,
	})
	if err != nil {
		if platformerrors.IsType(err, platformerrors.ErrorTypeConflict) {
			metrics.RecordPersonaConflict()
		}
		responses.HandleError(c, err, "failed to create persona")
		return
	}

	c.JSON(http.StatusCreated, responses.MapPersonaToResponse(p))
}

// List handles GET /v1/personas
// @Summary List personas
// @Description Lists the user's personas, newest first
// @Tags Personas
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Items per page"
// @Success 200 {object} responses.PersonaListResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 401 {object} responses.ErrorResponse
// @Router /v1/personas [get]
func (h *PersonaHandler) List(c *gin.Context) {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "missing identity", "persona-list-auth-001")
		return
	}

	params, ok := pageQuery(c, pagination.DefaultListPageSize)
	if !ok {
		return
	}

	filter := persona.NewFilter(identity.UserID).
		WithPagination(params.PageSize, params.Offset())

	items, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		responses.HandleError(c, err, "failed to list personas")
		return
	}

	c.JSON(http.StatusOK, responses.MapPersonaListToResponse(
		items, total, params.Page, params.PageSize, params.HasMore(total)))
}

// Get handles GET /v1/personas/:id
// @Summary Get a persona
// @Tags Personas
// @Produce json
// @Param id path string true "Persona ID"
// @Success 200 {object} responses.PersonaPayload
// @Failure 401 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/personas/{id} [get]
func (h *PersonaHandler) Get(c *gin.Context) {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "missing identity", "persona-get-auth-001")
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), identity.UserID, c.Param("id"))
	if err != nil {
		responses.HandleError(c, err, "failed to get persona")
		return
	}

	c.JSON(http.StatusOK, responses.MapPersonaToResponse(p))
}

// Update handles PATCH /v1/personas/:id
// @Summary Update a persona
// @Description Applies a partial update and bumps the lock version
// @Tags Personas
// @Accept json
// @Produce json
// @Param id path string true "Persona ID"
// @Param request body requests.UpdatePersonaRequest true "Fields to update"
// @Success 200 {object} responses.PersonaPayload
// @Failure 400 {object} responses.ErrorResponse
// @Failure 401 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /v1/personas/{id} [patch]
func (h *PersonaHandler) Update(c *gin.Context) {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "missing identity", "persona-update-auth-001")
		return
	}

	var req requests.UpdatePersonaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body", "persona-update-body-001")
		return
	}

	ctx, span := observability.StartPersonaSpan(c.Request.Context(), "update", c.Param("id"), 0)
	defer span.End()

	p, err := h.service.Update(ctx, identity.UserID, c.Param("id"), persona.UpdateParams{
		Name:             req.Name,
		Description:      req.Description,
		Prompt:           req.Prompt,
		ClearDescription: req.ClearDescription(),
		ClearPrompt:      req.ClearPrompt(),
	})
	if err != nil {
		observability.RecordError(span, err)
		if platformerrors.IsType(err, platformerrors.ErrorTypeConflict) {
			metrics.RecordPersonaConflict()
		}
		responses.HandleError(c, err, "failed to update persona")
		return
	}

	c.JSON(http.StatusOK, responses.MapPersonaToResponse(p))
}

// Delete handles DELETE /v1/personas/:id
// @Summary Delete a persona
// @Description Soft-deletes the persona and frees its name for reuse
// @Tags Personas
// @Param id path string true "Persona ID"
// @Success 204
// @Failure 401 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/personas/{id} [delete]
func (h *PersonaHandler) Delete(c *gin.Context) {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "missing identity", "persona-delete-auth-001")
		return
	}

	ctx, span := observability.StartPersonaSpan(c.Request.Context(), "delete", c.Param("id"), 0)
	defer span.End()

	if err := h.service.Delete(ctx, identity.UserID, c.Param("id")); err != nil {
		observability.RecordError(span, err)
		responses.HandleError(c, err, "failed to delete persona")
		return
	}

	c.Status(http.StatusNoContent)
}
