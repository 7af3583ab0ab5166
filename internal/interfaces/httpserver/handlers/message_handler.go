package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"promptkeep/services/message-api/internal/domain/message"
	"promptkeep/services/message-api/internal/domain/pagination"
	"promptkeep/services/message-api/internal/infrastructure/auth"
	"promptkeep/services/message-api/internal/infrastructure/metrics"
	"promptkeep/services/message-api/internal/infrastructure/observability"
	"promptkeep/services/message-api/internal/interfaces/httpserver/requests"
	"promptkeep/services/message-api/internal/interfaces/httpserver/responses"
	"promptkeep/services/message-api/internal/utils/platformerrors"
)

// MessageHandler exposes HTTP entrypoints for the Messages API.
type MessageHandler struct {
	service message.Service
	log     zerolog.Logger
}

// NewMessageHandler constructs the handler.
func NewMessageHandler(service message.Service, log zerolog.Logger) *MessageHandler {
	return &MessageHandler{
		service: service,
		log:     log.With().Str("handler", "message").Logger(),
	}
}

// Create handles POST /v1/messages
// @Summary Save a message
// @Description Saves a new prompt or response for the authenticated user
// @Tags Messages
// @Accept json
// @Produce json
// @Param request body requests.CreateMessageRequest true "Message to save"
// @Success 201 {object} responses.MessagePayload
// @Failure 400 {object} responses.ErrorResponse
// @Failure 401 {object} responses.ErrorResponse
// @Router /v1/messages [post]
func (h *MessageHandler) Create(c *gin.Context) {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "missing identity", "message-create-auth-001")
		return
	}

	var req requests.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body", "message-create-body-001")
		return
	}

	m, err := h.service.Create(c.Request.Context(), identity.UserID, message.CreateParams{
		Type:      message.Type(req.MessageType),
		Title:     req.Title,
		Content:   req.Content,
		Summary:   req.Summary,
		Starred:   req.Starred,
		PersonaID: req.PersonaID,
	})
	if err != nil {
		responses.HandleError(c, err, "failed to save message")
		return
	}

	c.JSON(http.StatusCreated, responses.MapMessageToResponse(m))
}

// List handles GET /v1/messages
// @Summary List messages
// @Description Lists the user's messages, newest first, with optional filters
// @Tags Messages
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Items per page"
// @Param message_type query string false "Filter by message type"
// @Param starred query bool false "Filter by starred status"
// @Param persona_id query string false "Filter by persona"
// @Success 200 {object} responses.MessageListResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 401 {object} responses.ErrorResponse
// @Router /v1/messages [get]
func (h *MessageHandler) List(c *gin.Context) {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "missing identity", "message-list-auth-001")
		return
	}

	params, ok := pageQuery(c, pagination.DefaultListPageSize)
	if !ok {
		return
	}

	filter := message.NewFilter(identity.UserID).
		WithPagination(params.PageSize, params.Offset())

	if raw := c.Query("message_type"); raw != "" {
		t := message.Type(raw)
		if !t.IsValid() {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "unknown message_type", "message-list-type-001")
			return
		}
		filter = filter.WithType(t)
	}
	if raw := c.Query("starred"); raw != "" {
		starred, err := strconv.ParseBool(raw)
		if err != nil {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "starred must be a boolean", "message-list-starred-001")
			return
		}
		filter = filter.WithStarred(starred)
	}
	if raw := c.Query("persona_id"); raw != "" {
		filter = filter.WithPersonaID(raw)
	}

	items, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		responses.HandleError(c, err, "failed to list messages")
		return
	}

	c.JSON(http.StatusOK, responses.MapMessageListToResponse(
		items, total, params.Page, params.PageSize, params.HasMore(total)))
}

// Get handles GET /v1/messages/:id
// @Summary Get a message
// @Description Returns the latest row, or a history snapshot when version is given
// @Tags Messages
// @Produce json
// @Param id path string true "Message ID"
// @Param version query int false "Version to fetch (-1 for latest)"
// @Success 200 {object} responses.MessagePayload
// @Failure 400 {object} responses.ErrorResponse
// @Failure 401 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/messages/{id} [get]
func (h *MessageHandler) Get(c *gin.Context) {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "missing identity", "message-get-auth-001")
		return
	}

	var version *int
	if raw := c.Query("version"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "version must be an integer", "message-get-version-001")
			return
		}
		version = &value
	}

	m, err := h.service.GetByID(c.Request.Context(), identity.UserID, c.Param("id"), version)
	if err != nil {
		responses.HandleError(c, err, "failed to get message")
		return
	}

	c.JSON(http.StatusOK, responses.MapMessageToResponse(m))
}

// GetHistory handles GET /v1/messages/:id/history
// @Summary Get message history
// @Description Lists history snapshots of a message, newest version first
// @Tags Messages
// @Produce json
// @Param id path string true "Message ID"
// @Param page query int false "Page number"
// @Param page_size query int false "Items per page"
// @Success 200 {object} responses.MessageListResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 401 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/messages/{id}/history [get]
func (h *MessageHandler) GetHistory(c *gin.Context) {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "missing identity", "message-history-auth-001")
		return
	}

	params, ok := pageQuery(c, pagination.DefaultHistoryPageSize)
	if !ok {
		return
	}

	items, total, err := h.service.GetHistory(c.Request.Context(), identity.UserID, c.Param("id"),
		params.PageSize, params.Offset())
	if err != nil {
		responses.HandleError(c, err, "failed to get message history")
		return
	}

	c.JSON(http.StatusOK, responses.MapMessageListToResponse(
		items, total, params.Page, params.PageSize, params.HasMore(total)))
}

// Update handles PATCH /v1/messages/:id
// @Summary Update a message
// @Description Archives the current state as a history snapshot and applies the partial update
// @Tags Messages
// @Accept json
// @Produce json
// @Param id path string true "Message ID"
// @Param request body requests.UpdateMessageRequest true "Fields to update"
// @Success 200 {object} responses.MessagePayload
// @Failure 400 {object} responses.ErrorResponse
// @Failure 401 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/messages/{id} [patch]
func (h *MessageHandler) Update(c *gin.Context) {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "missing identity", "message-update-auth-001")
		return
	}

	var req requests.UpdateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body", "message-update-body-001")
		return
	}

	ctx, span := observability.StartMessageSpan(c.Request.Context(), "update", c.Param("id"), message.VersionLatest)
	defer span.End()

	m, err := h.service.Update(ctx, identity.UserID, c.Param("id"), message.UpdateParams{
		Title:        req.Title,
		Content:      req.Content,
		Summary:      req.Summary,
		Starred:      req.Starred,
		PersonaID:    req.PersonaID,
		ClearPersona: req.ClearPersona(),
		ClearSummary: req.ClearSummary(),
	})
	if err != nil {
		observability.RecordError(span, err)
		responses.HandleError(c, err, "failed to update message")
		return
	}

	metrics.RecordMessageArchive()
	c.JSON(http.StatusOK, responses.MapMessageToResponse(m))
}

// Delete handles DELETE /v1/messages/:id
// @Summary Delete a message
// @Description Soft-deletes the message and all of its history
// @Tags Messages
// @Param id path string true "Message ID"
// @Success 204
// @Failure 401 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/messages/{id} [delete]
func (h *MessageHandler) Delete(c *gin.Context) {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "missing identity", "message-delete-auth-001")
		return
	}

	ctx, span := observability.StartMessageSpan(c.Request.Context(), "delete", c.Param("id"), message.VersionLatest)
	defer span.End()

	if err := h.service.Delete(ctx, identity.UserID, c.Param("id")); err != nil {
		observability.RecordError(span, err)
		responses.HandleError(c, err, "failed to delete message")
		return
	}

	c.Status(http.StatusNoContent)
}
