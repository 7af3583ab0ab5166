package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"promptkeep/services/message-api/internal/domain/message"
	"promptkeep/services/message-api/internal/domain/pagination"
	"promptkeep/services/message-api/internal/domain/persona"
	"promptkeep/services/message-api/internal/interfaces/httpserver/responses"
	"promptkeep/services/message-api/internal/utils/platformerrors"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Message *MessageHandler
	Persona *PersonaHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(messageService message.Service, personaService persona.Service, log zerolog.Logger) *Provider {
	return &Provider{
		Message: NewMessageHandler(messageService, log),
		Persona: NewPersonaHandler(personaService, log),
	}
}

// pageQuery parses and validates the page/page_size query parameters. On
// failure the error response has already been written.
func pageQuery(c *gin.Context, defaultSize int) (pagination.Params, bool) {
	page, ok := intQuery(c, "page")
	if !ok {
		return pagination.Params{}, false
	}
	pageSize, ok := intQuery(c, "page_size")
	if !ok {
		return pagination.Params{}, false
	}

	params, err := pagination.New(c.Request.Context(), page, pageSize, defaultSize)
	if err != nil {
		responses.HandleError(c, err, "invalid pagination parameters")
		return pagination.Params{}, false
	}
	return params, true
}

// intQuery returns nil when the parameter is absent, so an explicit 0 is
// still seen downstream and rejected rather than treated as a default.
func intQuery(c *gin.Context, name string) (*int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			name+" must be an integer", "query-int-"+name)
		return nil, false
	}
	return &value, true
}
