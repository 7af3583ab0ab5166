package responses

import (
	"time"

	"promptkeep/services/message-api/internal/domain/persona"
)

// PersonaPayload represents a persona in API responses.
type PersonaPayload struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Prompt      *string   `json:"persona_prompt"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PersonaListResponse is the pagination envelope for persona listings.
type PersonaListResponse struct {
	Items    []PersonaPayload `json:"items"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	HasMore  bool             `json:"has_more"`
}

// MapPersonaToResponse maps the domain persona to DTO.
func MapPersonaToResponse(p *persona.Persona) PersonaPayload {
	return PersonaPayload{
		ID:          p.ID,
		UserID:      p.UserID,
		Name:        p.Name,
		Description: p.Description,
		Prompt:      p.Prompt,
		Version:     p.LockVersion,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// MapPersonaListToResponse builds the pagination envelope for personas.
func MapPersonaListToResponse(items []*persona.Persona, total int64, page, pageSize int, hasMore bool) PersonaListResponse {
	payloads := make([]PersonaPayload, 0, len(items))
	for _, p := range items {
		payloads = append(payloads, MapPersonaToResponse(p))
	}
	return PersonaListResponse{
		Items:    payloads,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		HasMore:  hasMore,
	}
}
