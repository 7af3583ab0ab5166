package responses

import (
	"time"

	"promptkeep/services/message-api/internal/domain/message"
)

// MessagePayload represents one message row in API responses. Version is -1
// for the latest row and a positive number for history snapshots.
type MessagePayload struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	PersonaID   *string   `json:"persona_id"`
	MessageType string    `json:"message_type"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Summary     *string   `json:"summary"`
	Starred     bool      `json:"starred"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MessageListResponse is the pagination envelope for message listings.
type MessageListResponse struct {
	Items    []MessagePayload `json:"items"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	HasMore  bool             `json:"has_more"`
}

// MapMessageToResponse maps the domain message to DTO.
func MapMessageToResponse(m *message.Message) MessagePayload {
	return MessagePayload{
		ID:          m.ID,
		UserID:      m.UserID,
		PersonaID:   m.PersonaID,
		MessageType: string(m.Type),
		Title:       m.Title,
		Content:     m.Content,
		Summary:     m.Summary,
		Starred:     m.Starred,
		Version:     m.Version,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// MapMessageListToResponse builds the pagination envelope for messages.
func MapMessageListToResponse(items []*message.Message, total int64, page, pageSize int, hasMore bool) MessageListResponse {
	payloads := make([]MessagePayload, 0, len(items))
	for _, m := range items {
		payloads = append(payloads, MapMessageToResponse(m))
	}
	return MessageListResponse{
		Items:    payloads,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		HasMore:  hasMore,
	}
}
