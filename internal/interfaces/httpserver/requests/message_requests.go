package requests

import "encoding/json"

// CreateMessageRequest represents a request to save a message.
type CreateMessageRequest struct {
	MessageType string  `json:"message_type"`
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	Summary     *string `json:"summary,omitempty"`
	Starred     bool    `json:"starred"`
	PersonaID   *string `json:"persona_id,omitempty"`
}

// UpdateMessageRequest represents a partial message update. Absent fields
// are left unchanged; an explicit null persona_id unlinks the persona and
// an explicit null summary clears it.
type UpdateMessageRequest struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Summary   *string `json:"summary"`
	Starred   *bool   `json:"starred"`
	PersonaID *string `json:"persona_id"`

	personaProvided bool
	summaryProvided bool
}

// UnmarshalJSON records which nullable fields were present in the body so an
// explicit null can be told apart from an absent field.
func (r *UpdateMessageRequest) UnmarshalJSON(data []byte) error {
	type alias UpdateMessageRequest
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*r = UpdateMessageRequest(a)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	_, r.personaProvided = fields["persona_id"]
	_, r.summaryProvided = fields["summary"]
	return nil
}

// ClearPersona reports whether the body carried an explicit null persona_id.
func (r *UpdateMessageRequest) ClearPersona() bool {
	return r.personaProvided && r.PersonaID == nil
}

// ClearSummary reports whether the body carried an explicit null summary.
func (r *UpdateMessageRequest) ClearSummary() bool {
	return r.summaryProvided && r.Summary == nil
}
