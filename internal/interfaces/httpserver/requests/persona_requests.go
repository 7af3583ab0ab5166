package requests

import "encoding/json"

// CreatePersonaRequest represents a request to create a persona.
type CreatePersonaRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Prompt      *string `json:"persona_prompt,omitempty"`
}

// UpdatePersonaRequest represents a partial persona update. Absent fields
// are left unchanged; an explicit null clears description or prompt.
type UpdatePersonaRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Prompt      *string `json:"persona_prompt"`

	descriptionProvided bool
	promptProvided      bool
}

// UnmarshalJSON records which nullable fields were present in the body so an
// explicit null can be told apart from an absent field.
func (r *UpdatePersonaRequest) UnmarshalJSON(data []byte) error {
	type alias UpdatePersonaRequest
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*r = UpdatePersonaRequest(a)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	_, r.descriptionProvided = fields["description"]
	_, r.promptProvided = fields["persona_prompt"]
	return nil
}

// ClearDescription reports whether the body carried an explicit null description.
func (r *UpdatePersonaRequest) ClearDescription() bool {
	return r.descriptionProvided && r.Description == nil
}

// ClearPrompt reports whether the body carried an explicit null persona_prompt.
func (r *UpdatePersonaRequest) ClearPrompt() bool {
	return r.promptProvided && r.Prompt == nil
}
