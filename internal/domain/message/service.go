package message

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"promptkeep/services/message-api/internal/domain/persona"
	"promptkeep/services/message-api/internal/utils/platformerrors"
	"promptkeep/services/message-api/internal/utils/recordid"
)

// Service defines the interface for message business logic.
type Service interface {
	// Create saves a new message for the owner.
	Create(ctx context.Context, userID string, params CreateParams) (*Message, error)

	// GetByID retrieves one row of a message. A nil version means the
	// latest row; a positive version addresses a history snapshot.
	GetByID(ctx context.Context, userID, id string, version *int) (*Message, error)

	// List retrieves the owner's latest rows matching the filter.
	List(ctx context.Context, filter *Filter) ([]*Message, int64, error)

	// GetHistory retrieves history snapshots of a live message, newest
	// version first.
	GetHistory(ctx context.Context, userID, id string, limit, offset int) ([]*Message, int64, error)

	// Update archives the current latest state and applies a partial
	// update to the latest row.
	Update(ctx context.Context, userID, id string, params UpdateParams) (*Message, error)

	// Delete soft-deletes every row of the message. Terminal.
	Delete(ctx context.Context, userID, id string) error
}

// CreateParams contains parameters for saving a message.
type CreateParams struct {
	Type      Type
	Title     string
	Content   string
	Summary   *string
	Starred   bool
	PersonaID *string
}

// UpdateParams contains parameters for a partial message update. Nil fields
// are left unchanged; ClearPersona unlinks the persona and ClearSummary
// nulls the summary.
type UpdateParams struct {
	Title        *string
	Content      *string
	Summary      *string
	Starred      *bool
	PersonaID    *string
	ClearPersona bool
	ClearSummary bool
}

// DefaultService implements the Service interface.
type DefaultService struct {
	repo     Repository
	personas persona.Repository
}

// NewService creates a new message service.
func NewService(repo Repository, personas persona.Repository) Service {
	return &DefaultService{repo: repo, personas: personas}
}

// Create saves a new message for the owner.
func (s *DefaultService) Create(ctx context.Context, userID string, params CreateParams) (*Message, error) {
	if !params.Type.IsValid() {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerService, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("message_type must be %q or %q", TypePrompt, TypeResponse), nil, "message-create-type-001")
	}
	if err := validateTitle(ctx, params.Title); err != nil {
		return nil, err
	}
	if err := validateContent(ctx, params.Content); err != nil {
		return nil, err
	}
	if err := validateSummary(ctx, params.Summary); err != nil {
		return nil, err
	}
	if params.PersonaID != nil {
		if err := s.checkPersonaRef(ctx, userID, *params.PersonaID); err != nil {
			return nil, err
		}
	}

	m := &Message{
		ID:        recordid.NewMessageID(),
		Version:   VersionLatest,
		UserID:    userID,
		PersonaID: params.PersonaID,
		Type:      params.Type,
		Title:     params.Title,
		Content:   params.Content,
		Summary:   params.Summary,
		Starred:   params.Starred,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// GetByID retrieves one row of a message.
func (s *DefaultService) GetByID(ctx context.Context, userID, id string, version *int) (*Message, error) {
	v := VersionLatest
	if version != nil {
		if *version != VersionLatest && *version < 1 {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerService, platformerrors.ErrorTypeValidation,
				fmt.Sprintf("version must be %d or a positive history number, got %d", VersionLatest, *version), nil, "message-get-version-001")
		}
		v = *version
	}
	return s.repo.FindOwned(ctx, userID, id, v)
}

// List retrieves the owner's latest rows matching the filter.
func (s *DefaultService) List(ctx context.Context, filter *Filter) ([]*Message, int64, error) {
	return s.repo.List(ctx, filter)
}

// GetHistory retrieves history snapshots of a live message. The lookup is
// gated on the latest row: a missing or deleted message is not found even if
// snapshot rows physically remain.
func (s *DefaultService) GetHistory(ctx context.Context, userID, id string, limit, offset int) ([]*Message, int64, error) {
	if _, err := s.repo.FindOwned(ctx, userID, id, VersionLatest); err != nil {
		return nil, 0, err
	}
	return s.repo.ListHistory(ctx, userID, id, limit, offset)
}

// Update archives the current latest state and applies a partial update.
func (s *DefaultService) Update(ctx context.Context, userID, id string, params UpdateParams) (*Message, error) {
	if params.Title != nil {
		if err := validateTitle(ctx, *params.Title); err != nil {
			return nil, err
		}
	}
	if params.Content != nil {
		if err := validateContent(ctx, *params.Content); err != nil {
			return nil, err
		}
	}
	if err := validateSummary(ctx, params.Summary); err != nil {
		return nil, err
	}
	if params.PersonaID != nil {
		if err := s.checkPersonaRef(ctx, userID, *params.PersonaID); err != nil {
			return nil, err
		}
	}

	return s.repo.UpdateLatest(ctx, userID, id, Changes{
		Title:        params.Title,
		Content:      params.Content,
		Summary:      params.Summary,
		Starred:      params.Starred,
		PersonaID:    params.PersonaID,
		ClearPersona: params.ClearPersona,
		ClearSummary: params.ClearSummary,
	})
}

// Delete soft-deletes every row of the message.
func (s *DefaultService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.SoftDeleteAll(ctx, userID, id)
}

// checkPersonaRef verifies the persona resolves to a live persona of the
// same owner. Failures surface as bad_reference, not not_found, so callers
// can tell a broken link from a missing message.
func (s *DefaultService) checkPersonaRef(ctx context.Context, userID, personaID string) error {
	_, err := s.personas.FindOwned(ctx, userID, personaID)
	if err == nil {
		return nil
	}
	if platformerrors.IsType(err, platformerrors.ErrorTypeNotFound) {
		return platformerrors.NewError(ctx, platformerrors.LayerService, platformerrors.ErrorTypeBadReference,
			"persona not found or not owned by user", errors.Unwrap(err), "message-persona-ref-001")
	}
	return err
}

func validateTitle(ctx context.Context, title string) error {
	if title == "" || utf8.RuneCountInString(title) > MaxTitleLength {
		return platformerrors.NewError(ctx, platformerrors.LayerService, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("title must be between 1 and %d characters", MaxTitleLength), nil, "message-title-001")
	}
	return nil
}

func validateContent(ctx context.Context, content string) error {
	if content == "" {
		return platformerrors.NewError(ctx, platformerrors.LayerService, platformerrors.ErrorTypeValidation,
			"content must not be empty", nil, "message-content-001")
	}
	return nil
}

func validateSummary(ctx context.Context, summary *string) error {
	if summary != nil && utf8.RuneCountInString(*summary) > MaxSummaryLength {
		return platformerrors.NewError(ctx, platformerrors.LayerService, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("summary must be at most %d characters", MaxSummaryLength), nil, "message-summary-001")
	}
	return nil
}
