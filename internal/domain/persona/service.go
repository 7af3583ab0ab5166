package persona

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"promptkeep/services/message-api/internal/utils/platformerrors"
	"promptkeep/services/message-api/internal/utils/recordid"
)

// Service defines the interface for persona business logic.
type Service interface {
	// Create creates a new persona for the owner.
	Create(ctx context.Context, userID string, params CreateParams) (*Persona, error)

	// GetByID retrieves a persona by id for the owner.
	GetByID(ctx context.Context, userID, id string) (*Persona, error)

	// List retrieves the owner's personas matching the filter.
	List(ctx context.Context, filter *Filter) ([]*Persona, int64, error)

	// Update applies a partial update and bumps the lock version.
	Update(ctx context.Context, userID, id string, params UpdateParams) (*Persona, error)

	// Delete soft-deletes the persona, freeing its name for reuse.
	Delete(ctx context.Context, userID, id string) error
}

// CreateParams contains parameters for creating a persona. The prompt is
// optional.
type CreateParams struct {
	Name        string
	Description *string
	Prompt      *string
}

// UpdateParams contains parameters for a partial persona update. Nil fields
// are left unchanged unless the matching Clear flag nulls them.
type UpdateParams struct {
	Name             *string
	Description      *string
	Prompt           *string
	ClearDescription bool
	ClearPrompt      bool
}

// DefaultService implements the Service interface.
type DefaultService struct {
	repo Repository
}

// NewService creates a new persona service.
func NewService(repo Repository) Service {
	return &DefaultService{repo: repo}
}

// Create creates a new persona for the owner.
func (s *DefaultService) Create(ctx context.Context, userID string, params CreateParams) (*Persona, error) {
	if err := validateName(ctx, params.Name); err != nil {
		return nil, err
	}
	if err := validateDescription(ctx, params.Description); err != nil {
		return nil, err
	}
	if err := validatePrompt(ctx, params.Prompt, "persona-create-prompt-001"); err != nil {
		return nil, err
	}

	p := &Persona{
		ID:          recordid.NewPersonaID(),
		UserID:      userID,
		Name:        params.Name,
		Description: params.Description,
		Prompt:      params.Prompt,
		LockVersion: 1,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID retrieves a persona by id for the owner.
func (s *DefaultService) GetByID(ctx context.Context, userID, id string) (*Persona, error) {
	return s.repo.FindOwned(ctx, userID, id)
}

// List retrieves the owner's personas matching the filter.
func (s *DefaultService) List(ctx context.Context, filter *Filter) ([]*Persona, int64, error) {
	return s.repo.List(ctx, filter)
}

// Update applies a partial update and bumps the lock version.
func (s *DefaultService) Update(ctx context.Context, userID, id string, params UpdateParams) (*Persona, error) {
	p, err := s.repo.FindOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		if err := validateName(ctx, *params.Name); err != nil {
			return nil, err
		}
		p.Name = *params.Name
	}
	if params.ClearDescription {
		p.Description = nil
	} else if params.Description != nil {
		if err := validateDescription(ctx, params.Description); err != nil {
			return nil, err
		}
		p.Description = params.Description
	}
	if params.ClearPrompt {
		p.Prompt = nil
	} else if params.Prompt != nil {
		if err := validatePrompt(ctx, params.Prompt, "persona-update-prompt-001"); err != nil {
			return nil, err
		}
		p.Prompt = params.Prompt
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete soft-deletes the persona, freeing its name for reuse.
func (s *DefaultService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.SoftDelete(ctx, userID, id)
}

func validateName(ctx context.Context, name string) error {
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return platformerrors.NewError(ctx, platformerrors.LayerService, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("name must be between 1 and %d characters", MaxNameLength), nil, "persona-name-001")
	}
	return nil
}

func validateDescription(ctx context.Context, description *string) error {
	if description != nil && utf8.RuneCountInString(*description) > MaxDescriptionLength {
		return platformerrors.NewError(ctx, platformerrors.LayerService, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("description must be at most %d characters", MaxDescriptionLength), nil, "persona-description-001")
	}
	return nil
}

func validatePrompt(ctx context.Context, prompt *string, code string) error {
	if prompt != nil && strings.TrimSpace(*prompt) == "" {
		return platformerrors.NewError(ctx, platformerrors.LayerService, platformerrors.ErrorTypeValidation,
			"persona_prompt must not be blank when supplied", nil, code)
	}
	return nil
}
