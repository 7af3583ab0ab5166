package persona_test

import (
	"context"
	"strings"
	"testing"

	"promptkeep/services/message-api/internal/domain/persona"
	"promptkeep/services/message-api/internal/utils/platformerrors"
)

type mockRepo struct {
	CreateFunc     func(ctx context.Context, p *persona.Persona) error
	FindOwnedFunc  func(ctx context.Context, userID, id string) (*persona.Persona, error)
	ListFunc       func(ctx context.Context, filter *persona.Filter) ([]*persona.Persona, int64, error)
	UpdateFunc     func(ctx context.Context, p *persona.Persona) error
	SoftDeleteFunc func(ctx context.Context, userID, id string) error
}

func (m *mockRepo) Create(ctx context.Context, p *persona.Persona) error { return m.CreateFunc(ctx, p) }

func (m *mockRepo) FindOwned(ctx context.Context, userID, id string) (*persona.Persona, error) {
	return m.FindOwnedFunc(ctx, userID, id)
}

func (m *mockRepo) List(ctx context.Context, filter *persona.Filter) ([]*persona.Persona, int64, error) {
	return m.ListFunc(ctx, filter)
}

func (m *mockRepo) Update(ctx context.Context, p *persona.Persona) error { return m.UpdateFunc(ctx, p) }

func (m *mockRepo) SoftDelete(ctx context.Context, userID, id string) error {
	return m.SoftDeleteFunc(ctx, userID, id)
}

func strPtr(s string) *string { return &s }

func TestCreateValidation(t *testing.T) {
	svc := persona.NewService(&mockRepo{
		CreateFunc: func(ctx context.Context, p *persona.Persona) error { return nil },
	})

	cases := []struct {
		name   string
		params persona.CreateParams
	}{
		{"empty name", persona.CreateParams{Name: "", Prompt: strPtr("p")}},
		{"name too long", persona.CreateParams{Name: strings.Repeat("n", persona.MaxNameLength+1), Prompt: strPtr("p")}},
		{"blank supplied prompt", persona.CreateParams{Name: "Official", Prompt: strPtr("   ")}},
		{"description too long", persona.CreateParams{Name: "Official", Prompt: strPtr("p"), Description: strPtr(strings.Repeat("d", persona.MaxDescriptionLength+1))}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "user-1", tc.params)
			if !platformerrors.IsType(err, platformerrors.ErrorTypeValidation) {
				t.Errorf("got %v, want validation error", err)
			}
		})
	}
}

func TestCreateStartsLockVersionAtOne(t *testing.T) {
	var created *persona.Persona
	svc := persona.NewService(&mockRepo{
		CreateFunc: func(ctx context.Context, p *persona.Persona) error {
			created = p
			return nil
		},
	})

	p, err := svc.Create(context.Background(), "user-1", persona.CreateParams{
		Name:   "Official",
		Prompt: strPtr("You write formal release notes."),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created != p {
		t.Fatal("repository did not receive the created persona")
	}
	if p.LockVersion != 1 {
		t.Errorf("LockVersion = %d, want 1", p.LockVersion)
	}
	if !strings.HasPrefix(p.ID, "prs_") {
		t.Errorf("ID = %q, want prs_ prefix", p.ID)
	}
}

func TestCreateWithoutPrompt(t *testing.T) {
	svc := persona.NewService(&mockRepo{
		CreateFunc: func(ctx context.Context, p *persona.Persona) error { return nil },
	})

	p, err := svc.Create(context.Background(), "user-1", persona.CreateParams{Name: "Work"})
	if err != nil {
		t.Fatalf("Create without prompt returned error: %v", err)
	}
	if p.Prompt != nil {
		t.Errorf("Prompt = %v, want nil", *p.Prompt)
	}
}

func TestNameLengthCountsRunes(t *testing.T) {
	svc := persona.NewService(&mockRepo{
		CreateFunc: func(ctx context.Context, p *persona.Persona) error { return nil },
	})

	name := strings.Repeat("ü", persona.MaxNameLength)
	if _, err := svc.Create(context.Background(), "user-1", persona.CreateParams{Name: name}); err != nil {
		t.Errorf("%d-rune multibyte name rejected: %v", persona.MaxNameLength, err)
	}
	if _, err := svc.Create(context.Background(), "user-1", persona.CreateParams{Name: name + "ü"}); err == nil {
		t.Errorf("%d-rune name accepted, want validation error", persona.MaxNameLength+1)
	}
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	existing := &persona.Persona{
		ID:          "prs_1",
		UserID:      "user-1",
		Name:        "Official",
		Prompt:      strPtr("formal"),
		LockVersion: 2,
	}
	var updated *persona.Persona
	svc := persona.NewService(&mockRepo{
		FindOwnedFunc: func(ctx context.Context, userID, id string) (*persona.Persona, error) {
			return existing, nil
		},
		UpdateFunc: func(ctx context.Context, p *persona.Persona) error {
			updated = p
			return nil
		},
	})

	p, err := svc.Update(context.Background(), "user-1", "prs_1", persona.UpdateParams{
		Name: strPtr("Side Project"),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated == nil {
		t.Fatal("repository Update was not called")
	}
	if p.Name != "Side Project" {
		t.Errorf("Name = %q, want Side Project", p.Name)
	}
	if p.Prompt == nil || *p.Prompt != "formal" {
		t.Errorf("Prompt changed to %v, want unchanged", p.Prompt)
	}
}

func TestUpdateClearsNullableFields(t *testing.T) {
	existing := &persona.Persona{
		ID:          "prs_1",
		UserID:      "user-1",
		Name:        "Official",
		Description: strPtr("release notes"),
		Prompt:      strPtr("formal"),
		LockVersion: 1,
	}
	svc := persona.NewService(&mockRepo{
		FindOwnedFunc: func(ctx context.Context, userID, id string) (*persona.Persona, error) {
			return existing, nil
		},
		UpdateFunc: func(ctx context.Context, p *persona.Persona) error { return nil },
	})

	p, err := svc.Update(context.Background(), "user-1", "prs_1", persona.UpdateParams{
		ClearDescription: true,
		ClearPrompt:      true,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if p.Description != nil {
		t.Errorf("Description = %q, want cleared", *p.Description)
	}
	if p.Prompt != nil {
		t.Errorf("Prompt = %q, want cleared", *p.Prompt)
	}
}

func TestUpdatePropagatesConflict(t *testing.T) {
	conflict := platformerrors.NewError(context.Background(), platformerrors.LayerRepository,
		platformerrors.ErrorTypeConflict, "persona name already in use", nil, "test-conflict")
	svc := persona.NewService(&mockRepo{
		FindOwnedFunc: func(ctx context.Context, userID, id string) (*persona.Persona, error) {
			return &persona.Persona{ID: id, UserID: userID, Name: "Official", Prompt: strPtr("p")}, nil
		},
		UpdateFunc: func(ctx context.Context, p *persona.Persona) error { return conflict },
	})

	_, err := svc.Update(context.Background(), "user-1", "prs_1", persona.UpdateParams{Name: strPtr("Fun")})
	if !platformerrors.IsType(err, platformerrors.ErrorTypeConflict) {
		t.Errorf("got %v, want conflict error", err)
	}
}
