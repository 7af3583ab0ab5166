package message_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "promptkeep/services/message-api/internal/domain/message"
	"promptkeep/services/message-api/internal/infrastructure/database/entities"
	repo "promptkeep/services/message-api/internal/infrastructure/repository/message"
	"promptkeep/services/message-api/internal/infrastructure/repository/testutil"
	"promptkeep/services/message-api/internal/utils/platformerrors"
	"promptkeep/services/message-api/internal/utils/recordid"
)

func newMessage(userID, title string) *domain.Message {
	return &domain.Message{
		ID:      recordid.NewMessageID(),
		Version: domain.VersionLatest,
		UserID:  userID,
		Type:    domain.TypePrompt,
		Title:   title,
		Content: "content of " + title,
	}
}

func strPtr(s string) *string { return &s }

func TestCreateAndFindLatest(t *testing.T) {
	r := repo.NewPostgresRepository(testutil.OpenDB(t))
	ctx := context.Background()

	m := newMessage("user-1", "first")
	require.NoError(t, r.Create(ctx, m))
	require.False(t, m.CreatedAt.IsZero(), "Create must stamp CreatedAt")

	found, err := r.FindOwned(ctx, "user-1", m.ID, domain.VersionLatest)
	require.NoError(t, err)
	require.Equal(t, domain.VersionLatest, found.Version)
	require.Equal(t, "first", found.Title)
}

func TestFindOwnedHidesForeignRows(t *testing.T) {
	r := repo.NewPostgresRepository(testutil.OpenDB(t))
	ctx := context.Background()

	m := newMessage("user-1", "private")
	require.NoError(t, r.Create(ctx, m))

	_, err := r.FindOwned(ctx, "user-2", m.ID, domain.VersionLatest)
	require.True(t, platformerrors.IsType(err, platformerrors.ErrorTypeNotFound),
		"foreign-owned row must read as not found, got %v", err)
}

func TestUpdateArchivesPreUpdateState(t *testing.T) {
	r := repo.NewPostgresRepository(testutil.OpenDB(t))
	ctx := context.Background()

	m := newMessage("user-1", "original")
	require.NoError(t, r.Create(ctx, m))
	created := m.CreatedAt

	time.Sleep(5 * time.Millisecond)
	updated, err := r.UpdateLatest(ctx, "user-1", m.ID, domain.Changes{Title: strPtr("revised")})
	require.NoError(t, err)

	require.Equal(t, domain.VersionLatest, updated.Version, "latest row keeps the sentinel")
	require.Equal(t, "revised", updated.Title)
	require.True(t, updated.CreatedAt.Equal(created), "latest keeps its created_at")
	require.True(t, updated.UpdatedAt.After(m.UpdatedAt), "latest gets a fresh updated_at")

	snapshot, err := r.FindOwned(ctx, "user-1", m.ID, 1)
	require.NoError(t, err)
	require.Equal(t, "original", snapshot.Title, "snapshot freezes the pre-update state")
	require.True(t, snapshot.CreatedAt.Equal(created), "snapshot keeps the original created_at")
	require.True(t, snapshot.UpdatedAt.Equal(m.UpdatedAt), "snapshot keeps the original updated_at")
}

func TestRepeatedUpdatesNumberHistoryWithoutGaps(t *testing.T) {
	r := repo.NewPostgresRepository(testutil.OpenDB(t))
	ctx := context.Background()

	m := newMessage("user-1", "v0")
	require.NoError(t, r.Create(ctx, m))

	for _, title := range []string{"v1", "v2", "v3"} {
		_, err := r.UpdateLatest(ctx, "user-1", m.ID, domain.Changes{Title: strPtr(title)})
		require.NoError(t, err)
	}

	history, total, err := r.ListHistory(ctx, "user-1", m.ID, 10, 0)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, history, 3)

	// Newest snapshot first, versions 3..1 with no gaps.
	wantVersions := []int{3, 2, 1}
	wantTitles := []string{"v2", "v1", "v0"}
	for i, h := range history {
		require.Equal(t, wantVersions[i], h.Version)
		require.Equal(t, wantTitles[i], h.Title)
	}
}

func TestUpdatePartialFields(t *testing.T) {
	r := repo.NewPostgresRepository(testutil.OpenDB(t))
	ctx := context.Background()

	m := newMessage("user-1", "keep me")
	m.Summary = strPtr("old summary")
	require.NoError(t, r.Create(ctx, m))

	starred := true
	updated, err := r.UpdateLatest(ctx, "user-1", m.ID, domain.Changes{Starred: &starred})
	require.NoError(t, err)
	require.True(t, updated.Starred)
	require.Equal(t, "keep me", updated.Title, "unset fields stay untouched")
	require.NotNil(t, updated.Summary)
	require.Equal(t, "old summary", *updated.Summary)
}

func TestUpdateClearsSummary(t *testing.T) {
	r := repo.NewPostgresRepository(testutil.OpenDB(t))
	ctx := context.Background()

	m := newMessage("user-1", "summarized")
	m.Summary = strPtr("old summary")
	require.NoError(t, r.Create(ctx, m))

	updated, err := r.UpdateLatest(ctx, "user-1", m.ID, domain.Changes{ClearSummary: true})
	require.NoError(t, err)
	require.Nil(t, updated.Summary)

	// The archived snapshot keeps the pre-update summary.
	snapshot, err := r.FindOwned(ctx, "user-1", m.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, snapshot.Summary)
	require.Equal(t, "old summary", *snapshot.Summary)
}

func TestUpdateClearsPersona(t *testing.T) {
	r := repo.NewPostgresRepository(testutil.OpenDB(t))
	ctx := context.Background()

	m := newMessage("user-1", "linked")
	m.PersonaID = strPtr("prs_something")
	require.NoError(t, r.Create(ctx, m))

	updated, err := r.UpdateLatest(ctx, "user-1", m.ID, domain.Changes{ClearPersona: true})
	require.NoError(t, err)
	require.Nil(t, updated.PersonaID)
}

func TestUpdateMissingMessage(t *testing.T) {
	r := repo.NewPostgresRepository(testutil.OpenDB(t))
	ctx := context.Background()

	_, err := r.UpdateLatest(ctx, "user-1", recordid.NewMessageID(), domain.Changes{Title: strPtr("x")})
	require.True(t, platformerrors.IsType(err, platformerrors.ErrorTypeNotFound))
}

func TestSoftDeleteAllIsTerminal(t *testing.T) {
	db := testutil.OpenDB(t)
	r := repo.NewPostgresRepository(db)
	ctx := context.Background()

	m := newMessage("user-1", "doomed")
	require.NoError(t, r.Create(ctx, m))
	_, err := r.UpdateLatest(ctx, "user-1", m.ID, domain.Changes{Title: strPtr("doomed v2")})
	require.NoError(t, err)

	require.NoError(t, r.SoftDeleteAll(ctx, "user-1", m.ID))

	_, err = r.FindOwned(ctx, "user-1", m.ID, domain.VersionLatest)
	require.True(t, platformerrors.IsType(err, platformerrors.ErrorTypeNotFound), "latest row reads as gone")

	_, err = r.FindOwned(ctx, "user-1", m.ID, 1)
	require.True(t, platformerrors.IsType(err, platformerrors.ErrorTypeNotFound), "snapshots read as gone")

	_, total, err := r.ListHistory(ctx, "user-1", m.ID, 10, 0)
	require.NoError(t, err)
	require.EqualValues(t, 0, total)

	err = r.SoftDeleteAll(ctx, "user-1", m.ID)
	require.True(t, platformerrors.IsType(err, platformerrors.ErrorTypeNotFound), "second delete reports not found")

	// Rows are retained physically, only marked.
	var kept int64
	require.NoError(t, db.Model(&entities.Message{}).
		Where("id = ? AND deleted_at IS NOT NULL", m.ID).
		Count(&kept).Error)
	require.EqualValues(t, 2, kept)
}

func TestDeleteDoesNotTouchOtherOwners(t *testing.T) {
	r := repo.NewPostgresRepository(testutil.OpenDB(t))
	ctx := context.Background()

	m := newMessage("user-1", "mine")
	require.NoError(t, r.Create(ctx, m))

	err := r.SoftDeleteAll(ctx, "user-2", m.ID)
	require.True(t, platformerrors.IsType(err, platformerrors.ErrorTypeNotFound))

	_, err = r.FindOwned(ctx, "user-1", m.ID, domain.VersionLatest)
	require.NoError(t, err, "owner still sees the message")
}

func TestListReturnsLatestRowsOnly(t *testing.T) {
	r := repo.NewPostgresRepository(testutil.OpenDB(t))
	ctx := context.Background()

	m := newMessage("user-1", "versioned")
	require.NoError(t, r.Create(ctx, m))
	_, err := r.UpdateLatest(ctx, "user-1", m.ID, domain.Changes{Title: strPtr("versioned v2")})
	require.NoError(t, err)

	other := newMessage("user-2", "not mine")
	require.NoError(t, r.Create(ctx, other))

	rows, total, err := r.List(ctx, domain.NewFilter("user-1"))
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	require.Equal(t, domain.VersionLatest, rows[0].Version)
	require.Equal(t, "versioned v2", rows[0].Title)
}

func TestListFilters(t *testing.T) {
	r := repo.NewPostgresRepository(testutil.OpenDB(t))
	ctx := context.Background()

	prompt := newMessage("user-1", "a prompt")
	require.NoError(t, r.Create(ctx, prompt))

	response := newMessage("user-1", "a response")
	response.Type = domain.TypeResponse
	response.Starred = true
	require.NoError(t, r.Create(ctx, response))

	rows, total, err := r.List(ctx, domain.NewFilter("user-1").WithType(domain.TypeResponse))
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "a response", rows[0].Title)

	rows, total, err = r.List(ctx, domain.NewFilter("user-1").WithStarred(true))
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "a response", rows[0].Title)

	_, total, err = r.List(ctx, domain.NewFilter("user-1").WithStarred(false))
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
}

func TestListCountsBeyondWindow(t *testing.T) {
	r := repo.NewPostgresRepository(testutil.OpenDB(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, r.Create(ctx, newMessage("user-1", "bulk")))
	}

	rows, total, err := r.List(ctx, domain.NewFilter("user-1").WithPagination(2, 2))
	require.NoError(t, err)
	require.EqualValues(t, 5, total, "total ignores the pagination window")
	require.Len(t, rows, 2)
}

func TestHistoryPagination(t *testing.T) {
	r := repo.NewPostgresRepository(testutil.OpenDB(t))
	ctx := context.Background()

	m := newMessage("user-1", "v0")
	require.NoError(t, r.Create(ctx, m))
	for i := 1; i <= 7; i++ {
		_, err := r.UpdateLatest(ctx, "user-1", m.ID, domain.Changes{Title: strPtr("rev")})
		require.NoError(t, err)
	}

	history, total, err := r.ListHistory(ctx, "user-1", m.ID, 5, 0)
	require.NoError(t, err)
	require.EqualValues(t, 7, total)
	require.Len(t, history, 5)
	require.Equal(t, 7, history[0].Version)

	history, _, err = r.ListHistory(ctx, "user-1", m.ID, 5, 5)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, 2, history[0].Version)
	require.Equal(t, 1, history[1].Version)
}
