package pagination_test

import (
	"context"
	"testing"

	"promptkeep/services/message-api/internal/domain/pagination"
	"promptkeep/services/message-api/internal/utils/platformerrors"
)

func intPtr(v int) *int { return &v }

func TestNewDefaults(t *testing.T) {
	p, err := pagination.New(context.Background(), nil, nil, pagination.DefaultListPageSize)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if p.Page != 1 || p.PageSize != pagination.DefaultListPageSize {
		t.Errorf("got page=%d size=%d, want 1/%d", p.Page, p.PageSize, pagination.DefaultListPageSize)
	}
}

func TestNewRejectsOutOfRange(t *testing.T) {
	cases := []struct {
		name     string
		page     *int
		pageSize *int
	}{
		{"explicit zero page", intPtr(0), nil},
		{"explicit zero size", nil, intPtr(0)},
		{"negative page", intPtr(-1), intPtr(10)},
		{"negative size", intPtr(1), intPtr(-5)},
		{"size over max", intPtr(1), intPtr(pagination.MaxPageSize + 1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := pagination.New(context.Background(), tc.page, tc.pageSize, 20)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !platformerrors.IsType(err, platformerrors.ErrorTypeValidation) {
				t.Errorf("error type = %v, want validation", err)
			}
		})
	}
}

func TestNewDoesNotClamp(t *testing.T) {
	if _, err := pagination.New(context.Background(), intPtr(1), intPtr(101), 20); err == nil {
		t.Error("page_size=101 accepted, want rejection")
	}
}

func TestOffset(t *testing.T) {
	cases := []struct {
		page, size, want int
	}{
		{1, 20, 0},
		{2, 20, 20},
		{3, 5, 10},
	}
	for _, tc := range cases {
		p := pagination.Params{Page: tc.page, PageSize: tc.size}
		if got := p.Offset(); got != tc.want {
			t.Errorf("Offset(page=%d, size=%d) = %d, want %d", tc.page, tc.size, got, tc.want)
		}
	}
}

func TestHasMore(t *testing.T) {
	cases := []struct {
		page, size int
		total      int64
		want       bool
	}{
		{1, 20, 0, false},
		{1, 20, 20, false},
		{1, 20, 21, true},
		{2, 20, 41, true},
		{3, 20, 41, false},
		{1, 5, 6, true},
	}
	for _, tc := range cases {
		p := pagination.Params{Page: tc.page, PageSize: tc.size}
		if got := p.HasMore(tc.total); got != tc.want {
			t.Errorf("HasMore(page=%d size=%d total=%d) = %v, want %v", tc.page, tc.size, tc.total, got, tc.want)
		}
	}
}
