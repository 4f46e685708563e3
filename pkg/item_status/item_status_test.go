package item_status

import (
	"context"
	"testing"

	"github.com/milplan/milplan/internal/apperr"
	"github.com/milplan/milplan/internal/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemStatus_Category(t *testing.T) {
	tests := []struct {
		name          string
		designationEn string
		designationFr string
		want          StatusCategory
	}{
		{"pending status", "Pending approval", "En attente d'approbation", StatusPending},
		{"in progress maps to pending", "In progress", "En cours", StatusPending},
		{"approved status", "Approved", "Approuvé", StatusApproved},
		{"validated maps to approved", "Validated", "Validé", StatusApproved},
		{"rejected status", "Rejected", "Rejeté", StatusRejected},
		{"refused maps to rejected", "Validation refused", "Validation refusée", StatusRejected},
		{"cancelled status", "Cancelled", "Annulé", StatusCancelled},
		{"cancellation beats approval keywords", "Approved then cancelled", "Approuvé puis annulé", StatusCancelled},
		{"unknown wording maps to other", "Archived", "Archivé", StatusOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ItemStatus{DesignationEn: tt.designationEn, DesignationFr: tt.designationFr}
			if got := s.Category(); got != tt.want {
				t.Errorf("Category() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestServiceImpl_ListByCategory(t *testing.T) {
	// given
	ctx := context.Background()
	repo := NewStubRepo()
	service := NewService(repo, nil)

	_, err := service.Create(ctx, ItemStatus{DesignationAr: "أ", DesignationEn: "Pending", DesignationFr: "En attente"})
	require.NoError(t, err)
	_, err = service.Create(ctx, ItemStatus{DesignationAr: "ب", DesignationEn: "Approved", DesignationFr: "Approuvé"})
	require.NoError(t, err)

	// when
	pending, err := service.ListByCategory(ctx, StatusPending)

	// then
	assert.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Pending", pending[0].DesignationEn)
}

func TestServiceImpl_Search(t *testing.T) {
	// given
	ctx := context.Background()
	repo := NewStubRepo()
	service := NewService(repo, nil)

	_, err := service.Create(ctx, ItemStatus{DesignationAr: "أ", DesignationEn: "Pending", DesignationFr: "En attente"})
	require.NoError(t, err)
	_, err = service.Create(ctx, ItemStatus{DesignationAr: "ب", DesignationEn: "Approved", DesignationFr: "Approuvé"})
	require.NoError(t, err)

	// when
	matches, err := service.Search(ctx, "attente", rest.PageRequest{Page: 0, Size: 10, SortBy: "designationFr"})

	// then
	assert.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Pending", matches[0].DesignationEn)
}

func TestServiceImpl_Create_Duplicate(t *testing.T) {
	// given
	ctx := context.Background()
	repo := NewStubRepo()
	service := NewService(repo, nil)
	_, err := service.Create(ctx, ItemStatus{DesignationAr: "أ", DesignationEn: "Pending", DesignationFr: "En attente"})
	require.NoError(t, err)

	// when
	_, err = service.Create(ctx, ItemStatus{DesignationAr: "ب", DesignationEn: "Waiting", DesignationFr: "En attente"})

	// then
	assert.ErrorIs(t, err, apperr.ErrConflict)
}
