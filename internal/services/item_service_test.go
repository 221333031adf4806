package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelarm/taskbox-be/internal/models"
	"github.com/avelarm/taskbox-be/internal/services"
)

// itemFixture creates two users and one item owned by the first.
func itemFixture(t *testing.T) (svc *services.ItemService, ownerID, otherID int64, item models.Item) {
	t.Helper()

	db := newTestDB(t)
	audit := services.NewAuditService(db)
	users := services.NewUserService(db, audit)
	svc = services.NewItemService(db, audit)

	owner, err := users.Register("alice", "pw1")
	require.NoError(t, err)
	other, err := users.Register("bob", "pw2")
	require.NoError(t, err)

	item, err = svc.Create(owner.ID, "buy milk", false)
	require.NoError(t, err)

	return svc, owner.ID, other.ID, item
}

func TestItemService_Create(t *testing.T) {
	_, _, _, item := itemFixture(t)

	assert.NotZero(t, item.ID)
	assert.Equal(t, "buy milk", item.Title)
	assert.False(t, item.IsDone)
}

func TestItemService_ListByOwner_ScopedToOwner(t *testing.T) {
	svc, ownerID, otherID, item := itemFixture(t)

	_, err := svc.Create(otherID, "bob's secret", false)
	require.NoError(t, err)

	ownerItems, err := svc.ListByOwner(ownerID)
	require.NoError(t, err)
	require.Len(t, ownerItems, 1)
	assert.Equal(t, item.ID, ownerItems[0].ID)

	otherItems, err := svc.ListByOwner(otherID)
	require.NoError(t, err)
	require.Len(t, otherItems, 1)
	assert.Equal(t, "bob's secret", otherItems[0].Title)
}

func TestItemService_ListByOwner_EmptyIsNotNil(t *testing.T) {
	svc, _, otherID, _ := itemFixture(t)

	items, err := svc.ListByOwner(otherID)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestItemService_GetByOwner(t *testing.T) {
	svc, ownerID, otherID, item := itemFixture(t)

	got, err := svc.GetByOwner(ownerID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item, got)

	// Another user's lookup must be indistinguishable from a missing id.
	_, err = svc.GetByOwner(otherID, item.ID)
	assert.ErrorIs(t, err, services.ErrItemNotFound)

	_, err = svc.GetByOwner(ownerID, 99999)
	assert.ErrorIs(t, err, services.ErrItemNotFound)
}

func TestItemService_UpdateByOwner(t *testing.T) {
	title := "buy oat milk"
	done := true

	tests := []struct {
		name      string
		patch     models.ItemPatch
		wantTitle string
		wantDone  bool
	}{
		{"title only", models.ItemPatch{Title: &title}, "buy oat milk", false},
		{"is_done only", models.ItemPatch{IsDone: &done}, "buy milk", true},
		{"both fields", models.ItemPatch{Title: &title, IsDone: &done}, "buy oat milk", true},
		{"empty patch", models.ItemPatch{}, "buy milk", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, ownerID, _, item := itemFixture(t)

			updated, err := svc.UpdateByOwner(ownerID, item.ID, tt.patch)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, updated.Title)
			assert.Equal(t, tt.wantDone, updated.IsDone)
		})
	}
}

func TestItemService_UpdateByOwner_WrongOwner(t *testing.T) {
	svc, ownerID, otherID, item := itemFixture(t)

	title := "hijacked"
	_, err := svc.UpdateByOwner(otherID, item.ID, models.ItemPatch{Title: &title})
	assert.ErrorIs(t, err, services.ErrItemNotFound)

	// The item is untouched.
	got, err := svc.GetByOwner(ownerID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "buy milk", got.Title)
}

func TestItemService_DeleteByOwner(t *testing.T) {
	svc, ownerID, otherID, item := itemFixture(t)

	// Someone else cannot delete it.
	assert.ErrorIs(t, svc.DeleteByOwner(otherID, item.ID), services.ErrItemNotFound)

	require.NoError(t, svc.DeleteByOwner(ownerID, item.ID))

	_, err := svc.GetByOwner(ownerID, item.ID)
	assert.ErrorIs(t, err, services.ErrItemNotFound)

	// Deleting again reports not found, it does not blow up.
	assert.ErrorIs(t, svc.DeleteByOwner(ownerID, item.ID), services.ErrItemNotFound)
}
