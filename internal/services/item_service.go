package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/avelarm/taskbox-be/internal/models"
)

// ErrItemNotFound is returned when an item does not exist or belongs to
// another user. The two cases are deliberately indistinguishable so
// that the existence of other users' items never leaks.
var ErrItemNotFound = errors.New("item not found")

// ItemServiceProvider defines the interface for item services. Every
// operation is scoped to the owning user.
type ItemServiceProvider interface {
	ListByOwner(userID int64) ([]models.Item, error)
	Create(userID int64, title string, isDone bool) (models.Item, error)
	GetByOwner(userID, itemID int64) (models.Item, error)
	UpdateByOwner(userID, itemID int64, patch models.ItemPatch) (models.Item, error)
	DeleteByOwner(userID, itemID int64) error
}

// ItemService provides business logic for item management.
type ItemService struct {
	db    *sql.DB
	audit AuditServiceProvider
}

// NewItemService creates a new ItemService.
func NewItemService(db *sql.DB, audit AuditServiceProvider) *ItemService {
	return &ItemService{db: db, audit: audit}
}

// ListByOwner retrieves all items belonging to the given user.
func (s *ItemService) ListByOwner(userID int64) ([]models.Item, error) {
	rows, err := s.db.Query(`
		SELECT id, title, is_done, user_id, created_at
		FROM items WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.ID, &item.Title, &item.IsDone, &item.UserID, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Create inserts a new item owned by the given user.
func (s *ItemService) Create(userID int64, title string, isDone bool) (models.Item, error) {
	stmt, err := s.db.Prepare("INSERT INTO items(title, is_done, user_id) VALUES(?, ?, ?)")
	if err != nil {
		return models.Item{}, err
	}
	defer stmt.Close()

	res, err := stmt.Exec(title, isDone, userID)
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to create item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.Item{}, err
	}
	return s.GetByOwner(userID, id)
}

// GetByOwner retrieves a single item, but only if it belongs to the
// given user.
func (s *ItemService) GetByOwner(userID, itemID int64) (models.Item, error) {
	var item models.Item
	row := s.db.QueryRow(`
		SELECT id, title, is_done, user_id, created_at
		FROM items WHERE id = ? AND user_id = ?`, itemID, userID)
	err := row.Scan(&item.ID, &item.Title, &item.IsDone, &item.UserID, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.auditMiss(userID, itemID)
			return models.Item{}, ErrItemNotFound
		}
		return models.Item{}, err
	}
	return item, nil
}

// UpdateByOwner applies a partial update to an item the user owns. Only
// fields present in the patch change.
func (s *ItemService) UpdateByOwner(userID, itemID int64, patch models.ItemPatch) (models.Item, error) {
	item, err := s.GetByOwner(userID, itemID)
	if err != nil {
		return models.Item{}, err
	}

	if patch.Title != nil {
		item.Title = *patch.Title
	}
	if patch.IsDone != nil {
		item.IsDone = *patch.IsDone
	}

	_, err = s.db.Exec("UPDATE items SET title = ?, is_done = ? WHERE id = ? AND user_id = ?",
		item.Title, item.IsDone, itemID, userID)
	if err != nil {
		return models.Item{}, err
	}
	return s.GetByOwner(userID, itemID)
}

// DeleteByOwner removes an item the user owns. Deleting an absent or
// foreign item reports ErrItemNotFound.
func (s *ItemService) DeleteByOwner(userID, itemID int64) error {
	res, err := s.db.Exec("DELETE FROM items WHERE id = ? AND user_id = ?", itemID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		s.auditMiss(userID, itemID)
		return ErrItemNotFound
	}
	return nil
}

// auditMiss records an ownership miss when the item exists but belongs
// to someone else. The caller's response is identical either way; the
// distinction lives only in the audit trail.
func (s *ItemService) auditMiss(userID, itemID int64) {
	var owner int64
	err := s.db.QueryRow("SELECT user_id FROM items WHERE id = ?", itemID).Scan(&owner)
	if err == nil && owner != userID {
		s.audit.Record("item.denied", &userID, fmt.Sprintf("item %d", itemID))
	}
}
