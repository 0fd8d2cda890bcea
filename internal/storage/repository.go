package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("history entry not found")

type Repository struct {
	db       *gorm.DB
	maxItems int
}

// NewRepository keeps at most maxItems history entries.
func NewRepository(db *gorm.DB, maxItems int) *Repository {
	return &Repository{db: db, maxItems: maxItems}
}

// AddHistory stores a calculation and drops the oldest entries beyond the cap.
func (r *Repository) AddHistory(kind string, input, result any) (*HistoryEntry, error) {
	in, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("encode input: %w", err)
	}
	out, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}

	entry := &HistoryEntry{
		EntryID: uuid.NewString(),
		Kind:    kind,
		Input:   string(in),
		Result:  string(out),
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		var keep []uint
		if err := tx.Model(&HistoryEntry{}).Order("id DESC").Limit(r.maxItems).Pluck("id", &keep).Error; err != nil {
			return err
		}
		return tx.Where("id NOT IN ?", keep).Delete(&HistoryEntry{}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("add history: %w", err)
	}
	return entry, nil
}

// ListHistory returns entries newest first.
func (r *Repository) ListHistory() ([]HistoryEntry, error) {
	var entries []HistoryEntry
	err := r.db.Order("id DESC").Find(&entries).Error
	return entries, err
}

func (r *Repository) GetHistory(entryID string) (*HistoryEntry, error) {
	var entry HistoryEntry
	err := r.db.Where("entry_id = ?", entryID).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *Repository) RemoveHistory(entryID string) error {
	res := r.db.Where("entry_id = ?", entryID).Delete(&HistoryEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) ClearHistory() error {
	return r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&HistoryEntry{}).Error
}
