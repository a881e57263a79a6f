// Package store wraps all database access behind a small append/delete
// only contract. Handlers never touch gorm directly
package store

import (
	"enigme/event-site/internal/model"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type EntryStore struct {
	db *gorm.DB
}

func NewEntryStore(db *gorm.DB) *EntryStore {
	return &EntryStore{db: db}
}

// Create inserts a new entry. The id and the UTC creation timestamp
// are assigned here, callers only supply the validated fields
func (s *EntryStore) Create(name, message, ipAddr string) (*model.GuestbookEntry, error) {
	e := &model.GuestbookEntry{
		Name:      name,
		Message:   message,
		IPAddr:    ipAddr,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.db.Create(e).Error; err != nil {
		return nil, fmt.Errorf("failed to create entry, %w", err)
	}

	return e, nil
}

// ListRecent returns up to limit entries, newest first
func (s *EntryStore) ListRecent(limit int) ([]model.GuestbookEntry, error) {
	var entries []model.GuestbookEntry

	err := s.db.
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to list entries, %w", err)
	}

	return entries, nil
}

// ListAll returns every entry, newest first
func (s *EntryStore) ListAll() ([]model.GuestbookEntry, error) {
	var entries []model.GuestbookEntry

	err := s.db.
		Order("created_at DESC").
		Find(&entries).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to list entries, %w", err)
	}

	return entries, nil
}

// DeleteByID removes the entry with the given id. Deleting an id that
// doesn't exist is not an error
func (s *EntryStore) DeleteByID(id uint) error {
	err := s.db.
		Where("id = ?", id).
		Delete(model.GuestbookEntry{}).
		Error
	if err != nil {
		return fmt.Errorf("failed to delete entry, %w", err)
	}

	return nil
}
