package model

import "time"

// GuestbookEntry is a single message left on one of the guestbook
// pages. Entries are only ever created and deleted, never updated
type GuestbookEntry struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"size:30;index;not null"`
	Message   string    `gorm:"size:500;not null"`
	IPAddr    string    `gorm:"size:45;not null"`
	CreatedAt time.Time `gorm:"index;not null"`
}
