package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// sessionRecord is the single-row table backing the SQLiteStore.
type sessionRecord struct {
	ID           uint `gorm:"primarykey"`
	AccessToken  string
	RefreshToken string
	User         []byte
	UpdatedAt    time.Time
}

// SQLiteStore persists the session in a local SQLite file.
type SQLiteStore struct {
	db *gorm.DB
}

// NewSQLiteStore opens (or creates) the session database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open session database: %w", err)
	}

	if err := db.AutoMigrate(&sessionRecord{}); err != nil {
		return nil, fmt.Errorf("migrate session database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load() (Session, error) {
	var record sessionRecord
	err := s.db.First(&record, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, err
	}

	return Session{
		AccessToken:  record.AccessToken,
		RefreshToken: record.RefreshToken,
		User:         record.User,
	}, nil
}

func (s *SQLiteStore) Save(session Session) error {
	record := sessionRecord{
		ID:           1,
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		User:         session.User,
	}

	return s.db.Save(&record).Error
}

func (s *SQLiteStore) Clear() error {
	return s.db.Delete(&sessionRecord{}, 1).Error
}
