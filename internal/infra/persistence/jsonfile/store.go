// Package jsonfile implements the persistence layer on top of a single JSON
// document on disk. It is the zero-dependency backend for single-household
// installs that do not run PostgreSQL.
package jsonfile

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"larder/internal/domain/repository"
	"larder/internal/util"

	"github.com/pkg/errors"
)

// document is the on-disk layout of the whole data set.
type document struct {
	Units     []unitDoc    `json:"units"`
	History   []historyDoc `json:"history"`
	Reminders []string     `json:"reminders"`
	Config    *configDoc   `json:"notification_config,omitempty"`
	Users     []userDoc    `json:"users"`
}

type unitDoc struct {
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	IsExample bool      `json:"is_example,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Items     []itemDoc `json:"items"`
}

type itemDoc struct {
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	Category       string `json:"category"`
	DateAdded      string `json:"date_added"`
	ExpirationDate string `json:"expiration_date"`
}

type historyDoc struct {
	ID             string    `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	Action         string    `json:"action"`
	Item           string    `json:"item"`
	Category       string    `json:"category"`
	Quantity       int       `json:"quantity"`
	StorageUnit    string    `json:"storage_unit"`
	Expired        bool      `json:"expired,omitempty"`
	ExpirationDate string    `json:"expiration_date,omitempty"`
	IsExample      bool      `json:"is_example,omitempty"`
	Username       string    `json:"username,omitempty"`
}

type configDoc struct {
	Recipient            string     `json:"recipient"`
	Weekdays             []int      `json:"weekdays"`
	Time                 string     `json:"time"`
	NotifyExpired        bool       `json:"notify_expired"`
	NotifyExpiringSoon   bool       `json:"notify_expiring_soon"`
	NotifyLowQuantity    bool       `json:"notify_low_quantity"`
	NotifyRemovedItems   bool       `json:"notify_removed_items"`
	NotifyAddedItems     bool       `json:"notify_added_items"`
	ExpiringSoonDays     int        `json:"expiring_soon_days"`
	LowQuantityThreshold int        `json:"low_quantity_threshold"`
	LastSent             *time.Time `json:"last_sent,omitempty"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

type userDoc struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Store owns the document and serializes all access to it. It doubles as the
// TransactionManager for this backend.
type Store struct {
	path   string
	logger *slog.Logger

	mu  sync.Mutex
	doc document
}

// NewStore loads the document at path, or starts empty when the file does not
// exist yet.
func NewStore(path string, logger *slog.Logger) (*Store, error) {
	store := &Store{
		path:   path,
		logger: logger,
	}
	if err := store.load(); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Info("Data file not found, starting with empty store",
				slog.String("path", s.path))

			return nil
		}

		return errors.Wrap(err, "failed to read data file")
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.doc); err != nil {
		return errors.Wrap(err, "failed to parse data file")
	}

	return nil
}

// persist writes the document atomically via a temp file rename.
// Callers must hold the store lock.
func (s *Store) persist() error {
	data, err := json.MarshalIndent(&s.doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode data file")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.Wrap(err, "failed to create data directory")
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(err, "failed to write data file")
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "failed to replace data file")
	}

	s.logger.Debug("Persisted data file",
		slog.String("path", s.path),
		slog.String("size", util.FormatBytes(int64(len(data)))))

	return nil
}

// view runs a read against the document. Outside a transaction it takes the
// store lock; inside one the transaction already holds it.
func (s *Store) view(inTx bool, fn func(doc *document) error) error {
	if inTx {
		return fn(&s.doc)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(&s.doc)
}

// update runs a mutation against the document and, outside a transaction,
// persists the result immediately.
func (s *Store) update(inTx bool, fn func(doc *document) error) error {
	if inTx {
		return fn(&s.doc)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(&s.doc); err != nil {
		return err
	}

	return s.persist()
}

// repositoryFactory hands out repositories bound to the running transaction.
type repositoryFactory struct {
	store *Store
}

func (f *repositoryFactory) NewInventoryRepository() repository.InventoryRepository {
	return &inventoryRepository{store: f.store, inTx: true}
}

func (f *repositoryFactory) NewHistoryRepository() repository.HistoryRepository {
	return &historyRepository{store: f.store, inTx: true}
}

func (f *repositoryFactory) NewReminderRepository() repository.ReminderRepository {
	return &reminderRepository{store: f.store, inTx: true}
}

func (f *repositoryFactory) NewConfigRepository() repository.ConfigRepository {
	return &configRepository{store: f.store, inTx: true}
}

func (f *repositoryFactory) NewUserRepository() repository.UserRepository {
	return &userRepository{store: f.store, inTx: true}
}

// NewTransactionManager exposes the store as a repository.TransactionManager.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return store
}

// Execute runs fn against the document under the store lock. On error the
// document is rolled back to its pre-transaction state; on success the whole
// document is written out once.
func (s *Store) Execute(_ context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := cloneDocument(&s.doc)
	if err != nil {
		return err
	}

	if err := fn(&repositoryFactory{store: s}); err != nil {
		s.doc = *snapshot

		return err
	}

	if err := s.persist(); err != nil {
		s.doc = *snapshot

		return err
	}

	return nil
}

// cloneDocument deep-copies the document through a JSON round trip.
func cloneDocument(doc *document) (*document, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to snapshot document")
	}

	var clone document
	if err := json.Unmarshal(data, &clone); err != nil {
		return nil, errors.Wrap(err, "failed to restore document snapshot")
	}

	return &clone, nil
}
