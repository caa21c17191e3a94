package jsonfile

import (
	"context"
	"sort"
	"time"

	"larder/internal/domain/entity"
	"larder/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// historyRepository implements repository.HistoryRepository on the JSON store.
type historyRepository struct {
	store *Store
	inTx  bool
}

// NewHistoryRepository is the constructor for the standalone (non-transactional) repository.
func NewHistoryRepository(store *Store) repository.HistoryRepository {
	return &historyRepository{store: store}
}

func (repo *historyRepository) Append(_ context.Context, entry *entity.HistoryEntry) error {
	return repo.store.update(repo.inTx, func(doc *document) error {
		if entry.ID == uuid.Nil {
			entry.ID = uuid.New()
		}
		doc.History = append(doc.History, fromHistoryEntity(entry))

		return nil
	})
}

func (repo *historyRepository) List(_ context.Context, filter repository.HistoryFilter) ([]*entity.HistoryEntry, error) {
	var entries []*entity.HistoryEntry

	err := repo.store.view(repo.inTx, func(doc *document) error {
		var cutoff time.Time
		if filter.SinceDays > 0 {
			cutoff = time.Now().AddDate(0, 0, -filter.SinceDays)
		}

		entries = make([]*entity.HistoryEntry, 0, len(doc.History))
		for i := range doc.History {
			entry := &doc.History[i]
			if filter.SinceDays > 0 && entry.Timestamp.Before(cutoff) {
				continue
			}
			if filter.Action != "" && entry.Action != string(filter.Action) {
				continue
			}
			if filter.Category != "" && entry.Category != string(filter.Category) {
				continue
			}
			converted, err := toHistoryEntity(entry)
			if err != nil {
				return err
			}
			entries = append(entries, converted)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Timestamp.After(entries[j].Timestamp) })

	return entries, nil
}

func (repo *historyRepository) DeleteExampleEntries(_ context.Context) error {
	return repo.store.update(repo.inTx, func(doc *document) error {
		kept := doc.History[:0]
		for i := range doc.History {
			if !doc.History[i].IsExample {
				kept = append(kept, doc.History[i])
			}
		}
		doc.History = kept

		return nil
	})
}

func (repo *historyRepository) DeleteAll(_ context.Context) error {
	return repo.store.update(repo.inTx, func(doc *document) error {
		doc.History = nil

		return nil
	})
}

// --- Mapper Functions ---

func toHistoryEntity(data *historyDoc) (*entity.HistoryEntry, error) {
	id, err := uuid.Parse(data.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "corrupt history entry id %q", data.ID)
	}

	return &entity.HistoryEntry{
		ID:             id,
		Timestamp:      data.Timestamp,
		Action:         entity.Action(data.Action),
		Item:           data.Item,
		Category:       entity.Category(data.Category),
		Quantity:       data.Quantity,
		StorageUnit:    data.StorageUnit,
		Expired:        data.Expired,
		ExpirationDate: data.ExpirationDate,
		IsExample:      data.IsExample,
		Username:       data.Username,
	}, nil
}

func fromHistoryEntity(data *entity.HistoryEntry) historyDoc {
	return historyDoc{
		ID:             data.ID.String(),
		Timestamp:      data.Timestamp,
		Action:         string(data.Action),
		Item:           data.Item,
		Category:       string(data.Category),
		Quantity:       data.Quantity,
		StorageUnit:    data.StorageUnit,
		Expired:        data.Expired,
		ExpirationDate: data.ExpirationDate,
		IsExample:      data.IsExample,
		Username:       data.Username,
	}
}
