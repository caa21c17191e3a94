package jsonfile

import (
	"context"
	"slices"
	"strings"

	"larder/internal/domain/repository"
)

// reminderRepository implements repository.ReminderRepository on the JSON store.
type reminderRepository struct {
	store *Store
	inTx  bool
}

// NewReminderRepository is the constructor for the standalone (non-transactional) repository.
func NewReminderRepository(store *Store) repository.ReminderRepository {
	return &reminderRepository{store: store}
}

func (repo *reminderRepository) ListKeys(_ context.Context) ([]string, error) {
	var keys []string

	err := repo.store.view(repo.inTx, func(doc *document) error {
		keys = slices.Clone(doc.Reminders)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return keys, nil
}

func (repo *reminderRepository) MarkKeys(_ context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	return repo.store.update(repo.inTx, func(doc *document) error {
		for _, key := range keys {
			if !slices.Contains(doc.Reminders, key) {
				doc.Reminders = append(doc.Reminders, key)
			}
		}

		return nil
	})
}

func (repo *reminderRepository) ClearKey(_ context.Context, key string) error {
	return repo.store.update(repo.inTx, func(doc *document) error {
		doc.Reminders = slices.DeleteFunc(doc.Reminders, func(k string) bool { return k == key })

		return nil
	})
}

func (repo *reminderRepository) ClearKeysWithPrefix(_ context.Context, prefix string) error {
	return repo.store.update(repo.inTx, func(doc *document) error {
		doc.Reminders = slices.DeleteFunc(doc.Reminders, func(k string) bool {
			return strings.HasPrefix(k, prefix)
		})

		return nil
	})
}

func (repo *reminderRepository) ClearAll(_ context.Context) error {
	return repo.store.update(repo.inTx, func(doc *document) error {
		doc.Reminders = nil

		return nil
	})
}
