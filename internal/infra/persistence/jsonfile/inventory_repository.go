package jsonfile

import (
	"context"
	"sort"
	"time"

	"larder/internal/domain/entity"
	"larder/internal/domain/repository"
)

// inventoryRepository implements repository.InventoryRepository on the JSON store.
type inventoryRepository struct {
	store *Store
	inTx  bool
}

// NewInventoryRepository is the constructor for the standalone (non-transactional) repository.
func NewInventoryRepository(store *Store) repository.InventoryRepository {
	return &inventoryRepository{store: store}
}

func (repo *inventoryRepository) FindUnit(_ context.Context, name string) (*entity.StorageUnit, error) {
	var found *entity.StorageUnit

	err := repo.store.view(repo.inTx, func(doc *document) error {
		for i := range doc.Units {
			if doc.Units[i].Name == name {
				found = toUnitEntity(&doc.Units[i])

				return nil
			}
		}

		return repository.ErrUnitNotFound
	})
	if err != nil {
		return nil, err
	}

	return found, nil
}

func (repo *inventoryRepository) ListUnits(_ context.Context) ([]*entity.StorageUnit, error) {
	var units []*entity.StorageUnit

	err := repo.store.view(repo.inTx, func(doc *document) error {
		units = make([]*entity.StorageUnit, 0, len(doc.Units))
		for i := range doc.Units {
			units = append(units, toUnitEntity(&doc.Units[i]))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(units, func(i, j int) bool { return units[i].Name < units[j].Name })

	return units, nil
}

func (repo *inventoryRepository) CreateUnit(_ context.Context, unit *entity.StorageUnit) error {
	return repo.store.update(repo.inTx, func(doc *document) error {
		for i := range doc.Units {
			if doc.Units[i].Name == unit.Name {
				return repository.ErrUnitAlreadyExists
			}
		}

		now := time.Now()
		if unit.CreatedAt.IsZero() {
			unit.CreatedAt = now
		}
		unit.UpdatedAt = now
		doc.Units = append(doc.Units, fromUnitEntity(unit))

		return nil
	})
}

func (repo *inventoryRepository) DeleteUnit(_ context.Context, name string) error {
	return repo.store.update(repo.inTx, func(doc *document) error {
		for i := range doc.Units {
			if doc.Units[i].Name == name {
				doc.Units = append(doc.Units[:i], doc.Units[i+1:]...)

				return nil
			}
		}

		return repository.ErrUnitNotFound
	})
}

func (repo *inventoryRepository) UpsertItem(_ context.Context, unitName string, item *entity.ItemRecord) error {
	return repo.store.update(repo.inTx, func(doc *document) error {
		unit := findUnitDoc(doc, unitName)
		if unit == nil {
			return repository.ErrUnitNotFound
		}

		record := itemDoc{
			Name:           item.Name,
			Quantity:       item.Quantity,
			Category:       string(item.Category),
			DateAdded:      item.DateAdded,
			ExpirationDate: item.ExpirationDate,
		}

		for i := range unit.Items {
			if unit.Items[i].Name == item.Name {
				unit.Items[i] = record
				unit.UpdatedAt = time.Now()

				return nil
			}
		}

		unit.Items = append(unit.Items, record)
		unit.UpdatedAt = time.Now()

		return nil
	})
}

func (repo *inventoryRepository) DeleteItem(_ context.Context, unitName, itemName string) error {
	return repo.store.update(repo.inTx, func(doc *document) error {
		unit := findUnitDoc(doc, unitName)
		if unit == nil {
			return repository.ErrUnitNotFound
		}

		for i := range unit.Items {
			if unit.Items[i].Name == itemName {
				unit.Items = append(unit.Items[:i], unit.Items[i+1:]...)
				unit.UpdatedAt = time.Now()

				return nil
			}
		}

		return repository.ErrItemNotFound
	})
}

func (repo *inventoryRepository) DeleteExampleUnits(_ context.Context) ([]string, error) {
	var deleted []string

	err := repo.store.update(repo.inTx, func(doc *document) error {
		deleted = []string{}
		kept := doc.Units[:0]
		for i := range doc.Units {
			if doc.Units[i].IsExample {
				deleted = append(deleted, doc.Units[i].Name)
			} else {
				kept = append(kept, doc.Units[i])
			}
		}
		doc.Units = kept

		return nil
	})
	if err != nil {
		return nil, err
	}

	return deleted, nil
}

func (repo *inventoryRepository) DeleteAllUnits(_ context.Context) error {
	return repo.store.update(repo.inTx, func(doc *document) error {
		doc.Units = nil

		return nil
	})
}

func findUnitDoc(doc *document, name string) *unitDoc {
	for i := range doc.Units {
		if doc.Units[i].Name == name {
			return &doc.Units[i]
		}
	}

	return nil
}

// --- Mapper Functions ---

func toUnitEntity(data *unitDoc) *entity.StorageUnit {
	contents := make([]entity.ItemRecord, 0, len(data.Items))
	for _, item := range data.Items {
		contents = append(contents, entity.ItemRecord{
			Name:           item.Name,
			Quantity:       item.Quantity,
			Category:       entity.Category(item.Category),
			DateAdded:      item.DateAdded,
			ExpirationDate: item.ExpirationDate,
		})
	}

	return &entity.StorageUnit{
		Name:      data.Name,
		Kind:      entity.UnitKind(data.Kind),
		Contents:  contents,
		IsExample: data.IsExample,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromUnitEntity(data *entity.StorageUnit) unitDoc {
	items := make([]itemDoc, 0, len(data.Contents))
	for _, item := range data.Contents {
		items = append(items, itemDoc{
			Name:           item.Name,
			Quantity:       item.Quantity,
			Category:       string(item.Category),
			DateAdded:      item.DateAdded,
			ExpirationDate: item.ExpirationDate,
		})
	}

	return unitDoc{
		Name:      data.Name,
		Kind:      string(data.Kind),
		IsExample: data.IsExample,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
		Items:     items,
	}
}
