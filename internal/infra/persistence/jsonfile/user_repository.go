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

// userRepository implements repository.UserRepository on the JSON store.
type userRepository struct {
	store *Store
	inTx  bool
}

// NewUserRepository is the constructor for the standalone (non-transactional) repository.
func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{store: store}
}

func (repo *userRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return repo.find(func(u *userDoc) bool { return u.ID == id.String() })
}

func (repo *userRepository) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	return repo.find(func(u *userDoc) bool { return u.Username == username })
}

func (repo *userRepository) find(match func(*userDoc) bool) (*entity.User, error) {
	var found *entity.User

	err := repo.store.view(repo.inTx, func(doc *document) error {
		for i := range doc.Users {
			if match(&doc.Users[i]) {
				user, err := toUserEntity(&doc.Users[i])
				if err != nil {
					return err
				}
				found = user

				return nil
			}
		}

		return repository.ErrUserNotFound
	})
	if err != nil {
		return nil, err
	}

	return found, nil
}

func (repo *userRepository) List(_ context.Context) ([]*entity.User, error) {
	var users []*entity.User

	err := repo.store.view(repo.inTx, func(doc *document) error {
		users = make([]*entity.User, 0, len(doc.Users))
		for i := range doc.Users {
			user, err := toUserEntity(&doc.Users[i])
			if err != nil {
				return err
			}
			users = append(users, user)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })

	return users, nil
}

func (repo *userRepository) Create(_ context.Context, user *entity.User) error {
	return repo.store.update(repo.inTx, func(doc *document) error {
		for i := range doc.Users {
			if doc.Users[i].Username == user.Username {
				return repository.ErrUserAlreadyExists
			}
		}

		if user.ID == uuid.Nil {
			user.ID = uuid.New()
		}
		now := time.Now()
		user.CreatedAt = now
		user.UpdatedAt = now
		doc.Users = append(doc.Users, fromUserEntity(user))

		return nil
	})
}

func (repo *userRepository) Update(_ context.Context, user *entity.User) error {
	return repo.store.update(repo.inTx, func(doc *document) error {
		for i := range doc.Users {
			if doc.Users[i].Username == user.Username {
				user.UpdatedAt = time.Now()
				updated := fromUserEntity(user)
				updated.CreatedAt = doc.Users[i].CreatedAt
				doc.Users[i] = updated

				return nil
			}
		}

		return repository.ErrUserNotFound
	})
}

func (repo *userRepository) Delete(_ context.Context, username string) error {
	return repo.store.update(repo.inTx, func(doc *document) error {
		for i := range doc.Users {
			if doc.Users[i].Username == username {
				doc.Users = append(doc.Users[:i], doc.Users[i+1:]...)

				return nil
			}
		}

		return repository.ErrUserNotFound
	})
}

// --- Mapper Functions ---

func toUserEntity(data *userDoc) (*entity.User, error) {
	id, err := uuid.Parse(data.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "corrupt user id %q for user %q", data.ID, data.Username)
	}

	return &entity.User{
		ID:           id,
		Username:     data.Username,
		PasswordHash: data.PasswordHash,
		Role:         entity.Role(data.Role),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}, nil
}

func fromUserEntity(data *entity.User) userDoc {
	return userDoc{
		ID:           data.ID.String(),
		Username:     data.Username,
		PasswordHash: data.PasswordHash,
		Role:         string(data.Role),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
