package service

import (
	"context"
	"sort"

	"github.com/datavault/datavault-go/internal/model"
	"github.com/datavault/datavault-go/internal/repository"
)

// fakeItemRepo is an in-memory ItemRepository. Items are cloned on the way
// in and out so tests observe the same isolation a real store provides.
type fakeItemRepo struct {
	items map[string]*model.VaultItem
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[string]*model.VaultItem)}
}

func cloneItem(item *model.VaultItem) *model.VaultItem {
	clone := *item
	clone.Tags = append([]string(nil), item.Tags...)
	clone.AccessControl = append([]model.AccessGrant(nil), item.AccessControl...)
	return &clone
}

func (r *fakeItemRepo) Insert(_ context.Context, item *model.VaultItem) error {
	r.items[item.ID] = cloneItem(item)
	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, id string) (*model.VaultItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, repository.ErrItemNotFound
	}
	return cloneItem(item), nil
}

func (r *fakeItemRepo) ListByOwner(_ context.Context, ownerID int64) ([]model.VaultItem, error) {
	var items []model.VaultItem
	for _, item := range r.items {
		if item.OwnerID == ownerID {
			items = append(items, *cloneItem(item))
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].DateCreated.After(items[j].DateCreated)
	})
	return items, nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *model.VaultItem) error {
	if _, ok := r.items[item.ID]; !ok {
		return repository.ErrItemNotFound
	}
	r.items[item.ID] = cloneItem(item)
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return repository.ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	nextID int64
	users  map[int64]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[int64]*model.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	user.ID = r.nextID
	r.nextID++
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

// addUser registers a user directly, skipping password hashing.
func (r *fakeUserRepo) addUser(name, email string) *model.User {
	user := &model.User{Name: name, Email: email, AuthHash: "x", WalletAddress: "0x00"}
	r.Create(context.Background(), user)
	return user
}
