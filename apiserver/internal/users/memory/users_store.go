package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/krancour/usersapi/apiserver/internal/users"
	"github.com/krancour/usersapi/sdk/meta"
)

// usersStore is an in-process implementation of users.UsersStore. It is the
// sole owner of the Users it holds; callers only ever receive copies.
type usersStore struct {
	mu sync.RWMutex
	// users is ordered by insertion. Since Users are never deleted, the User at
	// index i always has ID i+1.
	users []users.User
}

// NewUsersStore returns an empty in-memory implementation of users.UsersStore.
func NewUsersStore() users.UsersStore {
	return &usersStore{
		users: []users.User{},
	}
}

func (u *usersStore) Create(
	_ context.Context,
	user users.User,
) (users.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	user.ID = int64(len(u.users)) + 1
	u.users = append(u.users, user)
	return user, nil
}

func (u *usersStore) List(context.Context) ([]users.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	usrs := make([]users.User, len(u.users))
	copy(usrs, u.users)
	return usrs, nil
}

func (u *usersStore) Get(_ context.Context, id int64) (users.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	if id < 1 || id > int64(len(u.users)) || u.users[id-1].ID != id {
		return users.User{}, &meta.ErrNotFound{
			Type: "User",
			ID:   strconv.FormatInt(id, 10),
		}
	}
	return u.users[id-1], nil
}
