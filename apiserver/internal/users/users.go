package users

import (
	"context"
	"encoding/json"

	"github.com/krancour/usersapi/sdk/meta"
	"github.com/pkg/errors"
)

// User represents one registered person.
type User struct {
	// ID is assigned by the UsersStore when the User is created and never
	// changes afterwards.
	ID    int64  `json:"id" bson:"id"`
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
}

// MarshalJSON amends User instances with type metadata.
func (u User) MarshalJSON() ([]byte, error) {
	type Alias User
	return json.Marshal(
		struct {
			meta.TypeMeta `json:",inline"`
			Alias         `json:",inline"`
		}{
			TypeMeta: meta.TypeMeta{
				APIVersion: meta.APIVersion,
				Kind:       "User",
			},
			Alias: (Alias)(u),
		},
	)
}

// UsersService is the specialized interface for managing Users. It's decoupled
// from underlying technology choices (e.g. data store) to keep business logic
// reusable and consistent while the underlying tech stack remains free to
// change.
type UsersService interface {
	// Create validates and stores a new User. Any ID set by the caller is
	// ignored; the returned User carries the ID assigned by the store.
	Create(context.Context, User) (User, error)
	// List returns all Users in the order in which they were created.
	List(context.Context) ([]User, error)
	// Get retrieves a single User specified by their identifier.
	Get(context.Context, int64) (User, error)
}

type usersService struct {
	usersStore UsersStore
}

// NewUsersService returns a specialized interface for managing Users.
func NewUsersService(usersStore UsersStore) UsersService {
	return &usersService{
		usersStore: usersStore,
	}
}

func (u *usersService) Create(ctx context.Context, user User) (User, error) {
	var details []string
	if user.Name == "" {
		details = append(details, "name is required")
	}
	if user.Email == "" {
		details = append(details, "email is required")
	}
	if len(details) > 0 {
		return User{}, &meta.ErrBadRequest{
			Reason:  "Name and email are required.",
			Details: details,
		}
	}
	user.ID = 0
	user, err := u.usersStore.Create(ctx, user)
	if err != nil {
		return user, errors.Wrap(err, "error storing new user")
	}
	return user, nil
}

func (u *usersService) List(ctx context.Context) ([]User, error) {
	users, err := u.usersStore.List(ctx)
	if err != nil {
		return users, errors.Wrap(err, "error retrieving users from store")
	}
	return users, nil
}

func (u *usersService) Get(ctx context.Context, id int64) (User, error) {
	user, err := u.usersStore.Get(ctx, id)
	if err != nil {
		return user, errors.Wrapf(
			err,
			"error retrieving user %d from store",
			id,
		)
	}
	return user, nil
}

// UsersStore is an interface for components that implement User persistence
// concerns. Every implementation assigns a new User the ID count + 1 (where
// count is the number of Users already stored) atomically with respect to
// other calls to Create, lists Users in the order they were created, and
// returns a *meta.ErrNotFound from Get when no User has the given ID.
type UsersStore interface {
	Create(context.Context, User) (User, error)
	List(context.Context) ([]User, error)
	Get(context.Context, int64) (User, error)
}
