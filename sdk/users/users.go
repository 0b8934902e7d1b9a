package users

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/krancour/usersapi/sdk/internal/restmachinery"
	"github.com/krancour/usersapi/sdk/meta"
)

// User represents a person registered with the Users API.
type User struct {
	// ID is the immutable, positive identifier assigned to the User by the API
	// server. Clients must leave this field set to zero when creating a User.
	ID int64 `json:"id"`
	// Name is the name of the User.
	Name string `json:"name"`
	// Email is the email address of the User.
	Email string `json:"email"`
}

// MarshalJSON amends User instances with type metadata so that clients do
// not need to be concerned with the tedium of doing so.
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

// UsersClient is the specialized client for managing Users with the Users
// API.
type UsersClient interface {
	// Create creates a new User. The User returned carries the identifier
	// assigned by the API server.
	Create(context.Context, User) (User, error)
	// List returns all Users in the order they were created.
	List(context.Context) ([]User, error)
	// Get retrieves a single User specified by their identifier.
	Get(context.Context, int64) (User, error)
}

type usersClient struct {
	*restmachinery.BaseClient
}

// NewUsersClient returns a specialized client for managing Users.
func NewUsersClient(
	apiAddress string,
	apiToken string,
	allowInsecure bool,
) UsersClient {
	return &usersClient{
		BaseClient: restmachinery.NewBaseClient(
			apiAddress,
			apiToken,
			allowInsecure,
		),
	}
}

func (u *usersClient) Create(ctx context.Context, user User) (User, error) {
	createdUser := User{}
	err := u.ExecuteRequest(
		ctx,
		restmachinery.OutboundRequest{
			Method:      http.MethodPost,
			Path:        "users",
			AuthHeaders: u.BearerTokenAuthHeaders(),
			ReqBodyObj: struct {
				Name  string `json:"name"`
				Email string `json:"email"`
			}{
				Name:  user.Name,
				Email: user.Email,
			},
			SuccessCode: http.StatusCreated,
			RespObj:     &createdUser,
		},
	)
	return createdUser, err
}

func (u *usersClient) List(ctx context.Context) ([]User, error) {
	users := []User{}
	err := u.ExecuteRequest(
		ctx,
		restmachinery.OutboundRequest{
			Method:      http.MethodGet,
			Path:        "users",
			AuthHeaders: u.BearerTokenAuthHeaders(),
			SuccessCode: http.StatusOK,
			RespObj:     &users,
		},
	)
	return users, err
}

func (u *usersClient) Get(ctx context.Context, id int64) (User, error) {
	user := User{}
	err := u.ExecuteRequest(
		ctx,
		restmachinery.OutboundRequest{
			Method:      http.MethodGet,
			Path:        fmt.Sprintf("users/%d", id),
			AuthHeaders: u.BearerTokenAuthHeaders(),
			SuccessCode: http.StatusOK,
			RespObj:     &user,
		},
	)
	return user, err
}
