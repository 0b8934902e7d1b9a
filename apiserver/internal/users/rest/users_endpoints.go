package rest

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/krancour/usersapi/apiserver/internal/lib/restmachinery"
	"github.com/krancour/usersapi/apiserver/internal/users"
	"github.com/krancour/usersapi/sdk/meta"
	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

// UsersEndpoints implements restmachinery.Endpoints to provide User-related
// URL --> action mappings to a restmachinery.Server.
type UsersEndpoints struct {
	*restmachinery.BaseEndpoints
	UserSchemaLoader gojsonschema.JSONLoader
	Service          users.UsersService
}

// NewUsersEndpoints returns User-related endpoints that validate new Users
// against the built-in User schema.
func NewUsersEndpoints(
	baseEndpoints *restmachinery.BaseEndpoints,
	service users.UsersService,
) *UsersEndpoints {
	return &UsersEndpoints{
		BaseEndpoints:    baseEndpoints,
		UserSchemaLoader: userSchemaLoader,
		Service:          service,
	}
}

// Register is invoked by restmachinery.Server to register User-related
// URL --> action mappings to a restmachinery.Server.
func (u *UsersEndpoints) Register(router *mux.Router) {
	// Create user
	router.HandleFunc(
		"/users",
		u.TokenAuthFilter.Decorate(u.create),
	).Methods(http.MethodPost)

	// List users
	router.HandleFunc(
		"/users",
		u.TokenAuthFilter.Decorate(u.list),
	).Methods(http.MethodGet)

	// Get user
	router.HandleFunc(
		"/users/{id}",
		u.TokenAuthFilter.Decorate(u.get),
	).Methods(http.MethodGet)
}

// userCreateRequest has no ID field; any id in a request body is never
// decoded, whatever its JSON type.
type userCreateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *UsersEndpoints) create(w http.ResponseWriter, r *http.Request) {
	req := userCreateRequest{}
	u.ServeRequest(
		restmachinery.InboundRequest{
			W:                   w,
			R:                   r,
			ReqBodySchemaLoader: u.UserSchemaLoader,
			ReqBodyObj:          &req,
			EndpointLogic: func() (interface{}, error) {
				return u.Service.Create(
					r.Context(),
					users.User{
						Name:  req.Name,
						Email: req.Email,
					},
				)
			},
			SuccessCode: http.StatusCreated,
		},
	)
}

func (u *UsersEndpoints) list(w http.ResponseWriter, r *http.Request) {
	u.ServeRequest(
		restmachinery.InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				return u.Service.List(r.Context())
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func (u *UsersEndpoints) get(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(idStr, 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		// An integer outside the int64 range was never assigned
		u.WriteAPIResponse(
			w,
			http.StatusNotFound,
			&meta.ErrNotFound{
				Type: "User",
				ID:   idStr,
			},
		)
		return
	}
	if err != nil {
		u.WriteAPIResponse(
			w,
			http.StatusBadRequest,
			&meta.ErrBadRequest{
				Reason: fmt.Sprintf("Invalid user ID %q; IDs are integers.", idStr),
			},
		)
		return
	}
	u.ServeRequest(
		restmachinery.InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				return u.Service.Get(r.Context(), id)
			},
			SuccessCode: http.StatusOK,
		},
	)
}
