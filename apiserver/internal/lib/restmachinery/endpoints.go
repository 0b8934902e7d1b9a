package restmachinery

import (
	"encoding/json"
	"io/ioutil"
	"net/http"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/krancour/usersapi/sdk/meta"
	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

// Endpoints is an interface to be implemented by all REST API endpoints.
type Endpoints interface {
	// Register is invoked in a polymorphic fashion by the API server to
	// register handlers for all paths and methods the implementation handles.
	Register(router *mux.Router)
}

// BaseEndpoints is a component that can be embedded by more specialized
// endpoints and exposes functions that remove the tedium of reading and
// validating request bodies and writing responses.
type BaseEndpoints struct {
	TokenAuthFilter Filter
}

func (b *BaseEndpoints) readAndValidateRequestBody(
	w http.ResponseWriter,
	r *http.Request,
	bodySchemaLoader gojsonschema.JSONLoader,
	bodyObj interface{},
) bool {
	defer r.Body.Close()
	bodyBytes, err := ioutil.ReadAll(r.Body)
	if err != nil {
		// Log it in case something is actually wrong...
		glog.Error(errors.Wrap(err, "error reading request body"))
		// But we're going to assume this is because the request body is missing, so
		// we'll treat it as a bad request.
		b.WriteAPIResponse(
			w,
			http.StatusBadRequest,
			&meta.ErrBadRequest{
				Reason: "Could not read request body.",
			},
		)
		return false
	}
	if bodySchemaLoader != nil {
		var validationResult *gojsonschema.Result
		validationResult, err = gojsonschema.Validate(
			bodySchemaLoader,
			gojsonschema.NewBytesLoader(bodyBytes),
		)
		if err != nil {
			// As long as the schema itself was valid, the most likely scenario here
			// is that the request body wasn't valid JSON, so we'll treat this as a
			// bad request.
			glog.V(2).Info(errors.Wrap(err, "error validating request body"))
			b.WriteAPIResponse(
				w,
				http.StatusBadRequest,
				&meta.ErrBadRequest{
					Reason: "Could not validate request body.",
				},
			)
			return false
		}
		if !validationResult.Valid() {
			// We don't bother to log this because this is DEFINITELY a bad request.
			verrStrs := make([]string, len(validationResult.Errors()))
			for i, verr := range validationResult.Errors() {
				verrStrs[i] = verr.String()
			}
			b.WriteAPIResponse(
				w,
				http.StatusBadRequest,
				&meta.ErrBadRequest{
					Reason:  "Request body failed JSON validation",
					Details: verrStrs,
				},
			)
			return false
		}
	}
	if bodyObj != nil {
		if err = json.Unmarshal(bodyBytes, bodyObj); err != nil {
			b.WriteAPIResponse(
				w,
				http.StatusBadRequest,
				&meta.ErrBadRequest{
					Reason: "Could not unmarshal request body.",
				},
			)
			return false
		}
	}
	return true
}

// ServeRequest abstracts much of the tedium of handling an inbound API call.
// It reads and validates the request body (if any), invokes the endpoint
// logic and writes the response, mapping typed errors to the appropriate HTTP
// status codes.
func (b *BaseEndpoints) ServeRequest(req InboundRequest) {
	if req.ReqBodySchemaLoader != nil || req.ReqBodyObj != nil {
		if !b.readAndValidateRequestBody(
			req.W,
			req.R,
			req.ReqBodySchemaLoader,
			req.ReqBodyObj,
		) {
			return
		}
	}
	respBodyObj, err := req.EndpointLogic()
	if err != nil {
		switch e := errors.Cause(err).(type) {
		case *meta.ErrAuthentication:
			b.WriteAPIResponse(req.W, http.StatusUnauthorized, e)
		case *meta.ErrAuthorization:
			b.WriteAPIResponse(req.W, http.StatusForbidden, e)
		case *meta.ErrBadRequest:
			b.WriteAPIResponse(req.W, http.StatusBadRequest, e)
		case *meta.ErrNotFound:
			b.WriteAPIResponse(req.W, http.StatusNotFound, e)
		case *meta.ErrConflict:
			b.WriteAPIResponse(req.W, http.StatusConflict, e)
		case *meta.ErrNotSupported:
			b.WriteAPIResponse(req.W, http.StatusNotImplemented, e)
		case *meta.ErrInternalServer:
			b.WriteAPIResponse(req.W, http.StatusInternalServerError, e)
		default:
			glog.Error(err)
			b.WriteAPIResponse(
				req.W,
				http.StatusInternalServerError,
				&meta.ErrInternalServer{},
			)
		}
		return
	}
	b.WriteAPIResponse(req.W, req.SuccessCode, respBodyObj)
}

// WriteAPIResponse sends an API response. The provided status code is written
// to the response header and the provided response object is marshaled to
// JSON and written to the response body.
func (b *BaseEndpoints) WriteAPIResponse(
	w http.ResponseWriter,
	statusCode int,
	response interface{},
) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	responseBody, ok := response.([]byte)
	if !ok {
		var err error
		if responseBody, err = json.Marshal(response); err != nil {
			glog.Error(errors.Wrap(err, "error marshaling response body"))
		}
	}
	if _, err := w.Write(responseBody); err != nil {
		glog.Error(errors.Wrap(err, "error writing response body"))
	}
}
