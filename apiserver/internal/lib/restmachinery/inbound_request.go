package restmachinery

import (
	"net/http"

	"github.com/xeipuuv/gojsonschema"
)

// InboundRequest models an inbound API call. It is passed to
// BaseEndpoints.ServeRequest, which takes care of reading and validating the
// request body, invoking the endpoint logic and translating its result (or
// error) into an HTTP response.
type InboundRequest struct {
	W http.ResponseWriter
	R *http.Request
	// ReqBodySchemaLoader optionally supplies a JSON schema the request body
	// must conform to.
	ReqBodySchemaLoader gojsonschema.JSONLoader
	// ReqBodyObj optionally supplies an object into which the request body is
	// unmarshaled before EndpointLogic is invoked.
	ReqBodyObj    interface{}
	EndpointLogic func() (interface{}, error)
	SuccessCode   int
}
