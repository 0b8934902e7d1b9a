package restmachinery

// OutboundRequest models of an outbound API call.
type OutboundRequest struct {
	// Method specifies the HTTP method to be used.
	Method string
	// Path specifies a path (relative to the root of the API) to be used.
	Path string
	// AuthHeaders optionally specifies details to be added to the outbound
	// request's Authorization header.
	AuthHeaders map[string]string
	// Headers optionally specifies miscellaneous headers to be added to the
	// outbound request.
	Headers map[string]string
	// ReqBodyObj optionally provides an object that can be marshaled to create
	// the body of the outbound request.
	ReqBodyObj interface{}
	// SuccessCode specifies what HTTP response code should indicate a successful
	// API call.
	SuccessCode int
	// RespObj optionally provides an object into which the HTTP response body can
	// be unmarshaled.
	RespObj interface{}
}
