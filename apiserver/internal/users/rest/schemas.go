package rest

import "github.com/xeipuuv/gojsonschema"

// userSchemaLoader loads the schema that bodies of requests to create a new
// User must conform to.
var userSchemaLoader = gojsonschema.NewStringLoader(`{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"title": "User",
	"type": "object",
	"required": ["name", "email"],
	"properties": {
		"name": {
			"type": "string",
			"minLength": 1
		},
		"email": {
			"type": "string",
			"minLength": 1
		}
	}
}`)
