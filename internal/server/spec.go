package server

import (
	"reflect"

	"github.com/example/docsmith/internal/openapi"
)

// BuildSpec assembles the OpenAPI document for the item API. The request and
// response schemas are derived from the handler types, so the served spec
// cannot drift from the validation the handler actually performs.
func BuildSpec(title, version string) (*openapi.Spec, error) {
	spec := openapi.NewSpec(title, version)
	spec.Tags = []openapi.Tag{{Name: "Items", Description: "Operations related to items"}}

	reqRef := spec.RegisterSchema("ItemRequest", reflect.TypeOf(ItemRequest{}))
	respRef := spec.RegisterSchema("ItemResponse", reflect.TypeOf(ItemResponse{}))
	errRef := spec.RegisterSchema("ErrorResponse", reflect.TypeOf(errorResponse{}))

	op := &openapi.Operation{
		OperationID: "createItem",
		Summary:     "Create an item",
		Description: "Validates the submitted item and echoes its name and price back.",
		Tags:        []string{"Items"},
		RequestBody: &openapi.RequestBody{
			Required: true,
			Content:  map[string]*openapi.MediaType{"application/json": {Schema: reqRef}},
		},
		Responses: map[string]*openapi.Response{
			"201": {
				Description: "Item accepted",
				Content:     map[string]*openapi.MediaType{"application/json": {Schema: respRef}},
			},
			"400": {
				Description: "Malformed body or validation failure",
				Content:     map[string]*openapi.MediaType{"application/json": {Schema: errRef}},
			},
		},
	}
	if err := spec.AddOperation("POST", "/items/", op); err != nil {
		return nil, err
	}

	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}
