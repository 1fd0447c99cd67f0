package route

import (
	"fmt"
	"net/http"
	"strconv"

	"user-api/internal/openapi"
	"user-api/internal/schema"
)

const jsonContentType = "application/json"

// Document builds the OpenAPI description of the given routes.
func Document(info openapi.Info, defs ...Definition) (*openapi.Document, error) {
	doc := &openapi.Document{
		OpenAPI:    openapi.Version,
		Info:       info,
		Paths:      make(map[string]*openapi.PathItem),
		Components: &openapi.Components{Schemas: schema.Components()},
		Tags:       []openapi.Tag{{Name: userTag, Description: "User management"}},
	}

	for _, def := range defs {
		item, ok := doc.Paths[def.Path]
		if !ok {
			item = &openapi.PathItem{}
			doc.Paths[def.Path] = item
		}
		if err := attach(item, def.Method, operation(def)); err != nil {
			return nil, fmt.Errorf("route %s: %w", def.OperationID, err)
		}
	}

	return doc, nil
}

func operation(def Definition) *openapi.Operation {
	op := &openapi.Operation{
		Tags:        def.Tags,
		Summary:     def.Summary,
		OperationID: def.OperationID,
		Parameters:  def.PathParams,
		Responses:   make(map[string]*openapi.Response, len(def.Responses)),
	}

	if def.Body != nil {
		op.RequestBody = &openapi.RequestBody{
			Required: true,
			Content:  map[string]openapi.MediaType{jsonContentType: {Schema: def.Body}},
		}
	}

	for _, r := range def.Responses {
		resp := &openapi.Response{Description: r.Description}
		if r.Schema != nil {
			ct := r.ContentType
			if ct == "" {
				ct = jsonContentType
			}
			resp.Content = map[string]openapi.MediaType{ct: {Schema: r.Schema}}
		}
		op.Responses[strconv.Itoa(r.Status)] = resp
	}

	return op
}

func attach(item *openapi.PathItem, method string, op *openapi.Operation) error {
	var slot **openapi.Operation
	switch method {
	case http.MethodGet:
		slot = &item.Get
	case http.MethodPost:
		slot = &item.Post
	case http.MethodPut:
		slot = &item.Put
	case http.MethodDelete:
		slot = &item.Delete
	case http.MethodPatch:
		slot = &item.Patch
	default:
		return fmt.Errorf("unsupported method %q", method)
	}
	if *slot != nil {
		return fmt.Errorf("duplicate %s operation", method)
	}
	*slot = op
	return nil
}
