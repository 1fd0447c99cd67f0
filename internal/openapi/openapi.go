// Package openapi holds the subset of the OpenAPI 3.0 object model the service
// publishes, serializable as both JSON and YAML.
package openapi

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Version is the OpenAPI version written into every document.
const Version = "3.0.3"

// Document represents the root OpenAPI specification
type Document struct {
	OpenAPI    string               `json:"openapi" yaml:"openapi"`
	Info       Info                 `json:"info" yaml:"info"`
	Servers    []Server             `json:"servers,omitempty" yaml:"servers,omitempty"`
	Paths      map[string]*PathItem `json:"paths" yaml:"paths"`
	Components *Components          `json:"components,omitempty" yaml:"components,omitempty"`
	Tags       []Tag                `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Info represents the OpenAPI info object
type Info struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string `json:"version" yaml:"version"`
}

// Server represents a server
type Server struct {
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// PathItem represents a path item in OpenAPI
type PathItem struct {
	Get    *Operation `json:"get,omitempty" yaml:"get,omitempty"`
	Post   *Operation `json:"post,omitempty" yaml:"post,omitempty"`
	Put    *Operation `json:"put,omitempty" yaml:"put,omitempty"`
	Delete *Operation `json:"delete,omitempty" yaml:"delete,omitempty"`
	Patch  *Operation `json:"patch,omitempty" yaml:"patch,omitempty"`
}

// Operation represents an OpenAPI operation
type Operation struct {
	Tags        []string             `json:"tags,omitempty" yaml:"tags,omitempty"`
	Summary     string               `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string               `json:"description,omitempty" yaml:"description,omitempty"`
	OperationID string               `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Parameters  []Parameter          `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBody *RequestBody         `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Responses   map[string]*Response `json:"responses" yaml:"responses"`
}

// Parameter represents an OpenAPI parameter
type Parameter struct {
	Name        string  `json:"name" yaml:"name"`
	In          string  `json:"in" yaml:"in"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool    `json:"required,omitempty" yaml:"required,omitempty"`
	Schema      *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
	Example     any     `json:"example,omitempty" yaml:"example,omitempty"`
}

// RequestBody represents an OpenAPI request body
type RequestBody struct {
	Description string               `json:"description,omitempty" yaml:"description,omitempty"`
	Content     map[string]MediaType `json:"content" yaml:"content"`
	Required    bool                 `json:"required,omitempty" yaml:"required,omitempty"`
}

// Response represents an OpenAPI response
type Response struct {
	Description string               `json:"description" yaml:"description"`
	Content     map[string]MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

// MediaType represents an OpenAPI media type
type MediaType struct {
	Schema  *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
	Example any     `json:"example,omitempty" yaml:"example,omitempty"`
}

// Schema represents an OpenAPI schema
type Schema struct {
	Ref           string             `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Type          string             `json:"type,omitempty" yaml:"type,omitempty"`
	Format        string             `json:"format,omitempty" yaml:"format,omitempty"`
	Description   string             `json:"description,omitempty" yaml:"description,omitempty"`
	Example       any                `json:"example,omitempty" yaml:"example,omitempty"`
	Items         *Schema            `json:"items,omitempty" yaml:"items,omitempty"`
	Properties    map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required      []string           `json:"required,omitempty" yaml:"required,omitempty"`
	MinLength     int                `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	Minimum       float64            `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	MinProperties int                `json:"minProperties,omitempty" yaml:"minProperties,omitempty"`
}

// Components holds reusable schema definitions
type Components struct {
	Schemas map[string]*Schema `json:"schemas,omitempty" yaml:"schemas,omitempty"`
}

// Tag represents an OpenAPI tag
type Tag struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Ref returns a schema referencing the named component.
func Ref(component string) *Schema {
	return &Schema{Ref: "#/components/schemas/" + component}
}

// ArrayOf returns an array schema of the given items.
func ArrayOf(items *Schema) *Schema {
	return &Schema{Type: "array", Items: items}
}

// JSON renders the document as indented JSON.
func (d *Document) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// YAML renders the document as YAML.
func (d *Document) YAML() ([]byte, error) {
	return yaml.Marshal(d)
}
