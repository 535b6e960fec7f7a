// Package jsonapi provides JSON:API document types for API responses.
package jsonapi

// Document represents a JSON:API top-level document.
// See: https://jsonapi.org/format/#document-structure
type Document struct {
	Data  any    `json:"data"`
	Meta  *Meta  `json:"meta,omitempty"`
	Links *Links `json:"links,omitempty"`
}

// Meta holds non-standard meta-information about a document.
type Meta map[string]any

// Links holds links associated with a document or resource.
type Links struct {
	Self  string `json:"self,omitempty"`
	First string `json:"first,omitempty"`
	Last  string `json:"last,omitempty"`
	Prev  string `json:"prev,omitempty"`
	Next  string `json:"next,omitempty"`
}

// Resource represents a JSON:API resource object.
// See: https://jsonapi.org/format/#document-resource-objects
type Resource struct {
	Type          string        `json:"type"`
	ID            string        `json:"id"`
	Attributes    any           `json:"attributes"`
	Relationships Relationships `json:"relationships,omitempty"`
}

// Relationships maps relationship names to their data.
type Relationships map[string]*Relationship

// Relationship represents a JSON:API relationship.
type Relationship struct {
	Data any `json:"data"` // ResourceIdentifier, []ResourceIdentifier, or nil
}

// ResourceIdentifier identifies a resource without full attributes.
type ResourceIdentifier struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// NewResource creates a new resource with the given type, id and attributes.
func NewResource(resourceType, id string, attrs any) *Resource {
	return &Resource{
		Type:       resourceType,
		ID:         id,
		Attributes: attrs,
	}
}

// WithRelationship adds a to-one relationship. Empty ids are recorded as
// null.
func (r *Resource) WithRelationship(name, resourceType, id string) *Resource {
	if r.Relationships == nil {
		r.Relationships = Relationships{}
	}
	rel := &Relationship{}
	if id != "" {
		rel.Data = ResourceIdentifier{Type: resourceType, ID: id}
	}
	r.Relationships[name] = rel
	return r
}

// NewSingleResponse creates a JSON:API document with a single resource.
func NewSingleResponse(resource *Resource) *Document {
	return &Document{
		Data: resource,
	}
}

// NewListResponse creates a JSON:API document with a list of resources.
func NewListResponse(resources []*Resource) *Document {
	if resources == nil {
		resources = []*Resource{}
	}
	return &Document{
		Data: resources,
	}
}
