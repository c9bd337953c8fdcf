package routes

import (
	"net/http"
	"strings"

	"github.com/JaimeStill/unifix/pkg/openapi"
)

// Group organizes routes under a common prefix with shared tags.
// Middleware wraps every route in the group and its children.
type Group struct {
	Prefix     string
	Tags       []string
	Routes     []Route
	Children   []Group
	Schemas    map[string]*openapi.Schema
	Middleware []func(http.Handler) http.Handler
}

// Register adds all routes from the given groups to the mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, group := range groups {
		registerGroup(mux, "", nil, group)
	}
}

// Describe adds every documented route in groups to spec, rooted at basePath.
// Group tags are applied to operations that declare none.
func Describe(spec *openapi.Spec, basePath string, groups ...Group) {
	for _, group := range groups {
		describeGroup(spec, basePath, nil, group)
	}
}

func registerGroup(
	mux *http.ServeMux,
	parentPrefix string,
	parentMW []func(http.Handler) http.Handler,
	group Group,
) {
	fullPrefix := parentPrefix + group.Prefix
	mw := append(append([]func(http.Handler) http.Handler{}, parentMW...), group.Middleware...)

	for _, route := range group.Routes {
		pattern := route.Method + " " + fullPrefix + route.Pattern
		mux.Handle(pattern, wrap(route.Handler, mw))
	}
	for _, child := range group.Children {
		registerGroup(mux, fullPrefix, mw, child)
	}
}

func wrap(h http.Handler, mw []func(http.Handler) http.Handler) http.Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}

func describeGroup(spec *openapi.Spec, parentPrefix string, parentTags []string, group Group) {
	fullPrefix := parentPrefix + group.Prefix
	tags := group.Tags
	if len(tags) == 0 {
		tags = parentTags
	}

	if len(group.Schemas) > 0 {
		spec.Components.AddSchemas(group.Schemas)
	}

	for _, route := range group.Routes {
		if route.OpenAPI == nil {
			continue
		}

		op := *route.OpenAPI
		if len(op.Tags) == 0 {
			op.Tags = tags
		}

		path := fullPrefix + route.Pattern
		item, ok := spec.Paths[path]
		if !ok {
			item = &openapi.PathItem{}
			spec.Paths[path] = item
		}

		switch strings.ToUpper(route.Method) {
		case http.MethodGet:
			item.Get = &op
		case http.MethodPost:
			item.Post = &op
		case http.MethodPut:
			item.Put = &op
		case http.MethodDelete:
			item.Delete = &op
		}
	}

	for _, child := range group.Children {
		describeGroup(spec, fullPrefix, tags, child)
	}
}
