package openapi

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// NewSpec creates an empty 3.1.0 document.
func NewSpec(title, version string) *Spec {
	return &Spec{
		OpenAPI:    "3.1.0",
		Info:       Info{Title: title, Version: version},
		Paths:      make(map[string]*PathItem),
		Components: &Components{Schemas: make(map[string]*Schema)},
	}
}

// RegisterSchema derives a schema from the given Go type, stores it under
// name in components and returns a $ref schema pointing at it.
func (s *Spec) RegisterSchema(name string, typ reflect.Type) *Schema {
	if _, exists := s.Components.Schemas[name]; !exists {
		s.Components.Schemas[name] = schemaFromType(typ)
	}
	return &Schema{Ref: "#/components/schemas/" + name}
}

// AddOperation attaches op to the path under the given HTTP method.
func (s *Spec) AddOperation(method, path string, op *Operation) error {
	item, ok := s.Paths[path]
	if !ok {
		item = &PathItem{}
		s.Paths[path] = item
	}
	switch strings.ToUpper(method) {
	case "GET":
		item.Get = op
	case "POST":
		item.Post = op
	case "PUT":
		item.Put = op
	case "DELETE":
		item.Delete = op
	case "PATCH":
		item.Patch = op
	default:
		return fmt.Errorf("unsupported method: %s", method)
	}
	return nil
}

var timeType = reflect.TypeOf(time.Time{})

// schemaFromType maps a Go type onto a JSON schema. Struct fields follow
// their json tags; validate tags contribute required/min/max constraints.
func schemaFromType(typ reflect.Type) *Schema {
	if typ.Kind() == reflect.Ptr {
		// 3.1 dropped the nullable keyword; a nullable value is the anyOf
		// of the element schema and the null type.
		return &Schema{AnyOf: []*Schema{schemaFromType(typ.Elem()), {Type: "null"}}}
	}
	if typ == timeType {
		return &Schema{Type: "string", Format: "date-time"}
	}

	switch typ.Kind() {
	case reflect.String:
		return &Schema{Type: "string"}
	case reflect.Bool:
		return &Schema{Type: "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}
	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}
	case reflect.Slice, reflect.Array:
		return &Schema{Type: "array", Items: schemaFromType(typ.Elem())}
	case reflect.Map:
		return &Schema{Type: "object", AdditionalProperties: schemaFromType(typ.Elem())}
	case reflect.Struct:
		return structSchema(typ)
	default:
		return &Schema{Type: "object"}
	}
}

func structSchema(typ reflect.Type) *Schema {
	schema := &Schema{Type: "object", Properties: make(map[string]*Schema)}

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		name := field.Name
		if jsonTag, ok := field.Tag.Lookup("json"); ok {
			parts := strings.Split(jsonTag, ",")
			if parts[0] == "-" {
				continue
			}
			if parts[0] != "" {
				name = parts[0]
			}
		}

		prop := schemaFromType(field.Type)
		validateTags := field.Tag.Get("validate")
		applyValidateTags(validateTags, prop)
		if hasRequiredTag(validateTags) {
			schema.Required = append(schema.Required, name)
		}
		schema.Properties[name] = prop
	}
	return schema
}

func hasRequiredTag(tags string) bool {
	for _, tag := range strings.Split(tags, ",") {
		if tag == "required" {
			return true
		}
	}
	return false
}

// applyValidateTags folds go-playground/validator constraints into the schema.
// Only the constraints the item API uses are mapped; unknown tags are ignored.
func applyValidateTags(tags string, schema *Schema) {
	for _, tag := range strings.Split(tags, ",") {
		key, value := tag, ""
		if idx := strings.Index(tag, "="); idx != -1 {
			key, value = tag[:idx], tag[idx+1:]
		}

		switch key {
		case "gt":
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				schema.ExclusiveMinimum = &v
			}
		case "gte", "min":
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				if schema.Type == "string" {
					n := int(v)
					schema.MinLength = &n
				} else {
					schema.Minimum = &v
				}
			}
		case "max":
			if v, err := strconv.Atoi(value); err == nil && schema.Type == "string" {
				schema.MaxLength = &v
			}
		}
	}
}
