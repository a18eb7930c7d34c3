package openapi

import "fmt"

var supportedVersions = map[string]bool{
	"3.0.0": true,
	"3.0.1": true,
	"3.0.2": true,
	"3.0.3": true,
	"3.1.0": true,
}

// Validate performs a structural check of the document before it is written:
// version and info present, every path has at least one operation, every
// operation declares responses and every response has a description.
func (s *Spec) Validate() error {
	if !supportedVersions[s.OpenAPI] {
		return fmt.Errorf("unsupported OpenAPI version: %q", s.OpenAPI)
	}
	if s.Info.Title == "" {
		return fmt.Errorf("info.title is required")
	}
	if s.Info.Version == "" {
		return fmt.Errorf("info.version is required")
	}

	for path, item := range s.Paths {
		ops := item.operations()
		if len(ops) == 0 {
			return fmt.Errorf("path %s has no operations", path)
		}
		for method, op := range ops {
			if err := validateOperation(op); err != nil {
				return fmt.Errorf("path %s %s: %w", path, method, err)
			}
		}
	}

	if s.Components != nil {
		for name, schema := range s.Components.Schemas {
			if err := validateSchema(schema); err != nil {
				return fmt.Errorf("schema %s: %w", name, err)
			}
		}
	}
	return nil
}

func (p *PathItem) operations() map[string]*Operation {
	ops := make(map[string]*Operation)
	for method, op := range map[string]*Operation{
		"get": p.Get, "post": p.Post, "put": p.Put, "delete": p.Delete, "patch": p.Patch,
	} {
		if op != nil {
			ops[method] = op
		}
	}
	return ops
}

func validateOperation(op *Operation) error {
	if len(op.Responses) == 0 {
		return fmt.Errorf("operation has no responses")
	}
	for status, resp := range op.Responses {
		if resp.Description == "" {
			return fmt.Errorf("response %s is missing a description", status)
		}
	}
	return nil
}

func validateSchema(schema *Schema) error {
	if schema == nil {
		return fmt.Errorf("schema is nil")
	}
	if schema.Ref != "" {
		return nil
	}
	for name, prop := range schema.Properties {
		if err := validateSchema(prop); err != nil {
			return fmt.Errorf("property %s: %w", name, err)
		}
	}
	for i, member := range schema.AnyOf {
		if err := validateSchema(member); err != nil {
			return fmt.Errorf("anyOf[%d]: %w", i, err)
		}
	}
	if schema.Items != nil {
		return validateSchema(schema.Items)
	}
	return nil
}
