package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/aretw0/ringlens/pkg/domain"
	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
	// Report JSON field names so paths match the documents authors edit.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate checks a single scenario.
// Returns an *AggregateError with all failures found, or nil.
func Validate(s domain.Scenario) error {
	errs := validateScenario(s, scenarioKey(s, 0))
	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// ValidateAll checks every scenario of a collection and that scenario IDs
// are unique across it.
func ValidateAll(scenarios []domain.Scenario) error {
	var errs []error
	seen := make(map[string]int, len(scenarios))

	for i, s := range scenarios {
		key := scenarioKey(s, i)
		errs = append(errs, validateScenario(s, key)...)

		if s.ID == "" {
			continue
		}
		if first, ok := seen[s.ID]; ok {
			errs = append(errs, &ValidationError{
				Key:    key + ".id",
				Reason: fmt.Sprintf("duplicate scenario id, first defined at index %d", first),
				Value:  s.ID,
			})
			continue
		}
		seen[s.ID] = i
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

func validateScenario(s domain.Scenario, key string) []error {
	var errs []error

	if err := validate.Struct(s); err != nil {
		errs = append(errs, formatValidationErrors(err, key)...)
	}

	ids := make(map[string]struct{}, len(s.Nodes))
	for i, n := range s.Nodes {
		if n.ID == "" {
			continue // reported by the struct tags
		}
		if _, dup := ids[n.ID]; dup {
			errs = append(errs, &ValidationError{
				Key:    fmt.Sprintf("%s.nodes[%d].id", key, i),
				Reason: "duplicate node id",
				Value:  n.ID,
			})
			continue
		}
		ids[n.ID] = struct{}{}
	}

	for i, e := range s.Edges {
		if e.From != "" {
			if _, ok := ids[e.From]; !ok {
				errs = append(errs, &ValidationError{
					Key:    fmt.Sprintf("%s.edges[%d].from", key, i),
					Reason: "references unknown node",
					Value:  e.From,
				})
			}
		}
		if e.To != "" {
			if _, ok := ids[e.To]; !ok {
				errs = append(errs, &ValidationError{
					Key:    fmt.Sprintf("%s.edges[%d].to", key, i),
					Reason: "references unknown node",
					Value:  e.To,
				})
			}
		}
	}

	return errs
}

// formatValidationErrors converts validator errors to ValidationErrors keyed
// by document path.
func formatValidationErrors(err error, key string) []error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []error{err}
	}

	out := make([]error, 0, len(validationErrs))
	for _, e := range validationErrs {
		// Namespace is "Scenario.edges[0].from"; drop the type name.
		path := e.Namespace()
		if idx := strings.Index(path, "."); idx >= 0 {
			path = path[idx+1:]
		}

		var reason string
		switch e.Tag() {
		case "required":
			reason = "field is required"
		default:
			reason = fmt.Sprintf("validation failed (%s)", e.Tag())
		}

		out = append(out, &ValidationError{
			Key:    key + "." + path,
			Reason: reason,
		})
	}
	return out
}

func scenarioKey(s domain.Scenario, index int) string {
	if s.ID != "" {
		return s.ID
	}
	return fmt.Sprintf("scenarios[%d]", index)
}
