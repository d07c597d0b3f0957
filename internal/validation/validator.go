// Package validation checks write payloads against declarative, ordered schemas.
package validation

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"todoapi/internal/domain"

	"github.com/go-playground/validator/v10"
)

type Type int

const (
	String Type = iota
	Bool
)

// Field describes one payload key. Rules are validator tags applied to the
// value after the presence and type checks pass, e.g. "email" or "number,len=10".
type Field struct {
	Name     string
	Type     Type
	Required bool
	Rules    string
	// Strict string fields reject JSON numbers instead of coercing them.
	Strict bool
	// Messages maps a failing tag ("required", "type", "email", ...) to the
	// message reported for it. Missing entries fall back to a generic text.
	Messages map[string]string
}

type Schema struct {
	Name   string
	Fields []Field
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// userid: decimal text that fits a positive int64 row id.
	if err := v.RegisterValidation("userid", func(fl validator.FieldLevel) bool {
		n, err := strconv.ParseInt(fl.Field().String(), 10, 64)
		return err == nil && n >= 1
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate checks every field of schema and reports all violations together.
// Keys not named by the schema are dropped from the returned values.
func Validate(ctx context.Context, schema Schema, payload map[string]any) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	verr := &domain.ValidationError{}
	out := make(map[string]any, len(schema.Fields))

	for _, f := range schema.Fields {
		raw, present := payload[f.Name]
		if !present || raw == nil {
			if f.Required {
				verr.Add(f.Name, f.message("required"))
			}
			continue
		}

		switch f.Type {
		case Bool:
			b, ok := raw.(bool)
			if !ok {
				verr.Add(f.Name, f.message("type"))
				continue
			}
			out[f.Name] = b
		default:
			s, ok := asString(raw)
			if _, isText := raw.(string); f.Strict && !isText {
				ok = false
			}
			if !ok {
				verr.Add(f.Name, f.message("type"))
				continue
			}
			if f.Required && strings.TrimSpace(s) == "" {
				verr.Add(f.Name, f.message("required"))
				continue
			}
			if f.Rules != "" {
				if tag, ok := checkRules(s, f.Rules); !ok {
					verr.Add(f.Name, f.message(tag))
					continue
				}
			}
			out[f.Name] = s
		}
	}

	if !verr.Empty() {
		return nil, verr
	}
	return out, nil
}

// Decode copies validated values into a typed payload struct.
func Decode(values map[string]any, dst any) error {
	raw, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("validation: encode values: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("validation: decode values: %w", err)
	}
	return nil
}

func checkRules(value, rules string) (string, bool) {
	err := validate.Var(value, rules)
	if err == nil {
		return "", true
	}
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		return errs[0].Tag(), false
	}
	return "invalid", false
}

// asString accepts strings and JSON numbers; numbers are rendered as decimal text.
func asString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	default:
		return "", false
	}
}

func (f Field) message(tag string) string {
	if m, ok := f.Messages[tag]; ok {
		return m
	}
	switch tag {
	case "required":
		return f.Name + " is required"
	case "type":
		if f.Type == Bool {
			return f.Name + " must be a boolean"
		}
		return f.Name + " must be a string"
	default:
		return f.Name + " is invalid"
	}
}
