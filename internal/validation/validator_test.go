package validation

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"todoapi/internal/domain"
	"todoapi/internal/domain/models"
)

func validUser() map[string]any {
	return map[string]any{
		"name":   "Ada",
		"email":  "ada@example.com",
		"mobile": "0812345678",
	}
}

func fieldErrors(t *testing.T, err error) *domain.ValidationError {
	t.Helper()
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *domain.ValidationError, got %T (%v)", err, err)
	}
	return verr
}

func TestValidateUserOK(t *testing.T) {
	values, err := Validate(context.Background(), UserSchema, validUser())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if values["email"] != "ada@example.com" {
		t.Fatalf("email not carried over: %v", values)
	}
}

func TestValidateReportsEveryMissingField(t *testing.T) {
	schemas := []Schema{UserSchema, RegisterSchema, TodoSchema, LoginSchema}
	for _, schema := range schemas {
		var required []string
		for _, f := range schema.Fields {
			if f.Required {
				required = append(required, f.Name)
			}
		}

		_, err := Validate(context.Background(), schema, map[string]any{})
		verr := fieldErrors(t, err)
		if len(verr.Fields) != len(required) {
			t.Fatalf("%s: got %d errors, want %d: %v", schema.Name, len(verr.Fields), len(required), verr)
		}
		for i, name := range required {
			if verr.Fields[i].Field != name {
				t.Fatalf("%s: error %d is for %q, want %q", schema.Name, i, verr.Fields[i].Field, name)
			}
		}
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	payload := map[string]any{
		"name":   "",
		"email":  "not-an-email",
		"mobile": "123456789",
	}
	_, err := Validate(context.Background(), UserSchema, payload)
	got := fieldErrors(t, err).Map()

	want := map[string]string{
		"name":   "Name is required",
		"email":  "Invalid email format",
		"mobile": "Mobile number must be 10 digits",
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("field %s: got %q want %q (all: %v)", k, got[k], v, got)
		}
	}
}

func TestValidateMobile(t *testing.T) {
	cases := map[string]struct {
		value any
		ok    bool
	}{
		"ten digits":       {"0123456789", true},
		"json number":      {json.Number("9876543210"), true},
		"float number":     {float64(9876543210), true},
		"nine digits":      {"123456789", false},
		"eleven digits":    {"12345678901", false},
		"letters":          {"12345abcde", false},
		"signed":           {"+123456789", false},
		"decimal":          {"12345.6789", false},
		"boolean not text": {true, false},
	}
	for name, tc := range cases {
		p := validUser()
		p["mobile"] = tc.value
		_, err := Validate(context.Background(), UserSchema, p)
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected error %v", name, err)
		}
		if !tc.ok {
			if err == nil {
				t.Fatalf("%s: expected error", name)
			}
			if _, ok := fieldErrors(t, err).Map()["mobile"]; !ok {
				t.Fatalf("%s: expected mobile error, got %v", name, err)
			}
		}
	}
}

func TestValidateTodoBooleanType(t *testing.T) {
	payload := map[string]any{
		"title":       "write tests",
		"description": "cover the validator",
		"completed":   "yes",
		"createdBy":   "7",
	}
	_, err := Validate(context.Background(), TodoSchema, payload)
	got := fieldErrors(t, err).Map()
	if got["completed"] != "Completion status must be a boolean" {
		t.Fatalf("unexpected errors: %v", got)
	}

	payload["completed"] = false
	values, err := Validate(context.Background(), TodoSchema, payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var in models.TodoInput
	if err := Decode(values, &in); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if in.CreatedBy != 7 || in.Completed || in.Title != "write tests" {
		t.Fatalf("decoded wrong input: %+v", in)
	}
}

func TestValidateTodoCreatedBy(t *testing.T) {
	cases := map[string]any{
		"overflow": "99999999999999999999",
		"zero":     "0",
		"negative": "-3",
		"letters":  "abc",
		"decimal":  "1.5",
	}
	for name, createdBy := range cases {
		payload := map[string]any{
			"title": "t", "description": "d", "completed": false, "createdBy": createdBy,
		}
		_, err := Validate(context.Background(), TodoSchema, payload)
		if got := fieldErrors(t, err).Map()["createdBy"]; got != "Created by must be a user id" {
			t.Fatalf("%s: createdBy error = %q", name, got)
		}
	}

	payload := map[string]any{
		"title": "t", "description": "d", "completed": false, "createdBy": "9223372036854775807",
	}
	if _, err := Validate(context.Background(), TodoSchema, payload); err != nil {
		t.Fatalf("max int64 rejected: %v", err)
	}
}

func TestRegisterSchemaPasswordAndRole(t *testing.T) {
	p := validUser()
	p["password"] = 12345
	p["role"] = "root"
	_, err := Validate(context.Background(), RegisterSchema, p)
	got := fieldErrors(t, err).Map()
	if got["password"] != "Password must be a string" {
		t.Fatalf("password: %v", got)
	}
	if got["role"] != "Role must be one of: user, admin" {
		t.Fatalf("role: %v", got)
	}

	p["password"] = "hunter22"
	delete(p, "role")
	values, err := Validate(context.Background(), RegisterSchema, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := values["role"]; ok {
		t.Fatalf("absent optional field should stay absent: %v", values)
	}
}

func TestValidateDropsUnknownKeys(t *testing.T) {
	p := validUser()
	p["isAdmin"] = true
	values, err := Validate(context.Background(), UserSchema, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := values["isAdmin"]; ok {
		t.Fatalf("unknown key leaked into values: %v", values)
	}
}

func TestValidateHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Validate(ctx, UserSchema, validUser()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
