package validation

import "todoapi/internal/domain"

var userFields = []Field{
	{
		Name: "name", Type: String, Required: true,
		Messages: map[string]string{"required": "Name is required"},
	},
	{
		Name: "email", Type: String, Required: true, Rules: "email",
		Messages: map[string]string{
			"required": "Email is required",
			"email":    "Invalid email format",
		},
	},
	{
		Name: "mobile", Type: String, Required: true, Rules: "number,len=10",
		Messages: map[string]string{
			"required": "Mobile number is required",
			"number":   "Mobile number must be 10 digits",
			"len":      "Mobile number must be 10 digits",
		},
	},
}

// UserSchema covers user creation by an admin and user updates.
var UserSchema = Schema{Name: "user", Fields: userFields}

// RegisterSchema is UserSchema plus credentials.
var RegisterSchema = Schema{
	Name: "register",
	Fields: append(append([]Field{}, userFields...),
		Field{
			Name: "password", Type: String, Required: true, Strict: true,
			Messages: map[string]string{
				"required": "Password is required",
				"type":     "Password must be a string",
			},
		},
		Field{
			Name: "role", Type: String, Rules: "oneof=" + domain.RoleUser + " " + domain.RoleAdmin,
			Messages: map[string]string{"oneof": "Role must be one of: user, admin"},
		},
	),
}

var TodoSchema = Schema{
	Name: "todo",
	Fields: []Field{
		{
			Name: "title", Type: String, Required: true,
			Messages: map[string]string{"required": "Title is required"},
		},
		{
			Name: "description", Type: String, Required: true,
			Messages: map[string]string{"required": "Description is required"},
		},
		{
			Name: "completed", Type: Bool, Required: true,
			Messages: map[string]string{
				"required": "Completion status is required",
				"type":     "Completion status must be a boolean",
			},
		},
		{
			Name: "createdBy", Type: String, Required: true, Rules: "userid",
			Messages: map[string]string{
				"required": "Created by is required",
				"userid":   "Created by must be a user id",
			},
		},
	},
}

var LoginSchema = Schema{
	Name: "login",
	Fields: []Field{
		{
			Name: "email", Type: String, Required: true,
			Messages: map[string]string{"required": "Email is required"},
		},
		{
			Name: "password", Type: String, Required: true, Strict: true,
			Messages: map[string]string{
				"required": "Password is required",
				"type":     "Password must be a string",
			},
		},
	},
}
