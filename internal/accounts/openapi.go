package accounts

import "github.com/JaimeStill/unifix/pkg/openapi"

var schemas = map[string]*openapi.Schema{
	"RegisterRequest": {
		Type:     "object",
		Required: []string{"username", "email", "password"},
		Properties: map[string]*openapi.Schema{
			"username": {Type: "string"},
			"email":    {Type: "string", Format: "email"},
			"password": {Type: "string", Format: "password"},
		},
	},
	"LoginRequest": {
		Type:     "object",
		Required: []string{"email", "password"},
		Properties: map[string]*openapi.Schema{
			"email":    {Type: "string", Format: "email"},
			"password": {Type: "string", Format: "password"},
		},
	},
	"LoginResponse": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"message":    {Type: "string"},
			"token":      {Type: "string", Description: "HS256 JWT for the Authorization header"},
			"token_type": {Type: "string", Example: "Bearer"},
			"expires_in": {Type: "integer", Description: "Seconds until the token expires"},
			"expires_at": {Type: "string", Format: "date-time"},
		},
	},
}

var registerOp = &openapi.Operation{
	Summary:     "Register an account",
	RequestBody: openapi.RequestBodyJSON("RegisterRequest", true),
	Responses: map[int]*openapi.Response{
		201: openapi.ResponseJSON("Account registered", "Message"),
		400: openapi.ResponseRef("BadRequest"),
		409: openapi.ResponseRef("Conflict"),
		500: openapi.ResponseRef("InternalError"),
	},
}

var loginOp = &openapi.Operation{
	Summary:     "Exchange credentials for a bearer token",
	RequestBody: openapi.RequestBodyJSON("LoginRequest", true),
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Token issued", "LoginResponse"),
		400: openapi.ResponseRef("BadRequest"),
		500: openapi.ResponseRef("InternalError"),
	},
}
