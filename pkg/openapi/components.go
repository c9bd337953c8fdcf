package openapi

import "maps"

func errorResponse(description string) *Response {
	return &Response{
		Description: description,
		Content: map[string]*MediaType{
			"application/json": {Schema: SchemaRef("Error")},
		},
	}
}

// NewComponents creates Components with shared schemas, error responses,
// and the bearer security scheme.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type: "object",
				Properties: map[string]*Schema{
					"error": {Type: "string", Description: "Error message"},
				},
			},
			"Message": {
				Type: "object",
				Properties: map[string]*Schema{
					"message": {Type: "string"},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":      errorResponse("Invalid request"),
			"Unauthenticated": errorResponse("Missing or malformed bearer credential"),
			"Forbidden":       errorResponse("Invalid or expired credential"),
			"NotFound":        errorResponse("Resource not found"),
			"Conflict":        errorResponse("Resource conflict"),
			"TooLarge":        errorResponse("Request body exceeds the upload limit"),
			"InternalError":   errorResponse("Unexpected server failure"),
		},
		SecuritySchemes: map[string]*SecurityScheme{
			"bearerAuth": {
				Type:         "http",
				Scheme:       "bearer",
				BearerFormat: "JWT",
			},
		},
	}
}

// AddSchemas merges the given schemas into the component schemas.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

// AddResponses merges the given responses into the component responses.
func (c *Components) AddResponses(responses map[string]*Response) {
	maps.Copy(c.Responses, responses)
}

// Secured returns a copy of responses extended with the 401 and 403
// responses every gated operation can produce.
func Secured(responses map[int]*Response) map[int]*Response {
	out := make(map[int]*Response, len(responses)+2)
	maps.Copy(out, responses)
	out[401] = ResponseRef("Unauthenticated")
	out[403] = ResponseRef("Forbidden")
	return out
}
