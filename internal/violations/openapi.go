package violations

import "github.com/JaimeStill/unifix/pkg/openapi"

var schemas = map[string]*openapi.Schema{
	"Violation": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":                   {Type: "string", Format: "uuid"},
			"student_id":           {Type: "string"},
			"name":                 {Type: "string"},
			"uniform_status_image": {Type: "string", Description: "Base64 image, optionally a data URL"},
			"date":                 {Type: "string", Format: "date-time"},
			"face_score":           {Type: "string", Description: "Face match score between 0 and 1"},
			"compliance_status":    {Type: "string"},
		},
	},
	"CreateViolation": {
		Type:     "object",
		Required: []string{"student_id", "name", "uniform_status_image"},
		Properties: map[string]*openapi.Schema{
			"student_id":           {Type: "string", Description: "Also accepted as studentId"},
			"name":                 {Type: "string"},
			"uniform_status_image": {Type: "string"},
			"date":                 {Type: "string", Format: "date-time", Description: "Defaults to the time of creation"},
			"face_score":           {Type: "string", Description: "Number or numeric string"},
			"compliance_status":    {Type: "string", Description: "Also accepted as complianceStatus"},
		},
	},
	"ViolationPage": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"data":        {Type: "array", Items: openapi.SchemaRef("Violation")},
			"total":       {Type: "integer"},
			"page":        {Type: "integer"},
			"page_size":   {Type: "integer"},
			"total_pages": {Type: "integer"},
		},
	},
}

var listOp = &openapi.Operation{
	Summary:     "List violations",
	Description: "Returns violations ordered by date, newest first.",
	Parameters: []*openapi.Parameter{
		openapi.QueryParam("page", "integer", "Page number", false),
		openapi.QueryParam("page_size", "integer", "Results per page", false),
		openapi.QueryParam("search", "string", "Match student id or name", false),
		openapi.QueryParam("sort", "string", "Comma-separated fields, prefix - for descending", false),
		openapi.QueryParam("student_id", "string", "Filter by student id", false),
		openapi.QueryParam("compliance_status", "string", "Filter by compliance status", false),
	},
	Responses: openapi.Secured(map[int]*openapi.Response{
		200: openapi.ResponseJSON("Page of violations", "ViolationPage"),
		500: openapi.ResponseRef("InternalError"),
	}),
	Security: openapi.BearerAuth,
}

var createOp = &openapi.Operation{
	Summary:     "Record a violation",
	RequestBody: openapi.RequestBodyJSON("CreateViolation", true),
	Responses: openapi.Secured(map[int]*openapi.Response{
		201: openapi.ResponseJSON("Created violation", "Violation"),
		400: openapi.ResponseRef("BadRequest"),
		413: openapi.ResponseRef("TooLarge"),
		500: openapi.ResponseRef("InternalError"),
	}),
	Security: openapi.BearerAuth,
}

var findOp = &openapi.Operation{
	Summary:    "Get a violation",
	Parameters: []*openapi.Parameter{openapi.PathParam("id", "Violation id")},
	Responses: openapi.Secured(map[int]*openapi.Response{
		200: openapi.ResponseJSON("Violation", "Violation"),
		400: openapi.ResponseRef("BadRequest"),
		404: openapi.ResponseRef("NotFound"),
	}),
	Security: openapi.BearerAuth,
}

var deleteOp = &openapi.Operation{
	Summary:    "Delete a violation",
	Parameters: []*openapi.Parameter{openapi.PathParam("id", "Violation id")},
	Responses: openapi.Secured(map[int]*openapi.Response{
		200: openapi.ResponseJSON("Deleted", "Message"),
		400: openapi.ResponseRef("BadRequest"),
		404: openapi.ResponseRef("NotFound"),
	}),
	Security: openapi.BearerAuth,
}

var reportOp = &openapi.Operation{
	Summary:     "Download a violation report",
	Description: "Renders a single-page PDF with the violation details and uniform image.",
	Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Violation id")},
	Responses: openapi.Secured(map[int]*openapi.Response{
		200: openapi.ResponseBinary("PDF report", "application/pdf"),
		400: openapi.ResponseRef("BadRequest"),
		404: openapi.ResponseRef("NotFound"),
		500: openapi.ResponseRef("InternalError"),
	}),
	Security: openapi.BearerAuth,
}
