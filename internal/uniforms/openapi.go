package uniforms

import "github.com/JaimeStill/unifix/pkg/openapi"

var schemas = map[string]*openapi.Schema{
	"UniformImage": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":           {Type: "string", Format: "uuid"},
			"filename":     {Type: "string"},
			"content_type": {Type: "string"},
			"size_bytes":   {Type: "integer"},
			"width":        {Type: "integer"},
			"height":       {Type: "integer"},
			"college_name": {Type: "string"},
			"degree_name":  {Type: "string"},
			"storage_key":  {Type: "string"},
			"uploaded_at":  {Type: "string", Format: "date-time"},
		},
	},
	"UniformImagePage": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"data":        {Type: "array", Items: openapi.SchemaRef("UniformImage")},
			"total":       {Type: "integer"},
			"page":        {Type: "integer"},
			"page_size":   {Type: "integer"},
			"total_pages": {Type: "integer"},
		},
	},
	"UniformUpload": {
		Type:     "object",
		Required: []string{"images", "college_name", "degree_name"},
		Properties: map[string]*openapi.Schema{
			"images":       {Type: "array", Items: &openapi.Schema{Type: "string", Format: "binary"}},
			"college_name": {Type: "string"},
			"degree_name":  {Type: "string"},
		},
	},
	"UniformUploadResult": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"message": {Type: "string"},
			"images": {
				Type: "array",
				Items: &openapi.Schema{
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"id":       {Type: "string", Format: "uuid"},
						"filename": {Type: "string"},
					},
				},
			},
		},
	},
}

var listOp = &openapi.Operation{
	Summary: "List uniform images",
	Parameters: []*openapi.Parameter{
		openapi.QueryParam("page", "integer", "Page number", false),
		openapi.QueryParam("page_size", "integer", "Results per page", false),
		openapi.QueryParam("search", "string", "Match filename, college or degree", false),
		openapi.QueryParam("sort", "string", "Comma-separated fields, prefix - for descending", false),
		openapi.QueryParam("college_name", "string", "Filter by college", false),
		openapi.QueryParam("degree_name", "string", "Filter by degree program", false),
	},
	Responses: openapi.Secured(map[int]*openapi.Response{
		200: openapi.ResponseJSON("Page of uniform images", "UniformImagePage"),
		500: openapi.ResponseRef("InternalError"),
	}),
	Security: openapi.BearerAuth,
}

var uploadOp = &openapi.Operation{
	Summary:     "Upload uniform images",
	Description: "Stores every file or none.",
	RequestBody: &openapi.RequestBody{
		Required: true,
		Content: map[string]*openapi.MediaType{
			"multipart/form-data": {Schema: openapi.SchemaRef("UniformUpload")},
		},
	},
	Responses: openapi.Secured(map[int]*openapi.Response{
		200: openapi.ResponseJSON("Images stored", "UniformUploadResult"),
		400: openapi.ResponseRef("BadRequest"),
		413: openapi.ResponseRef("TooLarge"),
		500: openapi.ResponseRef("InternalError"),
	}),
	Security: openapi.BearerAuth,
}

var findOp = &openapi.Operation{
	Summary:    "Get uniform image metadata",
	Parameters: []*openapi.Parameter{openapi.PathParam("id", "Uniform image id")},
	Responses: openapi.Secured(map[int]*openapi.Response{
		200: openapi.ResponseJSON("Uniform image", "UniformImage"),
		400: openapi.ResponseRef("BadRequest"),
		404: openapi.ResponseRef("NotFound"),
	}),
	Security: openapi.BearerAuth,
}

var contentOp = &openapi.Operation{
	Summary:    "Download uniform image bytes",
	Parameters: []*openapi.Parameter{openapi.PathParam("id", "Uniform image id")},
	Responses: openapi.Secured(map[int]*openapi.Response{
		200: openapi.ResponseBinary("Image bytes", "image/*"),
		400: openapi.ResponseRef("BadRequest"),
		404: openapi.ResponseRef("NotFound"),
		500: openapi.ResponseRef("InternalError"),
	}),
	Security: openapi.BearerAuth,
}

var deleteOp = &openapi.Operation{
	Summary:    "Delete a uniform image",
	Parameters: []*openapi.Parameter{openapi.PathParam("id", "Uniform image id")},
	Responses: openapi.Secured(map[int]*openapi.Response{
		204: {Description: "Deleted"},
		400: openapi.ResponseRef("BadRequest"),
		404: openapi.ResponseRef("NotFound"),
		500: openapi.ResponseRef("InternalError"),
	}),
	Security: openapi.BearerAuth,
}
