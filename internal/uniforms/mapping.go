package uniforms

import (
	"net/url"

	"github.com/JaimeStill/unifix/pkg/query"
	"github.com/JaimeStill/unifix/pkg/repository"
)

const columns = "id, filename, content_type, size_bytes, width, height, college_name, degree_name, storage_key, uploaded_at"

var projection = query.
	NewProjectionMap("public", "uniform_images", "u").
	Project("id", "ID").
	Project("filename", "Filename").
	Project("content_type", "ContentType").
	Project("size_bytes", "SizeBytes").
	Project("width", "Width").
	Project("height", "Height").
	Project("college_name", "CollegeName").
	Project("degree_name", "DegreeName").
	Project("storage_key", "StorageKey").
	Project("uploaded_at", "UploadedAt")

var defaultSort = []query.SortField{
	{Field: "UploadedAt", Descending: true},
	{Field: "Filename"},
}

// Filters narrows image listings to a college and/or degree program.
type Filters struct {
	CollegeName *string `json:"college_name,omitempty"`
	DegreeName  *string `json:"degree_name,omitempty"`
}

func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("CollegeName", f.CollegeName).
		WhereEquals("DegreeName", f.DegreeName)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if c := values.Get("college_name"); c != "" {
		f.CollegeName = &c
	}

	if d := values.Get("degree_name"); d != "" {
		f.DegreeName = &d
	}

	return f
}

func scanImage(s repository.Scanner) (Image, error) {
	var img Image
	err := s.Scan(
		&img.ID,
		&img.Filename,
		&img.ContentType,
		&img.SizeBytes,
		&img.Width,
		&img.Height,
		&img.CollegeName,
		&img.DegreeName,
		&img.StorageKey,
		&img.UploadedAt,
	)
	return img, err
}
