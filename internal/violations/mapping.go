package violations

import (
	"net/url"

	"github.com/JaimeStill/unifix/pkg/query"
	"github.com/JaimeStill/unifix/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "violations", "v").
	Project("id", "ID").
	Project("student_id", "StudentID").
	Project("name", "Name").
	Project("uniform_status_image", "UniformStatusImage").
	Project("date", "Date").
	Project("face_score", "FaceScore").
	Project("compliance_status", "ComplianceStatus")

// Newest first; id breaks ties so paging is stable.
var defaultSort = []query.SortField{
	{Field: "Date", Descending: true},
	{Field: "ID", Descending: true},
}

// Filters contains optional exact-match criteria for violation queries.
// Nil fields are ignored.
type Filters struct {
	StudentID        *string `json:"student_id,omitempty"`
	ComplianceStatus *string `json:"compliance_status,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("StudentID", f.StudentID).
		WhereEquals("ComplianceStatus", f.ComplianceStatus)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("student_id"); s != "" {
		f.StudentID = &s
	}

	if cs := values.Get("compliance_status"); cs != "" {
		f.ComplianceStatus = &cs
	}

	return f
}

func scanViolation(s repository.Scanner) (Violation, error) {
	var v Violation
	err := s.Scan(
		&v.ID,
		&v.StudentID,
		&v.Name,
		&v.UniformStatusImage,
		&v.Date,
		&v.FaceScore,
		&v.ComplianceStatus,
	)
	return v, err
}
