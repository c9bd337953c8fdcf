package query_test

import (
	"testing"

	"github.com/JaimeStill/unifix/pkg/query"
)

func testProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "violations", "v").
		Project("id", "ID").
		Project("student_id", "StudentID").
		Project("name", "Name").
		Project("date", "Date")
}

func ptr(s string) *string { return &s }

func TestProjectionMap(t *testing.T) {
	p := testProjection()

	if got := p.Table(); got != "public.violations v" {
		t.Errorf("Table() = %q", got)
	}
	if got := p.Columns(); got != "v.id, v.student_id, v.name, v.date" {
		t.Errorf("Columns() = %q", got)
	}
	if got := p.Column("Date"); got != "v.date" {
		t.Errorf("Column(Date) = %q", got)
	}
	if got := p.Column("unknown"); got != "unknown" {
		t.Errorf("Column(unknown) = %q, want passthrough", got)
	}
	if !p.HasColumn("Name") || p.HasColumn("password") {
		t.Error("HasColumn mismatch")
	}
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []query.SortField
	}{
		{"empty", "", nil},
		{"single asc", "Name", []query.SortField{{Field: "Name"}}},
		{"single desc", "-Date", []query.SortField{{Field: "Date", Descending: true}}},
		{"mixed with spaces", "Name, -Date,", []query.SortField{
			{Field: "Name"},
			{Field: "Date", Descending: true},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ParseSortFields(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuildPageDefaultSort(t *testing.T) {
	qb := query.NewBuilder(testProjection(), query.SortField{Field: "Date", Descending: true})

	sql, args := qb.BuildPage(2, 10)
	want := "SELECT v.id, v.student_id, v.name, v.date FROM public.violations v ORDER BY v.date DESC LIMIT 10 OFFSET 10"
	if sql != want {
		t.Errorf("sql:\n got %q\nwant %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
}

func TestBuildPageConditions(t *testing.T) {
	studentID := "S100"
	qb := query.NewBuilder(testProjection()).
		WhereSearch(ptr("jane"), "StudentID", "Name").
		WhereEquals("StudentID", &studentID).
		WhereEquals("Name", (*string)(nil))

	sql, args := qb.BuildCount()
	want := "SELECT COUNT(*) FROM public.violations v WHERE (v.student_id ILIKE $1 OR v.name ILIKE $2) AND v.student_id = $3"
	if sql != want {
		t.Errorf("sql:\n got %q\nwant %q", sql, want)
	}
	if len(args) != 3 || args[0] != "%jane%" {
		t.Errorf("args = %v", args)
	}
}

func TestOrderByFieldsDropsUnknown(t *testing.T) {
	qb := query.NewBuilder(testProjection(), query.SortField{Field: "Date", Descending: true}).
		OrderByFields([]query.SortField{{Field: "Name"}, {Field: "1; DROP TABLE violations"}})

	sql, _ := qb.BuildPage(1, 5)
	want := "SELECT v.id, v.student_id, v.name, v.date FROM public.violations v ORDER BY v.name ASC LIMIT 5 OFFSET 0"
	if sql != want {
		t.Errorf("sql:\n got %q\nwant %q", sql, want)
	}
}

func TestOrderByFieldsAllUnknownFallsBackToDefault(t *testing.T) {
	qb := query.NewBuilder(testProjection(), query.SortField{Field: "Date", Descending: true}).
		OrderByFields([]query.SortField{{Field: "password"}})

	sql, _ := qb.BuildPage(1, 5)
	want := "SELECT v.id, v.student_id, v.name, v.date FROM public.violations v ORDER BY v.date DESC LIMIT 5 OFFSET 0"
	if sql != want {
		t.Errorf("sql:\n got %q\nwant %q", sql, want)
	}
}

func TestBuildSingle(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).BuildSingle("ID", "abc")
	want := "SELECT v.id, v.student_id, v.name, v.date FROM public.violations v WHERE v.id = $1"
	if sql != want {
		t.Errorf("sql = %q", sql)
	}
	if len(args) != 1 || args[0] != "abc" {
		t.Errorf("args = %v", args)
	}
}
