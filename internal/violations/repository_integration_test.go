//go:build integration

package violations_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/JaimeStill/unifix/internal/testdb"
	"github.com/JaimeStill/unifix/internal/violations"
	"github.com/JaimeStill/unifix/pkg/pagination"
)

type RepositorySuite struct {
	suite.Suite
	postgres *testdb.Postgres
	sys      violations.System
}

func TestRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupSuite() {
	s.postgres = testdb.Start(s.T())
	s.sys = violations.New(s.postgres.DB, discard(), testPagination)
}

func (s *RepositorySuite) SetupTest() {
	s.Require().NoError(s.postgres.Truncate(context.Background(), "violations"))
}

func (s *RepositorySuite) create(studentID string, date time.Time) *violations.Violation {
	v, err := s.sys.Create(context.Background(), violations.CreateCommand{
		StudentID:          studentID,
		Name:               "Student " + studentID,
		UniformStatusImage: "aGVsbG8=",
		Date:               &date,
		FaceScore:          ptr("0.9"),
	})
	s.Require().NoError(err)
	return v
}

func (s *RepositorySuite) TestCreateDefaultsDate() {
	before := time.Now().Add(-time.Minute)

	v, err := s.sys.Create(context.Background(), violations.CreateCommand{
		StudentID:          "S1",
		Name:               "Jane",
		UniformStatusImage: "aGVsbG8=",
	})
	s.Require().NoError(err)

	s.NotEqual(uuid.Nil, v.ID)
	s.True(v.Date.After(before), "date %v not defaulted to now", v.Date)
	s.Nil(v.FaceScore)
	s.Nil(v.ComplianceStatus)
}

func (s *RepositorySuite) TestCreateRejectsMissingFields() {
	_, err := s.sys.Create(context.Background(), violations.CreateCommand{Name: "Jane"})
	s.ErrorIs(err, violations.ErrValidation)
}

func (s *RepositorySuite) TestListNewestFirst() {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.create("S1", base)
	s.create("S2", base.Add(48*time.Hour))
	s.create("S3", base.Add(24*time.Hour))

	page, err := s.sys.List(context.Background(), pagination.PageRequest{}, violations.Filters{})
	s.Require().NoError(err)

	s.Equal(3, page.Total)
	s.Require().Len(page.Data, 3)
	s.Equal("S2", page.Data[0].StudentID)
	s.Equal("S3", page.Data[1].StudentID)
	s.Equal("S1", page.Data[2].StudentID)
}

func (s *RepositorySuite) TestListFiltersAndSearch() {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.create("S1", base)
	s.create("S2", base)

	studentID := "S2"
	page, err := s.sys.List(context.Background(), pagination.PageRequest{}, violations.Filters{StudentID: &studentID})
	s.Require().NoError(err)
	s.Equal(1, page.Total)

	search := "student s1"
	page, err = s.sys.List(context.Background(), pagination.PageRequest{Search: &search}, violations.Filters{})
	s.Require().NoError(err)
	s.Require().Len(page.Data, 1)
	s.Equal("S1", page.Data[0].StudentID)
}

func (s *RepositorySuite) TestFindAndDelete() {
	ctx := context.Background()
	date := time.Date(2026, 2, 14, 8, 15, 30, 123456000, time.UTC)
	cmd := violations.CreateCommand{
		StudentID:          "S1",
		Name:               "Jane Doe",
		UniformStatusImage: "aGVsbG8=",
		Date:               &date,
		FaceScore:          ptr("0.87"),
		ComplianceStatus:   ptr("non-compliant: missing tie"),
	}

	v, err := s.sys.Create(ctx, cmd)
	s.Require().NoError(err)

	found, err := s.sys.Find(ctx, v.ID)
	s.Require().NoError(err)
	s.Equal(v.ID, found.ID)
	s.Equal(cmd.StudentID, found.StudentID)
	s.Equal(cmd.Name, found.Name)
	s.Equal(cmd.UniformStatusImage, found.UniformStatusImage)
	s.True(date.Equal(found.Date), "date = %v, want %v", found.Date, date)
	s.Require().NotNil(found.FaceScore)
	s.Equal(*cmd.FaceScore, *found.FaceScore)
	s.Require().NotNil(found.ComplianceStatus)
	s.Equal(*cmd.ComplianceStatus, *found.ComplianceStatus)

	s.Require().NoError(s.sys.Delete(ctx, v.ID))
	s.ErrorIs(s.sys.Delete(ctx, v.ID), violations.ErrNotFound)

	_, err = s.sys.Find(ctx, v.ID)
	s.ErrorIs(err, violations.ErrNotFound)
}

func (s *RepositorySuite) TestFindUnknown() {
	_, err := s.sys.Find(context.Background(), uuid.New())
	s.ErrorIs(err, violations.ErrNotFound)
}
