// Package violations implements the uniform violation domain: the record
// type, its PostgreSQL store, and the HTTP handlers that list, create, delete,
// and export violations as PDF reports.
package violations

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/unifix/internal/reports"
)

// Violation is a recorded uniform-compliance violation for one student.
// UniformStatusImage holds base64 image text and may be malformed.
type Violation struct {
	ID                 uuid.UUID `json:"id"`
	StudentID          string    `json:"student_id"`
	Name               string    `json:"name"`
	UniformStatusImage string    `json:"uniform_status_image"`
	Date               time.Time `json:"date"`
	FaceScore          *string   `json:"face_score"`
	ComplianceStatus   *string   `json:"compliance_status"`
}

// Score returns the face score as a number. ok is false when the score is
// absent, blank, non-numeric, or not finite.
func (v Violation) Score() (score float64, ok bool) {
	if v.FaceScore == nil {
		return 0, false
	}
	s := strings.TrimSpace(*v.FaceScore)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Record projects the violation into the data a report is rendered from.
func (v Violation) Record() reports.Record {
	score, ok := v.Score()

	rec := reports.Record{
		ID:        v.ID.String(),
		StudentID: v.StudentID,
		Name:      v.Name,
		Image:     v.UniformStatusImage,
		Date:      v.Date,
		Score:     score,
		HasScore:  ok,
	}
	if v.ComplianceStatus != nil {
		rec.Status = strings.TrimSpace(*v.ComplianceStatus)
	}
	return rec
}

// CreateCommand carries the fields for a new violation.
// Date defaults to the creation time when nil.
type CreateCommand struct {
	StudentID          string     `json:"student_id"`
	Name               string     `json:"name"`
	UniformStatusImage string     `json:"uniform_status_image"`
	Date               *time.Time `json:"date,omitempty"`
	FaceScore          *string    `json:"face_score,omitempty"`
	ComplianceStatus   *string    `json:"compliance_status,omitempty"`
}

// UnmarshalJSON accepts camelCase aliases (studentId, complianceStatus) used
// by capture clients, and a face_score sent as either a JSON number or string.
func (c *CreateCommand) UnmarshalJSON(data []byte) error {
	var raw struct {
		StudentID          string          `json:"student_id"`
		StudentIDAlt       string          `json:"studentId"`
		Name               string          `json:"name"`
		UniformStatusImage string          `json:"uniform_status_image"`
		Date               *time.Time      `json:"date"`
		FaceScore          json.RawMessage `json:"face_score"`
		ComplianceStatus   *string         `json:"compliance_status"`
		ComplianceAlt      *string         `json:"complianceStatus"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	score, err := parseFaceScore(raw.FaceScore)
	if err != nil {
		return err
	}

	*c = CreateCommand{
		StudentID:          raw.StudentID,
		Name:               raw.Name,
		UniformStatusImage: raw.UniformStatusImage,
		Date:               raw.Date,
		FaceScore:          score,
		ComplianceStatus:   raw.ComplianceStatus,
	}
	if c.StudentID == "" {
		c.StudentID = raw.StudentIDAlt
	}
	if c.ComplianceStatus == nil {
		c.ComplianceStatus = raw.ComplianceAlt
	}
	return nil
}

// Normalize trims text fields and reports the first missing required field
// as an error wrapping ErrValidation.
func (c *CreateCommand) Normalize() error {
	c.StudentID = strings.TrimSpace(c.StudentID)
	c.Name = strings.TrimSpace(c.Name)
	c.UniformStatusImage = strings.TrimSpace(c.UniformStatusImage)

	switch {
	case c.StudentID == "":
		return fmt.Errorf("%w: student_id required", ErrValidation)
	case c.Name == "":
		return fmt.Errorf("%w: name required", ErrValidation)
	case c.UniformStatusImage == "":
		return fmt.Errorf("%w: uniform_status_image required", ErrValidation)
	}

	c.FaceScore = trimOptional(c.FaceScore)
	c.ComplianceStatus = trimOptional(c.ComplianceStatus)
	return nil
}

func parseFaceScore(raw json.RawMessage) (*string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return &s, nil
	}

	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return nil, fmt.Errorf("%w: face_score must be a number or string", ErrValidation)
	}
	s = n.String()
	return &s, nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
