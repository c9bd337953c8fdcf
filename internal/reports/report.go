// Package reports renders single-page PDF reports for uniform violations.
package reports

import "time"

const (
	ContentType = "application/pdf"

	DefaultViolation = "Improper Uniform"
	NotAvailable     = "N/A"

	NoImageText          = "No image available"
	ImageUnavailableText = "Image not available"
)

// ImageStatus describes what the image block of a report contains.
type ImageStatus string

const (
	ImageEmbedded    ImageStatus = "embedded"
	ImageMissing     ImageStatus = "missing"
	ImageUnavailable ImageStatus = "unavailable"
)

// Record is the violation data a report is rendered from.
type Record struct {
	ID        string
	StudentID string
	Name      string
	Image     string
	Date      time.Time
	Score     float64
	HasScore  bool
	Status    string
}

// Placement is the image block outcome. Coordinates are PDF points from the
// top-left corner of the page; they are zero unless Status is ImageEmbedded.
type Placement struct {
	Status ImageStatus `json:"status"`
	X      float64     `json:"x"`
	Y      float64     `json:"y"`
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
}

// Report is a rendered PDF document ready to be sent as a download.
type Report struct {
	Filename    string
	ContentType string
	Data        []byte
	Pages       int
	Image       Placement
}

// Filename returns violation_<studentID>.pdf, falling back to the record id.
func Filename(rec Record) string {
	key := rec.StudentID
	if key == "" {
		key = rec.ID
	}
	return "violation_" + key + ".pdf"
}
