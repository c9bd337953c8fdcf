package reports

import (
	"math"
	"strconv"
	"time"
)

// Page geometry in points, US Letter portrait.
const (
	pageWidth  = 612.0
	pageHeight = 792.0
	margin     = 72.0

	titleSize   = 20.0
	titleHeight = 24.0
	bodySize    = 12.0
	lineHeight  = 15.0

	imageBoxWidth  = 150.0
	imageBoxHeight = 100.0
)

// Lines returns the report body lines in print order.
func Lines(rec Record, cfg *Config, loc *time.Location) []string {
	return []string{
		"Student ID: " + orNA(rec.StudentID),
		"Student Name: " + orNA(rec.Name),
		"Face Score: " + FormatScore(rec.Score, rec.HasScore),
		FormatTimestamp(rec.Date, loc),
		"Violation: " + orDefault(rec.Status, DefaultViolation),
		"Fine Amount: " + cfg.FineAmount,
	}
}

// FormatScore prints a 0..1 score as a percentage rounded to two decimals
// with trailing zeros dropped. Absent or non-finite scores print N/A.
func FormatScore(score float64, ok bool) string {
	if !ok || math.IsNaN(score) || math.IsInf(score, 0) {
		return NotAvailable
	}
	pct := math.Round(score*100*100) / 100
	return strconv.FormatFloat(pct, 'f', -1, 64) + "%"
}

// FormatTimestamp prints "Date: <yyyy-mm-dd> Time: <hh:mm:ss>" in loc.
func FormatTimestamp(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "Date: " + NotAvailable + " Time: " + NotAvailable
	}
	local := t.In(loc)
	return "Date: " + local.Format(time.DateOnly) + " Time: " + local.Format(time.TimeOnly)
}

// Fit scales a w×h image to fit the image box with its aspect ratio preserved,
// centers it horizontally on the page and vertically inside the block that
// starts at top.
func Fit(w, h int, top float64) Placement {
	if w <= 0 || h <= 0 {
		return Placement{Status: ImageUnavailable}
	}

	scale := math.Min(imageBoxWidth/float64(w), imageBoxHeight/float64(h))
	width := float64(w) * scale
	height := float64(h) * scale

	return Placement{
		Status: ImageEmbedded,
		X:      (pageWidth - width) / 2,
		Y:      top + (imageBoxHeight-height)/2,
		Width:  width,
		Height: height,
	}
}

func orNA(s string) string {
	return orDefault(s, NotAvailable)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
