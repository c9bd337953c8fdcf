package reports

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/JaimeStill/unifix/internal/imaging"
)

const (
	fontFamily = "Helvetica"
	imageName  = "uniform"
)

// Renderer produces fixed-layout violation reports. It holds no per-report
// state and is safe for concurrent use.
type Renderer struct {
	cfg    Config
	loc    *time.Location
	logger *slog.Logger
}

type preparedImage struct {
	data []byte
	info imaging.Info
}

// NewRenderer creates a Renderer from a finalized report configuration.
func NewRenderer(cfg *Config, logger *slog.Logger) *Renderer {
	return &Renderer{
		cfg:    *cfg,
		loc:    cfg.Location(),
		logger: logger.With("system", "reports"),
	}
}

// Render writes rec as a single-page PDF. Image payload problems never fail
// the render; they select the fallback text for the image block. An error is
// returned only when the PDF writer itself fails.
func (r *Renderer) Render(rec Record) (*Report, error) {
	img, status := r.prepare(rec)

	data, placement, err := r.write(rec, img, status)
	if err != nil && img != nil {
		r.logger.Warn("pdf writer rejected image, rendering without it",
			"id", rec.ID,
			"format", img.info.Format,
			"error", err,
		)
		data, placement, err = r.write(rec, nil, ImageUnavailable)
	}
	if err != nil {
		return nil, fmt.Errorf("render report %s: %w", rec.ID, err)
	}

	pages, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return nil, fmt.Errorf("read back report %s: %w", rec.ID, err)
	}

	return &Report{
		Filename:    Filename(rec),
		ContentType: ContentType,
		Data:        data,
		Pages:       pages,
		Image:       placement,
	}, nil
}

func (r *Renderer) prepare(rec Record) (*preparedImage, ImageStatus) {
	if rec.Image == "" {
		return nil, ImageMissing
	}

	raw, err := imaging.Decode(rec.Image)
	if err != nil {
		r.logger.Debug("image payload not decodable", "id", rec.ID, "error", err)
		return nil, ImageUnavailable
	}

	data, info, err := imaging.Normalize(raw)
	if err != nil {
		r.logger.Debug("image payload not embeddable", "id", rec.ID, "error", err)
		return nil, ImageUnavailable
	}

	return &preparedImage{data: data, info: info}, ImageEmbedded
}

func (r *Renderer) write(rec Record, img *preparedImage, status ImageStatus) ([]byte, Placement, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetCompression(false)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetCreator("unifix", false)
	pdf.SetTitle(r.cfg.Title, true)
	if !rec.Date.IsZero() {
		pdf.SetCreationDate(rec.Date)
		pdf.SetModificationDate(rec.Date)
	}

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", titleSize)
	pdf.CellFormat(0, titleHeight, tr(r.cfg.Title), "", 1, "C", false, 0, "")
	pdf.Ln(lineHeight / 2)

	pdf.SetFont(fontFamily, "", bodySize)
	for _, line := range Lines(rec, &r.cfg, r.loc) {
		pdf.CellFormat(0, lineHeight, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(lineHeight)

	placement := Placement{Status: status}

	switch status {
	case ImageEmbedded:
		top := pdf.GetY()
		placement = Fit(img.info.Width, img.info.Height, top)

		opts := fpdf.ImageOptions{ImageType: imageType(img.info.Format)}
		pdf.RegisterImageOptionsReader(imageName, opts, bytes.NewReader(img.data))
		pdf.ImageOptions(imageName, placement.X, placement.Y, placement.Width, placement.Height, false, opts, 0, "")
		pdf.SetY(top + imageBoxHeight)
	case ImageMissing:
		pdf.CellFormat(0, lineHeight, NoImageText, "", 1, "C", false, 0, "")
	default:
		pdf.CellFormat(0, lineHeight, ImageUnavailableText, "", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, Placement{}, err
	}

	return buf.Bytes(), placement, nil
}

func imageType(format string) string {
	if format == "jpeg" {
		return "JPG"
	}
	return "PNG"
}
