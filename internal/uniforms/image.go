// Package uniforms ingests reference uniform images per college and degree
// program. Image bytes live in blob storage; metadata rows live in PostgreSQL.
package uniforms

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/unifix/internal/imaging"
)

// Image is the metadata row for one stored uniform image.
type Image struct {
	ID          uuid.UUID `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	Width       *int      `json:"width,omitempty"`
	Height      *int      `json:"height,omitempty"`
	CollegeName string    `json:"college_name"`
	DegreeName  string    `json:"degree_name"`
	StorageKey  string    `json:"storage_key"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// File is one uploaded image as received from the client.
type File struct {
	Filename string
	Data     []byte
}

// UploadCommand carries a batch of images for one college and degree program.
type UploadCommand struct {
	CollegeName string
	DegreeName  string
	Files       []File
}

// Normalize trims the program names and checks the batch is non-empty.
func (c *UploadCommand) Normalize() error {
	c.CollegeName = strings.TrimSpace(c.CollegeName)
	c.DegreeName = strings.TrimSpace(c.DegreeName)

	if len(c.Files) == 0 {
		return ErrNoFiles
	}
	if c.CollegeName == "" {
		return fmt.Errorf("%w: college_name required", ErrValidation)
	}
	if c.DegreeName == "" {
		return fmt.Errorf("%w: degree_name required", ErrValidation)
	}
	return nil
}

// Summary is the short form of an image returned after an upload.
type Summary struct {
	ID       uuid.UUID `json:"id"`
	Filename string    `json:"filename"`
}

// UploadResponse is the body returned by a successful upload.
type UploadResponse struct {
	Message string    `json:"message"`
	Images  []Summary `json:"images"`
}

// prepare inspects every file and assigns ids and storage keys. A file that
// is not a decodable image rejects the whole batch.
func prepare(cmd UploadCommand) ([]Image, error) {
	images := make([]Image, len(cmd.Files))

	for i, f := range cmd.Files {
		name := filepath.Base(strings.TrimSpace(f.Filename))
		if name == "." || name == "/" || name == "" {
			name = "image"
		}

		if len(f.Data) == 0 {
			return nil, fmt.Errorf("%w: %s is empty", ErrValidation, name)
		}

		info, err := imaging.Inspect(f.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s is not a supported image", ErrValidation, name)
		}

		id := uuid.New()
		width, height := info.Width, info.Height

		images[i] = Image{
			ID:          id,
			Filename:    name,
			ContentType: "image/" + info.Format,
			SizeBytes:   int64(len(f.Data)),
			Width:       &width,
			Height:      &height,
			CollegeName: cmd.CollegeName,
			DegreeName:  cmd.DegreeName,
			StorageKey:  storageKey(cmd.CollegeName, cmd.DegreeName, id, name),
		}
	}

	return images, nil
}

func storageKey(college, degree string, id uuid.UUID, filename string) string {
	return fmt.Sprintf("uniforms/%s/%s/%s/%s", segment(college), segment(degree), id, segment(filename))
}

// segment escapes s into a single key segment that passes storage.ValidateKey.
func segment(s string) string {
	s = strings.ReplaceAll(s, "..", "_")
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\':
			return '_'
		case r < 0x20 || r == 0x7f:
			return -1
		}
		return r
	}, s)
	if s == "" {
		return "_"
	}
	return strings.ReplaceAll(s, " ", "-")
}
