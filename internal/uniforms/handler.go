package uniforms

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/JaimeStill/unifix/pkg/formatting"
	"github.com/JaimeStill/unifix/pkg/handlers"
	"github.com/JaimeStill/unifix/pkg/pagination"
	"github.com/JaimeStill/unifix/pkg/routes"
)

// Observer receives the size of each accepted upload batch.
type Observer interface {
	UniformsUploaded(count int)
}

// Handler provides HTTP endpoints for uniform image operations.
type Handler struct {
	sys           System
	observer      Observer
	logger        *slog.Logger
	pagination    pagination.Config
	maxUploadSize int64
}

func NewHandler(
	sys System,
	observer Observer,
	logger *slog.Logger,
	pagination pagination.Config,
	maxUploadSize int64,
) *Handler {
	if observer == nil {
		observer = nopObserver{}
	}
	return &Handler{
		sys:           sys,
		observer:      observer,
		logger:        logger.With("handler", "uniforms"),
		pagination:    pagination,
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for uniform image endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:  "/uniforms",
		Tags:    []string{"Uniforms"},
		Schemas: schemas,
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: listOp},
			{Method: "POST", Pattern: "", Handler: h.Upload, OpenAPI: uploadOp},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: findOp},
			{Method: "GET", Pattern: "/{id}/content", Handler: h.Content, OpenAPI: contentOp},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete, OpenAPI: deleteOp},
		},
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidID)
		return
	}

	img, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, img)
}

// Upload accepts a multipart form with one or more files in the "images"
// field plus college_name and degree_name values.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			err = fmt.Errorf("%w: limit is %s", ErrTooLarge, formatting.FormatBytes(h.maxUploadSize, 0))
			handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, err)
			return
		}
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNoFiles)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files, err := readFiles(r.MultipartForm.File["images"])
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	cmd := UploadCommand{
		CollegeName: formValue(r, "college_name", "collegeName"),
		DegreeName:  formValue(r, "degree_name", "degreeName"),
		Files:       files,
	}

	images, err := h.sys.Upload(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	h.observer.UniformsUploaded(len(images))

	resp := UploadResponse{
		Message: "Files uploaded successfully",
		Images:  make([]Summary, len(images)),
	}
	for i, img := range images {
		resp.Images[i] = Summary{ID: img.ID, Filename: img.Filename}
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Content streams the stored image bytes.
func (h *Handler) Content(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidID)
		return
	}

	img, blob, err := h.sys.Open(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer blob.Body.Close()

	contentType := blob.ContentType
	if contentType == "" {
		contentType = img.ContentType
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{
		"filename": img.Filename,
	}))
	if blob.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(blob.ContentLength, 10))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, blob.Body); err != nil {
		h.logger.Warn("uniform image stream interrupted", "id", id, "error", err)
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidID)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func readFiles(headers []*multipart.FileHeader) ([]File, error) {
	if len(headers) == 0 {
		return nil, ErrNoFiles
	}

	files := make([]File, 0, len(headers))
	for _, fh := range headers {
		data, err := readFile(fh)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", ErrValidation, fh.Filename, err)
		}
		files = append(files, File{Filename: fh.Filename, Data: data})
	}
	return files, nil
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// formValue reads the first non-empty value among names.
func formValue(r *http.Request, names ...string) string {
	for _, name := range names {
		if v := r.FormValue(name); v != "" {
			return v
		}
	}
	return ""
}

type nopObserver struct{}

func (nopObserver) UniformsUploaded(int) {}
