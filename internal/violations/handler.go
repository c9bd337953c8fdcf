package violations

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/JaimeStill/unifix/internal/reports"
	"github.com/JaimeStill/unifix/pkg/formatting"
	"github.com/JaimeStill/unifix/pkg/handlers"
	"github.com/JaimeStill/unifix/pkg/pagination"
	"github.com/JaimeStill/unifix/pkg/routes"
)

// Renderer produces a PDF report for a violation record.
type Renderer interface {
	Render(rec reports.Record) (*reports.Report, error)
}

// Observer receives notifications about completed violation operations.
type Observer interface {
	ViolationCreated()
	ViolationDeleted()
	ReportRendered(image reports.ImageStatus)
}

// Handler provides HTTP endpoints for violation operations.
type Handler struct {
	sys        System
	renderer   Renderer
	observer   Observer
	logger     *slog.Logger
	pagination pagination.Config
	maxBody    int64
}

// NewHandler creates a Handler. A nil observer discards notifications.
// Create bodies larger than maxBody bytes are rejected with 413.
func NewHandler(
	sys System,
	renderer Renderer,
	observer Observer,
	logger *slog.Logger,
	pagination pagination.Config,
	maxBody int64,
) *Handler {
	if observer == nil {
		observer = nopObserver{}
	}
	return &Handler{
		sys:        sys,
		renderer:   renderer,
		observer:   observer,
		logger:     logger.With("handler", "violations"),
		pagination: pagination,
		maxBody:    maxBody,
	}
}

// Routes returns the route group definition for violation endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:  "/violations",
		Tags:    []string{"Violations"},
		Schemas: schemas,
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: listOp},
			{Method: "POST", Pattern: "", Handler: h.Create, OpenAPI: createOp},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: findOp},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete, OpenAPI: deleteOp},
			{Method: "GET", Pattern: "/{id}/download-pdf", Handler: h.Report, OpenAPI: reportOp},
		},
	}
}

// List returns violations newest first, with optional filters and search.
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

	v, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, v)
}

// Create records a new violation from a JSON body.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)

	var cmd CreateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			err = fmt.Errorf("%w: limit is %s", ErrTooLarge, formatting.FormatBytes(h.maxBody, 0))
			handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, err)
			return
		}
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrValidation)
		return
	}

	v, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	h.observer.ViolationCreated()
	handlers.RespondJSON(w, http.StatusCreated, v)
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

	h.observer.ViolationDeleted()
	handlers.RespondMessage(w, http.StatusOK, "Violation deleted successfully")
}

// Report streams the violation's PDF report as an attachment.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidID)
		return
	}

	v, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	report, err := h.renderer.Render(v.Record())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	h.observer.ReportRendered(report.Image.Status)
	h.logger.Info(
		"report rendered",
		"id", v.ID,
		"image", report.Image.Status,
		"bytes", len(report.Data),
	)

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": report.Filename,
	}))
	w.Header().Set("Content-Length", strconv.Itoa(len(report.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(report.Data)
}

type nopObserver struct{}

func (nopObserver) ViolationCreated()                  {}
func (nopObserver) ViolationDeleted()                  {}
func (nopObserver) ReportRendered(reports.ImageStatus) {}
