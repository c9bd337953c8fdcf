package violations_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/unifix/internal/reports"
	"github.com/JaimeStill/unifix/internal/violations"
	"github.com/JaimeStill/unifix/pkg/pagination"
	"github.com/JaimeStill/unifix/pkg/routes"
)

type mockSystem struct {
	listFn   func(ctx context.Context, page pagination.PageRequest, filters violations.Filters) (*pagination.PageResult[violations.Violation], error)
	findFn   func(ctx context.Context, id uuid.UUID) (*violations.Violation, error)
	createFn func(ctx context.Context, cmd violations.CreateCommand) (*violations.Violation, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

func (m *mockSystem) Handler(renderer violations.Renderer, observer violations.Observer, maxBody int64) *violations.Handler {
	return violations.NewHandler(m, renderer, observer, discard(), testPagination, maxBody)
}

func (m *mockSystem) List(ctx context.Context, page pagination.PageRequest, filters violations.Filters) (*pagination.PageResult[violations.Violation], error) {
	return m.listFn(ctx, page, filters)
}

func (m *mockSystem) Find(ctx context.Context, id uuid.UUID) (*violations.Violation, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) Create(ctx context.Context, cmd violations.CreateCommand) (*violations.Violation, error) {
	return m.createFn(ctx, cmd)
}

func (m *mockSystem) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

type renderFunc func(rec reports.Record) (*reports.Report, error)

func (f renderFunc) Render(rec reports.Record) (*reports.Report, error) {
	return f(rec)
}

type recordingObserver struct {
	created  int
	deleted  int
	rendered []reports.ImageStatus
}

func (o *recordingObserver) ViolationCreated() { o.created++ }
func (o *recordingObserver) ViolationDeleted() { o.deleted++ }
func (o *recordingObserver) ReportRendered(status reports.ImageStatus) {
	o.rendered = append(o.rendered, status)
}

var testPagination = pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}

const testMaxBody = 4 << 10

var sampleID = uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleViolation() violations.Violation {
	return violations.Violation{
		ID:                 sampleID,
		StudentID:          "S100",
		Name:               "Jane Doe",
		UniformStatusImage: "",
		Date:               time.Date(2026, 3, 4, 9, 30, 0, 0, time.UTC),
		FaceScore:          ptr("0.87"),
	}
}

func setupMux(sys *mockSystem, renderer violations.Renderer, observer violations.Observer) *http.ServeMux {
	mux := http.NewServeMux()
	routes.Register(mux, sys.Handler(renderer, observer, testMaxBody).Routes())
	return mux
}

func serve(mux *http.ServeMux, method, target string, body io.Reader) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, target, body))
	return rec
}

func TestHandlerList(t *testing.T) {
	v := sampleViolation()
	var captured violations.Filters
	var capturedPage pagination.PageRequest

	sys := &mockSystem{
		listFn: func(_ context.Context, page pagination.PageRequest, filters violations.Filters) (*pagination.PageResult[violations.Violation], error) {
			captured = filters
			capturedPage = page
			result := pagination.NewPageResult([]violations.Violation{v}, 1, page.Page, page.PageSize)
			return &result, nil
		},
	}

	mux := setupMux(sys, nil, nil)

	t.Run("returns page", func(t *testing.T) {
		rec := serve(mux, "GET", "/violations", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var result pagination.PageResult[violations.Violation]
		if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if result.Total != 1 || len(result.Data) != 1 || result.Data[0].ID != v.ID {
			t.Errorf("result = %+v", result)
		}
		if capturedPage.PageSize != 20 {
			t.Errorf("page size = %d, want default 20", capturedPage.PageSize)
		}
	})

	t.Run("passes filters", func(t *testing.T) {
		serve(mux, "GET", "/violations?student_id=S100&compliance_status=open&page_size=5", nil)

		if captured.StudentID == nil || *captured.StudentID != "S100" {
			t.Errorf("student filter = %v", captured.StudentID)
		}
		if captured.ComplianceStatus == nil || *captured.ComplianceStatus != "open" {
			t.Errorf("status filter = %v", captured.ComplianceStatus)
		}
		if capturedPage.PageSize != 5 {
			t.Errorf("page size = %d, want 5", capturedPage.PageSize)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		sys.listFn = func(context.Context, pagination.PageRequest, violations.Filters) (*pagination.PageResult[violations.Violation], error) {
			return nil, errors.New("connection refused")
		}
		if rec := serve(mux, "GET", "/violations", nil); rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", rec.Code)
		}
	})
}

func TestHandlerFind(t *testing.T) {
	v := sampleViolation()
	sys := &mockSystem{
		findFn: func(_ context.Context, id uuid.UUID) (*violations.Violation, error) {
			if id == v.ID {
				return &v, nil
			}
			return nil, violations.ErrNotFound
		},
	}
	mux := setupMux(sys, nil, nil)

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"found", "/violations/" + sampleID.String(), http.StatusOK},
		{"missing", "/violations/" + uuid.NewString(), http.StatusNotFound},
		{"malformed id", "/violations/not-a-uuid", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := serve(mux, "GET", tt.target, nil); rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestHandlerCreate(t *testing.T) {
	obs := &recordingObserver{}
	var captured violations.CreateCommand

	sys := &mockSystem{
		createFn: func(_ context.Context, cmd violations.CreateCommand) (*violations.Violation, error) {
			captured = cmd
			if err := cmd.Normalize(); err != nil {
				return nil, err
			}
			v := sampleViolation()
			v.StudentID = cmd.StudentID
			return &v, nil
		},
	}
	mux := setupMux(sys, nil, obs)

	t.Run("created", func(t *testing.T) {
		body := `{"studentId":"S200","name":"John","uniform_status_image":"aGk=","face_score":0.5}`
		rec := serve(mux, "POST", "/violations", strings.NewReader(body))

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body)
		}
		if captured.StudentID != "S200" || captured.FaceScore == nil || *captured.FaceScore != "0.5" {
			t.Errorf("command = %+v", captured)
		}
		if obs.created != 1 {
			t.Errorf("created notifications = %d, want 1", obs.created)
		}
	})

	t.Run("validation error", func(t *testing.T) {
		rec := serve(mux, "POST", "/violations", strings.NewReader(`{"name":"John"}`))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
		if obs.created != 1 {
			t.Errorf("rejected create was observed")
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := serve(mux, "POST", "/violations", strings.NewReader(`{`))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("body too large", func(t *testing.T) {
		image := strings.Repeat("A", testMaxBody)
		body := `{"studentId":"S300","name":"Big","uniform_status_image":"` + image + `"}`
		rec := serve(mux, "POST", "/violations", strings.NewReader(body))

		if rec.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("status = %d, want 413", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "limit is 4 KB") {
			t.Errorf("body = %s, want the limit", rec.Body)
		}
		if captured.StudentID == "S300" {
			t.Error("oversized body reached the system")
		}
		if obs.created != 1 {
			t.Errorf("created notifications = %d, want 1", obs.created)
		}
	})
}

func TestHandlerDelete(t *testing.T) {
	obs := &recordingObserver{}
	deleted := map[uuid.UUID]bool{}

	sys := &mockSystem{
		deleteFn: func(_ context.Context, id uuid.UUID) error {
			if id != sampleID || deleted[id] {
				return violations.ErrNotFound
			}
			deleted[id] = true
			return nil
		},
	}
	mux := setupMux(sys, nil, obs)
	target := "/violations/" + sampleID.String()

	rec := serve(mux, "DELETE", target, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("first delete status = %d, want 200", rec.Code)
	}

	var body map[string]string
	json.NewDecoder(rec.Body).Decode(&body)
	if body["message"] != "Violation deleted successfully" {
		t.Errorf("message = %q", body["message"])
	}

	rec = serve(mux, "DELETE", target, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
	json.NewDecoder(rec.Body).Decode(&body)
	if body["error"] != "violation not found" {
		t.Errorf("error = %q", body["error"])
	}

	if obs.deleted != 1 {
		t.Errorf("deleted notifications = %d, want 1", obs.deleted)
	}
}

func TestHandlerReport(t *testing.T) {
	v := sampleViolation()
	sys := &mockSystem{
		findFn: func(_ context.Context, id uuid.UUID) (*violations.Violation, error) {
			if id == v.ID {
				return &v, nil
			}
			return nil, violations.ErrNotFound
		},
	}

	t.Run("renders attachment", func(t *testing.T) {
		cfg := &reports.Config{}
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("finalize: %v", err)
		}
		obs := &recordingObserver{}
		mux := setupMux(sys, reports.NewRenderer(cfg, discard()), obs)

		rec := serve(mux, "GET", "/violations/"+sampleID.String()+"/download-pdf", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
		}

		if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
			t.Errorf("content type = %q", ct)
		}

		_, params, err := mime.ParseMediaType(rec.Header().Get("Content-Disposition"))
		if err != nil {
			t.Fatalf("parse disposition: %v", err)
		}
		if params["filename"] != "violation_S100.pdf" {
			t.Errorf("filename = %q, want violation_S100.pdf", params["filename"])
		}

		if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
			t.Error("body is not a PDF")
		}
		if len(obs.rendered) != 1 || obs.rendered[0] != reports.ImageMissing {
			t.Errorf("rendered = %v, want [missing]", obs.rendered)
		}
	})

	t.Run("passes record to renderer", func(t *testing.T) {
		var got reports.Record
		renderer := renderFunc(func(rec reports.Record) (*reports.Report, error) {
			got = rec
			return &reports.Report{
				Filename:    reports.Filename(rec),
				ContentType: reports.ContentType,
				Data:        []byte("%PDF-1.3"),
				Image:       reports.Placement{Status: reports.ImageMissing},
			}, nil
		})
		mux := setupMux(sys, renderer, nil)

		rec := serve(mux, "GET", "/violations/"+sampleID.String()+"/download-pdf", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if got.StudentID != "S100" || !got.HasScore || got.Score != 0.87 {
			t.Errorf("record = %+v", got)
		}
		if rec.Header().Get("Content-Length") != "8" {
			t.Errorf("content length = %q, want 8", rec.Header().Get("Content-Length"))
		}
	})

	t.Run("missing violation", func(t *testing.T) {
		mux := setupMux(sys, renderFunc(func(reports.Record) (*reports.Report, error) {
			t.Fatal("renderer called for missing violation")
			return nil, nil
		}), nil)

		rec := serve(mux, "GET", "/violations/"+uuid.NewString()+"/download-pdf", nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("render failure", func(t *testing.T) {
		mux := setupMux(sys, renderFunc(func(reports.Record) (*reports.Report, error) {
			return nil, errors.New("pdf writer failed")
		}), nil)

		rec := serve(mux, "GET", "/violations/"+sampleID.String()+"/download-pdf", nil)
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", rec.Code)
		}
	})
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{violations.ErrNotFound, http.StatusNotFound},
		{violations.ErrDuplicate, http.StatusConflict},
		{violations.ErrValidation, http.StatusBadRequest},
		{violations.ErrInvalidID, http.StatusBadRequest},
		{violations.ErrTooLarge, http.StatusRequestEntityTooLarge},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := violations.MapHTTPStatus(tt.err); got != tt.want {
			t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
