package pdfmill

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

func writeJobResponse(w http.ResponseWriter, jobID string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(convertResponse{JobID: jobID, Status: JobStatusQueued})
}

func TestCreateJobRejectsMissingSource(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	_, err := c.CreateJob(context.Background(), ConvertRequest{})
	if !errors.Is(err, ErrNoContentSource) {
		t.Fatalf("expected ErrNoContentSource, got %v", err)
	}
	if calls.Load() != 0 {
		t.Errorf("validation must not reach the network, saw %d requests", calls.Load())
	}
}

func TestCreateJobRejectsMultipleSources(t *testing.T) {
	c := newTestClient(t, "http://unused.invalid")

	_, err := c.CreateJob(context.Background(), ConvertRequest{HTML: "<p>x</p>", URL: "https://example.com"})
	if !errors.Is(err, ErrMultipleSources) {
		t.Fatalf("expected ErrMultipleSources, got %v", err)
	}
}

func TestCreateJobURLUsesJSON(t *testing.T) {
	var gotBody jsonConvertBody
	var gotContentType, gotAPIKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != EndpointConvert {
			t.Errorf("path = %q, want %q", r.URL.Path, EndpointConvert)
		}
		gotContentType = r.Header.Get("Content-Type")
		gotAPIKey = r.Header.Get(APIKeyHeader)
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		writeJobResponse(w, "job_json_1")
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	jobID, err := c.CreateJob(context.Background(), ConvertRequest{
		URL:        "https://example.com/invoice",
		PDFOptions: map[string]any{"format": "A4"},
		WebhookURL: "https://hooks.example.com/pdf",
	})
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}

	if jobID != "job_json_1" {
		t.Errorf("job id = %q", jobID)
	}
	if !strings.HasPrefix(gotContentType, "application/json") {
		t.Errorf("content type = %q, want JSON", gotContentType)
	}
	if gotAPIKey != "test-key" {
		t.Errorf("api key header = %q", gotAPIKey)
	}
	if gotBody.URL != "https://example.com/invoice" {
		t.Errorf("url field = %q", gotBody.URL)
	}
	if gotBody.Options["format"] != "A4" {
		t.Errorf("options field = %v", gotBody.Options)
	}
	if gotBody.WebhookURL != "https://hooks.example.com/pdf" {
		t.Errorf("webhookUrl field = %q", gotBody.WebhookURL)
	}
}

func TestCreateJobFileUsesMultipart(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "page.html")
	if err := os.WriteFile(srcPath, []byte("<h1>from file</h1>"), 0o600); err != nil {
		t.Fatalf("write source file: %v", err)
	}

	var gotFile, gotOptions, gotWebhook string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			t.Errorf("content type = %q, want multipart", r.Header.Get("Content-Type"))
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			t.Errorf("file part missing: %v", err)
		} else {
			data, _ := io.ReadAll(file)
			file.Close()
			gotFile = string(data)
		}
		gotOptions = r.FormValue("options")
		gotWebhook = r.FormValue("webhookUrl")
		writeJobResponse(w, "job_mp_1")
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	jobID, err := c.CreateJob(context.Background(), ConvertRequest{
		FilePath:   srcPath,
		PDFOptions: map[string]any{"landscape": true},
	})
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}

	if jobID != "job_mp_1" {
		t.Errorf("job id = %q", jobID)
	}
	if gotFile != "<h1>from file</h1>" {
		t.Errorf("file part = %q", gotFile)
	}
	if gotOptions != `{"landscape":true}` {
		t.Errorf("options part = %q", gotOptions)
	}
	if gotWebhook != "" {
		t.Errorf("unexpected webhookUrl part %q", gotWebhook)
	}
}

func TestCreateJobInlineHTMLUsesMultipartAndCleansUp(t *testing.T) {
	var gotFile, gotFilename string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("file part missing: %v", err)
		} else {
			data, _ := io.ReadAll(file)
			file.Close()
			gotFile = string(data)
			gotFilename = header.Filename
		}
		writeJobResponse(w, "job_html_1")
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	if _, err := c.CreateJob(context.Background(), ConvertRequest{HTML: "<p>inline</p>"}); err != nil {
		t.Fatalf("CreateJob: %v", err)
	}

	if gotFile != "<p>inline</p>" {
		t.Errorf("file part = %q", gotFile)
	}
	if !strings.HasPrefix(gotFilename, "pdfmill-") || !strings.HasSuffix(gotFilename, ".html") {
		t.Errorf("artifact name = %q, want pdfmill-*.html", gotFilename)
	}
	if _, err := os.Stat(filepath.Join(os.TempDir(), gotFilename)); !os.IsNotExist(err) {
		t.Errorf("temp artifact %q not removed after submission", gotFilename)
	}
}

func TestCreateJobInlineHTMLCleansUpOnRejection(t *testing.T) {
	var gotFilename string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, header, err := r.FormFile("file"); err == nil {
			gotFilename = header.Filename
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(apiError{Error: "invalid document"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	_, err := c.CreateJob(context.Background(), ConvertRequest{HTML: "<p>bad</p>"})

	var convErr *ConversionError
	if !errors.As(err, &convErr) {
		t.Fatalf("expected ConversionError, got %v", err)
	}
	if convErr.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d", convErr.StatusCode)
	}
	if convErr.Message != "invalid document" {
		t.Errorf("message = %q", convErr.Message)
	}
	if want := "PDF conversion failed (status: 400): invalid document"; convErr.Error() != want {
		t.Errorf("error = %q, want %q", convErr.Error(), want)
	}

	if gotFilename == "" {
		t.Fatal("server never saw the file part")
	}
	if _, statErr := os.Stat(filepath.Join(os.TempDir(), gotFilename)); !os.IsNotExist(statErr) {
		t.Errorf("temp artifact %q not removed after failed submission", gotFilename)
	}
}

func TestCreateJobWithoutJobID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJobResponse(w, "")
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	_, err := c.CreateJob(context.Background(), ConvertRequest{URL: "https://example.com"})
	if !errors.Is(err, ErrNoJobID) {
		t.Fatalf("expected ErrNoJobID, got %v", err)
	}
}

func TestConvertWithWebhookSkipsPolling(t *testing.T) {
	var statusReads atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, EndpointJobs) {
			statusReads.Add(1)
		}
		writeJobResponse(w, "job_hook_1")
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	result, err := c.Convert(context.Background(), ConvertRequest{
		URL:        "https://example.com",
		WebhookURL: "https://hooks.example.com/pdf",
	})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	if result.JobID != "job_hook_1" {
		t.Errorf("job id = %q", result.JobID)
	}
	if result.Data != nil || result.Path != "" {
		t.Errorf("webhook submission must not materialize a result: %+v", result)
	}
	if statusReads.Load() != 0 {
		t.Errorf("saw %d status reads, want 0", statusReads.Load())
	}
}
