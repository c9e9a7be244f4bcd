package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/tujenge/mipango/core"
	"github.com/tujenge/mipango/core/department"
)

func newUploadRequest(t *testing.T, path, name, filename, contentType string, content []byte) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if name != "" {
		if err := writer.WriteField("name", name); err != nil {
			t.Fatalf("writing name field: %v", err)
		}
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("creating file part: %v", err)
	}
	if _, err = part.Write(content); err != nil {
		t.Fatalf("writing file part: %v", err)
	}
	if err = writer.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	return req, rec
}

func Test_departmentApi_uploadDocument(t *testing.T) {
	app, deps := setup(t)

	dept := seedDepartment(t, deps, department.NewDepartment{Name: "Library", FullName: "Library Services"})
	path := "/v1/departments/" + dept.ID + "/documents"

	req, rec := newUploadRequest(t, path, "Reading List", "list.pdf", "application/pdf", []byte("%PDF-1.4 fake"))
	app.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
	}

	var doc department.Document
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshalling response: %v", err)
	}
	if doc.Name != "Reading List" {
		t.Errorf("name = %q", doc.Name)
	}
	if doc.ContentType != "application/pdf" {
		t.Errorf("contentType = %q", doc.ContentType)
	}
	if doc.DepartmentID != dept.ID {
		t.Errorf("departmentId = %q; want %q", doc.DepartmentID, dept.ID)
	}
}

func Test_departmentApi_uploadDocument_rejections(t *testing.T) {
	app, deps := setup(t)

	dept := seedDepartment(t, deps, department.NewDepartment{Name: "Library", FullName: "Library Services"})
	path := "/v1/departments/" + dept.ID + "/documents"

	t.Run("unknown department", func(t *testing.T) {
		req, rec := newUploadRequest(t, "/v1/departments/nonesuch/documents", "", "a.pdf", "application/pdf", []byte("x"))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %v; want 404", rec.Code)
		}
	})

	t.Run("oversized file", func(t *testing.T) {
		big := bytes.Repeat([]byte("a"), int(department.MaxDocumentSize)+1)
		req, rec := newUploadRequest(t, path, "", "big.pdf", "application/pdf", big)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code = %v; want 400", rec.Code)
		}
	})

	t.Run("disallowed content type", func(t *testing.T) {
		req, rec := newUploadRequest(t, path, "", "movie.mp4", "video/mp4", []byte("x"))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code = %v; want 400", rec.Code)
		}
	})

	t.Run("missing file part", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, path, []byte(`{}`))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code = %v; want 400", rec.Code)
		}
	})

	// none of the rejected uploads left a document behind
	docs, err := deps.deptSvc.QueryDocuments(context.Background(), dept.ID)
	if err != nil {
		t.Fatalf("QueryDocuments() failed: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("rejected uploads persisted %d document(s)", len(docs))
	}
}

func Test_departmentApi_queryDocuments(t *testing.T) {
	app, deps := setup(t)

	dept := seedDepartment(t, deps, department.NewDepartment{Name: "Library", FullName: "Library Services"})
	ctx := context.Background()

	older, err := deps.deptSvc.UploadDocument(ctx, dept.ID, department.NewDocument{
		Name: "Older", ContentType: "text/plain", Size: 5, Content: strings.NewReader("older"),
	})
	if err != nil {
		t.Fatalf("UploadDocument() failed: %v", err)
	}
	time.Sleep(time.Millisecond) // distinct upload times
	newer, err := deps.deptSvc.UploadDocument(ctx, dept.ID, department.NewDocument{
		Name: "Newer", ContentType: "text/plain", Size: 5, Content: strings.NewReader("newer"),
	})
	if err != nil {
		t.Fatalf("UploadDocument() failed: %v", err)
	}

	req, rec := newRequest(http.MethodGet, "/v1/departments/"+dept.ID+"/documents")
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v", rec.Code)
	}

	var docs []department.Document
	if err := json.Unmarshal(rec.Body.Bytes(), &docs); err != nil {
		t.Fatalf("unmarshalling response: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("documents = %d; want 2", len(docs))
	}
	// most recent upload first
	if docs[0].ID != newer.ID || docs[1].ID != older.ID {
		t.Errorf("order = %q, %q; want %q, %q", docs[0].Name, docs[1].Name, newer.Name, older.Name)
	}
}

func Test_departmentApi_fetchDocument(t *testing.T) {
	app, deps := setup(t)

	dept := seedDepartment(t, deps, department.NewDepartment{Name: "Library", FullName: "Library Services"})
	doc, err := deps.deptSvc.UploadDocument(context.Background(), dept.ID, department.NewDocument{
		Name: "Notes", ContentType: "text/plain", Size: 11, Content: strings.NewReader("hello there"),
	})
	if err != nil {
		t.Fatalf("UploadDocument() failed: %v", err)
	}

	req, rec := newRequest(http.MethodGet, "/v1/departments/"+dept.ID+"/documents/"+doc.ID)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v", rec.Code)
	}

	if got := rec.Header().Get("Content-Type"); got != "text/plain" {
		t.Errorf("Content-Type = %q; want text/plain", got)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "Notes") {
		t.Errorf("Content-Disposition = %q; want the document name", got)
	}
	body, _ := io.ReadAll(rec.Body)
	if string(body) != "hello there" {
		t.Errorf("body = %q; want the stored content", body)
	}

	t.Run("unknown document", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/departments/"+dept.ID+"/documents/nonesuch")
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %v; want 404", rec.Code)
		}
	})

	t.Run("document scoped to its department", func(t *testing.T) {
		other := seedDepartment(t, deps, department.NewDepartment{Name: "Other", FullName: "Other Department"})
		req, rec := newRequest(http.MethodGet, "/v1/departments/"+other.ID+"/documents/"+doc.ID)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %v; want 404", rec.Code)
		}
	})
}

func Test_departmentApi_fetchDocument_redirect(t *testing.T) {
	conf := core.NewConfig()
	conf.Debug = false
	conf.TestMode = true
	conf.Storage.Dir = t.TempDir()
	conf.Storage.PublicBaseURL = "https://files.example.org"
	app, deps := setupWithConf(t, conf)

	dept := seedDepartment(t, deps, department.NewDepartment{Name: "Library", FullName: "Library Services"})
	doc, err := deps.deptSvc.UploadDocument(context.Background(), dept.ID, department.NewDocument{
		Name: "Notes", ContentType: "text/plain", Size: 5, Content: strings.NewReader("hello"),
	})
	if err != nil {
		t.Fatalf("UploadDocument() failed: %v", err)
	}

	req, rec := newRequest(http.MethodGet, "/v1/departments/"+dept.ID+"/documents/"+doc.ID)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusFound {
		t.Fatalf("code = %v; want 302", rec.Code)
	}
	location := rec.Header().Get("Location")
	if !strings.HasPrefix(location, "https://files.example.org/") {
		t.Errorf("Location = %q; want the public URL", location)
	}
}

func Test_departmentApi_destroy_cascadesDocuments(t *testing.T) {
	app, deps := setup(t)

	dept := seedDepartment(t, deps, department.NewDepartment{Name: "Library", FullName: "Library Services"})
	_, err := deps.deptSvc.UploadDocument(context.Background(), dept.ID, department.NewDocument{
		Name: "Notes", ContentType: "text/plain", Size: 5, Content: strings.NewReader("hello"),
	})
	if err != nil {
		t.Fatalf("UploadDocument() failed: %v", err)
	}

	req, rec := newRequest(http.MethodDelete, "/v1/departments/"+dept.ID)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete code = %v", rec.Code)
	}

	req, rec = newRequest(http.MethodGet, "/v1/departments/"+dept.ID+"/documents")
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("documents after delete code = %v; want 404", rec.Code)
	}
}
