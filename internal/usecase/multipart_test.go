package usecase

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"testing"
)

// fileHeader builds a real multipart.FileHeader around small in-memory
// content so upload paths can be exercised without touching disk.
func fileHeader(t *testing.T, filename string) *multipart.FileHeader {
	t.Helper()
	return fileHeaderWithContent(t, filename, []byte("test-content"))
}

func fileHeaderWithContent(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()

	req, err := http.NewRequest(http.MethodPost, "/", &body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("parse multipart form: %v", err)
	}
	return req.MultipartForm.File["file"][0]
}
