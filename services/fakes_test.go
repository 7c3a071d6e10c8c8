package services

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/textproto"
	"testing"
)

type recordingNotifier struct {
	events []string
}

func (r *recordingNotifier) NotifyAdmins(eventType, _ string, _ interface{}) {
	r.events = append(r.events, eventType)
}

type recordingMailer struct {
	subjects []string
}

func (r *recordingMailer) NotifyAdmin(subject, _ string) error {
	r.subjects = append(r.subjects, subject)
	return nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

type testFile struct {
	field       string
	name        string
	contentType string
	data        []byte
}

// multipartFiles builds real *multipart.FileHeader values the same way a
// request would carry them.
func multipartFiles(t *testing.T, files ...testFile) map[string][]*multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.field, f.name))
		h.Set("Content-Type", f.contentType)
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		part.Write(f.data)
	}
	w.Close()

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() })
	return form.File
}

func assertKind(t *testing.T, err error, want ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error of kind %d, got nil", want)
	}
	var ae *AppError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}
	if ae.Kind != want {
		t.Fatalf("expected kind %d, got %d (%s)", want, ae.Kind, ae.Message)
	}
}

func intPtr(v int) *int { return &v }
