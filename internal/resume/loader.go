package resume

import (
	"bytes"
	"io"
	"os"

	"github.com/ledongthuc/pdf"

	"portfolio-backend/internal/shared/telemetry"
)

// Resume holds the plain-text extraction of the resume PDF. It is populated
// once at startup and read-only afterwards, so concurrent reads need no
// synchronization.
type Resume struct {
	text string
}

// Text returns the extracted resume text; empty when loading failed.
func (r *Resume) Text() string {
	if r == nil {
		return ""
	}
	return r.text
}

// Load reads and extracts the resume PDF at path. Any failure is logged and
// yields an empty resume so the server keeps serving without resume context.
// The file is read once and never watched for changes.
func Load(path string) *Resume {
	data, err := os.ReadFile(path)
	if err != nil {
		telemetry.Error("resume.load_failed", map[string]any{
			"path":  path,
			"error": err.Error(),
		})
		return &Resume{}
	}

	text, err := extractPDF(data)
	if err != nil {
		telemetry.Error("resume.parse_failed", map[string]any{
			"path":  path,
			"error": err.Error(),
		})
		return &Resume{}
	}

	telemetry.Info("resume.loaded", map[string]any{
		"path":  path,
		"chars": len(text),
	})
	return &Resume{text: text}
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}
