package service

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lshigami/analyquiz/internal/apperror"
)

func writeTempFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 stub"), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func fixedExtractor(text string, err error) extractorFunc {
	return func(string) (string, error) { return text, err }
}

func TestExtractTextPrimarySucceeds(t *testing.T) {
	longText := strings.Repeat("syllabus content ", 10)
	svc := &pdfService{
		primary: fixedExtractor(longText, nil),
		secondary: func(string) (string, error) {
			t.Fatal("secondary extractor should not run")
			return "", nil
		},
	}

	got, err := svc.ExtractText(writeTempFile(t))
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if got != strings.TrimSpace(longText) {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestExtractTextFallsBackOnShortPrimaryOutput(t *testing.T) {
	svc := &pdfService{
		primary:   fixedExtractor("tiny", nil),
		secondary: fixedExtractor("recovered by the second parser", nil),
	}

	got, err := svc.ExtractText(writeTempFile(t))
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if got != "recovered by the second parser" {
		t.Fatalf("expected secondary output, got %q", got)
	}
}

func TestExtractTextFallsBackOnPrimaryError(t *testing.T) {
	svc := &pdfService{
		primary:   fixedExtractor("", errors.New("bad xref")),
		secondary: fixedExtractor("secondary text", nil),
	}

	got, err := svc.ExtractText(writeTempFile(t))
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if got != "secondary text" {
		t.Fatalf("expected secondary output, got %q", got)
	}
}

func TestExtractTextBothExtractorsFail(t *testing.T) {
	svc := &pdfService{
		primary:   fixedExtractor("", errors.New("bad xref")),
		secondary: fixedExtractor("", errors.New("also bad")),
	}

	_, err := svc.ExtractText(writeTempFile(t))
	if !errors.Is(err, apperror.ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
}

func TestExtractTextBothExtractorsEmpty(t *testing.T) {
	svc := &pdfService{
		primary:   fixedExtractor(" ", nil),
		secondary: fixedExtractor("\n\t", nil),
	}

	_, err := svc.ExtractText(writeTempFile(t))
	if !errors.Is(err, apperror.ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
}

func TestExtractTextMissingFile(t *testing.T) {
	svc := &pdfService{
		primary:   fixedExtractor("text", nil),
		secondary: fixedExtractor("text", nil),
	}

	_, err := svc.ExtractText(filepath.Join(t.TempDir(), "nope.pdf"))
	if !errors.Is(err, apperror.ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
}

func TestValidateContent(t *testing.T) {
	svc := NewPDFService().(*pdfService)

	goodText := strings.Repeat("meaningful syllabus words here ", 20)
	if !svc.ValidateContent(goodText) {
		t.Fatalf("expected valid content")
	}

	if svc.ValidateContent("too short") {
		t.Fatalf("short text should be invalid")
	}

	// Long enough in bytes but far fewer than 50 words.
	fewWords := strings.Repeat("aaaaaaaaaaaaaaaaaaaaaaaaa", 10)
	if svc.ValidateContent(fewWords) {
		t.Fatalf("text with too few words should be invalid")
	}

	// Mostly control characters.
	garbled := strings.Repeat("\x00\x01\x02 a", 60)
	if svc.ValidateContent(garbled) {
		t.Fatalf("mostly non-printable text should be invalid")
	}
}

func TestCleanText(t *testing.T) {
	svc := NewPDFService().(*pdfService)

	got := svc.CleanText("Hello\t\tworld.  This   is «odd» text.\n\n\n\nNext paragraph.")
	if strings.Contains(got, "«") || strings.Contains(got, "»") {
		t.Fatalf("junk characters not removed: %q", got)
	}
	if strings.Contains(got, "  ") {
		t.Fatalf("space runs not collapsed: %q", got)
	}
	if strings.Contains(got, "\n\n\n") {
		t.Fatalf("blank line runs not collapsed: %q", got)
	}
	if !strings.HasPrefix(got, "Hello") || !strings.HasSuffix(got, "Next paragraph.") {
		t.Fatalf("content mangled: %q", got)
	}
}
