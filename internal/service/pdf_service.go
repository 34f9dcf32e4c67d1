package service

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode"

	dslipak "github.com/dslipak/pdf"
	ledongthuc "github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"

	"github.com/lshigami/analyquiz/internal/apperror"
)

// minPrimaryTextLen is the threshold above which the primary extractor's
// output is accepted without consulting the secondary one.
const minPrimaryTextLen = 50

// PDFService extracts and sanity-checks text from uploaded PDF files.
//
// Extraction runs two independently implemented parsers: single-library PDF
// parsers vary in reliability depending on document structure, and a second
// parser recovers documents the first fails on.
type PDFService interface {
	ExtractText(path string) (string, error)
	ValidateContent(text string) bool
	CleanText(text string) string
}

type extractorFunc func(path string) (string, error)

type pdfService struct {
	primary   extractorFunc
	secondary extractorFunc
}

func NewPDFService() PDFService {
	return &pdfService{
		primary:   extractWithLedongthuc,
		secondary: extractWithDslipak,
	}
}

func (s *pdfService) ExtractText(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: file not found at %s", apperror.ErrExtractionFailed, path)
	}

	text, err := s.primary(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Primary PDF extractor failed, trying secondary")
	} else if trimmed := strings.TrimSpace(text); len(trimmed) > minPrimaryTextLen {
		return trimmed, nil
	}

	text, err = s.secondary(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperror.ErrExtractionFailed, err)
	}
	if trimmed := strings.TrimSpace(text); trimmed != "" {
		return trimmed, nil
	}
	return "", fmt.Errorf("%w: no text could be extracted", apperror.ErrExtractionFailed)
}

func extractWithLedongthuc(path string) (text string, err error) {
	// Both parsers are known to panic on malformed cross reference tables.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	f, r, err := ledongthuc.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, pErr := page.GetPlainText(nil)
		if pErr != nil {
			continue
		}
		if pageText != "" {
			b.WriteString(pageText)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

func extractWithDslipak(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	r, err := dslipak.Open(path)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, pErr := page.GetPlainText(nil)
		if pErr != nil {
			continue
		}
		if pageText != "" {
			b.WriteString(pageText)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// ValidateContent reports whether extracted text is worth sending to quiz
// generation. It rejects very short extractions, mostly non-printable
// output, and texts with too few words.
func (s *pdfService) ValidateContent(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < 100 {
		return false
	}

	printable := 0
	total := 0
	for _, r := range text {
		total++
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			printable++
		}
	}
	if total == 0 || float64(printable)/float64(total) < 0.8 {
		return false
	}

	if len(strings.Fields(text)) < 50 {
		return false
	}
	return true
}

var (
	spaceRunRe  = regexp.MustCompile(`[ \t]+`)
	blankLineRe = regexp.MustCompile(`\n\s*\n+`)
	junkCharRe  = regexp.MustCompile(`[^\w\s.,;:!?\-()\[\]{}'"/]`)
)

// CleanText normalizes extracted text before it is stored and prompted on.
func (s *pdfService) CleanText(text string) string {
	text = junkCharRe.ReplaceAllString(text, "")
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = blankLineRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
