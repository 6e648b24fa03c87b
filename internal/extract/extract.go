package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpumodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrUnreadable means no backend could make sense of the payload.
var ErrUnreadable = errors.New("extract: unreadable document")

// Result is the outcome of text extraction. Text may be empty for a
// structurally valid PDF whose content streams yield no readable text.
type Result struct {
	Text      string
	PageCount int
}

// Backend is a single extraction strategy.
type Backend interface {
	Name() string
	Extract(ctx context.Context, data []byte) (Result, error)
}

// Extractor runs backends in order until one succeeds.
type Extractor struct {
	backends []Backend
}

// New returns an Extractor with the default backend chain: full text
// extraction first, structural page counting as fallback.
func New() *Extractor {
	return &Extractor{backends: []Backend{textBackend{}, structuralBackend{}}}
}

// NewWithBackends returns an Extractor over an explicit chain.
func NewWithBackends(backends ...Backend) *Extractor {
	return &Extractor{backends: backends}
}

// Extract runs the backend chain over an in-memory PDF payload.
func (e *Extractor) Extract(ctx context.Context, data []byte) (Result, error) {
	if len(data) == 0 {
		return Result{}, fmt.Errorf("%w: empty payload", ErrUnreadable)
	}

	var firstErr error
	for _, b := range e.backends {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		res, err := b.Extract(ctx, data)
		if err == nil {
			return res, nil
		}
		if firstErr == nil {
			firstErr = fmt.Errorf("%s: %w", b.Name(), err)
		}
	}
	if firstErr == nil {
		firstErr = errors.New("no backends configured")
	}
	return Result{}, fmt.Errorf("%w: %v", ErrUnreadable, firstErr)
}

// textBackend extracts plain text and page count via github.com/ledongthuc/pdf.
type textBackend struct{}

func (textBackend) Name() string { return "ledongthuc" }

func (textBackend) Extract(_ context.Context, data []byte) (res Result, err error) {
	// The reader panics on some malformed cross reference tables.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Result{}, err
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return Result{}, err
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return Result{}, err
	}

	return Result{
		Text:      strings.TrimSpace(buf.String()),
		PageCount: reader.NumPage(),
	}, nil
}

// structuralBackend validates the document with pdfcpu and reports its page
// count without attempting text extraction. It catches PDFs the text backend
// cannot parse, including scanned documents with no text layer.
type structuralBackend struct{}

func (structuralBackend) Name() string { return "pdfcpu" }

func (structuralBackend) Extract(_ context.Context, data []byte) (Result, error) {
	count, err := api.PageCount(bytes.NewReader(data), pdfcpumodel.NewDefaultConfiguration())
	if err != nil {
		return Result{}, err
	}
	return Result{Text: "", PageCount: count}, nil
}
