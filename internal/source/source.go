// Package source turns the inputs a caller can hand us into statement text.
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/spdawson/bank-statement-parser/internal/extractor"
)

// ErrUnsupportedSource is returned for inputs that are neither readable text
// nor a PDF we can extract text from.
var ErrUnsupportedSource = errors.New("unsupported source")

// ErrUnreadable wraps failures to get text out of a document we do support.
var ErrUnreadable = errors.New("unreadable source")

// pdfMagic starts every PDF document.
var pdfMagic = []byte("%PDF-")

// Reader resolves sources to text.
type Reader struct {
	client *http.Client
	logger *log.Logger
}

// Option configures a Reader.
type Option func(*Reader)

// WithTimeout bounds each URI fetch.
func WithTimeout(d time.Duration) Option {
	return func(r *Reader) { r.client.Timeout = d }
}

// WithHTTPClient replaces the client used for URI fetches.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Reader) { r.client = c }
}

// WithLogger sets the logger used for progress messages.
func WithLogger(l *log.Logger) Option {
	return func(r *Reader) { r.logger = l }
}

// New returns a Reader. The default fetch timeout is 30 seconds.
func New(opts ...Option) *Reader {
	r := &Reader{
		client: &http.Client{Timeout: 30 * time.Second},
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Read returns the text of src, which may be:
//   - a string holding a local path (.txt or .pdf) or an http(s) URI
//   - a *url.URL with an http(s) scheme
//   - a []byte or io.Reader holding plain text or a PDF document
//
// Anything else yields ErrUnsupportedSource.
func (r *Reader) Read(ctx context.Context, src any) (string, error) {
	switch v := src.(type) {
	case string:
		if u, err := url.Parse(v); err == nil && isHTTP(u) {
			return r.fetch(ctx, u)
		}
		return r.readFile(v)
	case *url.URL:
		if !isHTTP(v) {
			return "", fmt.Errorf("%w: scheme %q", ErrUnsupportedSource, v.Scheme)
		}
		return r.fetch(ctx, v)
	case []byte:
		return r.decode(v)
	case io.Reader:
		data, err := io.ReadAll(v)
		if err != nil {
			return "", fmt.Errorf("read source: %w", err)
		}
		return r.decode(data)
	case nil:
		return "", fmt.Errorf("%w: nil", ErrUnsupportedSource)
	}
	return "", fmt.Errorf("%w: %T", ErrUnsupportedSource, src)
}

// CheckName reports whether a file called name is a type Read understands:
// plain text (.txt or no extension) or .pdf.
func CheckName(name string) error {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".txt", "", ".pdf":
		return nil
	default:
		return fmt.Errorf("%w: file type %q", ErrUnsupportedSource, ext)
	}
}

func (r *Reader) readFile(path string) (string, error) {
	if err := CheckName(path); err != nil {
		return "", err
	}
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		pages, err := extractor.ExtractFile(path)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrUnreadable, path, err)
		}
		r.logger.Debug("extracted PDF", "path", path, "pages", len(pages))
		return joinPages(pages), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	r.logger.Debug("read text file", "path", path, "bytes", len(data))
	return string(data), nil
}

func (r *Reader) fetch(ctx context.Context, u *url.URL) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", u.Redacted(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: unexpected status %s", u.Redacted(), resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", u.Redacted(), err)
	}
	r.logger.Debug("fetched source", "url", u.Redacted(), "bytes", len(data))
	return r.decode(data)
}

// decode extracts PDF documents and passes text through unchanged.
func (r *Reader) decode(data []byte) (string, error) {
	if !bytes.HasPrefix(data, pdfMagic) {
		return string(data), nil
	}
	pages, err := extractor.ExtractBytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	r.logger.Debug("extracted PDF", "pages", len(pages))
	return joinPages(pages), nil
}

func isHTTP(u *url.URL) bool {
	return u.Scheme == "http" || u.Scheme == "https"
}

func joinPages(pages []string) string {
	return strings.Join(pages, "\n")
}

// Read resolves src with a default Reader.
func Read(ctx context.Context, src any) (string, error) {
	return New().Read(ctx, src)
}
