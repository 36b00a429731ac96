package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrUnreadable is returned when none of the extraction methods produce text
// that looks like a bank statement.
var ErrUnreadable = errors.New("no readable text in PDF")

// columnGap is the horizontal distance, in PDF units, above which two text
// runs on the same row are treated as separate columns.
const columnGap = 15

// ExtractFile reads a PDF file and returns the text of each page.
func ExtractFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return Extract(f, st.Size())
}

// ExtractBytes is Extract for an in-memory document.
func ExtractBytes(data []byte) ([]string, error) {
	return Extract(bytes.NewReader(data), int64(len(data)))
}

// Extract returns the text of each page, laid out by glyph position. When
// that yields nothing readable the document's plain text is tried instead.
func Extract(r io.ReaderAt, size int64) (pages []string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			pages, err = nil, fmt.Errorf("PDF library crashed: %v", rec)
		}
	}()

	doc, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open PDF: %w", err)
	}

	numPages := doc.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("%w: document has no pages", ErrUnreadable)
	}

	if pages := extractByContent(doc, numPages); IsReadableText(pages) {
		return pages, nil
	}

	// Plain text loses the column layout; records will rarely parse from it,
	// but the metadata lines usually do.
	if text := extractByReaderPlainText(doc); IsReadableText([]string{text}) {
		return []string{text}, nil
	}
	return nil, ErrUnreadable
}

// textQuality returns the ratio of printable ASCII characters to all
// characters, between 0 and 1.
func textQuality(pages []string) float64 {
	total, readable := 0, 0
	for _, page := range pages {
		for _, r := range page {
			total++
			if r == '\n' || r == '\t' || (r >= ' ' && r <= '~') || r == '£' {
				readable++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

// commonWords appear in virtually all bank statements.
var commonWords = []string{
	"account", "balance", "date", "paid", "payment", "statement", "sort code",
}

func containsCommonWords(pages []string) bool {
	combined := strings.ToLower(strings.Join(pages, " "))
	for _, word := range commonWords {
		if strings.Contains(combined, word) {
			return true
		}
	}
	return false
}

// IsReadableText requires more than 50 characters of text, over 60% of it
// printable ASCII, containing at least one word common to bank statements.
func IsReadableText(pages []string) bool {
	if totalTextLen(pages) <= 50 {
		return false
	}
	if textQuality(pages) <= 0.6 {
		return false
	}
	return containsCommonWords(pages)
}

// extractByContent groups text runs by Y coordinate to rebuild rows. Gaps
// between runs are filled with as many spaces as the preceding glyph width
// allows, so character offsets (and with them the statement's columns)
// survive extraction. Fonts without widths fall back to a two-space pad.
func extractByContent(r *pdf.Reader, numPages int) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		if len(content.Text) == 0 {
			continue
		}

		rowMap := make(map[int][]pdf.Text)
		for _, t := range content.Text {
			// TJ arrays end with a synthetic newline glyph.
			if t.S == "\n" {
				continue
			}
			yKey := int(math.Round(t.Y))
			rowMap[yKey] = append(rowMap[yKey], t)
		}

		// PDF Y runs bottom to top.
		yKeys := make([]int, 0, len(rowMap))
		for y := range rowMap {
			yKeys = append(yKeys, y)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(yKeys)))

		var lines []string
		for _, y := range yKeys {
			if line := layoutRow(rowMap[y]); strings.TrimSpace(line) != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

// layoutRow joins the glyphs of one row left to right.
func layoutRow(items []pdf.Text) string {
	sort.SliceStable(items, func(a, b int) bool {
		return items[a].X < items[b].X
	})

	var sb strings.Builder
	for j, item := range items {
		if j > 0 {
			prev := items[j-1]
			switch gap := item.X - (prev.X + prev.W); {
			case prev.W > 0 && gap > prev.W/2:
				sb.WriteString(strings.Repeat(" ", int(math.Round(gap/prev.W))))
			case prev.W <= 0 && item.X-prev.X > columnGap:
				sb.WriteString("  ")
			}
		}
		sb.WriteString(item.S)
	}
	return strings.TrimRight(sb.String(), " ")
}

func extractByReaderPlainText(r *pdf.Reader) string {
	reader, err := r.GetPlainText()
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func totalTextLen(pages []string) int {
	n := 0
	for _, p := range pages {
		n += len(strings.TrimSpace(p))
	}
	return n
}
