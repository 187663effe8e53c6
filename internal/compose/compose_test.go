package compose

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// buildBasePDF creates a minimal valid single-page PDF with correct xref offsets.
func buildBasePDF(text string) []byte {
	escaped := strings.ReplaceAll(text, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, "(", `\(`)
	escaped = strings.ReplaceAll(escaped, ")", `\)`)

	stream := "BT\n/F1 12 Tf\n72 720 Td\n(" + escaped + ") Tj\nET"

	var b strings.Builder
	b.WriteString("%PDF-1.4\n")

	offsets := make([]int, 6)

	offsets[1] = b.Len()
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	offsets[2] = b.Len()
	b.WriteString("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")

	offsets[3] = b.Len()
	b.WriteString("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>\nendobj\n")

	offsets[4] = b.Len()
	b.WriteString(fmt.Sprintf("4 0 obj\n<< /Length %d >>\nstream\n", len(stream)))
	b.WriteString(stream)
	b.WriteString("\nendstream\nendobj\n")

	offsets[5] = b.Len()
	b.WriteString("5 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")

	xrefOffset := b.Len()
	b.WriteString("xref\n0 6\n")
	b.WriteString("0000000000 65535 f \n")
	for i := 1; i <= 5; i++ {
		b.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	b.WriteString(fmt.Sprintf("trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xrefOffset))

	return []byte(b.String())
}

func pageCount(t *testing.T, data []byte) int {
	t.Helper()
	dims, err := api.PageDims(bytes.NewReader(data), NewComposer().conf)
	if err != nil {
		t.Fatalf("page dims: %v", err)
	}
	return len(dims)
}

func TestComposeStampsSummary(t *testing.T) {
	base := buildBasePDF("Original CV content")

	out, err := NewComposer().Compose(base, "Backend Engineer", "A focused summary of relevant experience.")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if len(out) == 0 {
		t.Fatalf("expected composed PDF bytes")
	}
	if got := pageCount(t, out); got != 1 {
		t.Fatalf("expected 1 page for short summary, got %d", got)
	}
	if bytes.Equal(out, base) {
		t.Fatalf("expected composed output to differ from base")
	}
}

func TestComposeAppendsPagesForLongSummary(t *testing.T) {
	base := buildBasePDF("Original CV content")

	// Enough text to overflow the first page's line capacity.
	long := strings.Repeat("Seasoned engineer with deep production experience across many systems. ", 120)

	out, err := NewComposer().Compose(base, "Backend Engineer", long)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if got := pageCount(t, out); got < 2 {
		t.Fatalf("expected appended pages for long summary, got %d", got)
	}
}

func TestComposeRejectsMalformedSource(t *testing.T) {
	_, err := NewComposer().Compose([]byte("not a pdf at all"), "Backend Engineer", "summary")
	if !errors.Is(err, ErrMalformedSource) {
		t.Fatalf("expected ErrMalformedSource, got %v", err)
	}
}

func TestWrap(t *testing.T) {
	lines := wrap("alpha beta gamma delta", 11)
	want := []string{"alpha beta", "gamma delta"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %v", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestWrapCountsRunesNotBytes(t *testing.T) {
	// Each word is 10 runes but 20 bytes; both fit on a 21-character line.
	word := strings.Repeat("é", 10)
	lines := wrap(word+" "+word, 21)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line for 21 runes at width 21, got %d: %v", len(lines), lines)
	}

	lines = wrap(word+" "+word, 20)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines at width 20, got %d: %v", len(lines), lines)
	}
}

func TestPaginateReservesTitleBlock(t *testing.T) {
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}

	chunks := paginate(lines, 5)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if len(chunks[0]) != 2 {
		t.Fatalf("expected first page to hold 2 lines after reserved block, got %d", len(chunks[0]))
	}
	if len(chunks[1]) != 5 {
		t.Fatalf("expected full second page, got %d", len(chunks[1]))
	}
}
