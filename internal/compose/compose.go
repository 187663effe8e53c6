package compose

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// ErrMalformedSource indicates the base document is not a readable PDF.
var ErrMalformedSource = errors.New("malformed source document")

const (
	wrapWidth    = 90
	fontPoints   = 11
	lineHeight   = 16.0
	topMargin    = 72.0
	bottomMargin = 72.0
	leftOffset   = 50.0
	// Title, section header and the gap between them occupy the top of page one.
	firstPageReserved = 3
)

// Composer stamps a tailored summary block onto a base PDF.
type Composer struct {
	conf *model.Configuration
}

// NewComposer constructs a Composer with relaxed validation, matching
// real-world CV exports that are not strictly conformant.
func NewComposer() *Composer {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Composer{conf: conf}
}

// Compose returns a copy of base with the summary stamped onto page one,
// spilling onto appended blank pages when it does not fit.
func (c *Composer) Compose(base []byte, jobTitle, summary string) ([]byte, error) {
	dims, err := api.PageDims(bytes.NewReader(base), c.conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSource, err)
	}
	if len(dims) == 0 {
		return nil, fmt.Errorf("%w: no pages", ErrMalformedSource)
	}

	capacity := pageLineCapacity(dims[0].Height)
	chunks := paginate(wrap(summary, wrapWidth), capacity)

	// Continuation chunks get fresh blank pages after page one so existing
	// content is never overprinted.
	current := base
	for i := 1; i < len(chunks); i++ {
		var out bytes.Buffer
		if err := api.InsertPages(bytes.NewReader(current), &out, []string{"1"}, false, nil, c.conf); err != nil {
			return nil, fmt.Errorf("insert page: %w", err)
		}
		current = out.Bytes()
	}

	watermarks := make(map[int]*model.Watermark, len(chunks))
	for i, chunk := range chunks {
		lines := chunk
		if i == 0 {
			lines = append([]string{"Tailored for: " + jobTitle, "", "Professional Summary"}, chunk...)
		}
		wm, err := api.TextWatermark(strings.Join(lines, "\n"), watermarkDesc(), true, false, types.POINTS)
		if err != nil {
			return nil, fmt.Errorf("build watermark: %w", err)
		}
		watermarks[i+1] = wm
	}

	var out bytes.Buffer
	if err := api.AddWatermarksMap(bytes.NewReader(current), &out, watermarks, c.conf); err != nil {
		return nil, fmt.Errorf("stamp summary: %w", err)
	}
	return out.Bytes(), nil
}

func watermarkDesc() string {
	return fmt.Sprintf(
		"fontname:Helvetica, points:%d, pos:tl, off:%g -%g, scale:1 abs, rot:0, align:left, fillcolor:#000000",
		fontPoints, leftOffset, topMargin,
	)
}

func pageLineCapacity(height float64) int {
	usable := height - topMargin - bottomMargin
	capacity := int(usable / lineHeight)
	if capacity < 1 {
		capacity = 1
	}
	return capacity
}

// wrap splits text into lines of at most width characters, breaking on spaces.
func wrap(text string, width int) []string {
	var lines []string
	for _, paragraph := range strings.Split(strings.TrimSpace(text), "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		lineLen := utf8.RuneCountInString(line)
		for _, word := range words[1:] {
			wordLen := utf8.RuneCountInString(word)
			if lineLen+1+wordLen > width {
				lines = append(lines, line)
				line = word
				lineLen = wordLen
				continue
			}
			line += " " + word
			lineLen += 1 + wordLen
		}
		lines = append(lines, line)
	}
	return lines
}

// paginate splits lines into per-page chunks. Page one loses the reserved
// slots for the title block.
func paginate(lines []string, capacity int) [][]string {
	firstCap := capacity - firstPageReserved
	if firstCap < 1 {
		firstCap = 1
	}

	if len(lines) <= firstCap {
		return [][]string{lines}
	}

	chunks := [][]string{lines[:firstCap]}
	rest := lines[firstCap:]
	for len(rest) > 0 {
		n := capacity
		if n > len(rest) {
			n = len(rest)
		}
		chunks = append(chunks, rest[:n])
		rest = rest[n:]
	}
	return chunks
}
