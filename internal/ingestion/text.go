// Package ingestion loads job posting text from files, readers and URLs and normalizes it for
// fraud assessment.
package ingestion

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/jonathan/career-compass/internal/types"
)

// MaxPostingBytes caps posting text read from files and readers.
const MaxPostingBytes = 1 << 20

var (
	spaceRun      = regexp.MustCompile(`\s+`)
	blankLineRuns = regexp.MustCompile(`\n\n\n+`)
)

// ErrEmptyPosting is returned when nothing is left after cleaning.
var ErrEmptyPosting = errors.New("posting text is empty")

// CleanText normalizes line endings and whitespace while keeping headings, bullets and
// indentation. At most one blank line separates paragraphs.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := blankLineRuns.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.Trim(result, "\n")
}

// cleanLine cleans a single line while preserving structure
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	// markdown headings lose their indentation
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	indent := len(line) - len(trimmed)
	body := trimmed
	if !isBulletLine(trimmed) {
		body = spaceRun.ReplaceAllString(trimmed, " ")
	}
	if indent > 0 {
		return strings.Repeat(" ", indent) + body
	}
	return body
}

func isBulletLine(line string) bool {
	return strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") ||
		strings.HasPrefix(line, "• ") || strings.HasPrefix(line, "· ")
}

// FromFile reads and cleans a posting from a text file. The posting has no source unless the
// caller sets one.
func FromFile(path string) (types.JobPosting, *Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return types.JobPosting{}, nil, fmt.Errorf("file not found: %w", err)
		}
		return types.JobPosting{}, nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return FromReader(f, "")
}

// FromReader reads and cleans a posting from r, such as stdin.
func FromReader(r io.Reader, source string) (types.JobPosting, *Metadata, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxPostingBytes))
	if err != nil {
		return types.JobPosting{}, nil, fmt.Errorf("failed to read posting: %w", err)
	}
	return newPosting(string(data), source, "", time.Now())
}

func newPosting(raw, source, url string, now time.Time) (types.JobPosting, *Metadata, error) {
	text := CleanText(raw)
	if text == "" {
		return types.JobPosting{}, nil, ErrEmptyPosting
	}
	posting := types.JobPosting{Text: text, Source: strings.TrimSpace(source)}
	return posting, NewMetadata(posting, url, now), nil
}
