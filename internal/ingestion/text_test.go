package ingestion

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-compass/internal/types"
)

func TestCleanText_PreserveMarkdownHeadings(t *testing.T) {
	result := CleanText("  # Title\n## Subtitle\nContent here")
	assert.Equal(t, "# Title\n## Subtitle\nContent here", result)
}

func TestCleanText_PreserveBulletLists(t *testing.T) {
	result := CleanText("- Item 1\n  - Nested\n* Item 3\n• Item 4")
	assert.Equal(t, "- Item 1\n  - Nested\n* Item 3\n• Item 4", result)
}

func TestCleanText_NormalizeWhitespace(t *testing.T) {
	assert.Equal(t, "Line with multiple spaces", CleanText("Line    with \t  multiple    spaces   "))
}

func TestCleanText_RemoveExcessiveBlankLines(t *testing.T) {
	assert.Equal(t, "Line 1\n\nLine 2", CleanText("Line 1\n\n\n\n\nLine 2"))
	assert.Equal(t, "Line 1\n\nLine 2", CleanText("Line 1\n   \n \t \nLine 2"))
}

func TestCleanText_NormalizeLineEndings(t *testing.T) {
	assert.Equal(t, "Line 1\nLine 2\nLine 3\nLine 4", CleanText("Line 1\r\nLine 2\rLine 3\nLine 4"))
}

func TestCleanText_EmptyAndWhitespace(t *testing.T) {
	assert.Empty(t, CleanText(""))
	assert.Empty(t, CleanText("   \n  \n  "))
}

func TestCleanText_SpecialCharacters(t *testing.T) {
	input := "Test with émojis 🚀 and spéciàl chàracters"
	assert.Equal(t, input, CleanText(input))
}

func TestCleanText_PreserveIndentation(t *testing.T) {
	assert.Equal(t, "    Indented line\n  Less indented", CleanText("    Indented   line\n  Less indented"))
}

func TestCleanText_Deterministic(t *testing.T) {
	input := "Test content   with   spaces\n\n\nMultiple   blank   lines"
	assert.Equal(t, CleanText(input), CleanText(input))
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFromFile_Success(t *testing.T) {
	path := writeFile(t, "posting.txt", "# Data Analyst\r\n\r\nWork   with SQL and dashboards.\r\n")

	posting, meta, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Data Analyst\n\nWork with SQL and dashboards.", posting.Text)
	assert.Empty(t, posting.Source)

	require.NotNil(t, meta)
	assert.Len(t, meta.Hash, 64)
	assert.Equal(t, 8, meta.Tokens)
	_, err = time.Parse(time.RFC3339, meta.Timestamp)
	assert.NoError(t, err)
}

func TestFromFile_FileNotFound(t *testing.T) {
	posting, meta, err := FromFile("/nonexistent/file.txt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "file not found")
	assert.Empty(t, posting.Text)
	assert.Nil(t, meta)
}

func TestFromFile_Empty(t *testing.T) {
	_, _, err := FromFile(writeFile(t, "blank.txt", " \n\t\n"))
	assert.ErrorIs(t, err, ErrEmptyPosting)
}

func TestFromFile_HashFollowsContent(t *testing.T) {
	_, a1, err := FromFile(writeFile(t, "a.txt", "Content 1"))
	require.NoError(t, err)
	_, a2, err := FromFile(writeFile(t, "a.txt", "Content   1\n"))
	require.NoError(t, err)
	_, b, err := FromFile(writeFile(t, "b.txt", "Content 2"))
	require.NoError(t, err)

	assert.Equal(t, a1.Hash, a2.Hash, "hash is taken after cleaning")
	assert.NotEqual(t, a1.Hash, b.Hash)
}

func TestFromReader(t *testing.T) {
	posting, meta, err := FromReader(strings.NewReader("Earn 5 lakh per month from home"), "  Telegram Channel ")
	require.NoError(t, err)
	assert.Equal(t, types.JobPosting{Text: "Earn 5 lakh per month from home", Source: "Telegram Channel"}, posting)
	assert.Equal(t, "Telegram Channel", meta.Source)
	assert.Empty(t, meta.URL)
}

func TestFromReader_LimitsInput(t *testing.T) {
	big := strings.Repeat("word ", MaxPostingBytes)
	posting, _, err := FromReader(strings.NewReader(big), "")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(posting.Text), MaxPostingBytes)
}

func TestNewMetadata(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("IST", 19800))
	meta := NewMetadata(types.JobPosting{Text: "one two three", Source: "naukri.com"}, "https://naukri.com/x", now)

	assert.Equal(t, "2026-03-01T06:30:00Z", meta.Timestamp)
	assert.Equal(t, computeHash("one two three"), meta.Hash)
	assert.Equal(t, 3, meta.Tokens)
	assert.Equal(t, "naukri.com", meta.Source)
	assert.Equal(t, "https://naukri.com/x", meta.URL)
}

func TestComputeHash(t *testing.T) {
	// sha256 of the empty string
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", computeHash(""))
	assert.NotEqual(t, computeHash("a"), computeHash("b"))
}
