package ingestion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/jonathan/career-compass/internal/cache"
	"github.com/jonathan/career-compass/internal/fetch"
)

const postingPage = `<html>
<head><title>Junior Data Analyst</title></head>
<body>
  <nav>Home | Jobs</nav>
  <div class="job-description">
    <h2>About the role</h2>
    <p>Build   dashboards with SQL and Python.</p>
    <ul><li>Statistics</li><li>Communication</li></ul>
  </div>
  <form>Upload your resume</form>
  <footer>Copyright</footer>
</body>
</html>`

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func fixedNow() time.Time {
	return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
}

func TestFromURL_Success(t *testing.T) {
	server := serve(t, http.StatusOK, postingPage)

	posting, meta, err := FromURL(context.Background(), server.URL+"/jobs/1", URLOptions{Logger: zaptest.NewLogger(t), Now: fixedNow})
	require.NoError(t, err)

	assert.Equal(t, "About the role\nBuild dashboards with SQL and Python.\nStatistics\nCommunication", posting.Text)
	assert.Equal(t, "127.0.0.1", posting.Source)

	assert.Equal(t, "Junior Data Analyst", meta.Title)
	assert.Equal(t, string(fetch.PlatformUnknown), meta.Platform)
	assert.Equal(t, "2026-01-02T03:04:05Z", meta.Timestamp)
	assert.Equal(t, 11, meta.Tokens)
	assert.False(t, meta.Rendered)
	assert.False(t, meta.FromCache)
}

func TestFromURL_SourceOverride(t *testing.T) {
	server := serve(t, http.StatusOK, postingPage)

	posting, meta, err := FromURL(context.Background(), server.URL, URLOptions{Source: "Coursera"})
	require.NoError(t, err)
	assert.Equal(t, "Coursera", posting.Source)
	assert.Equal(t, "Coursera", meta.Source)
}

func TestFromURL_InvalidURL(t *testing.T) {
	for _, raw := range []string{"", "not a url", "http://"} {
		_, _, err := FromURL(context.Background(), raw, URLOptions{})
		assert.ErrorIs(t, err, ErrInvalidURL, raw)
	}
}

func TestFromURL_HTTPError(t *testing.T) {
	server := serve(t, http.StatusNotFound, "gone")

	_, _, err := FromURL(context.Background(), server.URL, URLOptions{})
	require.ErrorIs(t, err, ErrHTTPRequestFailed)

	var fetchErr *fetch.Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
}

func TestFromURL_EmptyPage(t *testing.T) {
	server := serve(t, http.StatusOK, "<html><body><script>app()</script></body></html>")

	_, _, err := FromURL(context.Background(), server.URL, URLOptions{})
	assert.ErrorIs(t, err, ErrEmptyPosting)
}

type fakeRenderer struct {
	html  string
	err   error
	calls int
}

func (r *fakeRenderer) Render(context.Context, string) (string, error) {
	r.calls++
	return r.html, r.err
}

func TestFromURL_BrowserFallback(t *testing.T) {
	server := serve(t, http.StatusOK, `<html><body><div id="root">Loading</div></body></html>`)
	long := strings.Repeat("Analyse sales data every week. ", 20)
	renderer := &fakeRenderer{html: `<html><body><main><p>` + long + `</p></main></body></html>`}

	posting, meta, err := FromURL(context.Background(), server.URL, URLOptions{Renderer: renderer})
	require.NoError(t, err)
	assert.Equal(t, 1, renderer.calls)
	assert.True(t, meta.Rendered)
	assert.Equal(t, strings.TrimSpace(long), posting.Text)
}

func TestFromURL_BrowserFailureKeepsHTTPText(t *testing.T) {
	server := serve(t, http.StatusOK, `<html><body><div>Short posting text</div></body></html>`)
	renderer := &fakeRenderer{err: errors.New("chrome not installed")}

	posting, meta, err := FromURL(context.Background(), server.URL, URLOptions{Renderer: renderer, Logger: zaptest.NewLogger(t)})
	require.NoError(t, err)
	assert.Equal(t, 1, renderer.calls)
	assert.False(t, meta.Rendered)
	assert.Equal(t, "Short posting text", posting.Text)
}

func TestFromURL_LongPagesSkipBrowser(t *testing.T) {
	long := strings.Repeat("Mentor interns on data tooling. ", 20)
	server := serve(t, http.StatusOK, `<html><body><main>`+long+`</main></body></html>`)
	renderer := &fakeRenderer{}

	_, meta, err := FromURL(context.Background(), server.URL, URLOptions{Renderer: renderer})
	require.NoError(t, err)
	assert.Zero(t, renderer.calls)
	assert.False(t, meta.Rendered)
}

func TestFromURL_CachedFetcher(t *testing.T) {
	server := serve(t, http.StatusOK, postingPage)
	fetcher := fetch.NewCachedFetcher(cache.NewMemoryStore(), fetch.DefaultCachedFetcherConfig())
	opts := URLOptions{Fetcher: fetcher}

	first, meta1, err := FromURL(context.Background(), server.URL, opts)
	require.NoError(t, err)
	second, meta2, err := FromURL(context.Background(), server.URL, opts)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.False(t, meta1.FromCache)
	assert.True(t, meta2.FromCache)
	assert.Equal(t, meta1.Hash, meta2.Hash)
}
