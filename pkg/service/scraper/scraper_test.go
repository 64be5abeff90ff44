package scraper_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/dailysync/upsc/pkg/adapter"
	"github.com/dailysync/upsc/pkg/model"
	"github.com/dailysync/upsc/pkg/service/scraper"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

const pageHTML = `<html><body>
<h1>Daily News Analysis</h1>
<div class="entry-content">
  <p>India and Nepal signed a long-term power trade agreement covering hydropower exports.</p>
  <h2>Background</h2>
  <ul><li>Agreement first proposed in 2014</li><li>Targets 10,000 MW over ten years</li></ul>
  <p>short</p>
</div>
</body></html>`

func newTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newStorage(t *testing.T) adapter.Storage {
	t.Helper()
	st, err := adapter.NewLocalStorage(t.TempDir())
	gt.NoError(t, err)
	return st
}

func TestFetchAll(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, pageHTML)
	st := newStorage(t)

	c := scraper.New(st, []scraper.Source{{Name: "drishti", URL: srv.URL + "/news/"}})
	text := c.FetchAll(context.Background(), "13-10-2025")

	gt.S(t, text).Contains("Daily News Analysis")
	gt.S(t, text).Contains("power trade agreement")
	gt.S(t, text).Contains("- Agreement first proposed in 2014")
	// Paragraphs under 20 characters are dropped as boilerplate.
	gt.False(t, strings.Contains(text, "short"))

	// The fetched text is durably cached under the date/source key.
	r, err := st.Get(context.Background(), "13-10-2025_drishti.txt")
	gt.NoError(t, err)
	defer r.Close()
	cached, err := io.ReadAll(r)
	gt.NoError(t, err)
	gt.Equal(t, string(cached), text)
}

func TestFetchAllPartialFailure(t *testing.T) {
	good := newTestServer(t, http.StatusOK, pageHTML)
	bad := newTestServer(t, http.StatusInternalServerError, "oops")

	c := scraper.New(newStorage(t), []scraper.Source{
		{Name: "broken", URL: bad.URL + "/"},
		{Name: "working", URL: good.URL + "/"},
	})
	text := c.FetchAll(context.Background(), "13-10-2025")

	gt.S(t, text).Contains("power trade agreement")
}

func TestFetchAllOrderPreserved(t *testing.T) {
	first := newTestServer(t, http.StatusOK, `<html><body><div class="entry-content"><p>first source article body text here</p></div></body></html>`)
	second := newTestServer(t, http.StatusOK, `<html><body><div class="entry-content"><p>second source article body text here</p></div></body></html>`)

	c := scraper.New(newStorage(t), []scraper.Source{
		{Name: "a", URL: first.URL + "/"},
		{Name: "b", URL: second.URL + "/"},
	})
	text := c.FetchAll(context.Background(), "13-10-2025")

	posFirst := strings.Index(text, "first source")
	posSecond := strings.Index(text, "second source")
	gt.True(t, posFirst >= 0)
	gt.True(t, posSecond > posFirst)
}

func TestFetchAllAllSourcesFail(t *testing.T) {
	bad := newTestServer(t, http.StatusNotFound, "not found")

	c := scraper.New(newStorage(t), []scraper.Source{
		{Name: "a", URL: bad.URL + "/"},
		{Name: "b", URL: "http://127.0.0.1:1/unreachable/"},
	})
	text := c.FetchAll(context.Background(), "13-10-2025")

	gt.Equal(t, text, "")
}

// failingStorage accepts writes but loses them, like a cache whose
// backing store went away mid-write.
type failingStorage struct{}

func (failingStorage) Put(ctx context.Context, key string) (io.WriteCloser, error) {
	return nopWriteCloser{}, nil
}

func (failingStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	return nil, goerr.New("object does not exist")
}

type nopWriteCloser struct{}

func (nopWriteCloser) Write(p []byte) (int, error) { return len(p), nil }
func (nopWriteCloser) Close() error                { return nil }

func TestFetchAllFailsClosedOnCacheLoss(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, pageHTML)

	c := scraper.New(failingStorage{}, []scraper.Source{{Name: "a", URL: srv.URL + "/"}})
	text := c.FetchAll(context.Background(), model.DateKey("13-10-2025"))

	// The fetch succeeded but the read-back did not: the source is
	// skipped rather than served from the in-memory copy.
	gt.Equal(t, text, "")
}

func TestLoadSources(t *testing.T) {
	path := t.TempDir() + "/sources.yml"
	yml := "- name: drishti\n  url: https://example.com/news/\n- name: ie\n  url: https://example.com/ca/\n"
	gt.NoError(t, writeFile(path, yml))

	sources, err := scraper.LoadSources(path)
	gt.NoError(t, err)
	gt.A(t, sources).Length(2)
	gt.Equal(t, sources[0].Name, "drishti")
	gt.Equal(t, sources[1].URL, "https://example.com/ca/")
}

func TestLoadSourcesInvalid(t *testing.T) {
	path := t.TempDir() + "/sources.yml"
	gt.NoError(t, writeFile(path, "- name: onlyname\n"))

	_, err := scraper.LoadSources(path)
	gt.Error(t, err)
}

func TestDefaultSources(t *testing.T) {
	sources := scraper.DefaultSources()
	gt.A(t, sources).Length(2)
	gt.Equal(t, sources[0].Name, "drishti")
}

func writeFile(path, body string) error {
	return os.WriteFile(path, []byte(body), 0o644)
}
