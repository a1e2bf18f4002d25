package merge

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdf-stamp/internal/fetch"
	"pdf-stamp/internal/pdf"
	"pdf-stamp/internal/pdf/pdftest"
	"pdf-stamp/internal/scratch"
	"pdf-stamp/internal/watermark"
)

func newFixtureServer(t *testing.T) *httptest.Server {
	t.Helper()
	files := map[string][]byte{
		"/a.pdf": pdftest.A4(t, "a", 2),
		"/b.pdf": pdftest.A4(t, "b", 1),
		"/c.pdf": pdftest.A4(t, "c", 3),
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(data)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestPipeline(t *testing.T) (*Pipeline, *scratch.Manager) {
	t.Helper()
	engine, _ := newTestEngine(t)
	sm, err := scratch.NewManager(t.TempDir())
	require.NoError(t, err)
	return NewPipeline(fetch.NewHTTPFetcher(fetch.DefaultOptions()), engine, sm, nil), sm
}

func assertWorkspacesReleased(t *testing.T, sm *scratch.Manager) {
	t.Helper()
	assert.Equal(t, 0, sm.Len())
	entries, err := os.ReadDir(sm.Root())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestProcessURLs(t *testing.T) {
	srv := newFixtureServer(t)
	p, sm := newTestPipeline(t)

	out, err := p.ProcessURLs(context.Background(), []string{
		srv.URL + "/a.pdf",
		srv.URL + "/b.pdf",
		srv.URL + "/c.pdf",
	}, oneSignature)
	require.NoError(t, err)

	doc, err := pdf.Parse("merged", out)
	require.NoError(t, err)
	assert.Equal(t, 6, doc.PageCount())
	assertWorkspacesReleased(t, sm)
}

func TestProcessURLs_SameFilenameTwice(t *testing.T) {
	srv := newFixtureServer(t)
	p, _ := newTestPipeline(t)

	out, err := p.ProcessURLs(context.Background(), []string{
		srv.URL + "/a.pdf",
		srv.URL + "/a.pdf",
	}, nil)
	require.NoError(t, err)

	doc, err := pdf.Parse("merged", out)
	require.NoError(t, err)
	assert.Equal(t, 4, doc.PageCount())
}

func TestProcessURLs_SkipsFailedDownloads(t *testing.T) {
	srv := newFixtureServer(t)
	p, sm := newTestPipeline(t)

	out, err := p.ProcessURLs(context.Background(), []string{
		srv.URL + "/a.pdf",
		srv.URL + "/missing.pdf",
		srv.URL + "/c.pdf",
	}, nil)
	require.NoError(t, err)

	doc, err := pdf.Parse("merged", out)
	require.NoError(t, err)
	assert.Equal(t, 5, doc.PageCount())
	assert.Equal(t, []string{
		"a page 1", "a page 2", "c page 1", "c page 2", "c page 3",
	}, pdftest.PageLabels(t, out))
	assertWorkspacesReleased(t, sm)
}

func TestProcessURLs_AllDownloadsFail(t *testing.T) {
	srv := newFixtureServer(t)
	p, sm := newTestPipeline(t)

	out, err := p.ProcessURLs(context.Background(), []string{srv.URL + "/missing.pdf"}, oneSignature)
	require.NoError(t, err)
	assert.Empty(t, pdftest.PageContents(t, out))
	assertWorkspacesReleased(t, sm)
}

func TestProcessURLs_InvalidSignatureBeforeDownload(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()
	p, sm := newTestPipeline(t)

	sigs := []watermark.SignatureInfo{{Owner: "Alice"}}
	_, err := p.ProcessURLs(context.Background(), []string{srv.URL + "/a.pdf"}, sigs)

	var dataErr *watermark.DataError
	require.ErrorAs(t, err, &dataErr)
	assert.Equal(t, "certificateNumber", dataErr.Field)
	assert.Zero(t, hits)
	assertWorkspacesReleased(t, sm)
}

func TestAnnotateURL(t *testing.T) {
	srv := newFixtureServer(t)
	p, sm := newTestPipeline(t)

	out, err := p.AnnotateURL(context.Background(), srv.URL+"/c.pdf", []TextAnnotation{
		{Text: "Approved", X: 50, Y: 50},
	})
	require.NoError(t, err)

	doc, err := pdf.Parse("annotated", out)
	require.NoError(t, err)
	assert.Equal(t, 3, doc.PageCount())
	assertWorkspacesReleased(t, sm)
}

func TestAnnotateURL_FetchError(t *testing.T) {
	srv := newFixtureServer(t)
	p, sm := newTestPipeline(t)

	_, err := p.AnnotateURL(context.Background(), srv.URL+"/missing.pdf", nil)

	var fetchErr *fetch.Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assertWorkspacesReleased(t, sm)
}
