package fetch

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 body"))
	}))
	defer server.Close()

	body, err := NewHTTPFetcher(nil).Fetch(context.Background(), server.URL+"/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 body", string(body))
}

func TestHTTPFetcher_InvalidURL(t *testing.T) {
	for _, u := range []string{"not-a-valid-url", "ftp://host/file.pdf", "http://"} {
		_, err := NewHTTPFetcher(nil).Fetch(context.Background(), u)
		require.Error(t, err, u)

		var fetchErr *Error
		assert.ErrorAs(t, err, &fetchErr)
		assert.Contains(t, err.Error(), "invalid URL")
	}
}

func TestHTTPFetcher_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	body, err := NewHTTPFetcher(nil).Fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.Nil(t, body)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.Contains(t, err.Error(), "404")
}

func TestHTTPFetcher_TooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(bytes.Repeat([]byte("x"), 64))
	}))
	defer server.Close()

	f := NewHTTPFetcher(&Options{MaxBytes: 16})
	_, err := f.Fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds 16 bytes")
}

func TestHTTPFetcher_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	f := NewHTTPFetcher(&Options{Timeout: 50 * time.Millisecond})
	_, err := f.Fetch(context.Background(), server.URL)
	require.Error(t, err)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "HTTP request failed", fetchErr.Message)
}

type fakeS3 struct {
	objects map[string]string
	err     error
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader([]byte(body)))}, nil
}

func TestS3Fetcher(t *testing.T) {
	f := NewS3Fetcher(&fakeS3{objects: map[string]string{"docs/contracts/a.pdf": "%PDF-s3"}}, 0)

	body, err := f.Fetch(context.Background(), "s3://docs/contracts/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-s3", string(body))

	_, err = f.Fetch(context.Background(), "s3://docs/missing.pdf")
	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "NoSuchKey")

	_, err = f.Fetch(context.Background(), "s3://bucket-only")
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "invalid URL", fetchErr.Message)
}

type staticFetcher string

func (s staticFetcher) Fetch(context.Context, string) ([]byte, error) {
	return []byte(s), nil
}

func TestRouter(t *testing.T) {
	r := NewRouter().
		Handle(staticFetcher("web"), "http", "https").
		Handle(staticFetcher("bucket"), "s3")

	body, err := r.Fetch(context.Background(), "HTTPS://example.com/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "web", string(body))

	body, err = r.Fetch(context.Background(), "s3://b/k.pdf")
	require.NoError(t, err)
	assert.Equal(t, "bucket", string(body))

	_, err = r.Fetch(context.Background(), "file:///etc/passwd")
	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Message, "unsupported URL scheme")
}
