package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statementText = "J SMITH 40-12-34 12345678\n05 Mar 2018\n"

func TestRead_TextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.txt")
	require.NoError(t, os.WriteFile(path, []byte(statementText), 0o600))

	got, err := Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, statementText, got)
}

func TestRead_MissingFile(t *testing.T) {
	_, err := Read(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRead_UnsupportedFileType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.xls")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	_, err := Read(context.Background(), path)
	assert.ErrorIs(t, err, ErrUnsupportedSource)
}

func TestRead_BytesAndReader(t *testing.T) {
	got, err := Read(context.Background(), []byte(statementText))
	require.NoError(t, err)
	assert.Equal(t, statementText, got)

	got, err = Read(context.Background(), strings.NewReader(statementText))
	require.NoError(t, err)
	assert.Equal(t, statementText, got)
}

func TestRead_BrokenPDFBytes(t *testing.T) {
	_, err := Read(context.Background(), []byte("%PDF-1.4\nnot really a pdf"))
	assert.ErrorIs(t, err, ErrUnreadable)
	assert.NotErrorIs(t, err, ErrUnsupportedSource)
}

func TestRead_UnsupportedTypes(t *testing.T) {
	for _, src := range []any{nil, 42, struct{}{}, &url.URL{Scheme: "ftp", Host: "example.com"}} {
		_, err := Read(context.Background(), src)
		assert.ErrorIs(t, err, ErrUnsupportedSource, "source %#v", src)
	}
}

func TestRead_URI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/statement.txt" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(statementText))
	}))
	defer srv.Close()

	got, err := Read(context.Background(), srv.URL+"/statement.txt")
	require.NoError(t, err)
	assert.Equal(t, statementText, got)

	u, err := url.Parse(srv.URL + "/statement.txt")
	require.NoError(t, err)
	got, err = Read(context.Background(), u)
	require.NoError(t, err)
	assert.Equal(t, statementText, got)

	_, err = Read(context.Background(), srv.URL+"/missing.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestRead_URITimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	r := New(WithTimeout(50 * time.Millisecond))
	_, err := r.Read(context.Background(), srv.URL)
	require.Error(t, err)
}

func TestCheckName(t *testing.T) {
	for _, name := range []string{"statement.txt", "STATEMENT.PDF", "statement"} {
		assert.NoError(t, CheckName(name), name)
	}
	for _, name := range []string{"statement.xls", "statement.ofx", "statement.txt.gz"} {
		assert.ErrorIs(t, CheckName(name), ErrUnsupportedSource, name)
	}
}
