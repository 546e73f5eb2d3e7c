package images

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func newImageServer(t *testing.T, page string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/static/broccoli.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(pngBytes)
	})
	mux.HandleFunc("/product", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(page))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRemote_DirectImage(t *testing.T) {
	srv := newImageServer(t, "")

	img, err := NewRemote(srv.URL+"/static/broccoli.png?v=2", nil).FindImage(context.Background())
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Equal(t, "broccoli.png", img.Name)
	assert.Equal(t, pngBytes, img.Data)
}

func TestRemote_PageWithOGImage(t *testing.T) {
	srv := newImageServer(t, `<html><head>
<meta property="og:image" content="/static/broccoli.png">
</head><body><img src="/other.jpg"></body></html>`)

	img, err := NewRemote(srv.URL+"/product", srv.Client()).FindImage(context.Background())
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Equal(t, "broccoli.png", img.Name)
	assert.Equal(t, pngBytes, img.Data)
}

func TestRemote_PageFallsBackToImgTag(t *testing.T) {
	srv := newImageServer(t, `<html><body>
<img src="/icons/logo.svg">
<img src="static/broccoli.png?size=large">
</body></html>`)

	img, err := NewRemote(srv.URL+"/product", nil).FindImage(context.Background())
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Equal(t, pngBytes, img.Data)
}

func TestRemote_PageWithoutImage(t *testing.T) {
	srv := newImageServer(t, `<html><body><p>Out of stock</p></body></html>`)

	img, err := NewRemote(srv.URL+"/product", nil).FindImage(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, img)
}

func TestRemote_NotFound(t *testing.T) {
	srv := newImageServer(t, "")

	_, err := NewRemote(srv.URL+"/missing.jpg", nil).FindImage(context.Background())
	assert.Error(t, err)
}
