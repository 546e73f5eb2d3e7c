package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/raushankrgupta/harvesthub-seeder/api"
	"github.com/raushankrgupta/harvesthub-seeder/stub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	chdir(t, t.TempDir())
	for _, key := range []string{
		"HARVESTHUB_BASE_URL", "HARVESTHUB_USERNAME", "HARVESTHUB_PASSWORD",
		"HARVESTHUB_SELLER_ID", "HARVESTHUB_IMAGE_SOURCE", "HARVESTHUB_DRAFT_FILE",
		"HARVESTHUB_HTTP_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestExecute_Success(t *testing.T) {
	isolateEnv(t)
	backend := stub.NewServer([]byte("k"))
	require.NoError(t, backend.AddUser("hungbanhang", "your_password"))
	srv := httptest.NewServer(backend.Handler())
	defer srv.Close()

	code := execute([]string{
		"--base-url", srv.URL,
		"-u", "hungbanhang",
		"-p", "your_password",
		"--image-source", t.TempDir(),
	})

	assert.Equal(t, 0, code)
	products := backend.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "hungbanhang", products[0].SellerID)
}

func TestExecute_AuthenticationFailure(t *testing.T) {
	isolateEnv(t)
	backend := stub.NewServer([]byte("k"))
	require.NoError(t, backend.AddUser("hungbanhang", "your_password"))
	srv := httptest.NewServer(backend.Handler())
	defer srv.Close()

	code := execute([]string{"--base-url", srv.URL, "-u", "hungbanhang", "-p", "wrong"})

	assert.Equal(t, 2, code)
	assert.Empty(t, backend.Products())
}

func TestExecute_SubmissionFailure(t *testing.T) {
	isolateEnv(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == api.LoginPath {
			w.Write([]byte(`{"token":"abc"}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"boom"}`))
	}))
	defer srv.Close()

	code := execute([]string{"--base-url", srv.URL, "-u", "seller", "-p", "pw", "--seller-id", "s-1"})
	assert.Equal(t, 3, code)
}

func TestExecute_ConfigErrors(t *testing.T) {
	isolateEnv(t)

	assert.Equal(t, 1, execute([]string{"--base-url", "http://localhost:1"}))
	assert.Equal(t, 1, execute([]string{"-u", "a", "-p", "b", "--draft", "missing.yaml"}))
	assert.Equal(t, 1, execute([]string{"-u", "a", "-p", "b", "--image-source", "s3://bucket-only"}))
	assert.Equal(t, 1, execute([]string{"--no-such-flag"}))
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
