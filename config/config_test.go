package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HARVESTHUB_BASE_URL", "HARVESTHUB_USERNAME", "HARVESTHUB_PASSWORD",
		"HARVESTHUB_SELLER_ID", "HARVESTHUB_IMAGE_SOURCE", "HARVESTHUB_DRAFT_FILE",
		"HARVESTHUB_HTTP_TIMEOUT", "AWS_REGION",
	} {
		// t.Setenv restores the original value; unset so godotenv may fill it
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultHTTPTimeout, cfg.HTTPTimeout)
	assert.Equal(t, SampleDraft(), cfg.Draft)
	assert.Empty(t, cfg.ImageSource)
}

func TestLoad_EnvFileAndOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	draftPath := filepath.Join(dir, "draft.yaml")
	require.NoError(t, os.WriteFile(draftPath, []byte("name: Cà chua\nprice: 15000\nstock: 5\n"), 0o644))

	envPath := filepath.Join(dir, "seed.env")
	require.NoError(t, os.WriteFile(envPath, []byte(
		"HARVESTHUB_BASE_URL=http://backend:9000\n"+
			"HARVESTHUB_USERNAME=hungbanhang\n"+
			"HARVESTHUB_PASSWORD=secret\n"+
			"HARVESTHUB_HTTP_TIMEOUT=5s\n"+
			"HARVESTHUB_DRAFT_FILE="+draftPath+"\n"), 0o644))

	// godotenv never overrides variables that are already set
	t.Setenv("HARVESTHUB_PASSWORD", "from-env")

	cfg, err := Load(envPath)
	require.NoError(t, err)
	assert.Equal(t, "http://backend:9000", cfg.BaseURL)
	assert.Equal(t, "hungbanhang", cfg.Username)
	assert.Equal(t, "from-env", cfg.Password)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "Cà chua", cfg.Draft.Name)
	assert.Equal(t, "15000", cfg.Draft.Price.String())
}

func TestLoad_MissingEnvFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	assert.Error(t, err)
}

func TestLoad_BadTimeout(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("HARVESTHUB_HTTP_TIMEOUT", "soon")

	_, err := Load("")
	assert.ErrorContains(t, err, "HARVESTHUB_HTTP_TIMEOUT")
}

func TestValidate(t *testing.T) {
	cfg := &Config{BaseURL: " http://localhost:8081/ ", Username: "u", Password: "p", HTTPTimeout: time.Second}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://localhost:8081", cfg.BaseURL)

	err := (&Config{BaseURL: "not a url", HTTPTimeout: time.Second}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BaseURL")
	assert.Contains(t, err.Error(), "Username")
	assert.Contains(t, err.Error(), "Password")
}

func TestEffectiveSellerID(t *testing.T) {
	cfg := &Config{Username: "hungbanhang"}
	assert.Equal(t, "hungbanhang", cfg.EffectiveSellerID())
	cfg.SellerID = "seller-7"
	assert.Equal(t, "seller-7", cfg.EffectiveSellerID())
}

func TestParseDraft(t *testing.T) {
	draft, err := ParseDraft([]byte(`
name: Bông cải xanh tươi
category: Rau Củ
price: 20000
stock: 123
weight: "1.5"
specifications:
  Thương hiệu: Việt Grap
`))
	require.NoError(t, err)
	assert.Equal(t, "20000", draft.Price.String())
	require.True(t, draft.Weight.Valid)
	assert.Equal(t, "1.5", draft.Weight.Decimal.String())
	assert.Equal(t, 123, draft.Stock)
	assert.Equal(t, "active", draft.Status)
	assert.Equal(t, "Việt Grap", draft.Specifications["Thương hiệu"])

	_, err = ParseDraft([]byte("price: cheap\n"))
	assert.ErrorContains(t, err, "price")

	_, err = ParseDraft([]byte("name: [unterminated\n"))
	assert.Error(t, err)
}

func TestParseDraft_WithoutWeight(t *testing.T) {
	draft, err := ParseDraft([]byte("name: Cà rốt\nprice: 15000\nstock: 4\n"))
	require.NoError(t, err)
	assert.False(t, draft.Weight.Valid)

	fields, err := draft.FormFields()
	require.NoError(t, err)
	for _, f := range fields {
		assert.NotEqual(t, "weight", f.Key)
	}
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
