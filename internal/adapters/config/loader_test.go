package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/parcel/internal/adapters/config"
	"go.trai.ch/parcel/internal/core/domain"
	"go.trai.ch/parcel/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func createFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), domain.PrivateFilePerm))
}

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	return config.NewLoader(mockLogger)
}

func TestLoader_Load_Defaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := newLoader(t).Load(dir)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultConfig(dir), cfg)
	assert.Equal(t, domain.DefaultMaxParallelFetches, cfg.MaxParallelFetches)
}

func TestLoader_Load_FullFile(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, domain.ConfigFileName, `
version: "1"
platform: android
clientVersion: "v1.2"
maxParallelFetches: 5
remote:
  baseURL: https://cdn.example.com/content/
  timeout: 2s
  retries: 3
  retryDelay: 100ms
  backoff: 2
  headers:
    Authorization: Bearer token
paths:
  cache: tmp/cache
  embedded: /opt/embedded
embedded:
  contentHash: 0123abcd
  buildId: 7
publish:
  compression: lz4
  output: out
`)

	cfg, err := newLoader(t).Load(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Root)
	assert.Equal(t, "android", cfg.Platform)
	assert.Equal(t, "1.2.0", cfg.ClientVersion)
	assert.Equal(t, 5, cfg.MaxParallelFetches)
	assert.Equal(t, "https://cdn.example.com/content", cfg.Remote.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Remote.Timeout)
	assert.Equal(t, 3, cfg.Remote.Retries)
	assert.Equal(t, 100*time.Millisecond, cfg.Remote.RetryDelay)
	assert.Equal(t, 2, cfg.Remote.Backoff)
	assert.Equal(t, "Bearer token", cfg.Remote.Headers["Authorization"])
	assert.Equal(t, filepath.Join(dir, "tmp", "cache"), cfg.CacheRoot)
	assert.Equal(t, "/opt/embedded", cfg.EmbeddedRoot)
	assert.Equal(t, domain.CatalogVersion{ContentHash: "0123abcd", BuildID: 7}, cfg.EmbeddedVersion)
	assert.Equal(t, "lz4", cfg.Publish.Compression)
	assert.Equal(t, filepath.Join(dir, "out"), cfg.Publish.Output)
	assert.Equal(t, "https://cdn.example.com/content/android/1.2.0", cfg.RemoteDir())
}

func TestLoader_Load_WalksUp(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, domain.ConfigFileName, "platform: ios\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, domain.DirPerm))

	cfg, err := newLoader(t).Load(nested)
	require.NoError(t, err)

	assert.Equal(t, root, cfg.Root)
	assert.Equal(t, "ios", cfg.Platform)
}

func TestLoader_Load_PassthroughWarnsAboutRemote(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, domain.ConfigFileName, `
remote:
  baseURL: http://localhost:8080
passthrough:
  enabled: true
  source: art
`)

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).Times(1)

	cfg, err := config.NewLoader(mockLogger).Load(dir)
	require.NoError(t, err)
	assert.True(t, cfg.Passthrough)
	assert.Equal(t, filepath.Join(dir, "art"), cfg.SourceRoot)
}

func TestLoader_Load_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  error
	}{
		{"unsupported version", `version: "2"`, domain.ErrInvalidConfig},
		{"bad semver", `clientVersion: "not-a-version"`, domain.ErrInvalidConfig},
		{"platform with slash", `platform: "a/b"`, domain.ErrInvalidConfig},
		{"platform with separator", `platform: "a~b"`, domain.ErrInvalidConfig},
		{"negative parallelism", `maxParallelFetches: -1`, domain.ErrInvalidConfig},
		{"relative base url", "remote:\n  baseURL: cdn.example.com", domain.ErrInvalidConfig},
		{"timeout too short", "remote:\n  timeout: 1ms", domain.ErrInvalidConfig},
		{"too many retries", "remote:\n  retries: 11", domain.ErrInvalidConfig},
		{"retry delay too long", "remote:\n  retryDelay: 1m", domain.ErrInvalidConfig},
		{"backoff too large", "remote:\n  backoff: 6", domain.ErrInvalidConfig},
		{"unknown compression", "publish:\n  compression: brotli", domain.ErrUnknownCompression},
		{"malformed yaml", "remote: [", domain.ErrConfigParseFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			createFile(t, dir, domain.ConfigFileName, tt.content)

			_, err := newLoader(t).Load(dir)
			require.ErrorIs(t, err, tt.target)
		})
	}
}

func TestLoader_LoadDefinition(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, domain.DefinitionFileName, `
version: "1"
bundles:
  - name: Shared
    embedded: true
    assets: [Palette.png]
  - name: UI_Menu
    dependsOn: [Shared]
    assets: [Logo.png]
    prefabs:
      - asset: Button.prefab
        data: button.json
        components:
          - name: Label
            file: label.txt
`)

	def, err := newLoader(t).LoadDefinition(filepath.Join(dir, domain.DefinitionFileName))
	require.NoError(t, err)
	require.Len(t, def.Bundles, 2)

	shared := def.Bundles[0]
	assert.Equal(t, "Shared", shared.Name)
	assert.True(t, shared.Embedded)
	assert.Equal(t, []string{"Palette.png"}, shared.Assets)

	menu := def.Bundles[1]
	assert.Equal(t, "UI/Menu", menu.SourceDir())
	assert.Equal(t, []string{"Shared"}, menu.Dependencies)
	require.Len(t, menu.Prefabs, 1)
	assert.Equal(t, "Button.prefab", menu.Prefabs[0].Asset)
	assert.Equal(t, []domain.ComponentDefinition{{Name: "Label", File: "label.txt"}}, menu.Prefabs[0].Components)
}

func TestLoader_LoadDefinition_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  error
	}{
		{"duplicate bundle", "bundles:\n  - name: A\n  - name: A", domain.ErrDuplicateDefinition},
		{"reserved separator", "bundles:\n  - name: A~1", domain.ErrInvalidName},
		{"unknown dependency", "bundles:\n  - name: A\n    dependsOn: [B]", domain.ErrMalformedCatalog},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			createFile(t, dir, domain.DefinitionFileName, tt.content)

			_, err := newLoader(t).LoadDefinition(filepath.Join(dir, domain.DefinitionFileName))
			require.ErrorIs(t, err, tt.target)
		})
	}
}

func TestLoader_LoadDefinition_Missing(t *testing.T) {
	_, err := newLoader(t).LoadDefinition(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, domain.ErrDefinitionReadFailed)
}
