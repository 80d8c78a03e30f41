package domain

import (
	"path/filepath"
	"time"
)

// RemoteConfig describes where published content lives and how to fetch it.
type RemoteConfig struct {
	BaseURL    string
	Timeout    time.Duration
	Retries    int
	RetryDelay time.Duration
	Backoff    int
	Headers    map[string]string
}

// PublishConfig drives the publisher.
type PublishConfig struct {
	Definition  string
	Output      string
	Compression string
	// EmbeddedOutput, when set, receives an embedded tree for the client build.
	EmbeddedOutput string
}

// Config is the resolved project configuration.
type Config struct {
	// Root is the directory holding the config file.
	Root               string
	Remote             RemoteConfig
	Platform           string
	ClientVersion      string
	MaxParallelFetches int
	EmbeddedRoot       string
	CacheRoot          string
	StatePath          string
	EmbeddedVersion    CatalogVersion
	Passthrough        bool
	SourceRoot         string
	Publish            PublishConfig
}

// Retry bounds for the remote fetch policy.
const (
	MinRetries    = 0
	MaxRetries    = 10
	MinBackoff    = 1
	MaxBackoff    = 5
	MinRetryDelay = 20 * time.Millisecond
	MaxRetryDelay = 10 * time.Second
	MinTimeout    = 200 * time.Millisecond
	MaxTimeout    = 60 * time.Second
)

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig(root string) *Config {
	return &Config{
		Root: root,
		Remote: RemoteConfig{
			Timeout:    10 * time.Second,
			RetryDelay: MinRetryDelay,
			Backoff:    MinBackoff,
			Headers:    map[string]string{},
		},
		Platform:           "default",
		ClientVersion:      "0.0.0",
		MaxParallelFetches: DefaultMaxParallelFetches,
		EmbeddedRoot:       filepath.Join(root, EmbeddedDirName),
		CacheRoot:          filepath.Join(root, DefaultCachePath()),
		StatePath:          filepath.Join(root, DefaultStatePath()),
		SourceRoot:         filepath.Join(root, SourceDirName),
		Publish: PublishConfig{
			Definition:  filepath.Join(root, DefinitionFileName),
			Output:      filepath.Join(root, PublishDirName),
			Compression: "zstd",
		},
	}
}

// RemoteDir returns the remote URL directory for this client.
func (c *Config) RemoteDir() string {
	return c.Remote.BaseURL + "/" + RemotePath(c.Platform, c.ClientVersion)
}
