package config

import "time"

// Parcelfile represents the structure of the parcel.yaml configuration file.
type Parcelfile struct {
	Version            string         `yaml:"version"`
	Remote             RemoteDTO      `yaml:"remote"`
	Platform           string         `yaml:"platform"`
	ClientVersion      string         `yaml:"clientVersion"`
	MaxParallelFetches int            `yaml:"maxParallelFetches"`
	Paths              PathsDTO       `yaml:"paths"`
	Embedded           EmbeddedDTO    `yaml:"embedded"`
	Passthrough        PassthroughDTO `yaml:"passthrough"`
	Publish            PublishDTO     `yaml:"publish"`
}

// RemoteDTO configures the remote content location and fetch policy.
type RemoteDTO struct {
	BaseURL    string            `yaml:"baseURL"`
	Timeout    time.Duration     `yaml:"timeout"`
	Retries    *int              `yaml:"retries"`
	RetryDelay time.Duration     `yaml:"retryDelay"`
	Backoff    int               `yaml:"backoff"`
	Headers    map[string]string `yaml:"headers"`
}

// PathsDTO overrides the local roots.
type PathsDTO struct {
	Embedded string `yaml:"embedded"`
	Cache    string `yaml:"cache"`
	State    string `yaml:"state"`
}

// EmbeddedDTO holds the catalog version baked into the client build.
type EmbeddedDTO struct {
	ContentHash string `yaml:"contentHash"`
	BuildID     int64  `yaml:"buildId"`
}

// PassthroughDTO configures the developer passthrough mode.
type PassthroughDTO struct {
	Enabled bool   `yaml:"enabled"`
	Source  string `yaml:"source"`
}

// PublishDTO configures the publisher.
type PublishDTO struct {
	Definition     string `yaml:"definition"`
	Output         string `yaml:"output"`
	Compression    string `yaml:"compression"`
	EmbeddedOutput string `yaml:"embeddedOutput"`
}

// Bundlefile represents the structure of the bundles.yaml definition file.
type Bundlefile struct {
	Version string       `yaml:"version"`
	Bundles []*BundleDTO `yaml:"bundles"`
}

// BundleDTO represents one bundle definition.
type BundleDTO struct {
	Name      string      `yaml:"name"`
	DependsOn []string    `yaml:"dependsOn"`
	Assets    []string    `yaml:"assets"`
	Prefabs   []PrefabDTO `yaml:"prefabs"`
	Embedded  bool        `yaml:"embedded"`
}

// PrefabDTO represents an instantiable asset definition.
type PrefabDTO struct {
	Asset      string         `yaml:"asset"`
	Data       string         `yaml:"data"`
	Components []ComponentDTO `yaml:"components"`
}

// ComponentDTO represents one prefab component file.
type ComponentDTO struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`
}
