package domain

import "slices"

// Origin records where a bundle's bytes come from. It says nothing about
// whether the bundle is currently resident in memory.
type Origin uint8

const (
	// OriginRequireDownload means the bundle must be fetched from remote storage.
	OriginRequireDownload Origin = iota
	// OriginCached means the bundle is present in the on-disk cache root.
	OriginCached
	// OriginEmbedded means the bundle ships with the client in the embedded root.
	OriginEmbedded
	// OriginLocalPassthrough means the bundle is served directly from the source tree.
	OriginLocalPassthrough
)

var originNames = map[Origin]string{
	OriginRequireDownload:  "require-download",
	OriginCached:           "cached",
	OriginEmbedded:         "embedded",
	OriginLocalPassthrough: "passthrough",
}

// String returns the textual form of the origin.
func (o Origin) String() string {
	if s, ok := originNames[o]; ok {
		return s
	}
	return "unknown"
}

// ParseOrigin parses the textual form produced by String.
func ParseOrigin(s string) (Origin, error) {
	for o, name := range originNames {
		if name == s {
			return o, nil
		}
	}
	return 0, Annotate(ErrDecodeFailed, "origin", s)
}

// Local reports whether bytes can be obtained without a remote fetch.
func (o Origin) Local() bool {
	return o != OriginRequireDownload
}

// Bundle is a named, independently fetchable unit of packaged content.
type Bundle struct {
	// Name is the bundle identity, usually <base>~<contentHash>.
	Name string
	// Origin records where the bundle's bytes come from.
	Origin Origin
	// Dependencies lists direct dependencies in declaration order.
	Dependencies []string
}

// Clone returns a deep copy of the bundle.
func (b Bundle) Clone() Bundle {
	b.Dependencies = slices.Clone(b.Dependencies)
	return b
}

// ContentHash returns the hash suffix of the bundle name, if any.
func (b Bundle) ContentHash() (string, bool) {
	_, hash, ok := SplitHashedName(b.Name)
	return hash, ok
}

// Asset is a named item living inside exactly one bundle.
type Asset struct {
	Name       string
	BundleName string
	Extension  string
}

// FileName returns <name>.<extension>.
func (a Asset) FileName() string {
	return a.Name + "." + a.Extension
}
