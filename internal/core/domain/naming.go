package domain

import "strings"

// HashSeparator separates a base name from its content hash in persisted names.
// It is reserved and may not appear in bundle or catalog base names.
const HashSeparator = "~"

// HashedName joins a base name and a content hash: <name>~<hash>.
func HashedName(name, hash string) string {
	return name + HashSeparator + hash
}

// SplitHashedName splits <name>~<hash> into its parts.
// Names without a separator return ok=false and the whole name as base.
func SplitHashedName(name string) (base, hash string, ok bool) {
	base, hash, ok = strings.Cut(name, HashSeparator)
	return base, hash, ok
}

// CatalogFileName returns the payload file name for a catalog hash:
// CatalogManifest~<hash>.bytes.
func CatalogFileName(hash string) string {
	return HashedName(CatalogBaseName, hash) + CatalogExtension
}

// ValidateBaseName checks that a base name is non-empty and free of the reserved separator.
func ValidateBaseName(name string) error {
	if name == "" {
		return Annotate(ErrInvalidName, "reason", "empty name")
	}
	if strings.Contains(name, HashSeparator) {
		return Annotate(ErrInvalidName, "name", name, "reason", "contains reserved separator '~'")
	}
	return nil
}

// ValidateBundleName checks a bundle identity, which is either a plain base
// name or a single <base>~<hash> pair.
func ValidateBundleName(name string) error {
	base, hash, hashed := SplitHashedName(name)
	if err := ValidateBaseName(base); err != nil {
		return err
	}
	if !hashed {
		return nil
	}
	if hash == "" || strings.Contains(hash, HashSeparator) {
		return Annotate(ErrInvalidName, "name", name, "reason", "malformed content hash")
	}
	return nil
}

// SplitAssetFile splits an asset display name into base name and extension.
// It requires exactly one '.'.
func SplitAssetFile(file string) (name, ext string, err error) {
	parts := strings.Split(file, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", Annotate(ErrInvalidName, "asset", file, "reason", "asset names must contain the file name and extension")
	}
	return parts[0], parts[1], nil
}

// SourceDir returns the passthrough source directory of a bundle: its base
// name split on '_' into folders.
func SourceDir(bundleName string) string {
	base, _, _ := SplitHashedName(bundleName)
	return strings.ReplaceAll(base, "_", "/")
}

// SourcePath returns the passthrough source path of an asset:
// <SourceDir>/<asset>.<ext>.
func SourcePath(bundleName string, asset Asset) string {
	return SourceDir(bundleName) + "/" + asset.FileName()
}
