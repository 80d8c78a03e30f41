package domain

// Compression identifies the block compression applied to a bundle archive.
// The value is stored as the first byte of the archive.
type Compression uint8

const (
	// CompressionNone stores the payload as is.
	CompressionNone Compression = 0
	// CompressionLZ4 favors decode speed.
	CompressionLZ4 Compression = 1
	// CompressionZstd favors ratio.
	CompressionZstd Compression = 2
)

// String returns the configuration name of the compression.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return "unknown"
	}
}

// ParseCompression parses "none", "lz4" or "zstd". The empty string means zstd.
func ParseCompression(s string) (Compression, error) {
	switch s {
	case "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd", "":
		return CompressionZstd, nil
	default:
		return 0, Annotate(ErrUnknownCompression, "compression", s)
	}
}
