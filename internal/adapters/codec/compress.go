package codec

import (
	"encoding/binary"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"go.trai.ch/parcel/internal/core/domain"
	"go.trai.ch/zerr"
)

// maxFrameSize caps the declared uncompressed size of a frame.
const maxFrameSize = 256 << 20

// Encoder and decoder are safe for concurrent EncodeAll/DecodeAll.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("codec: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("codec: zstd decoder initialization failed: " + err.Error())
	}
}

// compressFrame lays out [tag][uvarint size][payload]. Payloads that do not
// shrink are stored with CompressionNone.
func compressFrame(data []byte, c domain.Compression) ([]byte, error) {
	var payload []byte
	switch c {
	case domain.CompressionNone:
	case domain.CompressionZstd:
		payload = zstdEncoder.EncodeAll(data, nil)
	case domain.CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, domain.Fail(domain.ErrEncodeFailed, err, "compression", c.String())
		}
		// n == 0 means incompressible.
		payload = buf[:n]
	default:
		return nil, domain.Annotate(domain.ErrUnknownCompression, "compression", uint8(c))
	}

	if len(payload) == 0 || len(payload) >= len(data) {
		c = domain.CompressionNone
		payload = data
	}

	out := make([]byte, 0, 1+binary.MaxVarintLen64+len(payload))
	out = append(out, byte(c))
	out = binary.AppendUvarint(out, uint64(len(data)))
	return append(out, payload...), nil
}

func decompressFrame(frame []byte) ([]byte, error) {
	if len(frame) < 2 {
		return nil, domain.Annotate(domain.ErrDecodeFailed, "reason", "truncated frame")
	}
	c := domain.Compression(frame[0])
	size, n := binary.Uvarint(frame[1:])
	if n <= 0 {
		return nil, domain.Annotate(domain.ErrDecodeFailed, "reason", "bad frame size")
	}
	if size > maxFrameSize {
		return nil, domain.Annotate(domain.ErrDecodeFailed, "reason", "frame too large", "size", size)
	}
	payload := frame[1+n:]

	switch c {
	case domain.CompressionNone:
		if uint64(len(payload)) != size {
			return nil, domain.Annotate(domain.ErrDecodeFailed, "reason", "size mismatch")
		}
		return payload, nil
	case domain.CompressionZstd:
		out, err := zstdDecoder.DecodeAll(payload, make([]byte, 0, size))
		if err != nil {
			return nil, domain.Fail(domain.ErrDecodeFailed, err, "compression", c.String())
		}
		if uint64(len(out)) != size {
			return nil, domain.Annotate(domain.ErrDecodeFailed, "reason", "size mismatch")
		}
		return out, nil
	case domain.CompressionLZ4:
		out := make([]byte, size)
		got, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, domain.Fail(domain.ErrDecodeFailed, err, "compression", c.String())
		}
		if uint64(got) != size {
			return nil, domain.Annotate(domain.ErrDecodeFailed, "reason", "size mismatch")
		}
		return out, nil
	default:
		return nil, zerr.With(domain.Annotate(domain.ErrDecodeFailed, "reason", "unknown compression"), "tag", frame[0])
	}
}
