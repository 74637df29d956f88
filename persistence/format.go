package persistence

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/xmeans/model"
)

// Snapshot format:
//
//	magic      [4]byte  "XMSN"
//	version    uint8
//	compression uint8
//	reserved   uint16
//	payloadLen uint64
//	checksum   uint32   CRC32 (IEEE) of the (compressed) payload
//	payload    []byte
//
// Payload, after decompression, little-endian:
//
//	dim     uint32
//	k       uint32
//	centers k*dim float64
//	per cluster: bitmapLen uint32, roaring bitmap bytes
var magic = [4]byte{'X', 'M', 'S', 'N'}

const (
	formatVersion = 1
	headerSize    = 4 + 1 + 1 + 2 + 8 + 4
)

// Compression selects the payload codec.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionZstd
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionLZ4:
		return "LZ4"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(c))
	}
}

var (
	// ErrInvalidMagic is returned when the snapshot header magic is wrong.
	ErrInvalidMagic = errors.New("invalid snapshot magic")

	// ErrUnsupportedVersion is returned for snapshot format versions newer
	// than this implementation.
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")

	// ErrUnsupportedCompression is returned for unknown compression codecs.
	ErrUnsupportedCompression = errors.New("unsupported compression codec")

	// ErrTruncated is returned when the snapshot is shorter than its
	// header claims.
	ErrTruncated = errors.New("truncated snapshot")
)

// Encode serializes a clustering into snapshot bytes. Membership is stored
// as a set per cluster: Decode returns indexes in ascending order regardless
// of their order here.
func Encode(c *model.Clustering, comp Compression) ([]byte, error) {
	if c.K() == 0 {
		return nil, errors.New("cannot encode empty clustering")
	}
	if len(c.Centers) != len(c.Clusters) {
		return nil, model.ErrInconsistent
	}

	dim := len(c.Centers[0])
	var body bytes.Buffer

	if err := binary.Write(&body, binary.LittleEndian, uint32(dim)); err != nil {
		return nil, err
	}
	if err := binary.Write(&body, binary.LittleEndian, uint32(c.K())); err != nil {
		return nil, err
	}
	for _, center := range c.Centers {
		if len(center) != dim {
			return nil, fmt.Errorf("center dimension %d, expected %d", len(center), dim)
		}
		if err := binary.Write(&body, binary.LittleEndian, center); err != nil {
			return nil, err
		}
	}

	for _, cluster := range c.Clusters {
		bm := roaring.New()
		for _, idx := range cluster {
			if idx < 0 {
				return nil, fmt.Errorf("negative dataset index %d", idx)
			}
			bm.Add(uint32(idx))
		}
		bmBytes, err := bm.ToBytes()
		if err != nil {
			return nil, err
		}
		if err := binary.Write(&body, binary.LittleEndian, uint32(len(bmBytes))); err != nil {
			return nil, err
		}
		if _, err := body.Write(bmBytes); err != nil {
			return nil, err
		}
	}

	payload, err := compress(body.Bytes(), comp)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, headerSize+len(payload))
	buf := bytes.NewBuffer(out)
	buf.Write(magic[:])
	buf.WriteByte(formatVersion)
	buf.WriteByte(byte(comp))
	_ = binary.Write(buf, binary.LittleEndian, uint16(0)) // reserved
	_ = binary.Write(buf, binary.LittleEndian, uint64(len(payload)))
	_ = binary.Write(buf, binary.LittleEndian, ComputeChecksum(payload))
	buf.Write(payload)

	return buf.Bytes(), nil
}

// Decode parses snapshot bytes back into a clustering, verifying the
// checksum before touching the payload.
func Decode(data []byte) (*model.Clustering, error) {
	if len(data) < headerSize {
		return nil, ErrTruncated
	}
	if !bytes.Equal(data[:4], magic[:]) {
		return nil, ErrInvalidMagic
	}
	if data[4] != formatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, data[4])
	}

	comp := Compression(data[5])
	payloadLen := binary.LittleEndian.Uint64(data[8:16])
	checksum := binary.LittleEndian.Uint32(data[16:20])

	if uint64(len(data)-headerSize) < payloadLen {
		return nil, ErrTruncated
	}
	payload := data[headerSize : headerSize+int(payloadLen)]

	if err := VerifyChecksum(payload, checksum); err != nil {
		return nil, err
	}

	body, err := decompress(payload, comp)
	if err != nil {
		return nil, err
	}

	r := bytes.NewReader(body)
	var dim, k uint32
	if err := binary.Read(r, binary.LittleEndian, &dim); err != nil {
		return nil, fmt.Errorf("read dimension: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &k); err != nil {
		return nil, fmt.Errorf("read cluster count: %w", err)
	}

	centers := make([][]float64, k)
	for i := range centers {
		center := make([]float64, dim)
		if err := binary.Read(r, binary.LittleEndian, center); err != nil {
			return nil, fmt.Errorf("read center %d: %w", i, err)
		}
		centers[i] = center
	}

	clusters := make([][]int, k)
	for i := range clusters {
		var bmLen uint32
		if err := binary.Read(r, binary.LittleEndian, &bmLen); err != nil {
			return nil, fmt.Errorf("read bitmap length %d: %w", i, err)
		}
		bmBytes := make([]byte, bmLen)
		if _, err := io.ReadFull(r, bmBytes); err != nil {
			return nil, fmt.Errorf("read bitmap %d: %w", i, err)
		}

		bm := roaring.New()
		if err := bm.UnmarshalBinary(bmBytes); err != nil {
			return nil, fmt.Errorf("unmarshal bitmap %d: %w", i, err)
		}

		cluster := make([]int, 0, bm.GetCardinality())
		it := bm.Iterator()
		for it.HasNext() {
			cluster = append(cluster, int(it.Next()))
		}
		clusters[i] = cluster
	}

	return &model.Clustering{Centers: centers, Clusters: clusters}, nil
}

func compress(body []byte, comp Compression) ([]byte, error) {
	switch comp {
	case CompressionNone:
		return body, nil
	case CompressionZstd:
		var buf bytes.Buffer
		enc, err := zstd.NewWriter(&buf)
		if err != nil {
			return nil, err
		}
		if _, err := enc.Write(body); err != nil {
			_ = enc.Close()
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CompressionLZ4:
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(body); err != nil {
			_ = w.Close()
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedCompression, comp)
	}
}

func decompress(payload []byte, comp Compression) ([]byte, error) {
	switch comp {
	case CompressionNone:
		return payload, nil
	case CompressionZstd:
		dec, err := zstd.NewReader(bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return io.ReadAll(dec)
	case CompressionLZ4:
		return io.ReadAll(lz4.NewReader(bytes.NewReader(payload)))
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedCompression, comp)
	}
}
