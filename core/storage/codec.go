package storage

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/intecu/filevault/core/model"
)

// Payloads are compressed at rest. In EncodeAll/DecodeAll mode both are
// safe for concurrent use.
var (
	zstdEncoder, _ = zstd.NewWriter(nil)
	zstdDecoder, _ = zstd.NewReader(nil)
)

func encodeFile(f *model.StoredFile) ([]byte, error) {
	rec := *f
	rec.Payload = zstdEncoder.EncodeAll(f.Payload, nil)

	b, err := msgpack.Marshal(&rec)
	if err != nil {
		return nil, fmt.Errorf("encode file record %s: %w", f.ID, err)
	}

	return b, nil
}

// decodeFile validates a raw stored value into the typed record shape.
// Malformed values fail here instead of propagating upward untyped.
func decodeFile(raw []byte) (*model.StoredFile, error) {
	var rec model.StoredFile
	if err := msgpack.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode file record: %w", err)
	}

	payload, err := zstdDecoder.DecodeAll(rec.Payload, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress payload of %s: %w", rec.ID, err)
	}
	rec.Payload = payload

	return &rec, nil
}

func encodeFolder(f *model.Folder) ([]byte, error) {
	b, err := msgpack.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encode folder record %s: %w", f.ID, err)
	}

	return b, nil
}

func decodeFolder(raw []byte) (*model.Folder, error) {
	var rec model.Folder
	if err := msgpack.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode folder record: %w", err)
	}

	return &rec, nil
}
