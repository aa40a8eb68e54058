package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ds "github.com/ipfs/go-datastore"
	dsq "github.com/ipfs/go-datastore/query"

	"github.com/intecu/filevault/core/model"
	"github.com/intecu/filevault/lib/fileid"
)

const filesPrefix = "/files"

// FileStore provides atomic per-record operations over the files collection.
// Every call is its own transaction; there is no cross-collection or
// multi-record unit.
type FileStore struct {
	h *Handle
}

func NewFileStore(h *Handle) *FileStore {
	return &FileStore{h: h}
}

func fileKey(id string) ds.Key {
	return ds.NewKey(filesPrefix + "/" + id)
}

// Create persists a new file record, payload included, in one atomic put and
// returns it. The record id and creation timestamp are generated here and the
// stored payload is a private copy of rawBytes.
func (s *FileStore) Create(ctx context.Context, rawBytes []byte, name, mimeType string, sizeBytes int64, folderID string) (*model.StoredFile, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: file name must not be empty", ErrValidation)
	}
	if sizeBytes < 0 {
		return nil, fmt.Errorf("%w: negative file size %d", ErrValidation, sizeBytes)
	}
	if mimeType == "" {
		mimeType = model.DefaultMimeType
	}
	if folderID == "" {
		folderID = model.FolderAll
	}

	payload := make([]byte, len(rawBytes))
	copy(payload, rawBytes)

	file := &model.StoredFile{
		ID:        fileid.New("file"),
		Name:      name,
		MimeType:  mimeType,
		SizeBytes: sizeBytes,
		CreatedAt: time.Now().UTC(),
		FolderID:  folderID,
		Payload:   payload,
	}

	k := fileKey(file.ID)
	exists, err := s.h.store.Has(ctx, k)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateID, file.ID)
	}

	b, err := encodeFile(file)
	if err != nil {
		return nil, err
	}
	if err := s.h.store.Put(ctx, k, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	s.h.log.Infow("file created", "id", file.ID, "folder", file.FolderID, "size", file.SizeBytes)
	return file, nil
}

// Get returns the record for id. The returned payload never aliases store
// memory; the caller gets a read-only copy to do with as it pleases.
func (s *FileStore) Get(ctx context.Context, id string) (*model.StoredFile, error) {
	b, err := s.h.store.Get(ctx, fileKey(id))
	if errors.Is(err, ds.ErrNotFound) {
		return nil, fmt.Errorf("%w: file %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return decodeFile(b)
}

// List returns every file record, or exactly those whose FolderID equals
// folderID when a filter other than "all" is given. Ordering is unspecified.
func (s *FileStore) List(ctx context.Context, folderID string) ([]model.StoredFile, error) {
	res, err := s.h.store.Query(ctx, dsq.Query{Prefix: filesPrefix})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	defer res.Close()

	filtered := folderID != "" && folderID != model.FolderAll

	var files []model.StoredFile
	for {
		r, ok := res.NextSync()
		if !ok {
			break
		}
		if r.Error != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, r.Error)
		}

		file, err := decodeFile(r.Value)
		if err != nil {
			// Malformed records are quarantined, not propagated.
			s.h.log.Warnw("skipping undecodable file record", "key", r.Key, "error", err)
			continue
		}
		if filtered && file.FolderID != folderID {
			continue
		}

		files = append(files, *file)
	}

	return files, nil
}

// Delete removes the record. Deleting an id that does not exist fails with
// ErrNotFound; either way a later Get on the id fails with ErrNotFound.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	k := fileKey(id)
	exists, err := s.h.store.Has(ctx, k)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if !exists {
		return fmt.Errorf("%w: file %s", ErrNotFound, id)
	}

	if err := s.h.store.Delete(ctx, k); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	s.h.log.Infow("file deleted", "id", id)
	return nil
}
