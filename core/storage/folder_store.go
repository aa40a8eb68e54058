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

const foldersPrefix = "/folders"

// FolderStore provides atomic per-record operations over the folders
// collection.
type FolderStore struct {
	h *Handle
}

func NewFolderStore(h *Handle) *FolderStore {
	return &FolderStore{h: h}
}

func folderKey(id string) ds.Key {
	return ds.NewKey(foldersPrefix + "/" + id)
}

// Create persists a new folder with a generated id and timestamp.
func (s *FolderStore) Create(ctx context.Context, name string) (*model.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: folder name must not be empty", ErrValidation)
	}

	folder := &model.Folder{
		ID:        fileid.New("folder"),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	k := folderKey(folder.ID)
	exists, err := s.h.store.Has(ctx, k)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateID, folder.ID)
	}

	b, err := encodeFolder(folder)
	if err != nil {
		return nil, err
	}
	if err := s.h.store.Put(ctx, k, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	s.h.log.Infow("folder created", "id", folder.ID, "name", folder.Name)
	return folder, nil
}

func (s *FolderStore) Get(ctx context.Context, id string) (*model.Folder, error) {
	b, err := s.h.store.Get(ctx, folderKey(id))
	if errors.Is(err, ds.ErrNotFound) {
		return nil, fmt.Errorf("%w: folder %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return decodeFolder(b)
}

// List returns all persisted folders. Virtual sentinel folders are never
// persisted, so they never appear here.
func (s *FolderStore) List(ctx context.Context) ([]model.Folder, error) {
	res, err := s.h.store.Query(ctx, dsq.Query{Prefix: foldersPrefix})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	defer res.Close()

	var folders []model.Folder
	for {
		r, ok := res.NextSync()
		if !ok {
			break
		}
		if r.Error != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, r.Error)
		}

		folder, err := decodeFolder(r.Value)
		if err != nil {
			s.h.log.Warnw("skipping undecodable folder record", "key", r.Key, "error", err)
			continue
		}

		folders = append(folders, *folder)
	}

	return folders, nil
}

// Rename atomically reads, mutates and rewrites the folder record. The
// handle's write mutex keeps the cycle atomic with respect to other writers;
// between two racing renames the last commit wins.
func (s *FolderStore) Rename(ctx context.Context, id, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return fmt.Errorf("%w: folder name must not be empty", ErrValidation)
	}

	s.h.writeMu.Lock()
	defer s.h.writeMu.Unlock()

	folder, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	folder.Name = newName
	b, err := encodeFolder(folder)
	if err != nil {
		return err
	}
	if err := s.h.store.Put(ctx, folderKey(id), b); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	s.h.log.Infow("folder renamed", "id", id, "name", newName)
	return nil
}

// Delete removes the folder record only. Files referencing the folder are
// left untouched and keep their now-dangling folder id.
func (s *FolderStore) Delete(ctx context.Context, id string) error {
	k := folderKey(id)
	exists, err := s.h.store.Has(ctx, k)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if !exists {
		return fmt.Errorf("%w: folder %s", ErrNotFound, id)
	}

	if err := s.h.store.Delete(ctx, k); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	s.h.log.Infow("folder deleted", "id", id)
	return nil
}
