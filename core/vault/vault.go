// Package vault is the storage-facing service consumed by the UI layer.
// It owns no session or view-preference state; those stay with the caller.
package vault

import (
	"bytes"
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/intecu/filevault/core/model"
	"github.com/intecu/filevault/core/projection"
	"github.com/intecu/filevault/core/storage"
	"github.com/intecu/filevault/lib/logger"
)

type Vault struct {
	files   *storage.FileStore
	folders *storage.FolderStore
	log     *zap.SugaredLogger
}

func New(h *storage.Handle) (*Vault, error) {
	log, err := logger.New("vault")
	if err != nil {
		return nil, err
	}

	return &Vault{
		files:   storage.NewFileStore(h),
		folders: storage.NewFolderStore(h),
		log:     log,
	}, nil
}

// IngestRequest carries a raw upload from the UI collaborator. FolderID
// defaults to the "all" sentinel when empty.
type IngestRequest struct {
	Name      string
	MimeType  string
	SizeBytes int64
	FolderID  string
	Payload   []byte
}

// Ingest persists the upload and returns its display view.
func (v *Vault) Ingest(ctx context.Context, req IngestRequest) (projection.DisplayFile, error) {
	file, err := v.files.Create(ctx, req.Payload, req.Name, req.MimeType, req.SizeBytes, req.FolderID)
	if err != nil {
		return projection.DisplayFile{}, err
	}

	return projection.Project(file, time.Now()), nil
}

// Browse lists files, optionally filtered by folder, projected for display.
// All views in one listing share a single "now".
func (v *Vault) Browse(ctx context.Context, folderID string) ([]projection.DisplayFile, error) {
	files, err := v.files.List(ctx, folderID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	views := make([]projection.DisplayFile, 0, len(files))
	for i := range files {
		views = append(views, projection.Project(&files[i], now))
	}

	return views, nil
}

// DownloadView is the egress form of a stored file: the display name plus a
// reader over a payload copy that does not alias the stored bytes.
type DownloadView struct {
	Name    string
	Size    int64
	Content io.Reader
}

func (v *Vault) Download(ctx context.Context, id string) (*DownloadView, error) {
	file, err := v.files.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &DownloadView{
		Name:    file.Name,
		Size:    file.SizeBytes,
		Content: bytes.NewReader(file.Payload),
	}, nil
}

func (v *Vault) File(ctx context.Context, id string) (*model.StoredFile, error) {
	return v.files.Get(ctx, id)
}

func (v *Vault) CreateFolder(ctx context.Context, name string) (*model.Folder, error) {
	return v.folders.Create(ctx, name)
}

func (v *Vault) Folders(ctx context.Context) ([]model.Folder, error) {
	return v.folders.List(ctx)
}

func (v *Vault) RenameFolder(ctx context.Context, id, newName string) error {
	return v.folders.Rename(ctx, id, newName)
}
