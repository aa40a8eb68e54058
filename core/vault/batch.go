package vault

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/intecu/filevault/core/model"
	"github.com/intecu/filevault/core/storage"
)

// ItemResult is the outcome of one record inside a batch.
type ItemResult struct {
	ID  string
	Err error
}

// BatchResult aggregates per-item outcomes of a bulk operation. Items that
// committed before a later failure stay committed; nothing is rolled back
// or retried here.
type BatchResult struct {
	OpID  string
	Items []ItemResult
}

// Failed returns the items that did not commit.
func (r BatchResult) Failed() []ItemResult {
	var failed []ItemResult
	for _, item := range r.Items {
		if item.Err != nil {
			failed = append(failed, item)
		}
	}

	return failed
}

// DeleteFiles removes the given files one by one. Each delete is its own
// transaction; a failing item never aborts the rest of the batch.
func (v *Vault) DeleteFiles(ctx context.Context, ids []string) BatchResult {
	result := BatchResult{OpID: uuid.NewString()}
	for _, id := range ids {
		err := v.files.Delete(ctx, id)
		if err != nil {
			v.log.Warnw("batch delete item failed", "op", result.OpID, "id", id, "error", err)
		}
		result.Items = append(result.Items, ItemResult{ID: id, Err: err})
	}

	return result
}

// RemoveFolder deletes every file referencing the folder, then the folder
// record itself. File deletions are reported per item; when any of them fail
// the folder record is kept so the operation can be retried.
func (v *Vault) RemoveFolder(ctx context.Context, folderID string) (BatchResult, error) {
	if model.IsSentinelFolder(folderID) {
		return BatchResult{}, fmt.Errorf("%w: cannot remove virtual folder %q", storage.ErrValidation, folderID)
	}

	if _, err := v.folders.Get(ctx, folderID); err != nil {
		return BatchResult{}, err
	}

	files, err := v.files.List(ctx, folderID)
	if err != nil {
		return BatchResult{}, err
	}

	ids := make([]string, 0, len(files))
	for _, f := range files {
		ids = append(ids, f.ID)
	}

	result := v.DeleteFiles(ctx, ids)
	if failed := result.Failed(); len(failed) > 0 {
		return result, fmt.Errorf("remove folder %s: %d of %d files not deleted", folderID, len(failed), len(ids))
	}

	if err := v.folders.Delete(ctx, folderID); err != nil {
		return result, err
	}

	return result, nil
}
