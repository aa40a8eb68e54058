package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	ds "github.com/ipfs/go-datastore"
	dslvl "github.com/ipfs/go-ds-leveldb"
	"go.uber.org/zap"

	"github.com/intecu/filevault/lib/logger"
)

// SchemaVersion is bumped whenever the collection shape changes.
// Version 1 introduced the files collection, version 2 added folders.
const SchemaVersion = 2

var (
	versionKey    = ds.NewKey("/meta/schema-version")
	filesMarker   = ds.NewKey("/meta/collections/files")
	foldersMarker = ds.NewKey("/meta/collections/folders")
)

// Handle is the single capability through which the storage engine runs
// transactions. It is opened once at process start, reused for the process
// lifetime and released with Close at shutdown.
type Handle struct {
	store *dslvl.Datastore
	log   *zap.SugaredLogger

	// writeMu serializes read-modify-write cycles on single records.
	writeMu sync.Mutex
}

// Open opens the store at path, creating it on first use, and runs the
// idempotent schema upgrade before handing the store to any caller.
func Open(path string) (*Handle, error) {
	log, err := logger.New("storage")
	if err != nil {
		return nil, err
	}

	store, err := dslvl.NewDatastore(path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: open %q: %v", ErrStorageUnavailable, path, err)
	}

	h := &Handle{store: store, log: log}
	if err := h.migrate(context.Background()); err != nil {
		store.Close()
		return nil, err
	}

	return h, nil
}

func (h *Handle) Close() error {
	return h.store.Close()
}

func (h *Handle) migrate(ctx context.Context) error {
	current, err := h.schemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("%w: read schema version: %v", ErrStorageUnavailable, err)
	}

	if current == SchemaVersion {
		return nil
	}
	if current > SchemaVersion {
		return fmt.Errorf("%w: store version %d is newer than supported %d", ErrStorageUnavailable, current, SchemaVersion)
	}

	for v := current + 1; v <= SchemaVersion; v++ {
		if err := h.upgradeTo(ctx, v); err != nil {
			return fmt.Errorf("%w: upgrade to version %d: %v", ErrStorageUnavailable, v, err)
		}
	}

	if err := h.store.Put(ctx, versionKey, []byte(strconv.Itoa(SchemaVersion))); err != nil {
		return fmt.Errorf("%w: write schema version: %v", ErrStorageUnavailable, err)
	}
	if err := h.store.Sync(ctx, versionKey); err != nil {
		return fmt.Errorf("%w: sync schema version: %v", ErrStorageUnavailable, err)
	}

	h.log.Infow("schema upgraded", "from", current, "to", SchemaVersion)
	return nil
}

// schemaVersion returns 0 for a store that has never been initialized.
func (h *Handle) schemaVersion(ctx context.Context) (int, error) {
	b, err := h.store.Get(ctx, versionKey)
	if errors.Is(err, ds.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	return strconv.Atoi(string(b))
}

// upgradeTo applies a single version step. Steps only ever add collection
// markers; existing records are never touched or rewritten.
func (h *Handle) upgradeTo(ctx context.Context, version int) error {
	switch version {
	case 1:
		return h.ensureMarker(ctx, filesMarker)
	case 2:
		return h.ensureMarker(ctx, foldersMarker)
	default:
		return fmt.Errorf("unknown schema version %d", version)
	}
}

func (h *Handle) ensureMarker(ctx context.Context, k ds.Key) error {
	exists, err := h.store.Has(ctx, k)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return h.store.Put(ctx, k, []byte("1"))
}
