package model

import "time"

// Sentinel folder ids denote virtual groupings. They are never persisted as
// Folder records and never appear in folder listings.
const (
	FolderAll     = "all"
	FolderRecent  = "recent"
	FolderStarred = "starred"
)

// DefaultMimeType is assigned when ingestion supplies no content type.
const DefaultMimeType = "application/octet-stream"

// StoredFile is a file record as persisted in the files collection.
// ID, SizeBytes, CreatedAt and Payload are immutable once the record is
// committed; a changed file is represented by delete and re-create.
type StoredFile struct {
	ID        string    `msgpack:"id"`
	Name      string    `msgpack:"name"`
	MimeType  string    `msgpack:"mimeType"`
	SizeBytes int64     `msgpack:"sizeBytes"`
	CreatedAt time.Time `msgpack:"createdAt"`
	FolderID  string    `msgpack:"folderId"`
	Payload   []byte    `msgpack:"payload"`
}

// IsSentinelFolder reports whether id names a virtual grouping rather than a
// real Folder record.
func IsSentinelFolder(id string) bool {
	return id == FolderAll || id == FolderRecent || id == FolderStarred
}
