package model

import "time"

// Folder is a user-created grouping of files. Name is the only mutable field.
type Folder struct {
	ID        string    `msgpack:"id"`
	Name      string    `msgpack:"name"`
	CreatedAt time.Time `msgpack:"createdAt"`
}
