package common

import (
	"strings"

	"github.com/google/uuid"
)

// Entity id prefixes. Ids are opaque strings but the prefix makes it obvious
// at a glance what kind of entity an id refers to.
const (
	UserIDPrefix    = "user"
	LabelIDPrefix   = "label"
	ProjectIDPrefix = "proj"
	TaskIDPrefix    = "task"
)

// NewID returns a fresh entity id of the form "<prefix>-<uuid>".
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// HasIDPrefix reports whether id carries the given entity prefix.
func HasIDPrefix(id, prefix string) bool {
	return strings.HasPrefix(id, prefix+"-")
}
