package idgen

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID builds a collision-resistant document id of the form
// <prefix>_<unix-millis>_<rand8>. The millis component keeps ids roughly
// sortable by creation time; the random tail breaks same-millisecond ties.
func NewID(prefix string) string {
	millis := time.Now().UnixMilli()
	rand8 := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s_%d_%s", prefix, millis, rand8)
}

// NewUUID returns a plain v4 uuid for entities that do not need a
// time-ordered id.
func NewUUID() string {
	return uuid.NewString()
}
