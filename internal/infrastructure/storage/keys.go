// Package storage keeps uploaded files on local disk or in an S3-compatible bucket.
package storage

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxExtLen = 10

// NewKey returns a unique object key of the form prefix/yyyy/mm/dd/<uuid><ext>.
// Only the extension of the client-supplied name survives.
func NewKey(prefix, filename string, now time.Time) string {
	prefix = strings.Trim(path.Clean("/"+prefix), "/")
	if prefix == "" || prefix == "." {
		prefix = "misc"
	}
	return fmt.Sprintf("%s/%04d/%02d/%02d/%s%s",
		prefix, now.Year(), int(now.Month()), now.Day(), uuid.New(), safeExt(filename))
}

func safeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if len(ext) < 2 || len(ext) > maxExtLen {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}

// validKey rejects keys that could escape the storage root.
func validKey(key string) bool {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return false
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return false
		}
	}
	return true
}
