// Package media stores avatar uploads on local disk or in an S3-compatible bucket.
package media

import (
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var whitespace = regexp.MustCompile(`\s+`)

// FileName builds the stored name for an upload: a millisecond timestamp prefix
// followed by the original base name with whitespace runs replaced by underscores.
func FileName(now time.Time, original string) string {
	base := path.Base(strings.ReplaceAll(original, `\`, "/"))
	if base == "." || base == "/" || base == ".." {
		base = "upload"
	}
	return strconv.FormatInt(now.UnixMilli(), 10) + "-" + whitespace.ReplaceAllString(base, "_")
}
