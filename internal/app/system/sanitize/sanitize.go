// Package sanitize strips markup from user-entered free text before it
// is stored.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// Text removes all HTML from s and trims surrounding whitespace.
// Applied to anything user-authored that other users will see rendered:
// comments, bios, club descriptions, image captions.
func Text(s string) string {
	return strings.TrimSpace(policy.Sanitize(s))
}
