package parser

import (
	"strings"

	"github.com/adrg/frontmatter"
)

// DecodeFrontMatter decodes a fenced YAML block ("---\n...\n---") into a map.
// It reports false when the block cannot be decoded; the map is then empty,
// never nil.
func DecodeFrontMatter(block string) (map[string]any, bool) {
	var values map[string]any
	if _, err := frontmatter.Parse(strings.NewReader(block), &values); err != nil {
		return map[string]any{}, false
	}
	if values == nil {
		values = map[string]any{}
	}
	return values, true
}
