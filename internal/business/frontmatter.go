package business

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dgallion1/doclint/internal/mdast"
	"github.com/dgallion1/doclint/internal/parser"
)

// FrontMatter is the decoded metadata block at the top of a document.
// Malformed is set when the block was detected but could not be decoded; Values
// is then empty.
type FrontMatter struct {
	NodeID    string
	Range     mdast.SourceRange
	Raw       string
	Values    map[string]any
	Malformed bool
}

// FrontMatterOf decodes the front matter node spliced into root, if any.
func FrontMatterOf(root *mdast.Node) (*FrontMatter, bool) {
	n, ok := mdast.FrontMatterNode(root)
	if !ok {
		return nil, false
	}
	values, ok := parser.DecodeFrontMatter(n.Raw)
	return &FrontMatter{
		NodeID:    n.ID,
		Range:     n.Range,
		Raw:       n.Raw,
		Values:    values,
		Malformed: !ok,
	}, true
}

// Keys returns the top-level keys in sorted order.
func (f *FrontMatter) Keys() []string {
	keys := make([]string, 0, len(f.Values))
	for k := range f.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String returns the value for key as trimmed text. Absent, null and blank
// values report false.
func (f *FrontMatter) String(key string) (string, bool) {
	v, ok := f.Values[key]
	if !ok || v == nil {
		return "", false
	}
	s := strings.TrimSpace(fmt.Sprint(v))
	return s, s != ""
}
