package check

import (
	"fmt"
	"strings"

	"github.com/dgallion1/doclint/internal/doctree"
	"github.com/dgallion1/doclint/internal/mdast"
)

type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	default:
		return "ERROR"
	}
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(b []byte) error {
	switch strings.ToUpper(string(b)) {
	case "INFO":
		*s = SeverityInfo
	case "WARNING":
		*s = SeverityWarning
	case "ERROR":
		*s = SeverityError
	default:
		return fmt.Errorf("unknown severity %q", b)
	}
	return nil
}

// CheckError is one content diagnostic. It is a value returned to callers, not
// a Go error.
type CheckError struct {
	RuleID   string             `json:"rule_id"`
	Message  string             `json:"message"`
	Severity Severity           `json:"severity"`
	FileID   string             `json:"file_id,omitempty"`
	Range    *mdast.SourceRange `json:"range,omitempty"`
	NodeID   string             `json:"node_id,omitempty"`
	NodeType string             `json:"node_type,omitempty"`
}

// At locates e at a Standard node.
func (e CheckError) At(n doctree.Node) CheckError {
	if n == nil {
		return e
	}
	return e.AtNode(n.ID(), NodeTypeOf(n), n.Range())
}

// AtNode locates e at an AST node given by id and type.
func (e CheckError) AtNode(id string, t mdast.NodeType, r mdast.SourceRange) CheckError {
	e.Range = &r
	e.NodeID = id
	e.NodeType = t.String()
	return e
}

// AtRange locates e at a source range with no node.
func (e CheckError) AtRange(r mdast.SourceRange) CheckError {
	e.Range = &r
	return e
}

// String renders
//
//	[ruleId] message (File: f) [Line: L, Column: C] (NodeId: id, NodeType: t)
//
// dropping each bracketed part whose values are empty.
func (e CheckError) String() string {
	var parts []string
	if e.RuleID != "" {
		parts = append(parts, "["+e.RuleID+"]")
	}
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	if e.FileID != "" {
		parts = append(parts, "(File: "+e.FileID+")")
	}
	if e.Range != nil {
		parts = append(parts, fmt.Sprintf("[Line: %d, Column: %d]", e.Range.Line, e.Range.Column))
	}
	switch {
	case e.NodeID != "" && e.NodeType != "":
		parts = append(parts, fmt.Sprintf("(NodeId: %s, NodeType: %s)", e.NodeID, e.NodeType))
	case e.NodeID != "":
		parts = append(parts, fmt.Sprintf("(NodeId: %s)", e.NodeID))
	case e.NodeType != "":
		parts = append(parts, fmt.Sprintf("(NodeType: %s)", e.NodeType))
	}
	return strings.Join(parts, " ")
}

// NodeTypeOf maps a Standard variant back to the AST node type it came from.
func NodeTypeOf(n doctree.Node) mdast.NodeType {
	switch n.Kind() {
	case doctree.KindDocument:
		return mdast.Document
	case doctree.KindHeading:
		return mdast.Heading
	case doctree.KindParagraph:
		return mdast.Paragraph
	case doctree.KindList:
		return mdast.List
	case doctree.KindListItem:
		return mdast.ListItem
	case doctree.KindCodeBlock:
		return mdast.CodeBlock
	case doctree.KindBlockQuote:
		return mdast.BlockQuote
	case doctree.KindThematicBreak:
		return mdast.ThematicBreak
	case doctree.KindText:
		return mdast.Text
	case doctree.KindCodeSpan:
		return mdast.Code
	case doctree.KindEmphasis:
		return mdast.Emphasis
	case doctree.KindStrong:
		return mdast.Strong
	case doctree.KindLink:
		return mdast.Link
	case doctree.KindImage:
		return mdast.Image
	}
	return mdast.Custom
}
