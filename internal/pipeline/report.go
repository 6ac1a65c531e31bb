package pipeline

import (
	"crypto/sha256"
	"fmt"

	"github.com/dgallion1/doclint/internal/check"
)

// Report is the JSON-safe result of checking one document.
type Report struct {
	RunID       string             `json:"run_id,omitempty"`
	FileID      string             `json:"file_id"`
	ContentHash string             `json:"content_hash"`
	ErrorCount  int                `json:"error_count"`
	Diagnostics []check.CheckError `json:"diagnostics"`
}

func NewReport(fileID, content string, diags []check.CheckError) Report {
	if diags == nil {
		diags = []check.CheckError{}
	}
	n := 0
	for _, d := range diags {
		if d.Severity == check.SeverityError {
			n++
		}
	}
	return Report{
		FileID:      fileID,
		ContentHash: ContentHashHex([]byte(content)),
		ErrorCount:  n,
		Diagnostics: diags,
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
