package model

import "time"

// Span locates a half-open character range [Start, End) inside a parsed
// source document.
type Span struct {
	DocumentID string `json:"document_id"`
	Start      int    `json:"start"`
	End        int    `json:"end"`
}

// IsZero reports whether the span carries no location at all.
func (s Span) IsZero() bool {
	return s.DocumentID == "" && s.Start == 0 && s.End == 0
}

// SourceDocument is the parsed text of an uploaded profile or resume.
// Parsing happens upstream; this layer only consumes text plus offsets.
// PageOffsets holds the start offset of each page in ascending order; an
// empty slice means single-page or unknown pagination.
type SourceDocument struct {
	ID          string    `json:"id"`
	CandidateID string    `json:"candidate_id"`
	Text        string    `json:"text"`
	PageOffsets []int     `json:"page_offsets,omitempty"`
	Version     int64     `json:"version"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PageFor returns the 1-based page containing the given character offset.
func (d SourceDocument) PageFor(offset int) int {
	page := 1
	for i, start := range d.PageOffsets {
		if offset < start {
			break
		}
		page = i + 1
	}
	return page
}
