package models

import "time"

// ExportFormat identifies a produced artifact type.
type ExportFormat string

const (
	FormatDXF ExportFormat = "dxf"
	FormatPDF ExportFormat = "pdf"
)

// ExportRecord is the metadata for a produced export artifact. The
// artifact itself lives in the export store until downloaded or
// cleaned up; drawing parameters are never persisted.
type ExportRecord struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Format    ExportFormat `json:"format"`
	Size      int64        `json:"size"`
	CreatedAt time.Time    `json:"createdAt"`
}
