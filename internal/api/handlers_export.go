// handlers_export.go - DXF and PDF artifact production and management
package api

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/techdraw/backend/internal/dxf"
	"github.com/techdraw/backend/internal/models"
	"github.com/techdraw/backend/internal/pdf"
	"github.com/techdraw/backend/internal/storage"
	"github.com/techdraw/backend/pkg/logger"
)

// defaultRecentLimit caps the GET /api/export/recent listing when the
// config does not set one.
const defaultRecentLimit = 20

// DXFExportRequest carries the parameters to serialize. All views of
// the component are written into one model space.
type DXFExportRequest struct {
	Component models.Component         `json:"component"`
	Box       *models.BoxDimensions    `json:"box,omitempty"`
	Pulley    *models.PulleyParameters `json:"pulley,omitempty"`
	Idler     *models.IdlerParameters  `json:"idler,omitempty"`
}

// PDFExportRequest carries the rasterized drawing snapshot plus the
// title block fields. The snapshot is a base64-encoded PNG captured
// from the live viewport.
type PDFExportRequest struct {
	Component models.Component `json:"component"`
	Snapshot  string           `json:"snapshot"`
	Title     string           `json:"title"`
	Dims      string           `json:"dimensions"`
	Material  string           `json:"material,omitempty"`
	Scale     string           `json:"scale,omitempty"`
}

// ExportResponse returns the stored record and where to fetch it.
type ExportResponse struct {
	Record      *models.ExportRecord `json:"record"`
	DownloadURL string               `json:"downloadUrl"`
}

// ExportHandlerImpl implements the ExportHandler interface
type ExportHandlerImpl struct {
	store       storage.Store
	recentLimit int
	log         *logger.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(store storage.Store, recentLimit int, log *logger.Logger) ExportHandler {
	if recentLimit <= 0 {
		recentLimit = defaultRecentLimit
	}
	return &ExportHandlerImpl{store: store, recentLimit: recentLimit, log: log}
}

// HandleExportDXF serializes every view of the component into a DXF
// document and stores it for download.
func (h *ExportHandlerImpl) HandleExportDXF(c echo.Context) error {
	var req DXFExportRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}

	greq := GeometryRequest{Box: req.Box, Pulley: req.Pulley, Idler: req.Idler}
	drawing, _, apiErr := buildDrawing(req.Component, &greq)
	if apiErr != nil {
		return apiErr
	}

	var name string
	switch req.Component {
	case models.ComponentBox:
		name = dxf.BoxFilename(*req.Box)
	case models.ComponentPulley:
		name = dxf.PulleyFilename(*req.Pulley)
	case models.ComponentIdler:
		name = dxf.IdlerFilename(*req.Idler)
	}

	doc := dxf.Serialize(drawing)
	rec, err := h.store.Save(name, models.FormatDXF, strings.NewReader(doc))
	if err != nil {
		return NewExportFailedError("failed to store DXF artifact", err)
	}

	h.log.Info("dxf exported", "id", rec.ID, "name", rec.Name, "size", rec.Size)
	return c.JSON(http.StatusCreated, ExportResponse{
		Record:      rec,
		DownloadURL: downloadURL(rec.ID),
	})
}

// HandleExportPDF composes the titled PDF sheet around the client's
// snapshot. A missing or undecodable snapshot aborts the export; no
// blank sheet is ever produced.
func (h *ExportHandlerImpl) HandleExportPDF(c echo.Context) error {
	var req PDFExportRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}
	if _, err := parseComponent(string(req.Component)); err != nil {
		return NewBadRequestError(err.Error(), nil)
	}
	if req.Snapshot == "" {
		return NewExportFailedError("drawing snapshot is missing", nil)
	}

	snapshot, err := base64.StdEncoding.DecodeString(req.Snapshot)
	if err != nil {
		return NewExportFailedError("drawing snapshot is not valid base64", err)
	}

	doc, err := pdf.Compose(snapshot, pdf.TemplateFor(req.Component), pdf.TitleBlock{
		Title:      req.Title,
		Dimensions: req.Dims,
		Material:   req.Material,
		Scale:      req.Scale,
		Date:       time.Now(),
	})
	if err != nil {
		return NewExportFailedError("failed to compose PDF", err)
	}

	name := pdf.Filename(req.Component, sanitizeDims(req.Dims))
	rec, err := h.store.Save(name, models.FormatPDF, bytes.NewReader(doc))
	if err != nil {
		return NewExportFailedError("failed to store PDF artifact", err)
	}

	h.log.Info("pdf exported", "id", rec.ID, "name", rec.Name, "size", rec.Size)
	return c.JSON(http.StatusCreated, ExportResponse{
		Record:      rec,
		DownloadURL: downloadURL(rec.ID),
	})
}

// HandleRecentExports lists the newest stored artifacts.
func (h *ExportHandlerImpl) HandleRecentExports(c echo.Context) error {
	limit := h.recentLimit
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n < 100 {
			limit = n
		}
	}

	list, err := h.store.List(limit)
	if err != nil {
		return NewInternalError("failed to list exports", err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"exports": list,
		"count":   len(list),
	})
}

// HandleDownloadExport streams an artifact as an attachment under its
// original filename.
func (h *ExportHandlerImpl) HandleDownloadExport(c echo.Context) error {
	id := c.Param("id")
	rec, err := h.store.Get(id)
	if err != nil {
		return NewNotFoundError("export", id)
	}
	path, err := h.store.FilePath(id)
	if err != nil {
		return NewInternalError("failed to locate artifact", err)
	}
	return c.Attachment(path, rec.Name)
}

// HandleDeleteExport removes an artifact and its record.
func (h *ExportHandlerImpl) HandleDeleteExport(c echo.Context) error {
	id := c.Param("id")
	if err := h.store.Delete(id); err != nil {
		return NewNotFoundError("export", id)
	}
	h.log.Info("export deleted", "id", id)
	return c.NoContent(http.StatusNoContent)
}

func downloadURL(id string) string {
	return fmt.Sprintf("/api/export/%s/download", id)
}

// sanitizeDims compacts a display dimension string ("200 mm x 100 mm")
// into a filename-safe token ("200mmx100mm").
func sanitizeDims(dims string) string {
	if dims == "" {
		return "drawing"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '\\':
			return -1
		}
		return r
	}, dims)
}
