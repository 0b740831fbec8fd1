package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"lexium/logger"
	"lexium/services"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const pdfTimeout = 60 * time.Second

// sendPDF prints body through the PDF renderer and sends it as a download
func (h *Handler) sendPDF(c echo.Context, title string, body templ.Component, name string, opts services.PDFOptions) error {
	if h.PDF == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "PDF export is not available")
	}
	content, err := renderString(c.Request().Context(), body)
	if err != nil {
		return httpError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), pdfTimeout)
	defer cancel()
	data, err := h.PDF.RenderPDF(ctx, services.WrapHTMLForPDF(title, content), opts)
	if err != nil {
		logger.FromEcho(c).Error("PDF generation failed", zap.String("file", name), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate PDF")
	}
	return h.sendExport(c, name, "application/pdf", data)
}

// sendExport writes a generated file as an attachment. With ?archive=1 a copy
// is first stored in the export archive; a failed archive is logged and the
// download still goes out.
func (h *Handler) sendExport(c echo.Context, name, contentType string, data []byte) error {
	if checkbox(c.QueryParam("archive")) {
		res, err := services.ArchiveExport(c.Request().Context(), h.Storage, h.now(), name, data)
		if err != nil {
			logger.FromEcho(c).Warn("Export not archived", zap.String("file", name), zap.Error(err))
		} else {
			c.Response().Header().Set("X-Export-Key", res.Key)
		}
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, contentType, data)
}
