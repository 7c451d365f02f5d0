package admin

import (
	"fmt"
	"time"

	"github.com/abceng/results-portal/services"
	"github.com/abceng/results-portal/utils/response"
	"github.com/gofiber/fiber/v2"
)

// ExportHandler streams the results ledger as CSV.
type ExportHandler struct {
	exportService *services.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService *services.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportCSV handles GET /api/v1/admin/results/export
func (h *ExportHandler) ExportCSV(c *fiber.Ctx) error {
	data, _, err := h.exportService.CompileCSV(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to export results")
	}

	filename := fmt.Sprintf("results-%s.csv", time.Now().UTC().Format("20060102"))
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(data)
}
