package handlers

import (
	"net/http"

	"todoapi/internal/http/respond"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	respond.Send(c, http.StatusOK, gin.H{"status": "ok"}, "service is running")
}

// GET /reports/todos
func (h Handler) TodoReportPDF(c *gin.Context) {
	pdfBytes, filename, err := h.Reports.TodosPDF(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.File(c, filename, "application/pdf", pdfBytes)
}
