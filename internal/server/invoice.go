package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/smallbiznis/invoicer/internal/invoice/domain"
)

func (s *Server) PreviewInvoice(c *gin.Context) {
	var req invoicedomain.Invoice
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.Preview(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GenerateInvoice(c *gin.Context) {
	var req invoicedomain.Invoice
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.Generate(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"id":       resp.HistoryID,
		"invoice":  resp.Invoice,
		"filename": resp.Filename,
	}})
}

func (s *Server) DownloadInvoicePDF(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	resp, err := s.invoiceSvc.Export(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+resp.Filename+`"`)
	c.Data(http.StatusOK, "application/pdf", resp.PDF)
}

func (s *Server) RenderInvoiceHTML(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	html, err := s.invoiceSvc.RenderHTML(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
