package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	templatedomain "github.com/smallbiznis/invoicer/internal/invoicetemplate/domain"
)

func (s *Server) CreateInvoiceTemplate(c *gin.Context) {
	var req templatedomain.Template
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id, err := s.invoiceTemplateSvc.Save(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"id": id}})
}

func (s *Server) ListInvoiceTemplates(c *gin.Context) {
	templates, err := s.invoiceTemplateSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": templates})
}

func (s *Server) GetInvoiceTemplateByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	tpl, err := s.invoiceTemplateSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if tpl == nil {
		AbortWithError(c, templatedomain.ErrTemplateNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tpl})
}

func (s *Server) DeleteInvoiceTemplate(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	if err := s.invoiceTemplateSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
