package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/smallbiznis/invoicer/internal/invoice/domain"
)

func (s *Server) GetDraft(c *gin.Context) {
	draft, err := s.draftSvc.Load(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": draft})
}

// SaveDraft schedules a debounced write and returns immediately; rapid form
// edits collapse into a single storage write.
func (s *Server) SaveDraft(c *gin.Context) {
	var req invoicedomain.Invoice
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	s.draftSvc.Save(c.Request.Context(), req)

	c.JSON(http.StatusAccepted, gin.H{"data": gin.H{"scheduled": true}})
}

func (s *Server) ClearDraft(c *gin.Context) {
	if err := s.draftSvc.Clear(c.Request.Context()); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
