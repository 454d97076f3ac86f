package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	historydomain "github.com/smallbiznis/invoicer/internal/history/domain"
)

func (s *Server) ListHistory(c *gin.Context) {
	filter, err := parseHistoryFilter(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	items, err := s.historySvc.Search(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (s *Server) HistoryStats(c *gin.Context) {
	stats, err := s.historySvc.Stats(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stats})
}

func (s *Server) GetHistoryItem(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	item, err := s.historySvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if item == nil {
		AbortWithError(c, ErrNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": item})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) UpdateHistoryStatus(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.historySvc.UpdateStatus(c.Request.Context(), id, historydomain.Status(req.Status)); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"id": id, "status": req.Status}})
}

func (s *Server) DeleteHistoryItem(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	if err := s.historySvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) ClearHistory(c *gin.Context) {
	if err := s.historySvc.Clear(c.Request.Context()); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseHistoryFilter(c *gin.Context) (historydomain.Filter, error) {
	filter := historydomain.Filter{
		Status:     historydomain.StatusAll,
		SearchTerm: strings.TrimSpace(c.Query("q")),
	}

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		parsed := historydomain.Status(status)
		if parsed != historydomain.StatusAll && !parsed.Valid() {
			return historydomain.Filter{}, newValidationError("status", "invalid_status", "unknown status")
		}
		filter.Status = parsed
	}

	from, err := parseOptionalTime(c.Query("date_from"), false)
	if err != nil {
		return historydomain.Filter{}, newValidationError("date_from", "invalid_date", "invalid date")
	}
	filter.DateFrom = from

	to, err := parseOptionalTime(c.Query("date_to"), true)
	if err != nil {
		return historydomain.Filter{}, newValidationError("date_to", "invalid_date", "invalid date")
	}
	filter.DateTo = to

	return filter, nil
}
