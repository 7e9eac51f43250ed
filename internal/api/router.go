package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/naijawatch/naijawatch/internal/classify"
	"github.com/naijawatch/naijawatch/internal/pipeline"
)

type Server struct {
	ctrl *pipeline.Controller
}

func NewServer(ctrl *pipeline.Controller) *Server {
	return &Server{ctrl: ctrl}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/articles", s.listArticles)
		v1.GET("/videos", s.listVideos)
		v1.GET("/incidents", s.listIncidents)
		v1.GET("/statistics", s.statistics)
		v1.GET("/summary", s.summary)
		v1.POST("/refresh", s.refresh)
		v1.GET("/incidents/export.csv", s.exportIncidents)
		v1.GET("/articles/export.csv", s.exportArticles)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"pipeline":    s.ctrl.Status(),
		"lastRefresh": s.ctrl.LastRefresh(),
	})
}

func (s *Server) listArticles(c *gin.Context) {
	snap := s.ctrl.Snapshot()
	articles := snap.Articles
	if limit := parseLimit(c); limit > 0 && limit < len(articles) {
		articles = articles[:limit]
	}
	ok(c, articles)
}

func (s *Server) listVideos(c *gin.Context) {
	snap := s.ctrl.Snapshot()
	videos := snap.Videos
	if limit := parseLimit(c); limit > 0 && limit < len(videos) {
		videos = videos[:limit]
	}
	ok(c, videos)
}

// listIncidents serves the incident set, optionally narrowed by state, type,
// and an inclusive from/to date range (2006-01-02).
func (s *Server) listIncidents(c *gin.Context) {
	snap := s.ctrl.Snapshot()

	state := c.Query("state")
	typ := c.Query("type")
	from, fromErr := parseDate(c.Query("from"))
	to, toErr := parseDate(c.Query("to"))
	if fromErr != nil || toErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "bad_request",
			"message": "from/to must be formatted as 2006-01-02",
		})
		return
	}

	incidents := filterIncidents(snap.Incidents, state, typ, from, to)
	if limit := parseLimit(c); limit > 0 && limit < len(incidents) {
		incidents = incidents[:limit]
	}
	ok(c, incidents)
}

func (s *Server) statistics(c *gin.Context) {
	ok(c, s.ctrl.Snapshot().Statistics)
}

// summary returns the full output contract in one response.
func (s *Server) summary(c *gin.Context) {
	snap := s.ctrl.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data": gin.H{
			"articles":   snap.Articles,
			"videos":     snap.Videos,
			"incidents":  snap.Incidents,
			"statistics": snap.Statistics,
			"error":      snap.Err,
			"updatedAt":  snap.UpdatedAt,
		},
	})
}

// refresh kicks off a manual pipeline run. The run is additive to anything
// already in flight, so this returns immediately rather than blocking the
// request on source fetches.
func (s *Server) refresh(c *gin.Context) {
	go s.ctrl.Refresh(context.Background())
	c.JSON(http.StatusAccepted, gin.H{
		"code":    "accepted",
		"message": "refresh started",
	})
}

func filterIncidents(incidents []classify.Incident, state, typ string, from, to time.Time) []classify.Incident {
	out := make([]classify.Incident, 0, len(incidents))
	for _, inc := range incidents {
		if state != "" && !strings.EqualFold(inc.Location.State, state) {
			continue
		}
		if typ != "" && string(inc.Type) != typ {
			continue
		}
		if !from.IsZero() && inc.Date.Before(from) {
			continue
		}
		if !to.IsZero() && !inc.Date.Before(to.AddDate(0, 0, 1)) {
			continue
		}
		out = append(out, inc)
	}
	return out
}

func parseLimit(c *gin.Context) int {
	limitStr := c.Query("limit")
	if limitStr == "" {
		return 0
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		return 0
	}
	return limit
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", value)
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    data,
	})
}
