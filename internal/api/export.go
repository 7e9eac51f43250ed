package api

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// exportIncidents streams the incident set as CSV, honoring the same
// filters as the JSON endpoint.
func (s *Server) exportIncidents(c *gin.Context) {
	snap := s.ctrl.Snapshot()

	from, fromErr := parseDate(c.Query("from"))
	to, toErr := parseDate(c.Query("to"))
	if fromErr != nil || toErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "bad_request",
			"message": "from/to must be formatted as 2006-01-02",
		})
		return
	}
	incidents := filterIncidents(snap.Incidents, c.Query("state"), c.Query("type"), from, to)

	setCSVHeaders(c, "nigeria-security-incidents")
	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{
		"ID", "Title", "State", "Type", "Date",
		"Total Casualties", "Christian Casualties", "Muslim Casualties",
		"Churches Destroyed", "Mosques Destroyed", "Source", "URL",
	})
	for _, inc := range incidents {
		_ = w.Write([]string{
			inc.ID,
			inc.Title,
			inc.Location.State,
			string(inc.Type),
			inc.Date.Format(time.RFC3339),
			strconv.Itoa(inc.Casualties.Total),
			strconv.Itoa(inc.Casualties.Christians),
			strconv.Itoa(inc.Casualties.Muslims),
			strconv.Itoa(inc.BuildingsDestroyed.Churches),
			strconv.Itoa(inc.BuildingsDestroyed.Mosques),
			inc.Source,
			inc.URL,
		})
	}
	w.Flush()
}

// exportArticles streams the article list as CSV.
func (s *Server) exportArticles(c *gin.Context) {
	snap := s.ctrl.Snapshot()

	setCSVHeaders(c, "nigeria-security-articles")
	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"Title", "Source", "Published Date", "Description", "URL"})
	for _, a := range snap.Articles {
		_ = w.Write([]string{
			a.Title,
			a.Source.Name,
			a.PublishedAt.Format(time.RFC3339),
			a.Description,
			a.URL,
		})
	}
	w.Flush()
}

func setCSVHeaders(c *gin.Context, prefix string) {
	filename := fmt.Sprintf("%s-%s.csv", prefix, time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)
}
