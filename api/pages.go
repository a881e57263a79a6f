package api

import (
	"net/http"

	"enigme/event-site/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) Clue(c *gin.Context) {
	c.HTML(http.StatusOK, "clue.html", gin.H{
		"title": a.siteTitle,
	})
}

func (a *API) Finale(c *gin.Context) {
	// The morse sentence is written directly into the template
	c.HTML(http.StatusOK, "final.html", gin.H{
		"title": a.siteTitle,
	})
}

func (a *API) Tromperie(c *gin.Context) {
	a.guestbookView(c, "tromperie.html", "/tromperie")
}

func (a *API) Verite(c *gin.Context) {
	a.guestbookView(c, "verite.html", "/verite")
}

// guestbookView renders one of the two framings of the same entries
func (a *API) guestbookView(c *gin.Context, tmpl, path string) {
	requestID := c.GetString("requestID")

	entries, err := a.Store.ListRecent(50)
	if err != nil {
		c.String(http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to list entries", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	csrf, err := session.EnsureCSRF(c)
	if err != nil {
		c.String(http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to mint CSRF token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.HTML(http.StatusOK, tmpl, gin.H{
		"title":       a.siteTitle,
		"entries":     entries,
		"accountText": a.accountText,
		"error":       c.Query("error"),
		"csrf":        csrf,
		"redirect":    path,
	})
}

func (a *API) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", gin.H{
		"title": a.siteTitle,
	})
}
