package api

import (
	"net/http"
	"strconv"

	"enigme/event-site/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	errMsgLogin       = "Login required"
	errMsgBadPassword = "Wrong password"
)

func (a *API) AdminLoginPage(c *gin.Context) {
	requestID := c.GetString("requestID")

	csrf, err := session.EnsureCSRF(c)
	if err != nil {
		c.String(http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to mint CSRF token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.HTML(http.StatusOK, "admin_login.html", gin.H{
		"title": a.siteTitle,
		"error": c.Query("error"),
		"csrf":  csrf,
	})
}

type loginForm struct {
	Password string `form:"password"`
	CSRF     string `form:"csrf"`
}

// AdminLogin verifies the password against the startup hash and flips
// the session to admin. CSRF is only verified when a token was sent,
// the login form itself always embeds one
func (a *API) AdminLogin(c *gin.Context) {
	requestID := c.GetString("requestID")

	var f loginForm
	if err := c.ShouldBind(&f); err != nil {
		zap.L().Debug("Failed to bind login form", zap.Error(err), zap.String("requestID", requestID))
	}

	if f.CSRF != "" && !session.VerifyCSRF(c, f.CSRF) {
		redirectWithError(c, "/admin", errMsgCSRF)
		return
	}

	ok, err := a.Argon.VerifyPasswd(f.Password, a.adminHash)
	if err != nil {
		zap.L().Error("Failed to verify admin password", zap.Error(err), zap.String("requestID", requestID))
	}

	if !ok {
		redirectWithError(c, "/admin", errMsgBadPassword)
		return
	}

	if err := session.SetAdmin(c); err != nil {
		c.String(http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to save session", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.Redirect(http.StatusSeeOther, "/admin/panel")
}

func (a *API) AdminLogout(c *gin.Context) {
	if err := session.Clear(c); err != nil {
		zap.L().Error("Failed to clear session", zap.Error(err), zap.String("requestID", c.GetString("requestID")))
	}

	c.Redirect(http.StatusSeeOther, "/admin")
}

// RequireAdmin gates the admin-only routes. Anyone without an admin
// session is bounced back to the login form, entries are never
// rendered for them
func (a *API) RequireAdmin(c *gin.Context) {
	if !session.IsAdmin(c) {
		redirectWithError(c, "/admin", errMsgLogin)
		c.Abort()
		return
	}

	c.Next()
}

func (a *API) AdminPanel(c *gin.Context) {
	requestID := c.GetString("requestID")

	entries, err := a.Store.ListAll()
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

	c.HTML(http.StatusOK, "admin_panel.html", gin.H{
		"title":   a.siteTitle,
		"entries": entries,
		"error":   c.Query("error"),
		"csrf":    csrf,
	})
}

type deleteForm struct {
	ID   string `form:"id"`
	CSRF string `form:"csrf"`
}

func (a *API) AdminDelete(c *gin.Context) {
	requestID := c.GetString("requestID")

	var f deleteForm
	if err := c.ShouldBind(&f); err != nil {
		zap.L().Debug("Failed to bind delete form", zap.Error(err), zap.String("requestID", requestID))
	}

	if !session.VerifyCSRF(c, f.CSRF) {
		redirectWithError(c, "/admin/panel", errMsgCSRF)
		return
	}

	id, err := strconv.ParseUint(f.ID, 10, 64)
	if err != nil {
		redirectWithError(c, "/admin/panel", "Invalid entry id")
		return
	}

	// Deleting an id that's already gone is a no-op, the panel just
	// reloads without it either way
	if err := a.Store.DeleteByID(uint(id)); err != nil {
		c.String(http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to delete entry", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.Redirect(http.StatusSeeOther, "/admin/panel")
}
