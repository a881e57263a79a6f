package api

import (
	"errors"
	"net/http"
	"net/url"

	"enigme/event-site/internal/session"
	"enigme/event-site/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// User-facing messages for each way a submission can fail. They come
// back as the error query parameter and get echoed into the page
const (
	errMsgCSRF      = "Security check failed"
	errMsgSpam      = "Blocked as spam"
	errMsgEmpty     = "Name and message can't be empty"
	errMsgTooLong   = "Too long"
	errMsgBlocked   = "Inappropriate words are not allowed"
	errMsgRateLimit = "You're posting too often"
)

type signForm struct {
	Name     string `form:"name"`
	Message  string `form:"message"`
	Redirect string `form:"redirect"`
	Website  string `form:"website"`
	CSRF     string `form:"csrf"`
}

// Sign runs the whole submission pipeline. Every check failure turns
// into a 303 back to the originating page, only a storage failure is
// allowed to surface as a server error
func (a *API) Sign(c *gin.Context) {
	requestID := c.GetString("requestID")

	var f signForm
	if err := c.ShouldBind(&f); err != nil {
		zap.L().Debug("Failed to bind sign form", zap.Error(err), zap.String("requestID", requestID))
	}

	// Coerced before anything can redirect so a tampered target never
	// leaves the site, not even on an error bounce
	target := validators.SafeRedirect(f.Redirect)

	if !session.VerifyCSRF(c, f.CSRF) {
		redirectWithError(c, target, errMsgCSRF)
		return
	}

	// Honeypot. The field is hidden from humans, anything in it means
	// a bot filled out the form
	if f.Website != "" {
		redirectWithError(c, target, errMsgSpam)
		return
	}

	name, message, err := validators.EntryValidator(f.Name, f.Message, a.blockedWords)
	if err != nil {
		redirectWithError(c, target, validationMessage(err))
		return
	}

	// Checked after content validation on purpose: a submission only
	// spends a rate-limit slot once everything else passed
	ip := c.ClientIP()
	if !a.Posts.Allow(ip) {
		redirectWithError(c, target, errMsgRateLimit)
		return
	}

	if _, err := a.Store.Create(name, message, ip); err != nil {
		c.String(http.StatusInternalServerError, "Internal server error")

		zap.L().Error("Failed to create entry", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.Redirect(http.StatusSeeOther, target+"#guestbook")
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, validators.ErrEntryTooLong):
		return errMsgTooLong
	case errors.Is(err, validators.ErrEntryBlocked):
		return errMsgBlocked
	default:
		return errMsgEmpty
	}
}

func redirectWithError(c *gin.Context, target, msg string) {
	c.Redirect(http.StatusSeeOther, target+"?error="+url.QueryEscape(msg))
}
