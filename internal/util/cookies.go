package util

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const flashCookieName = "flash"

type FlashStatus string

const (
	FlashSuccess FlashStatus = "success"
	FlashError   FlashStatus = "error"
)

// Flash is a notification shown once, on the page rendered after a redirect.
type Flash struct {
	Status      FlashStatus `json:"status"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
}

// SetFlash stores flash in a cookie so it survives the redirect following a form submission.
func SetFlash(c *gin.Context, flash Flash) {
	b, err := json.Marshal(flash)
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookieName, base64.URLEncoding.EncodeToString(b), 0, "/", "", false, true)
}

// PopFlash returns the flash set by a previous request, if any, and clears it.
func PopFlash(c *gin.Context) (*Flash, bool) {
	value, err := c.Cookie(flashCookieName)
	if err != nil || value == "" {
		return nil, false
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookieName, "", -1, "/", "", false, true)

	b, err := base64.URLEncoding.DecodeString(value)
	if err != nil {
		return nil, false
	}
	var flash Flash
	if err := json.Unmarshal(b, &flash); err != nil {
		return nil, false
	}
	return &flash, true
}
