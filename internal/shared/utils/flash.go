package utils

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const flashCookie = "flash"

// FlashKind selects the banner style of a flash message.
type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashWarning FlashKind = "warning"
	FlashDanger  FlashKind = "danger"
	FlashInfo    FlashKind = "info"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Kind    FlashKind `json:"k"`
	Message string    `json:"m"`
}

// AddFlash queues a message. Multiple calls within one request accumulate.
func AddFlash(c *gin.Context, kind FlashKind, message string) {
	pending := append(peekFlashes(c), Flash{Kind: kind, Message: message})
	c.Set(flashCookie, pending)

	raw, err := json.Marshal(pending)
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, base64.RawURLEncoding.EncodeToString(raw), 60, "/", "", false, true)
}

// PopFlashes returns queued messages and clears the cookie.
func PopFlashes(c *gin.Context) []Flash {
	flashes := peekFlashes(c)
	if len(flashes) > 0 {
		c.Set(flashCookie, []Flash(nil))
		c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	}
	return flashes
}

func peekFlashes(c *gin.Context) []Flash {
	if v, ok := c.Get(flashCookie); ok {
		flashes, _ := v.([]Flash)
		return flashes
	}
	value, err := c.Cookie(flashCookie)
	if err != nil || value == "" {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal(raw, &flashes); err != nil {
		return nil
	}
	return flashes
}

// RedirectWithFlash queues a message and issues a 303 to location.
func RedirectWithFlash(c *gin.Context, location string, kind FlashKind, message string) {
	AddFlash(c, kind, message)
	c.Redirect(http.StatusSeeOther, location)
}
