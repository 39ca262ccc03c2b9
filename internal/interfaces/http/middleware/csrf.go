package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"stockdesk/internal/shared/utils"
)

// CSRF validates the double-submit token on mutating requests. The token may come
// from the csrf_token form field or the X-CSRF-Token header and must equal the cookie.
func CSRF(onFailure gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if isSafeMethod(c.Request.Method) {
			c.Next()
			return
		}

		cookieToken, err := c.Cookie(utils.CSRFTokenCookie)
		if err != nil || cookieToken == "" {
			onFailure(c)
			c.Abort()
			return
		}

		submitted := c.GetHeader(utils.CSRFTokenHeader)
		if submitted == "" {
			submitted = c.PostForm(utils.CSRFFormField)
		}

		if subtle.ConstantTimeCompare([]byte(cookieToken), []byte(submitted)) != 1 {
			onFailure(c)
			c.Abort()
			return
		}

		c.Next()
	}
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}
