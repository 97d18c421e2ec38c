// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements RedactingLogger, the access logger mounted by the
// router. It never logs bodies. Query strings and header values are scrubbed
// of emails, phone numbers and UUIDs; sensitive headers and configured query
// parameters (the free-text search, for instance) are masked outright.
//
// Like Logger, it attaches a request-scoped logger to the Gin context and to
// the request context.
package middleware

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const redacted = "[REDACTED]"

// UUIDs go first so the looser phone pattern cannot eat their digit groups.
var (
	uuidRE  = regexp.MustCompile(`(?i)\b[0-9a-f]{8}\-[0-9a-f]{4}\-[1-5][0-9a-f]{3}\-[89ab][0-9a-f]{3}\-[0-9a-f]{12}\b`)
	emailRE = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
	phoneRE = regexp.MustCompile(`\b(?:\+?\d{1,3}[ .-]?)?(?:\(?\d{2,4}\)?[ .-]?)?\d{3,4}[ .-]?\d{4}\b`)
)

// RedactOptions extends the built-in masking.
type RedactOptions struct {
	// MaskHeaders are masked in addition to Authorization, Cookie, Set-Cookie
	// and X-API-Key. Case-insensitive.
	MaskHeaders []string
	// MaskQuery names query parameters whose values are masked entirely.
	MaskQuery []string
}

func scrub(s string) string {
	if s == "" {
		return s
	}
	s = uuidRE.ReplaceAllString(s, "[REDACTED:id]")
	s = emailRE.ReplaceAllString(s, "[REDACTED:email]")
	return phoneRE.ReplaceAllString(s, "[REDACTED:phone]")
}

// scrubQuery masks the values of the listed parameters and scrubs the rest,
// keeping the original order and encoding.
func scrubQuery(raw string, mask map[string]struct{}) string {
	if raw == "" || len(mask) == 0 {
		return scrub(raw)
	}
	pairs := strings.Split(raw, "&")
	for i, p := range pairs {
		k, _, _ := strings.Cut(p, "=")
		if name, err := url.QueryUnescape(k); err == nil {
			if _, ok := mask[name]; ok {
				pairs[i] = k + "=" + redacted
			}
		}
	}
	return scrub(strings.Join(pairs, "&"))
}

// RedactingLogger logs one scrubbed line per request at a level matching the
// status.
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	maskHeaders := map[string]struct{}{
		"authorization": {},
		"cookie":        {},
		"set-cookie":    {},
		"x-api-key":     {},
	}
	for _, h := range opts.MaskHeaders {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			maskHeaders[h] = struct{}{}
		}
	}
	maskQuery := make(map[string]struct{}, len(opts.MaskQuery))
	for _, q := range opts.MaskQuery {
		maskQuery[q] = struct{}{}
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := routeOf(c)
		query := scrubQuery(c.Request.URL.RawQuery, maskQuery)

		headers := make(map[string]string, len(c.Request.Header))
		for k, vv := range c.Request.Header {
			if _, ok := maskHeaders[strings.ToLower(k)]; ok {
				headers[k] = redacted
				continue
			}
			headers[k] = scrub(strings.Join(vv, ", "))
		}

		reqID := RequestIDFrom(c)
		if reqID == "" {
			reqID = c.GetHeader(HeaderRequestID)
		}
		l := log.With().
			Str("request_id", reqID).
			Str("method", c.Request.Method).
			Str("path", path).
			Logger()
		attachLogger(c, l)

		c.Next()

		ev := l.With().
			Str("query", query).
			Int("status", c.Writer.Status()).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Interface("headers", headers).
			Logger()
		emit(&ev, c)
	}
}
