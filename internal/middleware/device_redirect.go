package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/mileusna/useragent"
	"github.com/rs/zerolog/log"
)

const (
	noteQueryParam = "note"
	notePathPrefix = "/note/"
)

// IsMobile classifies a User-Agent. Phones and tablets are mobile; anything
// else, including an empty or unrecognized agent, is desktop.
func IsMobile(userAgent string) bool {
	if strings.TrimSpace(userAgent) == "" {
		return false
	}
	ua := useragent.Parse(userAgent)
	return ua.Mobile || ua.Tablet
}

// ResolveNoteRoute returns where a request for a note should be sent for the
// client's device, and false when the request should pass through.
//
// Mobile clients address a note as /note/{id}; desktop clients open it as a
// modal over the wall at /?note={id}. Other query parameters are kept.
func ResolveNoteRoute(userAgent, path string, query url.Values) (string, bool) {
	if IsMobile(userAgent) {
		noteID := query.Get(noteQueryParam)
		if noteID == "" {
			return "", false
		}
		rest := cloneValues(query)
		rest.Del(noteQueryParam)
		return withQuery(notePathPrefix+noteID, rest), true
	}

	if !strings.HasPrefix(path, notePathPrefix) {
		return "", false
	}
	noteID := strings.TrimPrefix(path, notePathPrefix)
	if noteID == "" {
		return "", false
	}
	rest := cloneValues(query)
	rest.Set(noteQueryParam, noteID)
	return withQuery("/", rest), true
}

// SkipDeviceRedirect reports whether the path is excluded from device routing:
// the API, framework assets and the favicon.
func SkipDeviceRedirect(c echo.Context) bool {
	path := c.Request().URL.Path
	switch {
	case path == "/api" || strings.HasPrefix(path, "/api/"):
		return true
	case strings.HasPrefix(path, "/_next/static/"), strings.HasPrefix(path, "/_next/image"):
		return true
	case path == "/favicon.ico":
		return true
	}
	return false
}

// DeviceRedirectConfig configures DeviceRedirectWithConfig
type DeviceRedirectConfig struct {
	// Skipper defines a function to skip the middleware. Defaults to SkipDeviceRedirect.
	Skipper echomw.Skipper
}

// DeviceRedirect returns the device routing middleware with default settings
func DeviceRedirect() echo.MiddlewareFunc {
	return DeviceRedirectWithConfig(DeviceRedirectConfig{})
}

// DeviceRedirectWithConfig returns a middleware that answers with a 307 when
// the note address does not match the client's device.
func DeviceRedirectWithConfig(config DeviceRedirectConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = SkipDeviceRedirect
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			req := c.Request()
			location, ok := ResolveNoteRoute(req.UserAgent(), req.URL.Path, req.URL.Query())
			if !ok {
				return next(c)
			}

			log.Debug().
				Str("path", req.URL.Path).
				Str("location", location).
				Msg("Device redirect")
			return c.Redirect(http.StatusTemporaryRedirect, location)
		}
	}
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
