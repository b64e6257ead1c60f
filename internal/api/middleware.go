package api

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/smazurov/lighthal/internal/logging"
)

const (
	authRealm      = `Basic realm="Lights HAL API"`
	authQueryParam = "auth"
)

// HTTPLoggingMiddleware logs each request to the "http" module logger,
// picking the level from the status.
func HTTPLoggingMiddleware(ctx huma.Context, next func(huma.Context)) {
	newHTTPLoggingMiddleware(logging.GetLogger("http"))(ctx, next)
}

func newHTTPLoggingMiddleware(logger *slog.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()

		method := ctx.Method()
		attrs := []slog.Attr{
			slog.String("method", method),
			slog.String("path", ctx.URL().Path),
			slog.String("remote_addr", ctx.RemoteAddr()),
		}
		if query := ctx.URL().RawQuery; query != "" {
			attrs = append(attrs, slog.String("query", redactQuery(query)))
		}

		next(ctx)

		status := ctx.Status()
		attrs = append(attrs,
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
		)

		level := slog.LevelInfo
		switch {
		case method == http.MethodOptions:
			level = slog.LevelDebug
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}
		logger.LogAttrs(ctx.Context(), level, "HTTP request completed", attrs...)
	}
}

// redactQuery masks the auth query parameter. Unparseable queries are
// dropped entirely rather than logged.
func redactQuery(raw string) string {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return "REDACTED"
	}
	if values.Has(authQueryParam) {
		values.Set(authQueryParam, "REDACTED")
	}
	return values.Encode()
}

var (
	errNoCredentials  = errors.New("authentication required")
	errBadCredentials = errors.New("invalid credentials format")
)

// requestCredentials reads basic auth from the Authorization header, or from
// the base64 "auth" query parameter that EventSource clients have to use.
func requestCredentials(ctx huma.Context) (user, pass string, err error) {
	encoded := ""
	if header := ctx.Header("Authorization"); header != "" {
		const prefix = "Basic "
		if !strings.HasPrefix(header, prefix) {
			return "", "", errBadCredentials
		}
		encoded = header[len(prefix):]
	} else {
		encoded = ctx.Query(authQueryParam)
	}
	if encoded == "" {
		return "", "", errNoCredentials
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", errBadCredentials
	}
	user, pass, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return "", "", errBadCredentials
	}
	return user, pass, nil
}

// basicAuthMiddleware guards operations that declare basicAuth security.
func basicAuthMiddleware(api huma.API, username, password string) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if op := ctx.Operation(); op != nil && len(op.Security) == 0 {
			next(ctx)
			return
		}

		user, pass, err := requestCredentials(ctx)
		if err != nil {
			ctx.SetHeader("WWW-Authenticate", authRealm)
			huma.WriteErr(api, ctx, http.StatusUnauthorized, err.Error())
			return
		}

		userOK := subtle.ConstantTimeCompare([]byte(user), []byte(username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(password)) == 1
		if !userOK || !passOK {
			ctx.SetHeader("WWW-Authenticate", authRealm)
			huma.WriteErr(api, ctx, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		next(ctx)
	}
}
