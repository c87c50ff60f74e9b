package middleware

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"phuongcosmetics.vn/storefront-web/internal/i18n"
)

func cookieNamed(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func encode(b []byte) string { return base64.RawURLEncoding.EncodeToString(b) }

func stack(t *testing.T, h http.Handler) http.Handler {
	t.Helper()
	ConfigureSession(SessionOptions{SigningKey: "test-signing-key"})
	bundle, err := i18n.Default()
	require.NoError(t, err)
	return HTMX(Session(Locale(bundle)(CSRF(VaryLocale(h)))))
}

func TestSessionCookieRoundTrip(t *testing.T) {
	var cartID string
	h := stack(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cartID = GetSession(r).EnsureCartID()
		_, _ = w.Write([]byte("ok"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, cartID)
	c := cookieNamed(t, rec, sessionCookieName)
	require.NotNil(t, c)
	require.True(t, c.HttpOnly)

	var second string
	h2 := stack(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		second = GetSession(r).EnsureCartID()
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	h2.ServeHTTP(httptest.NewRecorder(), req)
	require.Equal(t, cartID, second)
}

func TestSessionRejectsTamperedCookie(t *testing.T) {
	ConfigureSession(SessionOptions{SigningKey: "test-signing-key"})
	payload, err := json.Marshal(SessionData{ID: "forged", CartID: "cart-x"})
	require.NoError(t, err)
	forged := &http.Cookie{Name: sessionCookieName, Value: encode(payload) + "." + encode([]byte("bad-signature"))}

	var got *SessionData
	h := Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetSession(r)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(forged)
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, got)
	require.NotEqual(t, "forged", got.ID)
	require.Empty(t, got.CartID)
}

func TestSessionWrittenWithoutBody(t *testing.T) {
	ConfigureSession(SessionOptions{SigningKey: "test-signing-key"})
	h := Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/", nil))
	require.NotNil(t, cookieNamed(t, rec, sessionCookieName))
}

func TestConfigureSessionReportsEphemeralKey(t *testing.T) {
	require.True(t, ConfigureSession(SessionOptions{}))
	require.False(t, ConfigureSession(SessionOptions{SigningKey: "k", Secure: true}))
	require.True(t, sessionSecure)
	ConfigureSession(SessionOptions{SigningKey: "test-signing-key"})
}

func TestCSRFRejectsUnsafeRequestWithoutToken(t *testing.T) {
	h := stack(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodPost, "/products/p1/cart", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	require.Contains(t, rec.Body.String(), "csrf_invalid")
}

func TestCSRFAcceptsMatchingHeader(t *testing.T) {
	var token string
	first := stack(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token = CSRFToken(r)
	}))
	rec := httptest.NewRecorder()
	first.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, token)
	session := cookieNamed(t, rec, sessionCookieName)
	csrf := cookieNamed(t, rec, csrfCookieName)
	require.NotNil(t, session)
	require.NotNil(t, csrf)
	require.Equal(t, token, csrf.Value)

	called := false
	h := stack(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	}))
	req := httptest.NewRequest(http.MethodPost, "/products/p1/cart", nil)
	req.AddCookie(session)
	req.AddCookie(csrf)
	req.Header.Set(csrfHeaderName, token)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.True(t, called)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCSRFAcceptsFormField(t *testing.T) {
	var token string
	first := stack(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token = CSRFToken(r)
	}))
	rec := httptest.NewRecorder()
	first.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	h := stack(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	req := httptest.NewRequest(http.MethodPost, "/products/p1/cart", strings.NewReader(csrfFormField+"="+token))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookieNamed(t, rec, sessionCookieName))
	req.AddCookie(cookieNamed(t, rec, csrfCookieName))
	out := httptest.NewRecorder()
	h.ServeHTTP(out, req)
	require.Equal(t, http.StatusNoContent, out.Code)
}

func TestLocaleResolution(t *testing.T) {
	cases := []struct {
		name   string
		url    string
		header string
		cookie string
		want   string
	}{
		{name: "fallback", url: "/", want: "vi"},
		{name: "accept language", url: "/", header: "en-US,en;q=0.9", want: "en"},
		{name: "query wins", url: "/?hl=en", header: "vi", want: "en"},
		{name: "unsupported query ignored", url: "/?hl=fr", header: "en", want: "en"},
		{name: "cookie", url: "/", cookie: "en", want: "en"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got string
			h := stack(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = Lang(r)
			}))
			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
			if tc.header != "" {
				req.Header.Set("Accept-Language", tc.header)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: localeCookieName, Value: tc.cookie})
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			require.Equal(t, tc.want, got)
			require.Equal(t, tc.want, rec.Header().Get("Content-Language"))
			require.ElementsMatch(t, []string{"Accept-Language", "HX-Request"}, rec.Header().Values("Vary"))
		})
	}
}

func TestHTMXDetection(t *testing.T) {
	var is bool
	h := HTMX(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is = IsHTMX(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("HX-Request", "true")
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.True(t, is)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.False(t, is)
}

func TestAssetsWithCacheETag(t *testing.T) {
	fsys := fstest.MapFS{"css/app.css": {Data: []byte("body{}")}}
	h := http.StripPrefix("/assets", AssetsWithCache(fsys))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/css/app.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	etag := rec.Header().Get("ETag")
	require.True(t, strings.HasPrefix(etag, `W/"`))
	require.Contains(t, rec.Header().Get("Cache-Control"), "max-age=604800")

	req := httptest.NewRequest(http.MethodGet, "/assets/css/app.css", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotModified, rec.Code)
}
