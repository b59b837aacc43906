package requestinfo

import (
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oschwald/geoip2-golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yanizio/campus/internal/middleware"
)

const chromeMac = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.6367.91 Safari/537.36"

type fakeCities map[string]*geoip2.City

func (f fakeCities) City(ip net.IP) (*geoip2.City, error) {
	if c, ok := f[ip.String()]; ok {
		return c, nil
	}
	return nil, errors.New("not found")
}

func (fakeCities) Close() error { return nil }

func useFakeGeo(t *testing.T) {
	t.Helper()
	paris := &geoip2.City{}
	paris.Country.IsoCode = "FR"
	paris.City.Names = map[string]string{"en": "Paris"}

	var l cityLookup = fakeCities{"203.0.113.9": paris}
	geo.Store(&l)
	t.Cleanup(func() { _ = CloseGeo() })
}

func capture(r *http.Request) *RequestInfo {
	var got *RequestInfo
	Enrich(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	})).ServeHTTP(httptest.NewRecorder(), r)
	return got
}

func TestEnrich_AttachesInfo(t *testing.T) {
	useFakeGeo(t)

	req := httptest.NewRequest(http.MethodGet, "/catalog?sort=name", nil)
	req.Header.Set("User-Agent", chromeMac)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")

	got := capture(req)
	require.NotNil(t, got)
	assert.Equal(t, "Chrome", got.Agent.Browser)
	assert.Equal(t, "124.0", got.Agent.Version)
	assert.Equal(t, "macOS", got.Agent.OS)
	assert.Equal(t, "desktop", got.Agent.Device)
	assert.False(t, got.Agent.Bot)
	assert.Equal(t, "en-us", got.Agent.Lang)
	assert.Equal(t, "203.0.113.9", got.Origin.IP.String())
	assert.Equal(t, "FR", got.Origin.Country)
	assert.Equal(t, "Paris", got.Origin.City)
	assert.True(t, got.Located())
	assert.False(t, got.Received.IsZero())
}

func TestEnrich_PrivateAddressSkipsGeo(t *testing.T) {
	useFakeGeo(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.1.2.3:4444"

	got := capture(req)
	assert.Equal(t, "10.1.2.3", got.Origin.IP.String())
	assert.False(t, got.Located())
}

func TestEnrich_AnnotatesAccessLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	defer zap.ReplaceGlobals(zap.New(core))()
	useFakeGeo(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("User-Agent", chromeMac)
	req.Header.Set("X-Real-Ip", "203.0.113.9")

	h := middleware.Logging(Enrich(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))
	h.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "Chrome", fields["browser"])
	assert.Equal(t, "desktop", fields["device"])
	assert.Equal(t, false, fields["bot"])
	assert.Equal(t, "FR", fields["country"])
	assert.Equal(t, "203.0.113.9", fields["client_ip"])
}

func TestFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, FromContext(req.Context()))
}

func TestClientIP_Fallbacks(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-Ip", "198.51.100.4")
	assert.Equal(t, "198.51.100.4", clientIP(req).String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:5555"
	assert.Equal(t, "192.0.2.1", clientIP(req).String())
}

func TestFirstLang(t *testing.T) {
	assert.Equal(t, "", firstLang(""))
	assert.Equal(t, "fr", firstLang("fr;q=0.8, en"))
	assert.Equal(t, "de-at", firstLang(" de-AT ,de"))
}

func TestFields_Nil(t *testing.T) {
	var i *RequestInfo
	assert.Nil(t, i.Fields())
	assert.False(t, i.Located())
}

func TestInitGeo_EmptyPathDisabled(t *testing.T) {
	require.NoError(t, InitGeo(""))
	assert.NoError(t, CloseGeo())
	assert.Error(t, InitGeo("/nonexistent/GeoLite2-City.mmdb"))
}
