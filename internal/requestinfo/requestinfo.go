// internal/requestinfo/requestinfo.go
//
// Visitor facts derived from the request headers: who is browsing (Agent)
// and from where (Origin).  Pages use them for the device class on <body>
// and the footer location line, and the access log records them per
// request.
//
// Origin lookups need a MaxMind City database (paths.geoip).  Without one
// Origin carries only the client address.

package requestinfo

import (
	"context"
	"fmt"
	"net"
	"strings"
	"sync/atomic"
	"time"

	"github.com/avct/uasurfer"
	"github.com/oschwald/geoip2-golang"
	"go.uber.org/zap"
)

// Agent is the parsed User-Agent plus the preferred language.
type Agent struct {
	Browser string // "Chrome", "Firefox"
	Version string // major.minor, "" when unknown
	OS      string // "macOS", "Windows", "iOS"
	Device  string // lower-case device class: desktop, phone, tablet, tv, other
	Bot     bool
	Lang    string // first Accept-Language tag, lower-cased
}

// Origin is the client address and its best-effort location.
type Origin struct {
	IP      net.IP
	Country string // ISO code
	City    string
}

// RequestInfo is attached to the request context by Enrich.
type RequestInfo struct {
	Agent    Agent
	Origin   Origin
	Received time.Time
}

// Located reports whether the geo database placed the client.
func (i *RequestInfo) Located() bool { return i != nil && i.Origin.Country != "" }

// Fields returns the zap fields the access log carries for this visitor.
func (i *RequestInfo) Fields() []zap.Field {
	if i == nil {
		return nil
	}
	fs := []zap.Field{
		zap.String("browser", i.Agent.Browser),
		zap.String("device", i.Agent.Device),
		zap.Bool("bot", i.Agent.Bot),
	}
	if i.Origin.IP != nil {
		fs = append(fs, zap.String("client_ip", i.Origin.IP.String()))
	}
	if i.Origin.Country != "" {
		fs = append(fs, zap.String("country", i.Origin.Country))
	}
	return fs
}

/*──────────────────────────── context ──────────────────────────────────────*/

type ctxKey struct{}

// NewContext returns a copy of ctx carrying info.
func NewContext(ctx context.Context, info *RequestInfo) context.Context {
	return context.WithValue(ctx, ctxKey{}, info)
}

// FromContext returns the info stored by Enrich, or nil.
func FromContext(ctx context.Context) *RequestInfo {
	v, _ := ctx.Value(ctxKey{}).(*RequestInfo)
	return v
}

/*──────────────────────────── geo database ─────────────────────────────────*/

// cityLookup is the slice of *geoip2.Reader used here.
type cityLookup interface {
	City(ip net.IP) (*geoip2.City, error)
	Close() error
}

var geo atomic.Pointer[cityLookup]

// InitGeo opens the City database at path.  An empty path disables lookups.
func InitGeo(path string) error {
	if path == "" {
		return nil
	}
	r, err := geoip2.Open(path)
	if err != nil {
		return fmt.Errorf("requestinfo: open geo db %s: %w", path, err)
	}
	var l cityLookup = r
	geo.Store(&l)
	return nil
}

// CloseGeo releases the database, if open.
func CloseGeo() error {
	p := geo.Swap(nil)
	if p == nil {
		return nil
	}
	return (*p).Close()
}

func locate(ip net.IP) Origin {
	o := Origin{IP: ip}
	p := geo.Load()
	if p == nil || ip == nil || !isPublic(ip) {
		return o
	}
	rec, err := (*p).City(ip)
	if err != nil {
		zap.L().Debug("geo lookup", zap.Stringer("ip", ip), zap.Error(err))
		return o
	}
	o.Country = rec.Country.IsoCode
	o.City = rec.City.Names["en"]
	return o
}

func isPublic(ip net.IP) bool {
	return !ip.IsLoopback() && !ip.IsPrivate() && !ip.IsUnspecified() && !ip.IsLinkLocalUnicast()
}

/*──────────────────────────── user agent ───────────────────────────────────*/

func parseAgent(header, acceptLang string) Agent {
	u := uasurfer.Parse(header)

	a := Agent{
		Browser: strings.TrimPrefix(u.Browser.Name.String(), "Browser"),
		OS:      strings.TrimPrefix(u.OS.Name.String(), "OS"),
		Device:  deviceClass(u.DeviceType),
		Bot:     u.IsBot(),
		Lang:    firstLang(acceptLang),
	}
	if a.OS == "MacOSX" {
		a.OS = "macOS"
	}
	if v := u.Browser.Version; v.Major > 0 {
		a.Version = fmt.Sprintf("%d.%d", v.Major, v.Minor)
	}
	return a
}

func deviceClass(dt uasurfer.DeviceType) string {
	switch dt {
	case uasurfer.DeviceComputer:
		return "desktop"
	case uasurfer.DevicePhone:
		return "phone"
	case uasurfer.DeviceTablet:
		return "tablet"
	case uasurfer.DeviceTV:
		return "tv"
	default:
		return "other"
	}
}

// firstLang returns the first tag of an Accept-Language value without its
// q-weight.
func firstLang(al string) string {
	tag, _, _ := strings.Cut(al, ",")
	tag, _, _ = strings.Cut(tag, ";")
	return strings.ToLower(strings.TrimSpace(tag))
}
