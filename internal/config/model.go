// internal/config/model.go
//
// Typed configuration model.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from four overlay layers:
//
//   • built-in defaults                        – confmap provider,
//   • optional `.env`                          – dotenv values,
//   • `conf/global.yaml`                       – primary static file,
//   • `CAMPUS_`-prefixed environment overrides – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is resolved
// through the Vault client *before* unmarshalling, so the model never
// stores Vault URIs, only plain strings.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`.
//   • `Paths.Root` is filled at runtime; YAML must not try to set it.
//   • Oxford commas, two spaces after periods.  No em-dash.

package config

import "time"

//
// App section
//

// App describes the deployment.  Environment is read by the locals
// composer; blank means "production".
type App struct {
	Name        string `koanf:"name"`
	Environment string `koanf:"environment"`
}

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

//
// Database section
//

// Database holds the MySQL DSN and pool sizes.  The DSN is usually a
// `vault:` reference in production.
type Database struct {
	DSN     string `koanf:"dsn"      validate:"required"`
	MaxOpen int    `koanf:"max_open" validate:"gte=1"`
	MaxIdle int    `koanf:"max_idle" validate:"gte=0"`
	Migrate bool   `koanf:"migrate"`
}

//
// Session section
//

// Session configures signed cookie sessions and CSRF tokens.
type Session struct {
	Secret string        `koanf:"secret"  validate:"required,min=32"`
	MaxAge time.Duration `koanf:"max_age" validate:"gte=0"`
}

//
// Log section
//

// Log configures the zap logger.
type Log struct {
	Level string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
}

//
// Paths section
//

// Paths locates on-disk assets.  Relative entries are resolved against Root
// after loading.  Root is discovered at runtime (CAMPUS_ROOT or the first
// parent holding conf/global.yaml).
type Paths struct {
	Root      string `koanf:"-"`
	Templates string `koanf:"templates"`
	Static    string `koanf:"static"`
	GeoIP     string `koanf:"geoip"` // optional GeoLite2-City.mmdb
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	App      App      `koanf:"app"`
	HTTP     HTTP     `koanf:"http"`
	Database Database `koanf:"database"`
	Session  Session  `koanf:"session"`
	Log      Log      `koanf:"log"`
	Paths    Paths    `koanf:"paths"`
}
