package store

import (
	"time"

	"confmatrix/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string
	Role    string
	Version string

	PG PGConfig
	CH CHConfig
}

// PGConfig configures Postgres
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	ConnectRetries int           // default 6
	PingTimeout    time.Duration // default 3s
}

// CHConfig configures ClickHouse
type CHConfig struct {
	Enabled     bool
	URL         string
	DialTimeout time.Duration
}

// FromEnv reads SERVICE_PGSQL_* and SERVICE_CLICKHOUSE_*
// a backend is enabled when its DBURL is set
func FromEnv(root config.Conf) Config {
	pg := root.Prefix("SERVICE_PGSQL_")
	ch := root.Prefix("SERVICE_CLICKHOUSE_")

	pgURL := pg.MayString("DBURL", "")
	chURL := ch.MayString("DBURL", "")
	return Config{
		PG: PGConfig{
			Enabled:        pgURL != "",
			URL:            pgURL,
			MaxConns:       int32(pg.MayInt("MAX_CONNS", 4)),
			LogSQL:         pg.MayBool("LOG_SQL", false),
			SlowQueryMs:    pg.MayInt("SLOW_MS", 500),
			ConnectRetries: pg.MayInt("CONNECT_RETRIES", 6),
			PingTimeout:    pg.MayDuration("PING_TIMEOUT", 3*time.Second),
		},
		CH: CHConfig{
			Enabled:     chURL != "",
			URL:         chURL,
			DialTimeout: ch.MayDuration("DIAL_TIMEOUT", 5*time.Second),
		},
	}
}
