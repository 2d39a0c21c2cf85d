package postgres

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"stay/config"
	"stay/shared/constant"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	defaultMaxOpenConnection = 10
	defaultMaxIdleConnection = 10
	connectionNameRead       = "read"
	connectionNameWrite      = "write"
)

// Connection splits reads from writes. Capacity checks always run on Write, inside a transaction.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// Endpoint is one postgres server the service talks to.
type Endpoint struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	SSLMode  string
}

func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres

	return &Connection{
		Read:  connect(connectionNameRead, ReadEndpoint(cfg), pg.MaxRetry, pg.RetryWaitTime, pool(cfg)),
		Write: connect(connectionNameWrite, WriteEndpoint(cfg), pg.MaxRetry, pg.RetryWaitTime, pool(cfg)),
	}
}

func ReadEndpoint(cfg *config.Config) Endpoint {
	r := cfg.DB.Postgres.Read

	return Endpoint{r.Host, r.Port, r.Username, r.Password, dbName(cfg, r.Name), r.SSLMode}
}

func WriteEndpoint(cfg *config.Config) Endpoint {
	w := cfg.DB.Postgres.Write

	return Endpoint{w.Host, w.Port, w.Username, w.Password, dbName(cfg, w.Name), w.SSLMode}
}

func dbName(cfg *config.Config, baseName string) string {
	return cfg.DB.Postgres.Prefix + baseName
}

// DSN renders the endpoint as a postgres URL. extra is appended as query parameters.
func (e Endpoint) DSN(extra url.Values) string {
	query := url.Values{}
	query.Set("sslmode", e.SSLMode)

	for key, values := range extra {
		for _, v := range values {
			query.Add(key, v)
		}
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(e.Username, e.Password),
		Host:     net.JoinHostPort(e.Host, e.Port),
		Path:     "/" + e.Name,
		RawQuery: query.Encode(),
	}

	return u.String()
}

type poolSettings struct {
	maxOpen     int
	maxIdle     int
	maxLifetime time.Duration
}

func pool(cfg *config.Config) poolSettings {
	pg := cfg.DB.Postgres

	settings := poolSettings{
		maxOpen:     defaultMaxOpenConnection,
		maxIdle:     defaultMaxIdleConnection,
		maxLifetime: time.Duration(pg.ConnMaxLifetimeSeconds) * time.Second,
	}

	if pg.MaxOpenConns > 0 {
		settings.maxOpen = pg.MaxOpenConns
	}

	if pg.MaxIdleConns > 0 {
		settings.maxIdle = min(pg.MaxIdleConns, settings.maxOpen)
	}

	return settings
}

// connect retries until the server answers or maxRetry attempts are spent, then returns nil.
// Every reservation holds one write connection for its whole lock window, so the pool
// size bounds how many rooms can be reserved at once.
func connect(name string, endpoint Endpoint, maxRetry, waitTime int, settings poolSettings) *sqlx.DB {
	logger := log.With().
		Str("name", name).
		Str("host", endpoint.Host).
		Str("port", endpoint.Port).
		Str("dbName", endpoint.Name).
		Logger()

	for retry := range max(1, maxRetry) {
		sqlDB, err := sqlx.Connect("postgres", endpoint.DSN(nil))
		if err == nil {
			sqlDB.SetMaxOpenConns(settings.maxOpen)
			sqlDB.SetMaxIdleConns(settings.maxIdle)
			sqlDB.SetConnMaxLifetime(settings.maxLifetime)

			logger.Info().Int("maxOpen", settings.maxOpen).Msg("Connected to database")

			return sqlDB
		}

		logger.Error().Err(err).Int("attempt", retry+1).Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	return nil
}

// IsUniqueViolation reports whether err was raised by a unique constraint.
func IsUniqueViolation(err error) bool {
	return hasCode(err, constant.PqErrorCodeUniqueViolation)
}

// IsForeignKeyViolation reports whether err references a row that does not exist.
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, constant.PqErrorCodeFkViolation)
}

// IsCheckViolation reports whether err was raised by a CHECK constraint.
func IsCheckViolation(err error) bool {
	return hasCode(err, constant.PqErrorCodeCheckViolation)
}

func hasCode(err error, code string) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && string(pqErr.Code) == code
}

func (e Endpoint) String() string {
	return fmt.Sprintf("%s/%s", net.JoinHostPort(e.Host, e.Port), e.Name)
}
