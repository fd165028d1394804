package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/goran-ethernal/ChainActivity/internal/common"
	"github.com/goran-ethernal/ChainActivity/internal/logger"
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config represents the complete configuration for a scan.
type Config struct {
	// Scanner contains chain access and pipeline settings
	Scanner ScannerConfig `yaml:"scanner" json:"scanner" toml:"scanner"`

	// DB selects and configures the durable store. Driver "memory" keeps results in process only.
	DB DatabaseConfig `yaml:"db" json:"db" toml:"db"`

	// Export configures the plain-text report
	Export ExportConfig `yaml:"export" json:"export" toml:"export"`

	// API configures the read-only query API
	API *APIConfig `yaml:"api,omitempty" json:"api,omitempty" toml:"api,omitempty"`

	// Logging contains logging configuration
	Logging *LoggingConfig `yaml:"logging,omitempty" json:"logging,omitempty" toml:"logging,omitempty"`

	// Metrics contains Prometheus metrics configuration
	Metrics *MetricsConfig `yaml:"metrics,omitempty" json:"metrics,omitempty" toml:"metrics,omitempty"`
}

// Default returns a configuration with every default applied and no endpoint set.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ScannerConfig represents chain access and pipeline settings.
type ScannerConfig struct {
	// RPCURL is the Ethereum RPC endpoint URL
	RPCURL string `yaml:"rpc_url" json:"rpc_url" toml:"rpc_url"`

	// ChunkSize is the block range per eth_getLogs call
	ChunkSize uint64 `yaml:"chunk_size" json:"chunk_size" toml:"chunk_size"`

	// Workers caps the number of concurrent per-log context fetches
	Workers int `yaml:"workers" json:"workers" toml:"workers"`

	// QueueSize bounds the number of per-log tasks waiting for a worker
	QueueSize int `yaml:"queue_size" json:"queue_size" toml:"queue_size"`

	// VerifyHeaderHash re-hashes every fetched header and requires it to equal the log's block hash.
	// Leave it off for chains whose headers go-ethereum cannot re-hash exactly.
	VerifyHeaderHash bool `yaml:"verify_header_hash" json:"verify_header_hash" toml:"verify_header_hash"`

	// RequestTimeout bounds every single RPC request
	RequestTimeout common.Duration `yaml:"request_timeout" json:"request_timeout" toml:"request_timeout"`

	// Retry contains RPC retry configuration with exponential backoff
	Retry *RetryConfig `yaml:"retry,omitempty" json:"retry,omitempty" toml:"retry,omitempty"`
}

// ApplyDefaults sets default values for optional scanner configuration fields.
func (s *ScannerConfig) ApplyDefaults() {
	if s.ChunkSize == 0 {
		s.ChunkSize = 2000
	}
	if s.Workers == 0 {
		s.Workers = 8
	}
	if s.QueueSize == 0 {
		s.QueueSize = s.Workers * 64 //nolint:mnd
	}
	if s.RequestTimeout.Duration == 0 {
		s.RequestTimeout = common.NewDuration(15 * time.Second) //nolint:mnd
	}
	if s.Retry == nil {
		s.Retry = &RetryConfig{}
	}
	s.Retry.ApplyDefaults()
}

// Validate checks the pipeline settings. The endpoint is checked separately by RequireEndpoint
// because it may be supplied on the command line.
func (s *ScannerConfig) Validate() error {
	if s.Workers < 1 {
		return fmt.Errorf("scanner.workers must be at least 1")
	}
	if s.ChunkSize < 1 {
		return fmt.Errorf("scanner.chunk_size must be at least 1")
	}
	if s.Retry != nil && s.Retry.MaxAttempts < 1 {
		return fmt.Errorf("scanner.retry.max_attempts must be at least 1")
	}
	return nil
}

// RequireEndpoint fails when no RPC endpoint is configured.
func (s *ScannerConfig) RequireEndpoint() error {
	if s.RPCURL == "" {
		return fmt.Errorf("scanner.rpc_url is required")
	}
	return nil
}

// RetryConfig represents RPC retry configuration with exponential backoff.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including initial request)
	MaxAttempts int `yaml:"max_attempts" json:"max_attempts" toml:"max_attempts"`

	// InitialBackoff is the initial backoff duration before first retry
	InitialBackoff common.Duration `yaml:"initial_backoff" json:"initial_backoff" toml:"initial_backoff"`

	// MaxBackoff is the maximum backoff duration
	MaxBackoff common.Duration `yaml:"max_backoff" json:"max_backoff" toml:"max_backoff"`

	// BackoffMultiplier is the multiplier for exponential backoff
	BackoffMultiplier float64 `yaml:"backoff_multiplier" json:"backoff_multiplier" toml:"backoff_multiplier"`
}

// ApplyDefaults sets default values for retry configuration.
func (r *RetryConfig) ApplyDefaults() {
	if r.MaxAttempts == 0 {
		r.MaxAttempts = 3
	}
	if r.InitialBackoff.Duration == 0 {
		r.InitialBackoff = common.NewDuration(500 * time.Millisecond) //nolint:mnd
	}
	if r.MaxBackoff.Duration == 0 {
		r.MaxBackoff = common.NewDuration(10 * time.Second) //nolint:mnd
	}
	if r.BackoffMultiplier == 0 {
		r.BackoffMultiplier = 2.0
	}
}

// DatabaseConfig represents database configuration.
type DatabaseConfig struct {
	// Driver is one of "memory", "sqlite" or "postgres"
	Driver string `yaml:"driver" json:"driver" toml:"driver"`

	// Path is the file path to the SQLite database
	Path string `yaml:"path" json:"path" toml:"path"`

	// DSN is the PostgreSQL connection string
	DSN string `yaml:"dsn" json:"dsn" toml:"dsn"`

	// JournalMode sets the SQLite journal mode (e.g., "WAL", "DELETE")
	JournalMode string `yaml:"journal_mode" json:"journal_mode" toml:"journal_mode"`

	// Synchronous sets the synchronization level ("FULL", "NORMAL", "OFF")
	Synchronous string `yaml:"synchronous" json:"synchronous" toml:"synchronous"`

	// BusyTimeout is the time in milliseconds to wait when the database is locked
	BusyTimeout int `yaml:"busy_timeout" json:"busy_timeout" toml:"busy_timeout"`

	// CacheSize is the size of the page cache (negative = KB, positive = pages)
	CacheSize int `yaml:"cache_size" json:"cache_size" toml:"cache_size"`

	// MaxOpenConnections is the maximum number of open database connections
	MaxOpenConnections int `yaml:"max_open_connections" json:"max_open_connections" toml:"max_open_connections"`

	// MaxIdleConnections is the maximum number of idle connections in the pool
	MaxIdleConnections int `yaml:"max_idle_connections" json:"max_idle_connections" toml:"max_idle_connections"`

	// Maintenance contains optional SQLite maintenance settings run after a scan
	Maintenance *MaintenanceConfig `yaml:"maintenance,omitempty" json:"maintenance,omitempty" toml:"maintenance,omitempty"`
}

// ApplyDefaults sets default values for optional database configuration fields.
func (d *DatabaseConfig) ApplyDefaults() {
	if d.Driver == "" {
		d.Driver = DriverMemory
	}
	if d.JournalMode == "" {
		d.JournalMode = "WAL"
	}
	if d.Synchronous == "" {
		d.Synchronous = "NORMAL"
	}
	if d.BusyTimeout == 0 {
		d.BusyTimeout = 5000
	}
	if d.CacheSize == 0 {
		d.CacheSize = 10000
	}
	if d.MaxOpenConnections == 0 {
		d.MaxOpenConnections = 25
	}
	if d.MaxIdleConnections == 0 {
		d.MaxIdleConnections = 5
	}
	if d.Maintenance != nil {
		d.Maintenance.ApplyDefaults()
	}
}

// Validate checks the driver specific settings.
func (d *DatabaseConfig) Validate() error {
	switch d.Driver {
	case DriverMemory:
	case DriverSQLite:
		if d.Path == "" {
			return fmt.Errorf("db.path is required for the sqlite driver")
		}
	case DriverPostgres:
		if d.DSN == "" {
			return fmt.Errorf("db.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("db.driver must be one of: memory, sqlite, postgres")
	}

	if !slices.Contains([]string{"WAL", "DELETE", "TRUNCATE", "PERSIST", "MEMORY"}, d.JournalMode) {
		return fmt.Errorf("db.journal_mode must be one of: WAL, DELETE, TRUNCATE, PERSIST, MEMORY")
	}

	if !slices.Contains([]string{"FULL", "NORMAL", "OFF"}, d.Synchronous) {
		return fmt.Errorf("db.synchronous must be one of: FULL, NORMAL, OFF")
	}

	if d.Maintenance != nil {
		if err := d.Maintenance.Validate(); err != nil {
			return fmt.Errorf("db.maintenance: %w", err)
		}
	}

	return nil
}

// IsDurable reports whether scan results are written to a store.
func (d *DatabaseConfig) IsDurable() bool {
	return d.Driver == DriverSQLite || d.Driver == DriverPostgres
}

// MaintenanceConfig configures SQLite maintenance after a scan.
type MaintenanceConfig struct {
	// Enabled controls whether maintenance runs once the scan completes
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// Vacuum also runs VACUUM after the WAL checkpoint
	Vacuum bool `yaml:"vacuum" json:"vacuum" toml:"vacuum"`

	// WALCheckpointMode controls the WAL checkpoint aggressiveness
	// Options: PASSIVE, FULL, RESTART, TRUNCATE
	WALCheckpointMode string `yaml:"wal_checkpoint_mode" json:"wal_checkpoint_mode" toml:"wal_checkpoint_mode"`
}

// ApplyDefaults sets default values for optional maintenance configuration fields.
func (m *MaintenanceConfig) ApplyDefaults() {
	if m.WALCheckpointMode == "" {
		m.WALCheckpointMode = "TRUNCATE"
	}
}

// Validate checks if the maintenance configuration is valid.
func (m *MaintenanceConfig) Validate() error {
	if m.WALCheckpointMode != "" {
		validModes := []string{"PASSIVE", "FULL", "RESTART", "TRUNCATE"}
		if !slices.Contains(validModes, m.WALCheckpointMode) {
			return fmt.Errorf("wal_checkpoint_mode: must be one of: PASSIVE, FULL, RESTART, TRUNCATE")
		}
	}

	return nil
}

// ExportConfig configures the plain-text report.
type ExportConfig struct {
	// Enabled writes the report after a successful scan
	Enabled *bool `yaml:"enabled,omitempty" json:"enabled,omitempty" toml:"enabled,omitempty"`

	// Path is the destination file
	Path string `yaml:"path" json:"path" toml:"path"`

	// RecentEvents is how many of the most recent events are listed per address
	RecentEvents int `yaml:"recent_events" json:"recent_events" toml:"recent_events"`

	// TopAddresses is the size of the most active ranking in the summary
	TopAddresses int `yaml:"top_addresses" json:"top_addresses" toml:"top_addresses"`
}

// ApplyDefaults sets default values for the export configuration.
func (e *ExportConfig) ApplyDefaults() {
	if e.Enabled == nil {
		enabled := true
		e.Enabled = &enabled
	}
	if e.Path == "" {
		e.Path = "activity_report.txt"
	}
	if e.RecentEvents == 0 {
		e.RecentEvents = 10
	}
	if e.TopAddresses == 0 {
		e.TopAddresses = 10
	}
}

// IsEnabled reports whether the report should be written.
func (e *ExportConfig) IsEnabled() bool {
	return e.Enabled == nil || *e.Enabled
}

// APIConfig configures the query API server.
type APIConfig struct {
	// Enabled controls whether the API server is started
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// ListenAddress is the address to bind, "host:port" or ":port"
	ListenAddress string `yaml:"listen_address" json:"listen_address" toml:"listen_address"`

	ReadTimeout  common.Duration `yaml:"read_timeout" json:"read_timeout" toml:"read_timeout"`
	WriteTimeout common.Duration `yaml:"write_timeout" json:"write_timeout" toml:"write_timeout"`
	IdleTimeout  common.Duration `yaml:"idle_timeout" json:"idle_timeout" toml:"idle_timeout"`

	// CORS configures cross-origin access
	CORS CORSConfig `yaml:"cors" json:"cors" toml:"cors"`
}

// CORSConfig configures cross-origin resource sharing.
type CORSConfig struct {
	Enabled        bool     `yaml:"enabled" json:"enabled" toml:"enabled"`
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins" toml:"allowed_origins"`
}

// ApplyDefaults sets default values for the API configuration.
func (a *APIConfig) ApplyDefaults() {
	if a.ListenAddress == "" {
		a.ListenAddress = ":8080"
	}
	if a.ReadTimeout.Duration == 0 {
		a.ReadTimeout = common.NewDuration(15 * time.Second) //nolint:mnd
	}
	if a.WriteTimeout.Duration == 0 {
		a.WriteTimeout = common.NewDuration(15 * time.Second) //nolint:mnd
	}
	if a.IdleTimeout.Duration == 0 {
		a.IdleTimeout = common.NewDuration(60 * time.Second) //nolint:mnd
	}
	if a.CORS.Enabled && len(a.CORS.AllowedOrigins) == 0 {
		a.CORS.AllowedOrigins = []string{"*"}
	}
}

// LoggingConfig configures logging behavior with per-component log levels.
type LoggingConfig struct {
	// DefaultLevel is the default log level for all components
	// Options: "debug", "info", "warn", "error"
	DefaultLevel string `yaml:"default_level" json:"default_level" toml:"default_level"`

	// Development enables development mode (stack traces, console encoder)
	Development bool `yaml:"development" json:"development" toml:"development"`

	// ComponentLevels sets log levels for specific components
	// Available components:
	//   - scanner: scan orchestration
	//   - chain-reader: log and context fetching
	//   - normalizer: log decoding
	//   - aggregator: participant aggregation
	//   - store: persistence
	//   - maintenance: database maintenance
	//   - report: report export
	//   - api: query API
	ComponentLevels map[string]string `yaml:"component_levels,omitempty" json:"component_levels,omitempty" toml:"component_levels,omitempty"` //nolint:lll
}

// ApplyDefaults sets default values for optional logging configuration fields.
func (l *LoggingConfig) ApplyDefaults() {
	if l.DefaultLevel == "" {
		l.DefaultLevel = "info"
	}
	if l.ComponentLevels == nil {
		l.ComponentLevels = make(map[string]string)
	}
}

// Validate checks if the logging configuration is valid.
func (l *LoggingConfig) Validate() error {
	if l.DefaultLevel != "" {
		if _, valid := logger.ValidLogLevels[common.Canonical(l.DefaultLevel)]; !valid {
			return fmt.Errorf("logging.default_level: must be one of: debug, info, warn, error")
		}
	}

	for component, level := range l.ComponentLevels {
		if _, validComponent := common.AllComponents[common.Canonical(component)]; !validComponent {
			return fmt.Errorf("logging.component_levels: unknown component '%s'", component)
		}

		if _, valid := logger.ValidLogLevels[common.Canonical(level)]; !valid {
			return fmt.Errorf("logging.component_levels[%s]: must be one of: debug, info, warn, error", component)
		}
	}

	return nil
}

// GetComponentLevel returns the log level for a specific component.
// Falls back to DefaultLevel if no component-specific level is set.
func (l *LoggingConfig) GetComponentLevel(component string) string {
	if l == nil {
		return "info"
	}
	if level, ok := l.ComponentLevels[component]; ok {
		return common.Canonical(level)
	}
	return l.GetDefaultLevel()
}

// GetDefaultLevel returns the default log level.
func (l *LoggingConfig) GetDefaultLevel() string {
	if l == nil || l.DefaultLevel == "" {
		return "info"
	}
	return common.Canonical(l.DefaultLevel)
}

// IsDevelopment returns whether development mode is enabled.
func (l *LoggingConfig) IsDevelopment() bool {
	return l != nil && l.Development
}

// MetricsConfig configures Prometheus metrics exposition.
type MetricsConfig struct {
	// Enabled controls whether metrics collection and HTTP endpoint are active
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// ListenAddress is the address to bind the metrics HTTP server to
	ListenAddress string `yaml:"listen_address" json:"listen_address" toml:"listen_address"`

	// Path is the HTTP path where metrics are exposed
	Path string `yaml:"path" json:"path" toml:"path"`
}

// ApplyDefaults sets default values for optional metrics configuration fields.
func (m *MetricsConfig) ApplyDefaults() {
	if m.ListenAddress == "" {
		m.ListenAddress = ":9090"
	}
	if m.Path == "" {
		m.Path = "/metrics"
	}
}

// Validate checks if the metrics configuration is valid.
func (m *MetricsConfig) Validate() error {
	if m.Enabled {
		if m.ListenAddress == "" {
			return fmt.Errorf("listen_address is required when metrics are enabled")
		}
		if m.Path == "" {
			return fmt.Errorf("path is required when metrics are enabled")
		}
		if m.Path[0] != '/' {
			return fmt.Errorf("path must start with '/'")
		}
	}
	return nil
}

// ApplyDefaults sets default values for optional configuration fields.
func (c *Config) ApplyDefaults() {
	c.Scanner.ApplyDefaults()
	c.DB.ApplyDefaults()
	c.Export.ApplyDefaults()

	if c.API != nil {
		c.API.ApplyDefaults()
	}
	if c.Logging != nil {
		c.Logging.ApplyDefaults()
	}
	if c.Metrics != nil {
		c.Metrics.ApplyDefaults()
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Scanner.Validate(); err != nil {
		return err
	}

	if err := c.DB.Validate(); err != nil {
		return err
	}

	if c.Export.RecentEvents < 0 || c.Export.TopAddresses < 0 {
		return fmt.Errorf("export.recent_events and export.top_addresses must not be negative")
	}

	if c.API != nil && c.API.Enabled && !c.DB.IsDurable() {
		return fmt.Errorf("api requires a durable db driver (sqlite or postgres)")
	}

	if c.Logging != nil {
		if err := c.Logging.Validate(); err != nil {
			return err
		}
	}

	if c.Metrics != nil {
		if err := c.Metrics.Validate(); err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
	}

	return nil
}
