package contract

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"os"
	"strings"
	"time"

	"github.com/handpartners/pmfstudio/core"
	"github.com/handpartners/pmfstudio/schema"
)

// Default values for configuration.
const (
	DefaultHistoryLimit = 25
	MaxHistoryLimit     = 1000
	DefaultTokenDays    = 90
	DefaultServeAddr    = ":8080"
	DefaultGeminiModel  = "gemini-2.5-flash"
	DefaultDriveFolder  = "HandPartners_PMFLab_Reports"
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// WeightsRawInput holds custom component weights from the YAML config file.
// Use float64 pointers so that absent fields fall back to defaults.
type WeightsRawInput struct {
	Problem   *float64 `mapstructure:"problem"`
	Persona   *float64 `mapstructure:"persona"`
	Solution  *float64 `mapstructure:"solution"`
	Market    *float64 `mapstructure:"market"`
	Retention *float64 `mapstructure:"retention"`
}

// ReportConfig holds the delivery settings for rendered reports.
type ReportConfig struct {
	Recipient   string
	DriveFolder string
	GeminiModel string
	PandocPath  string
	Upload      bool
	Email       bool
}

// Config holds the runtime configuration for scoring and delivery.
// This struct remains the "final, validated" config.
type Config struct {
	InputFile   string
	StartupName string

	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool
	Explain    bool

	HistoryLimit int

	Backend   schema.DatabaseBackend
	DBConnect string // Please use env var as this is plaintext

	ServeAddr   string
	AuthEnabled bool

	Report ReportConfig

	// Weights is the final component weight table, computed from
	// defaults + custom overrides.
	Weights schema.WeightTable
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputFileStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Name       string `mapstructure:"name"`
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Width      int    `mapstructure:"width"`
	Color      string `mapstructure:"color"`
	Limit      int    `mapstructure:"limit"`
	Backend    string `mapstructure:"backend"`
	DBConnect  string `mapstructure:"db-connect"`

	// --- Fields from scoreCmd.Flags() ---
	Explain bool `mapstructure:"explain"`

	// --- Fields from serveCmd.Flags() ---
	Addr string `mapstructure:"addr"`
	Auth string `mapstructure:"auth"`

	// --- Fields from reportCmd.Flags() ---
	Recipient   string `mapstructure:"recipient"`
	DriveFolder string `mapstructure:"drive-folder"`
	Model       string `mapstructure:"model"`
	Pandoc      string `mapstructure:"pandoc"`
	Upload      string `mapstructure:"upload"`
	Email       string `mapstructure:"email"`

	// --- Fields from token subcommand flags ---
	Days  int    `mapstructure:"days"`
	Label string `mapstructure:"label"`
	Perm  string `mapstructure:"perm"`

	// --- Custom weights from config file ---
	WeightsFile string          `mapstructure:"weights-file"`
	Weights     WeightsRawInput `mapstructure:"weights"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Weights != nil {
		clone.Weights = make(schema.WeightTable)
		maps.Copy(clone.Weights, c.Weights)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processServeOptions(cfg, input); err != nil {
		return err
	}
	if err := processReportOptions(cfg, input); err != nil {
		return err
	}
	processCustomWeights(cfg, input)
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-report fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.InputFile = input.InputFileStr
	cfg.StartupName = strings.TrimSpace(input.Name)
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Explain = input.Explain

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. HistoryLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxHistoryLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxHistoryLimit, input.Limit)
	}
	cfg.HistoryLimit = input.Limit

	// --- 2. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}

	// --- 3. Backend Validation ---
	cfg.Backend = schema.DatabaseBackend(strings.ToLower(input.Backend))
	if _, ok := schema.ValidDatabaseBackends[cfg.Backend]; !ok {
		return fmt.Errorf("invalid backend '%s'. must be sqlite, mysql, postgresql, none", input.Backend)
	}
	cfg.DBConnect = input.DBConnect
	if err := ValidateDatabaseConnectionString(cfg.Backend, cfg.DBConnect); err != nil {
		return err
	}

	return nil
}

// processServeOptions handles the HTTP server parameters.
func processServeOptions(cfg *Config, input *ConfigRawInput) error {
	cfg.ServeAddr = strings.TrimSpace(input.Addr)
	if cfg.ServeAddr == "" {
		cfg.ServeAddr = DefaultServeAddr
	}

	auth, err := ParseBoolString(input.Auth)
	if err != nil {
		return fmt.Errorf("invalid --auth value: %w", err)
	}
	cfg.AuthEnabled = auth

	// Token auth needs somewhere to look tokens up.
	if cfg.AuthEnabled && cfg.Backend == schema.NoneBackend {
		return fmt.Errorf("--auth requires a database backend, got '%s'", cfg.Backend)
	}

	return nil
}

// processReportOptions handles the report delivery parameters.
func processReportOptions(cfg *Config, input *ConfigRawInput) error {
	cfg.Report.Recipient = strings.TrimSpace(input.Recipient)
	cfg.Report.DriveFolder = strings.TrimSpace(input.DriveFolder)
	if cfg.Report.DriveFolder == "" {
		cfg.Report.DriveFolder = DefaultDriveFolder
	}
	cfg.Report.GeminiModel = strings.TrimSpace(input.Model)
	if cfg.Report.GeminiModel == "" {
		cfg.Report.GeminiModel = DefaultGeminiModel
	}
	cfg.Report.PandocPath = strings.TrimSpace(input.Pandoc)
	if cfg.Report.PandocPath == "" {
		cfg.Report.PandocPath = "pandoc"
	}

	upload, err := ParseBoolString(input.Upload)
	if err != nil {
		return fmt.Errorf("invalid --upload value: %w", err)
	}
	cfg.Report.Upload = upload

	email, err := ParseBoolString(input.Email)
	if err != nil {
		return fmt.Errorf("invalid --email value: %w", err)
	}
	cfg.Report.Email = email

	if cfg.Report.Email && cfg.Report.Recipient == "" {
		return fmt.Errorf("--email requires --recipient")
	}

	return nil
}

// ProcessWeightsRawInput merges the configured overrides onto the default
// table and renormalizes the result to sum 1.0. Weight handling never
// fails: a degenerate merged table (total of zero or less) falls back to
// the default weights.
func ProcessWeightsRawInput(weights WeightsRawInput) schema.WeightTable {
	merged := schema.DefaultWeights()

	overrides := map[schema.ComponentKey]*float64{
		schema.ComponentProblem:   weights.Problem,
		schema.ComponentPersona:   weights.Persona,
		schema.ComponentSolution:  weights.Solution,
		schema.ComponentMarket:    weights.Market,
		schema.ComponentRetention: weights.Retention,
	}

	for key, v := range overrides {
		if v == nil {
			continue
		}
		merged[key] = *v
	}

	return core.NormalizeWeights(merged)
}

// LoadWeightsFile reads a component weight table from a JSON file shaped
// like {"problem_score": 0.2, "persona_score": 0.1, ...}. A missing or unreadable
// file, malformed JSON, or a table that does not sum to a positive total
// falls back to the default weights with a warning; any usable table is
// renormalized to sum 1.0.
func LoadWeightsFile(path string) schema.WeightTable {
	data, err := os.ReadFile(path)
	if err != nil {
		LogWarn("reading weights file, using defaults", err)
		return schema.DefaultWeights()
	}

	var table schema.WeightTable
	if err := json.Unmarshal(data, &table); err != nil {
		LogWarn("parsing weights file, using defaults", err)
		return schema.DefaultWeights()
	}

	total := 0.0
	for _, w := range table {
		total += w
	}
	if len(table) == 0 || total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		LogWarn("loading weights file, using defaults", fmt.Errorf("weights in %s do not sum to a positive total", path))
		return schema.DefaultWeights()
	}
	return core.NormalizeWeights(table)
}

// processCustomWeights resolves the final cfg.Weights table. A weights
// file takes precedence over the inline weights block.
func processCustomWeights(cfg *Config, input *ConfigRawInput) {
	if input.WeightsFile != "" {
		cfg.Weights = LoadWeightsFile(input.WeightsFile)
		return
	}
	cfg.Weights = ProcessWeightsRawInput(input.Weights)
}
