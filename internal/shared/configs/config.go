package configs

// Config holds all configuration for the application.
type Config struct {
	Log       LogConfig       `mapstructure:"log" validate:"required"`
	Input     InputConfig     `mapstructure:"input" validate:"required"`
	Analysis  AnalysisConfig  `mapstructure:"analysis" validate:"required"`
	Report    ReportConfig    `mapstructure:"report" validate:"required"`
	History   HistoryConfig   `mapstructure:"history"`
	OpsServer OpsServerConfig `mapstructure:"ops_server"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// InputConfig holds source file configuration.
type InputConfig struct {
	Path       string `mapstructure:"path" validate:"required"`
	Delimiter  string `mapstructure:"delimiter" validate:"required,len=1"`
	SkipHeader bool   `mapstructure:"skip_header"`
	Strict     bool   `mapstructure:"strict"` // abort the run on the first malformed line
}

// AnalysisConfig holds aggregation tuning.
type AnalysisConfig struct {
	TopK                int   `mapstructure:"top_k" validate:"required,min=1"`
	FailureStatuses     []int `mapstructure:"failure_statuses" validate:"required,min=1,dive,min=100,max=599"`
	SuspiciousThreshold int   `mapstructure:"suspicious_threshold" validate:"min=0"`
	MinutePrefixLength  int   `mapstructure:"minute_prefix_length" validate:"required,min=1"`
	NormalizeUserAgents bool  `mapstructure:"normalize_user_agents"`
}

// ReportConfig holds report output configuration.
type ReportConfig struct {
	RootDir string `mapstructure:"root_dir" validate:"required"`
}

// HistoryConfig holds run history configuration.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DBPath  string `mapstructure:"db_path" validate:"required_if=Enabled true"`
}

// OpsServerConfig holds the optional observability listener configuration.
type OpsServerConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	Port              int  `mapstructure:"port" validate:"required_if=Enabled true,omitempty,min=1,max=65535"`
	ReadHeaderTimeout int  `mapstructure:"read_header_timeout" validate:"omitempty,min=1"` // seconds
	ReadTimeout       int  `mapstructure:"read_timeout" validate:"omitempty,min=1"`        // seconds
	WriteTimeout      int  `mapstructure:"write_timeout" validate:"omitempty,min=1"`       // seconds
	IdleTimeout       int  `mapstructure:"idle_timeout" validate:"omitempty,min=1"`        // seconds
}
