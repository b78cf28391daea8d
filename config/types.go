package config

// Config represents the complete configuration structure
type Config struct {
	Teamleader TeamleaderConfig `mapstructure:"teamleader"`
	Filter     FilterConfig     `mapstructure:"filter"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// TeamleaderConfig holds the API credential pair and connection details
type TeamleaderConfig struct {
	Group          string `mapstructure:"group"`
	Secret         string `mapstructure:"secret"`
	URL            string `mapstructure:"url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// FilterConfig contains named filter expressions for list commands
type FilterConfig struct {
	Presets map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
