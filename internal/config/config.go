package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	History    string            `yaml:"history"`
	GoalsFile  string            `yaml:"goals_file"`
	ShortNames map[string]string `yaml:"short_names"`
	KPI        KPIConfig         `yaml:"kpi"`
	Chart      ChartConfig       `yaml:"chart"`
	Server     ServerConfig      `yaml:"server"`
}

type KPIConfig struct {
	WindowDays       int     `yaml:"window_days"`
	ExpectedSessions float64 `yaml:"expected_sessions"`
}

type ChartConfig struct {
	Lifts []string `yaml:"lifts"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// defaultShortNames maps full exercise names to chart-legend labels.
// Config files and goal entries override individual keys; this table is
// only the seed.
var defaultShortNames = map[string]string{
	"Squat":                         "Squat",
	"Barbell Squat":                 "Squat",
	"Squat (lighter)":               "Squat (light)",
	"Bench Press (flat)":            "Bench",
	"Bench Press":                   "Bench",
	"Bench Press (decline)":         "Decline Bench",
	"OHP":                           "OHP",
	"Seated Cable Row":              "Row",
	"Barbell Row":                   "Row",
	"RDL":                           "RDL",
	"Barbell Curl":                  "Curl",
	"Incline DB Curl":               "Inc. Curl",
	"Hammer Curl":                   "Hammer Curl",
	"Wide Grip Pull-ups (weighted)": "Pull-ups",
	"Pull-ups (weighted)":           "Pull-ups",
	"Dips (weighted)":               "Dips",
	"Lateral Raise":                 "Lat. Raise",
	"Face Pull":                     "Face Pull",
	"Leg Curl":                      "Leg Curl",
	"Hanging Leg Raise":             "HLR",
	"Cable Crunch":                  "Cable Crunch",
	"Tricep Pushdown":               "Tri. Push",
}

// Default returns the stock configuration used when no config file exists.
func Default() *Config {
	short := make(map[string]string, len(defaultShortNames))
	for k, v := range defaultShortNames {
		short[k] = v
	}
	return &Config{
		History:    "history",
		ShortNames: short,
		KPI:        KPIConfig{WindowDays: 14, ExpectedSessions: 6},
		Server:     ServerConfig{Host: "127.0.0.1", Port: 8573},
	}
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file is not an error — the defaults stand, since
// every path can also come from flags. Env vars use the prefix LIFTLOG_:
//
//	LIFTLOG_HISTORY, LIFTLOG_GOALS_FILE,
//	LIFTLOG_KPI_WINDOW_DAYS, LIFTLOG_KPI_EXPECTED_SESSIONS,
//	LIFTLOG_SERVER_HOST, LIFTLOG_SERVER_PORT
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
		cfg.merge(&fileCfg)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// merge overlays the file config onto the defaults. Short names merge
// per-key so a config file can override a single label without restating
// the whole table.
func (c *Config) merge(file *Config) {
	if file.History != "" {
		c.History = file.History
	}
	if file.GoalsFile != "" {
		c.GoalsFile = file.GoalsFile
	}
	for k, v := range file.ShortNames {
		c.ShortNames[k] = v
	}
	if file.KPI.WindowDays != 0 {
		c.KPI.WindowDays = file.KPI.WindowDays
	}
	if file.KPI.ExpectedSessions != 0 {
		c.KPI.ExpectedSessions = file.KPI.ExpectedSessions
	}
	if len(file.Chart.Lifts) > 0 {
		c.Chart.Lifts = file.Chart.Lifts
	}
	if file.Server.Host != "" {
		c.Server.Host = file.Server.Host
	}
	if file.Server.Port != 0 {
		c.Server.Port = file.Server.Port
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LIFTLOG_HISTORY"); v != "" {
		cfg.History = v
	}
	if v := os.Getenv("LIFTLOG_GOALS_FILE"); v != "" {
		cfg.GoalsFile = v
	}
	if v := os.Getenv("LIFTLOG_KPI_WINDOW_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			cfg.KPI.WindowDays = days
		}
	}
	if v := os.Getenv("LIFTLOG_KPI_EXPECTED_SESSIONS"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.KPI.ExpectedSessions = n
		}
	}
	if v := os.Getenv("LIFTLOG_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("LIFTLOG_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
}

func (c *Config) validate() error {
	if c.History == "" {
		return fmt.Errorf("history is required")
	}
	if c.KPI.WindowDays <= 0 {
		return fmt.Errorf("kpi.window_days must be positive")
	}
	if c.KPI.ExpectedSessions <= 0 {
		return fmt.Errorf("kpi.expected_sessions must be positive")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be a valid port")
	}
	return nil
}
