package config

import (
	"fmt"
	"strings"
)

// 可选值
var (
	LogLevels         = []string{"debug", "info", "warn", "error"}
	OutputFormats     = []string{"json", "yaml", "dump"}
	DiagnosticsStyles = []string{"list", "table"}
)

// Validate 验证配置
func (c *Config) Validate() error {
	if err := oneOf("log_level", c.LogLevel, LogLevels); err != nil {
		return err
	}
	if err := oneOf("output_format", c.OutputFormat, OutputFormats); err != nil {
		return err
	}
	return oneOf("diagnostics_style", c.DiagnosticsStyle, DiagnosticsStyles)
}

func oneOf(key, value string, allowed []string) error {
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return nil
		}
	}
	return fmt.Errorf("invalid %s %q, must be one of: %s", key, value, strings.Join(allowed, ", "))
}
