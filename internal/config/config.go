package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// 配置文件名和环境变量前缀
const (
	ConfigName = ".xml2docx"
	EnvPrefix  = "XML2DOCX"
)

// Config 保存转换器的所有配置
type Config struct {
	Debug            bool   `mapstructure:"debug"`
	LogLevel         string `mapstructure:"log_level"`          // 日志级别: debug, info, warn, error
	OutputFormat     string `mapstructure:"output_format"`      // 输出格式: json, yaml, dump
	Strict           bool   `mapstructure:"strict"`             // 可恢复诊断也使退出码非零
	Color            bool   `mapstructure:"color"`              // 彩色诊断输出
	DiagnosticsStyle string `mapstructure:"diagnostics_style"`  // 诊断展示方式: list, table
	AliasLibrary     string `mapstructure:"alias_library"`      // 预定义别名库（TOML）路径
	FallbackCharset  string `mapstructure:"fallback_charset"`   // 没有编码声明且不是 UTF-8 时使用的字符集
}

// LoadConfig 从文件加载配置
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// 设置默认值
	setDefaults(v)

	// 如果配置路径已指定，则直接使用
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// 查找家目录和当前目录中的配置文件
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
	}

	// 读取环境变量
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	// 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		// 如果找不到配置文件，则使用默认值
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// SaveConfig 将配置保存到文件
func SaveConfig(config *Config, configPath string) error {
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		configPath = filepath.Join(home, ConfigName+".yaml")
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	if err := v.MergeConfigMap(structToMap(config)); err != nil {
		return err
	}

	// 创建父目录（如果不存在）
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}
	return v.WriteConfig()
}

// NewDefaultConfig 创建一个新的默认配置
func NewDefaultConfig() *Config {
	return &Config{
		Debug:            false,
		LogLevel:         "info",
		OutputFormat:     "json",
		Strict:           false,
		Color:            true,
		DiagnosticsStyle: "list",
	}
}

func setDefaults(v *viper.Viper) {
	def := NewDefaultConfig()
	for key, value := range structToMap(def) {
		v.SetDefault(key, value)
	}
}

func structToMap(config *Config) map[string]interface{} {
	return map[string]interface{}{
		"debug":             config.Debug,
		"log_level":         config.LogLevel,
		"output_format":     config.OutputFormat,
		"strict":            config.Strict,
		"color":             config.Color,
		"diagnostics_style": config.DiagnosticsStyle,
		"alias_library":     config.AliasLibrary,
		"fallback_charset":  config.FallbackCharset,
	}
}
