package cli

import (
	"fmt"
	"io"

	"github.com/kildom/xml2docx-sub000/internal/config"
	"github.com/kildom/xml2docx-sub000/internal/engine"
	"github.com/kildom/xml2docx-sub000/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rootOptions 全局标志
type rootOptions struct {
	cfgFile  string
	debug    bool
	logLevel string
}

// NewRootCommand 创建根命令
func NewRootCommand(version, commit, buildDate string) *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "xml2docx",
		Short: "把 XML 文档方言翻译为 docx 文档选项树",
		Long: `xml2docx 读取自定义的 XML 文档方言，展开别名（DEF:name、tag:alias），
把元素翻译为 docx 文档对象库使用的选项树，并报告所有诊断信息。

子命令:
  translate  翻译一个文件并输出选项树（json、yaml 或 dump）
  check      只检查文件，输出诊断信息`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "配置文件路径 (默认 $HOME/.xml2docx.yaml 或 ./.xml2docx.yaml)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "启用调试日志")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "日志级别 (debug, info, warn, error)")

	rootCmd.AddCommand(NewTranslateCommand(opts))
	rootCmd.AddCommand(NewCheckCommand(opts))
	return rootCmd
}

// session 命令执行期间使用的配置和日志
type session struct {
	cfg *config.Config
	log *zap.Logger
}

// newSession 加载配置并创建日志记录器
// 命令行标志覆盖配置文件
func (o *rootOptions) newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.LoadConfig(o.cfgFile)
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = o.debug
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	level := cfg.LogLevel
	if cfg.Debug {
		level = "debug"
	}
	log, err := logger.NewLoggerWithLevel(level)
	if err != nil {
		return nil, err
	}
	log.Debug("configuration loaded",
		zap.String("config", o.cfgFile),
		zap.String("output_format", cfg.OutputFormat),
		zap.Bool("strict", cfg.Strict))
	return &session{cfg: cfg, log: log}, nil
}

// engine 按配置创建引擎
func (s *session) engine(aliasLibrary string) (*engine.Engine, error) {
	opts := []engine.Option{
		engine.WithLogger(s.log),
		engine.WithFallbackCharset(s.cfg.FallbackCharset),
	}
	path := s.cfg.AliasLibrary
	if aliasLibrary != "" {
		path = aliasLibrary
	}
	if path != "" {
		lib, err := config.LoadAliasLibrary(path)
		if err != nil {
			return nil, err
		}
		defs, err := engine.LibraryDefinitions(lib)
		if err != nil {
			return nil, fmt.Errorf("别名库 %s: %w", path, err)
		}
		opts = append(opts, engine.WithPredefined(defs...))
		s.log.Debug("alias library loaded", zap.String("path", path), zap.Int("aliases", len(defs)))
	}
	return engine.New(opts...), nil
}

func (s *session) close() {
	_ = s.log.Sync()
}

// printer 按配置输出诊断
func (s *session) printer(w io.Writer) *diagnosticPrinter {
	return newDiagnosticPrinter(w, s.cfg.DiagnosticsStyle, s.cfg.Color)
}
