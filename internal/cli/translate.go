package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kildom/xml2docx-sub000/internal/render"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ErrStrict 严格模式下出现了可恢复诊断
var ErrStrict = errors.New("diagnostics reported in strict mode")

type translateOptions struct {
	output  string
	format  string
	aliases string
	strict  bool
}

// NewTranslateCommand 创建 translate 命令
func NewTranslateCommand(root *rootOptions) *cobra.Command {
	opts := &translateOptions{}
	cmd := &cobra.Command{
		Use:   "translate [flags] <input>",
		Short: "翻译 XML 文件并输出文档选项树",
		Long: `翻译一个 XML 文件，诊断信息输出到标准错误，选项树输出到标准输出或 -o 指定的文件。

输出格式优先级：--format 标志、输出文件扩展名（.json、.yaml、.yml、.txt、.dump）、配置文件。

示例:
  xml2docx translate report.xml
  xml2docx translate report.xml -o report.yaml
  xml2docx translate report.xml --format dump --aliases styles.toml --strict`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd, root, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "输出文件 (默认标准输出)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "输出格式 (json, yaml, dump)")
	cmd.Flags().StringVar(&opts.aliases, "aliases", "", "预定义别名库 (TOML)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "出现任何诊断时返回非零退出码")
	return cmd
}

// outputFormat 决定输出格式
func (o *translateOptions) outputFormat(cmd *cobra.Command, configured string) render.Format {
	if cmd.Flags().Changed("format") {
		return render.Format(o.format)
	}
	if o.output != "" {
		if f, ok := render.ForFile(o.output); ok {
			return f
		}
	}
	return render.Format(configured)
}

func runTranslate(cmd *cobra.Command, root *rootOptions, opts *translateOptions, input string) error {
	sess, err := root.newSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()
	if cmd.Flags().Changed("strict") {
		sess.cfg.Strict = opts.strict
	}

	format := opts.outputFormat(cmd, sess.cfg.OutputFormat)
	renderer, err := render.Get(format)
	if err != nil {
		return err
	}
	eng, err := sess.engine(opts.aliases)
	if err != nil {
		return err
	}

	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("打开输入文件失败: %w", err)
	}
	defer f.Close()

	res, runErr := eng.RunReader(cmd.Context(), f, input)
	sess.printer(cmd.ErrOrStderr()).Print(input, res.Diagnostics)
	if runErr != nil {
		return fmt.Errorf("%s: 转换失败: %w", input, runErr)
	}

	// 先渲染到缓冲区，避免留下不完整的输出文件
	var buf bytes.Buffer
	if err := renderer.Render(&buf, res.Document); err != nil {
		return err
	}
	if err := writeOutput(cmd.OutOrStdout(), opts.output, buf.Bytes()); err != nil {
		return err
	}
	sess.log.Debug("output written",
		zap.String("format", string(format)),
		zap.String("output", opts.output),
		zap.Int("bytes", buf.Len()))

	if sess.cfg.Strict && len(res.Diagnostics) > 0 {
		return fmt.Errorf("%s: %w", input, ErrStrict)
	}
	return nil
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("写入输出文件失败: %w", err)
	}
	return nil
}
