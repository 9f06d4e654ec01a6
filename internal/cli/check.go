package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/kildom/xml2docx-sub000/internal/diag"
	"github.com/spf13/cobra"
)

// ErrCheckFailed 至少一个文件出现致命错误
var ErrCheckFailed = errors.New("check failed")

// NewCheckCommand 创建 check 命令
func NewCheckCommand(root *rootOptions) *cobra.Command {
	var (
		aliases string
		strict  bool
	)
	cmd := &cobra.Command{
		Use:   "check [flags] <input> [input...]",
		Short: "检查 XML 文件并输出诊断信息",
		Long: `依次翻译每个文件但不输出选项树，只报告诊断信息和汇总。

出现致命错误时返回非零退出码；启用 --strict 时任何诊断都会导致非零退出码。`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := root.newSession(cmd)
			if err != nil {
				return err
			}
			defer sess.close()
			if cmd.Flags().Changed("strict") {
				sess.cfg.Strict = strict
			}
			eng, err := sess.engine(aliases)
			if err != nil {
				return err
			}

			printer := sess.printer(cmd.ErrOrStderr())
			var sum summary
			for _, input := range args {
				f, err := os.Open(input)
				if err != nil {
					printer.Print(input, []diag.Diagnostic{{
						Severity: diag.SeverityFatal,
						Code:     diag.CodeSource,
						Message:  err.Error(),
					}})
					sum.add(newFileStats(input, nil))
					continue
				}
				res, _ := eng.RunReader(cmd.Context(), f, input)
				f.Close()
				printer.Print(input, res.Diagnostics)
				sum.add(newFileStats(input, res))
			}
			sum.print(cmd.OutOrStdout(), sess.cfg.DiagnosticsStyle, sess.cfg.Color)

			failed, errs, warnings := sum.totals()
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d files", ErrCheckFailed, failed, len(args))
			}
			if sess.cfg.Strict && errs+warnings > 0 {
				return ErrStrict
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&aliases, "aliases", "", "预定义别名库 (TOML)")
	cmd.Flags().BoolVar(&strict, "strict", false, "出现任何诊断时返回非零退出码")
	return cmd
}
