// Package cli implements the flatrec subcommands.
package cli

import (
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"flatrec/codepage"
	"flatrec/detect"
	"flatrec/internal/input"
)

// NewDetectCommand returns the "detect" command: classify the encoding
// of one or more files.
func NewDetectCommand(logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect <file>...",
		Short: "Classify the character encoding of files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assumed, err := codePageFlag(cmd, "assume")
			if err != nil {
				return err
			}

			type verdictRow struct {
				File     string `json:"file"`
				Verdict  string `json:"verdict"`
				Encoding string `json:"encoding"`
				CodePage uint16 `json:"code_page"`
			}
			var out []verdictRow

			for _, path := range args {
				buf, err := input.ReadFile(path)
				if err != nil {
					return err
				}
				verdict, cp := detect.Classify(buf, assumed)
				logger.Debug("classified", "file", path, "verdict", verdict.String(), "encoding", cp.String())
				out = append(out, verdictRow{
					File:     path,
					Verdict:  verdict.String(),
					Encoding: cp.String(),
					CodePage: uint16(cp),
				})
			}

			p := newPrinter(outputFormat(cmd))
			if p.structured() {
				return p.marshal(out)
			}
			var rows [][]string
			for _, r := range out {
				rows = append(rows, []string{r.File, r.Verdict, r.Encoding})
			}
			p.table([]string{"FILE", "VERDICT", "ENCODING"}, rows)
			return nil
		},
	}
	cmd.Flags().Uint16("assume", 0, "assumed code page number (0 = none)")
	return cmd
}

// codePageFlag reads a uint16 flag as a code page.
func codePageFlag(cmd *cobra.Command, name string) (codepage.CodePage, error) {
	v, err := cmd.Flags().GetUint16(name)
	if err != nil {
		return codepage.None, err
	}
	return codepage.CodePage(v), nil
}

func formatIndex(i int) string {
	return strconv.Itoa(i)
}
