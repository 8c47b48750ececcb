package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"flatrec/internal/input"
	"flatrec/lines"
)

// NewLinesCommand returns the "lines" command: decode a file into text
// lines with their per-line code pages.
func NewLinesCommand(logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lines <file>",
		Short: "Decode a file into text lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := codePageFlag(cmd, "encoding")
			if err != nil {
				return err
			}
			noRetry, _ := cmd.Flags().GetBool("no-retry")

			buf, err := input.ReadFile(args[0])
			if err != nil {
				return err
			}
			result := lines.NewLoader(logger).Load(buf, def, !noRetry)

			p := newPrinter(outputFormat(cmd))
			if p.structured() {
				type lineRow struct {
					Index    int    `json:"index"`
					Encoding string `json:"encoding"`
					Text     string `json:"text"`
				}
				out := struct {
					Encoding string    `json:"encoding"`
					Lines    []lineRow `json:"lines"`
				}{Encoding: result.Encoding.String()}
				for i, ln := range result.Lines {
					out.Lines = append(out.Lines, lineRow{Index: i, Encoding: ln.Encoding.String(), Text: ln.Text})
				}
				return p.marshal(out)
			}

			var rows [][]string
			for i, ln := range result.Lines {
				rows = append(rows, []string{formatIndex(i), ln.Encoding.String(), ln.Text})
			}
			p.table([]string{"LINE", "ENCODING", "TEXT"}, rows)
			logger.Info("decoded", "file", args[0], "encoding", result.Encoding.String(), "lines", len(result.Lines))
			return nil
		},
	}
	cmd.Flags().Uint16("encoding", 0, "starting default code page (0 = autodetect)")
	cmd.Flags().Bool("no-retry", false, "disable retrying with alternate defaults on mixed encodings")
	return cmd
}
