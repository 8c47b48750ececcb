package cli

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"flatrec/codepage"
	"flatrec/fields"
	"flatrec/internal/input"
	"flatrec/linefilter"
	"flatrec/lines"
)

// fileRecords is the parse outcome for one input file.
type fileRecords struct {
	File       string           `json:"file"`
	Encoding   string           `json:"encoding"`
	OK         bool             `json:"ok"`
	Skipped    int              `json:"skipped"`
	ErrorLines []int            `json:"error_lines,omitempty"`
	Records    []map[string]any `json:"records"`
}

// NewParseCommand returns the "parse" command: run the full pipeline
// over one or more files and emit typed records.
func NewParseCommand(logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <file>...",
		Short: "Parse files into typed records per a schema",
		Long: `Parse decodes each file, filters its lines, and extracts typed fields.

The schema is given as repeated --field flags of the form
name:kind[:max[:min[:pattern]]], with kind one of text, integer,
decimal, datetime, boolean. With no --separator flags and a max length
on every field, parsing is fixed-width.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defs, err := schemaFromFlags(cmd)
			if err != nil {
				return err
			}
			if len(defs) == 0 {
				return fmt.Errorf("at least one --field is required")
			}

			encoding, err := codePageFlag(cmd, "encoding")
			if err != nil {
				return err
			}
			popts, err := parseOptionsFromFlags(cmd)
			if err != nil {
				return err
			}
			fopts := filterOptionsFromFlags(cmd)
			noRetry, _ := cmd.Flags().GetBool("no-retry")

			results := make([]fileRecords, len(args))
			var g errgroup.Group
			for i, path := range args {
				i, path := i, path
				g.Go(func() error {
					r, err := parseFile(logger, path, encoding, !noRetry, defs, fopts, popts)
					if err != nil {
						return err
					}
					results[i] = r
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			p := newPrinter(outputFormat(cmd))
			if p.structured() {
				return p.marshal(results)
			}
			for _, r := range results {
				var rows [][]string
				for _, rec := range r.Records {
					var cols []string
					for _, d := range defs {
						cols = append(cols, fmt.Sprint(rec[d.Name]))
					}
					rows = append(rows, cols)
				}
				header := make([]string, len(defs))
				for i, d := range defs {
					header[i] = strings.ToUpper(d.Name)
				}
				cmd.Printf("%s (%s, ok=%v, skipped=%d)\n", r.File, r.Encoding, r.OK, r.Skipped)
				p.table(header, rows)
			}
			return nil
		},
	}

	cmd.Flags().StringArray("field", nil, "field definition name:kind[:max[:min[:pattern]]] (repeatable)")
	cmd.Flags().StringArray("separator", nil, "field separator, tried in order (repeatable)")
	cmd.Flags().String("quotes", "", "permitted quote characters")
	cmd.Flags().Bool("stop-on-error", false, "stop at the first failing record line")
	cmd.Flags().Uint16("encoding", 0, "starting default code page (0 = autodetect)")
	cmd.Flags().Bool("no-retry", false, "disable retrying with alternate defaults on mixed encodings")

	cmd.Flags().String("start-sentinel", "", "exact line starting the data window")
	cmd.Flags().String("end-sentinel", "", "exact line ending the data window")
	cmd.Flags().String("prefix", "", "required line prefix")
	cmd.Flags().String("substring", "", "required line substring")
	cmd.Flags().String("suffix", "", "required line suffix")
	cmd.Flags().Int("length", -1, "required exact line length")
	cmd.Flags().Int("first", -1, "first line index (0-based)")
	cmd.Flags().Int("last", -1, "last line index (0-based)")
	cmd.Flags().Bool("keep-empty", false, "keep empty and whitespace-only lines")
	cmd.Flags().Bool("stop-at-line-error", false, "stop filtering at the first structural failure")

	return cmd
}

func parseFile(logger *slog.Logger, path string, encoding codepage.CodePage, retry bool,
	defs []*fields.Definition, fopts linefilter.Options, popts fields.ParseOptions) (fileRecords, error) {

	buf, err := input.ReadFile(path)
	if err != nil {
		return fileRecords{}, err
	}

	loaded := lines.NewLoader(logger).Load(buf, encoding, retry)
	text := make([]string, len(loaded.Lines))
	for i, ln := range loaded.Lines {
		text[i] = ln.Text
	}

	filtered := linefilter.Apply(text, fopts)

	parsed, err := fields.ReadFields(filtered.Lines, defs, popts)
	if err != nil {
		return fileRecords{}, fmt.Errorf("%s: %w", path, err)
	}

	out := fileRecords{
		File:       path,
		Encoding:   loaded.Encoding.String(),
		OK:         filtered.OK && parsed.OK,
		Skipped:    filtered.Skipped,
		ErrorLines: parsed.ErrorLines,
	}
	for _, rec := range parsed.Records {
		out.Records = append(out.Records, recordToMap(rec))
	}
	logger.Debug("parsed", "file", path, "records", len(out.Records), "ok", out.OK)
	return out, nil
}

// recordToMap flattens a record to plain serializable values: decimals
// as strings, timestamps as RFC 3339. Duplicate names overwrite in
// field order; callers wanting identity-keyed access use the library.
func recordToMap(rec *fields.Record) map[string]any {
	out := make(map[string]any, rec.Len())
	for _, d := range rec.Definitions() {
		v, _ := rec.Get(d)
		switch tv := v.(type) {
		case decimal.Decimal:
			out[d.Name] = tv.String()
		case time.Time:
			out[d.Name] = tv.Format(time.RFC3339Nano)
		default:
			out[d.Name] = v
		}
	}
	return out
}

// schemaFromFlags builds the field definitions from --field flags.
func schemaFromFlags(cmd *cobra.Command) ([]*fields.Definition, error) {
	specs, _ := cmd.Flags().GetStringArray("field")
	defs := make([]*fields.Definition, 0, len(specs))
	for _, spec := range specs {
		d, err := parseFieldSpec(spec)
		if err != nil {
			return nil, err
		}
		defs = append(defs, d)
	}
	return defs, nil
}

// parseFieldSpec parses name:kind[:max[:min[:pattern]]]. The pattern
// part is taken verbatim and may itself contain colons.
func parseFieldSpec(spec string) (*fields.Definition, error) {
	parts := strings.SplitN(spec, ":", 5)
	if len(parts) < 2 {
		return nil, fmt.Errorf("field spec %q: want name:kind[:max[:min[:pattern]]]", spec)
	}
	kind, ok := fields.KindFromString(parts[1])
	if !ok {
		return nil, fmt.Errorf("field spec %q: unknown kind %q", spec, parts[1])
	}
	d := &fields.Definition{Name: parts[0], Kind: kind}
	if len(parts) > 2 && parts[2] != "" {
		v, err := strconv.Atoi(parts[2])
		if err != nil {
			return nil, fmt.Errorf("field spec %q: bad max length: %w", spec, err)
		}
		d.MaxLength = v
	}
	if len(parts) > 3 && parts[3] != "" {
		v, err := strconv.Atoi(parts[3])
		if err != nil {
			return nil, fmt.Errorf("field spec %q: bad min length: %w", spec, err)
		}
		d.MinLength = v
	}
	if len(parts) > 4 {
		d.Pattern = parts[4]
	}
	return d, nil
}

func parseOptionsFromFlags(cmd *cobra.Command) (fields.ParseOptions, error) {
	seps, _ := cmd.Flags().GetStringArray("separator")
	quotes, _ := cmd.Flags().GetString("quotes")
	stop, _ := cmd.Flags().GetBool("stop-on-error")
	return fields.ParseOptions{
		Separators:       seps,
		Quotes:           []byte(quotes),
		StopAtFirstError: stop,
	}, nil
}

func filterOptionsFromFlags(cmd *cobra.Command) linefilter.Options {
	opts := linefilter.DefaultOptions()
	opts.StartSentinel, _ = cmd.Flags().GetString("start-sentinel")
	opts.EndSentinel, _ = cmd.Flags().GetString("end-sentinel")
	opts.Prefix, _ = cmd.Flags().GetString("prefix")
	opts.Substring, _ = cmd.Flags().GetString("substring")
	opts.Suffix, _ = cmd.Flags().GetString("suffix")
	opts.ExactLength, _ = cmd.Flags().GetInt("length")
	opts.FirstIndex, _ = cmd.Flags().GetInt("first")
	opts.LastIndex, _ = cmd.Flags().GetInt("last")
	keepEmpty, _ := cmd.Flags().GetBool("keep-empty")
	opts.SkipEmpty = !keepEmpty
	opts.StopAtError, _ = cmd.Flags().GetBool("stop-at-line-error")
	return opts
}
