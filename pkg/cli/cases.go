package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/domain/types"
	"github.com/secmon-lab/casebook/pkg/service/report"
	"github.com/secmon-lab/casebook/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func caseIDArg(c *cli.Command) (types.CaseID, error) {
	id := c.Args().First()
	if id == "" {
		return "", goerr.Wrap(errCaseIDRequired, "usage: "+c.Name+" <case-id>")
	}
	return types.CaseID(id), nil
}

func cmdList() *cli.Command {
	var query, source string
	var e env

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "query",
			Aliases:     []string{"q"},
			Usage:       "Match child name or case number (case-insensitive)",
			Destination: &query,
		},
		&cli.StringFlag{
			Name:        "source",
			Usage:       "Only cases with this referral source",
			Value:       usecase.SourceFilterAll,
			Destination: &source,
		},
	}
	flags = append(flags, e.flags()...)

	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List stored cases",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			sess, err := e.open(ctx)
			if err != nil {
				return err
			}
			defer sess.Close(ctx)

			locale := sess.locale.WithDefaults()
			records := usecase.Filter(sess.uc.Case.List(ctx), query, source)

			tw := tabwriter.NewWriter(c.Root().Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCASE NO\tNAME\tSOURCE\tCREATED")
			for _, rec := range records {
				created := "-"
				if ts, ok := rec.CreatedTime(); ok {
					created = ts.Local().Format("2006-01-02")
				}
				g := rec.Study.GeneralInfo
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					rec.ID, dash(g.CaseNumber), rec.DisplayName(locale.UnnamedChild), dash(g.ReferralSource), created)
			}
			return tw.Flush()
		},
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func cmdNew() *cli.Command {
	var e env

	return &cli.Command{
		Name:  "new",
		Usage: "Create an empty case and print its ID",
		Flags: e.flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			sess, err := e.open(ctx)
			if err != nil {
				return err
			}
			defer sess.Close(ctx)

			rec := sess.uc.Case.Create(ctx)
			_, err = fmt.Fprintln(c.Root().Writer, rec.ID)
			return err
		},
	}
}

func cmdDelete() *cli.Command {
	var yes bool
	var e env

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "yes",
			Aliases:     []string{"y"},
			Usage:       "Delete without asking for confirmation",
			Destination: &yes,
		},
	}
	flags = append(flags, e.flags()...)

	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a case",
		ArgsUsage: "<case-id>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			id, err := caseIDArg(c)
			if err != nil {
				return err
			}

			sess, err := e.open(ctx)
			if err != nil {
				return err
			}
			defer sess.Close(ctx)

			rec, ok := sess.uc.Case.Find(ctx, id)
			if !ok {
				return goerr.Wrap(errCaseNotFound, "cannot delete", goerr.V(usecase.CaseIDKey, id))
			}

			if !yes {
				name := rec.DisplayName(sess.locale.WithDefaults().UnnamedChild)
				if !confirm(c.Root().Reader, c.Root().Writer, fmt.Sprintf("Delete case %s (%s)? [y/N]: ", id, name)) {
					return goerr.Wrap(errDeletionCancelled, "not confirmed", goerr.V(usecase.CaseIDKey, id))
				}
			}

			if outcome := sess.uc.Case.Delete(ctx, id); !outcome.Found() {
				return goerr.Wrap(errCaseNotFound, "cannot delete", goerr.V(usecase.CaseIDKey, id))
			}
			_, err = fmt.Fprintf(c.Root().Writer, "deleted %s\n", id)
			return err
		},
	}
}

func confirm(r io.Reader, w io.Writer, prompt string) bool {
	if r == nil {
		return false
	}
	fmt.Fprint(w, prompt)
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func cmdReport() *cli.Command {
	var format, output string
	var width int
	var e env

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "Output format (terminal, markdown, html)",
			Value:       "terminal",
			Destination: &format,
		},
		&cli.IntFlag{
			Name:        "width",
			Usage:       "Word wrap width for terminal output",
			Value:       100,
			Destination: &width,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Write to a file instead of stdout",
			Destination: &output,
		},
	}
	flags = append(flags, e.flags()...)

	return &cli.Command{
		Name:      "report",
		Usage:     "Render the printable report of a case",
		ArgsUsage: "<case-id>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			id, err := caseIDArg(c)
			if err != nil {
				return err
			}

			sess, err := e.open(ctx)
			if err != nil {
				return err
			}
			defer sess.Close(ctx)

			rec, ok := sess.uc.Case.Find(ctx, id)
			if !ok {
				return goerr.Wrap(errCaseNotFound, "cannot render report", goerr.V(usecase.CaseIDKey, id))
			}
			rpt := report.Build(rec.Study, sess.uc.Branding.Get(ctx), sess.locale)

			w := c.Root().Writer
			if output != "" {
				// #nosec G304 - path is provided by CLI flag
				f, err := os.Create(output)
				if err != nil {
					return goerr.Wrap(err, "failed to create output file", goerr.V("path", output))
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			switch format {
			case "terminal":
				out, err := report.RenderTerminal(rpt, width)
				if err != nil {
					return err
				}
				_, err = io.WriteString(w, out)
				return err
			case "markdown", "md":
				_, err := io.WriteString(w, report.RenderMarkdown(rpt))
				return err
			case "html":
				return report.RenderHTML(w, rpt)
			default:
				return goerr.Wrap(errUnknownFormat, "use terminal, markdown or html", goerr.V("format", format))
			}
		},
	}
}

func cmdSummarize() *cli.Command {
	e := env{withGemini: true}

	return &cli.Command{
		Name:      "summarize",
		Usage:     "Draft the specialist opinion and recommendations of a case with Gemini",
		ArgsUsage: "<case-id>",
		Flags:     e.flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			id, err := caseIDArg(c)
			if err != nil {
				return err
			}

			sess, err := e.open(ctx)
			if err != nil {
				return err
			}
			defer sess.Close(ctx)

			if !sess.uc.Summary.Enabled() {
				return goerr.Wrap(errSummaryUnavailable, "set --gemini-project to enable summaries")
			}

			summary, outcome, err := sess.uc.Summary.Generate(ctx, id)
			if err != nil {
				return goerr.Wrap(err, "failed to generate summary", goerr.V(usecase.CaseIDKey, id))
			}
			if !outcome.Found() {
				return goerr.Wrap(errCaseNotFound, "cannot summarize", goerr.V(usecase.CaseIDKey, id))
			}

			w := c.Root().Writer
			fmt.Fprintf(w, "## Summary\n\n%s\n\n", summary.Summary)
			fmt.Fprintf(w, "## Specialist opinion\n\n%s\n\n", summary.SpecialistOpinion)
			_, err = fmt.Fprintf(w, "## Recommendations\n\n%s\n", summary.Recommendations)
			return err
		},
	}
}
