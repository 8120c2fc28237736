package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/secmon-lab/casebook/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

const histogramWidth = 30

func cmdDashboard() *cli.Command {
	var e env

	return &cli.Command{
		Name:  "dashboard",
		Usage: "Show case counts and the referral source histogram",
		Flags: e.flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			sess, err := e.open(ctx)
			if err != nil {
				return err
			}
			defer sess.Close(ctx)

			printDashboard(c.Root().Writer, sess.uc.Case.Dashboard(ctx))
			return nil
		},
	}
}

func printDashboard(w io.Writer, d model.Dashboard) {
	title := color.New(color.FgCyan, color.Bold)
	label := color.New(color.Faint)
	value := color.New(color.FgGreen, color.Bold)
	bar := color.New(color.FgYellow)

	title.Fprintln(w, "Cases")
	label.Fprint(w, "  total           ")
	value.Fprintln(w, d.TotalCount)
	label.Fprint(w, "  new this month  ")
	value.Fprintln(w, d.NewThisMonth)

	if len(d.ReferralSources) == 0 {
		return
	}

	fmt.Fprintln(w)
	title.Fprintln(w, "Referral sources")

	peak, nameWidth := 0, 0
	for _, s := range d.ReferralSources {
		peak = max(peak, s.Count)
		nameWidth = max(nameWidth, len([]rune(s.Source)))
	}

	for _, s := range d.ReferralSources {
		n := s.Count * histogramWidth / peak
		if n == 0 {
			n = 1
		}
		pad := strings.Repeat(" ", nameWidth-len([]rune(s.Source)))
		fmt.Fprintf(w, "  %s%s  ", s.Source, pad)
		bar.Fprint(w, strings.Repeat("█", n))
		fmt.Fprintf(w, " %d\n", s.Count)
	}
}
