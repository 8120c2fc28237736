package cli

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/domain/model"
	"github.com/secmon-lab/casebook/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdBranding() *cli.Command {
	var orgName, address, contact, logo string
	var clearLogo bool
	var e env

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "org-name",
			Usage:       "Organization name printed in the report header",
			Destination: &orgName,
		},
		&cli.StringFlag{
			Name:        "address",
			Usage:       "Address printed in the report footer",
			Destination: &address,
		},
		&cli.StringFlag{
			Name:        "contact",
			Usage:       "Contact information printed in the report footer",
			Destination: &contact,
		},
		&cli.StringFlag{
			Name:        "logo",
			Usage:       "Image file to use as the report logo",
			Destination: &logo,
		},
		&cli.BoolFlag{
			Name:        "clear-logo",
			Usage:       "Remove the stored logo",
			Destination: &clearLogo,
		},
	}
	flags = append(flags, e.flags()...)

	return &cli.Command{
		Name:  "branding",
		Usage: "Show or update the organization branding used on reports",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			sess, err := e.open(ctx)
			if err != nil {
				return err
			}
			defer sess.Close(ctx)

			settings := sess.uc.Branding.Get(ctx)
			changed := false
			if c.IsSet("org-name") {
				settings.OrganizationName = orgName
				changed = true
			}
			if c.IsSet("address") {
				settings.Address = address
				changed = true
			}
			if c.IsSet("contact") {
				settings.ContactInfo = contact
				changed = true
			}
			if clearLogo {
				settings.Logo = ""
				changed = true
			}
			if changed {
				settings = sess.uc.Branding.Save(ctx, settings)
			}

			if logo != "" {
				settings, err = importLogo(ctx, sess.uc.Branding, logo)
				if err != nil {
					return err
				}
			}

			printBranding(c.Root().Writer, settings)
			return nil
		},
	}
}

func importLogo(ctx context.Context, uc *usecase.BrandingUseCase, path string) (model.BrandingSettings, error) {
	// #nosec G304 - path is provided by CLI flag
	f, err := os.Open(path)
	if err != nil {
		return model.BrandingSettings{}, goerr.Wrap(err, "failed to open logo file", goerr.V("path", path))
	}
	defer func() { _ = f.Close() }()

	settings, err := uc.ImportLogo(ctx, f, mime.TypeByExtension(filepath.Ext(path)))
	if err != nil {
		return model.BrandingSettings{}, goerr.Wrap(err, "failed to import logo", goerr.V("path", path))
	}
	return settings, nil
}

func printBranding(w io.Writer, b model.BrandingSettings) {
	logo := "-"
	if b.Logo != "" {
		logo = fmt.Sprintf("stored (%d bytes)", len(b.Logo))
	}
	fmt.Fprintf(w, "organization: %s\n", dash(b.OrganizationName))
	fmt.Fprintf(w, "address:      %s\n", dash(b.Address))
	fmt.Fprintf(w, "contact:      %s\n", dash(b.ContactInfo))
	fmt.Fprintf(w, "logo:         %s\n", logo)
}
