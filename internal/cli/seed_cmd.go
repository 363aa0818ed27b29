package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/counsel/internal/cli/formatter"
	"github.com/alexanderramin/counsel/internal/seed"
	"github.com/alexanderramin/counsel/internal/service"
)

func newSeedCmd(app *App) *cobra.Command {
	var (
		file    string
		ifEmpty bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a student roster (the built-in demo roster by default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var (
				res *service.ImportResult
				err error
			)
			switch {
			case file != "":
				res, err = app.Import.ImportRoster(ctx, file)
			case ifEmpty:
				res, err = app.Import.SeedIfEmpty(ctx, seed.Roster())
			default:
				res, err = app.Import.ImportRosterData(ctx, seed.Roster())
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if res.Students == 0 {
				fmt.Fprintln(out, formatter.Dim("Roster already loaded; nothing imported."))
				return nil
			}
			fmt.Fprintf(out, "%s %d students, %d milestones, %d meetings\n",
				formatter.StyleGreen.Render("✔ Imported"), res.Students, res.Milestones, res.Meetings)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Roster YAML to import instead of the demo roster")
	cmd.Flags().BoolVar(&ifEmpty, "if-empty", false, "Only load the demo roster when no student exists")
	return cmd
}
