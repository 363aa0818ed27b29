package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/counsel/internal/cli/formatter"
)

func newStudentsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "students",
		Short: "List students with their current standing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			students, err := app.Students.List(ctx)
			if err != nil {
				return err
			}

			rows := make([]formatter.StudentRow, 0, len(students))
			for _, s := range students {
				report, err := app.Students.OnTrack(ctx, s.ID)
				if err != nil {
					return err
				}
				rows = append(rows, formatter.StudentRow{Student: s, Report: *report})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStudentList(rows))
			return nil
		},
	}
}

func newOnTrackCmd(app *App) *cobra.Command {
	var showMilestones bool

	cmd := &cobra.Command{
		Use:   "ontrack <student>",
		Short: "Evaluate whether a student is on track and explain why",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveStudentID(ctx, app, args[0])
			if err != nil {
				return err
			}
			data, err := app.Students.Get(ctx, id)
			if err != nil {
				return err
			}
			report, err := app.Students.OnTrack(ctx, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatOnTrackReport(data.Student, *report))
			if showMilestones {
				fmt.Fprintln(out)
				fmt.Fprint(out, formatter.FormatMilestones(data.Milestones, app.now()))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showMilestones, "milestones", false, "Also list the student's milestones")
	return cmd
}
