package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/counsel/internal/cli/formatter"
	"github.com/alexanderramin/counsel/internal/domain"
)

func newMeetingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meetings <student>",
		Short: "List a student's meetings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveStudentID(ctx, app, args[0])
			if err != nil {
				return err
			}
			meetings, err := app.Meetings.ListByStudent(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMeetings(meetings))
			return nil
		},
	}

	cmd.AddCommand(
		newMeetingShowCmd(app),
		newMeetingCompleteCmd(app),
		newMeetingCancelCmd(app),
	)
	return cmd
}

func newMeetingShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <meeting-id>",
		Short: "Show a meeting with its agenda and summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.Meetings.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMeeting(m))
			return nil
		},
	}
}

func newMeetingCompleteCmd(app *App) *cobra.Command {
	var (
		overview  string
		keyPoints []string
		actions   []string
	)

	cmd := &cobra.Command{
		Use:   "complete <meeting-id>",
		Short: "Mark a meeting completed and record its summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary := domain.MeetingSummary{
				Overview:           strings.TrimSpace(overview),
				KeyPoints:          keyPoints,
				RecommendedActions: make([]domain.RecommendedAction, 0, len(actions)),
			}
			if summary.KeyPoints == nil {
				summary.KeyPoints = []string{}
			}
			for _, a := range actions {
				summary.RecommendedActions = append(summary.RecommendedActions, domain.RecommendedAction{Title: a})
			}

			if err := app.Meetings.Complete(cmd.Context(), args[0], summary); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d follow-up action(s) pending\n",
				formatter.StyleGreen.Render("✔ Meeting completed."), len(actions))
			return nil
		},
	}

	cmd.Flags().StringVar(&overview, "overview", "", "Summary of the conversation")
	cmd.Flags().StringArrayVar(&keyPoints, "point", nil, "Key point (repeatable)")
	cmd.Flags().StringArrayVar(&actions, "action", nil, "Recommended follow-up action (repeatable)")
	return cmd
}

func newMeetingCancelCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <meeting-id>",
		Short: "Cancel a scheduled meeting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Meetings.Cancel(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Meeting cancelled."))
			return nil
		},
	}
}
