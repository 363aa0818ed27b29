package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/counsel/internal/cli/formatter"
	"github.com/alexanderramin/counsel/internal/domain"
	"github.com/alexanderramin/counsel/internal/intelligence"
	"github.com/alexanderramin/counsel/internal/planner"
	"github.com/alexanderramin/counsel/internal/service"
)

func newTopicsCmd(app *App) *cobra.Command {
	var useAI bool

	cmd := &cobra.Command{
		Use:   "topics <student>",
		Short: "Recommend topics for the next meeting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveStudentID(ctx, app, args[0])
			if err != nil {
				return err
			}
			res, err := recommendTopics(ctx, app, cmd, id, useAI)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTopics(res.Topics, string(res.Source), res.FallbackCode))
			return nil
		},
	}

	cmd.Flags().BoolVar(&useAI, "ai", false, "Ask the generative model first")
	return cmd
}

// recommendTopics takes the cancellable async path for AI requests when the
// topic service is wired, and the planning service otherwise.
func recommendTopics(ctx context.Context, app *App, cmd *cobra.Command, studentID string, useAI bool) (*intelligence.TopicResult, error) {
	if !useAI || app.Topics == nil {
		return app.Planning.RecommendTopics(ctx, studentID, useAI)
	}

	data, err := app.Students.Get(ctx, studentID)
	if err != nil {
		return nil, err
	}
	f := app.Topics.RecommendAsync(ctx, "cli:"+studentID, *data)
	res, err := awaitWithSpinner(ctx, app, cmd.InOrStdin(), cmd.ErrOrStderr(), "Asking for topic ideas...", f)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func newAgendaCmd(app *App) *cobra.Command {
	var (
		topicIDs []string
		custom   []string
	)
	duration := newDurationFlag(planner.DefaultDuration)

	cmd := &cobra.Command{
		Use:   "agenda <student>",
		Short: "Build a timed agenda from recommended and custom topics",
		Long: "Build a timed agenda. --topic takes ids printed by `counsel topics`; " +
			"without --topic the high-priority recommendations are used.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveStudentID(ctx, app, args[0])
			if err != nil {
				return err
			}

			req := service.AgendaRequest{
				RecommendationIDs: topicIDs,
				CustomTopics:      custom,
				Duration:          duration.Int(),
			}
			if len(topicIDs) == 0 {
				recs, err := app.Planning.RecommendTopics(ctx, id, false)
				if err != nil {
					return err
				}
				for _, r := range recs.Topics {
					if r.Priority == domain.PriorityHigh {
						req.Recommendations = append(req.Recommendations, r)
					}
				}
			}

			res, err := app.Planning.BuildAgenda(ctx, id, req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAgenda(res.Items, res.Allocation))
			return nil
		},
	}

	cmd.Flags().Var(duration, "duration", "Meeting length in minutes (15, 30, 45 or 60)")
	cmd.Flags().StringSliceVar(&topicIDs, "topic", nil, "Recommendation id to include (repeatable)")
	cmd.Flags().StringArrayVar(&custom, "custom", nil, "Custom topic to include (repeatable)")
	return cmd
}

func newAgendaTextCmd(app *App) *cobra.Command {
	var (
		date  string
		useAI bool
	)

	cmd := &cobra.Command{
		Use:   "agenda-text <student>",
		Short: "Draft a plain-text agenda to copy into notes or email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveStudentID(ctx, app, args[0])
			if err != nil {
				return err
			}

			var meetingDate *time.Time
			if date != "" {
				t, err := planner.ParseScheduledDate(date, app.location())
				if err != nil {
					return err
				}
				meetingDate = &t
			}

			res, err := app.Planning.AgendaText(ctx, id, meetingDate, useAI)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAgendaText(res.Text, string(res.Source), res.FallbackCode))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Meeting date-time, YYYY-MM-DDTHH:MM")
	cmd.Flags().BoolVar(&useAI, "ai", false, "Ask the generative model first")
	return cmd
}
