package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/counsel/internal/cli/formatter"
	"github.com/alexanderramin/counsel/internal/domain"
	"github.com/alexanderramin/counsel/internal/planner"
)

type scheduleOptions struct {
	duration int
	date     string
	clock    string
	title    string
	topicIDs []string
	custom   []string
	noAgenda bool
	useAI    bool
}

func newScheduleCmd(app *App) *cobra.Command {
	var opts scheduleOptions
	duration := newDurationFlag(planner.DefaultDuration)

	cmd := &cobra.Command{
		Use:   "schedule <student>",
		Short: "Plan and book a meeting",
		Long: "Plan and book a meeting. On a terminal without --date this runs the " +
			"interactive wizard; otherwise the flags describe the meeting.",
		Args: cobra.ExactArgs(1),
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
			opts.duration = duration.Int()

			var req domain.MeetingRequest
			if opts.date == "" && app.interactive() {
				req, err = runScheduleWizard(ctx, app, cmd, data, opts)
			} else {
				req, err = planFromFlags(ctx, app, cmd, data, opts)
			}
			if errors.Is(err, huh.ErrUserAborted) {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Scheduling cancelled."))
				return nil
			}
			if err != nil {
				return err
			}

			meeting, err := app.Meetings.Schedule(ctx, req)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.StyleGreen.Render("✔ Meeting scheduled"))
			fmt.Fprint(out, formatter.FormatMeeting(meeting))
			return nil
		},
	}

	cmd.Flags().Var(duration, "duration", "Meeting length in minutes (15, 30, 45 or 60)")
	cmd.Flags().StringVar(&opts.date, "date", "", "Meeting date, YYYY-MM-DD")
	cmd.Flags().StringVar(&opts.clock, "time", planner.DefaultTime, "Meeting time, HH:MM")
	cmd.Flags().StringVar(&opts.title, "title", "", "Meeting title (default: first agenda topic)")
	cmd.Flags().StringSliceVar(&opts.topicIDs, "topic", nil, "Recommendation id to include; replaces the high-priority default")
	cmd.Flags().StringArrayVar(&opts.custom, "custom", nil, "Custom topic to include (repeatable)")
	cmd.Flags().BoolVar(&opts.noAgenda, "no-agenda", false, "Book without an agenda")
	cmd.Flags().BoolVar(&opts.useAI, "ai", false, "Ask the generative model for topics")
	return cmd
}

// planFromFlags walks the two-step wizard with the values given on the
// command line.
func planFromFlags(ctx context.Context, app *App, cmd *cobra.Command, data *domain.StudentData, opts scheduleOptions) (domain.MeetingRequest, error) {
	w := planner.NewWizard(data.Student.ID, data.Student.FirstName, planner.VariantTwoStep)
	w.SetSchedule(opts.duration, opts.date, opts.clock)
	if !w.ScheduleComplete() {
		return domain.MeetingRequest{}, fmt.Errorf("--date and --time are required: %w", planner.ErrStepIncomplete)
	}
	if opts.noAgenda {
		return w.ScheduleWithoutAgenda()
	}

	if err := loadWizardTopics(ctx, app, cmd, w, opts.useAI); err != nil {
		return domain.MeetingRequest{}, err
	}
	if len(opts.topicIDs) > 0 {
		for _, id := range opts.topicIDs {
			if !slices.ContainsFunc(w.Recommendations, func(r domain.TopicRecommendation) bool { return r.ID == id }) {
				return domain.MeetingRequest{}, fmt.Errorf("unknown topic %q; run `counsel topics %s` for ids", id, data.Student.ID)
			}
		}
		w.SetSelection(opts.topicIDs)
	}
	for _, topic := range opts.custom {
		w.AddCustomTopic(topic)
	}
	if opts.title != "" {
		w.SetTitle(opts.title)
	}
	return w.Confirm()
}

// runScheduleWizard asks for the schedule, the topics, and the title in
// turn, driving the same wizard state the planning-session API uses.
func runScheduleWizard(ctx context.Context, app *App, cmd *cobra.Command, data *domain.StudentData, opts scheduleOptions) (domain.MeetingRequest, error) {
	w := planner.NewWizard(data.Student.ID, data.Student.FirstName, planner.VariantFourStep)

	sched := scheduleAnswers{
		Duration: opts.duration,
		Date:     app.now().AddDate(0, 0, 1).Format("2006-01-02"),
		Time:     opts.clock,
	}
	if err := wizardScheduleForm(data.Student.FullName(), &sched).RunWithContext(ctx); err != nil {
		return domain.MeetingRequest{}, err
	}
	w.SetSchedule(sched.Duration, sched.Date, sched.Time)
	if opts.noAgenda {
		return w.ScheduleWithoutAgenda()
	}

	if err := loadWizardTopics(ctx, app, cmd, w, opts.useAI); err != nil {
		return domain.MeetingRequest{}, err
	}

	var topics topicAnswers
	if err := wizardTopicsForm(w, &topics).RunWithContext(ctx); err != nil {
		return domain.MeetingRequest{}, err
	}
	w.SetSelection(topics.Selected)
	for _, t := range slices.Concat(opts.custom, customTopicLines(topics.Custom)) {
		w.AddCustomTopic(t)
	}
	if err := w.Next(); err != nil {
		return domain.MeetingRequest{}, err
	}

	var confirm confirmAnswers
	if err := wizardConfirmForm(w, &confirm).RunWithContext(ctx); err != nil {
		return domain.MeetingRequest{}, err
	}
	if !confirm.WithAgenda {
		return w.ScheduleWithoutAgenda()
	}
	w.SetTitle(confirm.Title)
	return w.Confirm()
}

// loadWizardTopics advances the wizard to its topic step and loads the
// recommendations once.
func loadWizardTopics(ctx context.Context, app *App, cmd *cobra.Command, w *planner.Wizard, useAI bool) error {
	if err := w.Next(); err != nil {
		return err
	}
	res, err := recommendTopics(ctx, app, cmd, w.StudentID, useAI)
	if err != nil {
		return err
	}
	w.SetRecommendations(res.Topics)
	return nil
}
