package cli

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexanderramin/counsel/internal/intelligence"
	"github.com/alexanderramin/counsel/internal/service"
)

// App holds the services and settings CLI commands run against.
type App struct {
	Students service.StudentService
	Planning service.PlanningService
	Meetings service.MeetingService
	Sessions service.PlanningSessionService
	Import   service.ImportService

	// Topics, when set, is used for --ai requests so the terminal can show
	// progress and cancel the call.
	Topics intelligence.TopicService

	Logger   *zap.Logger
	LogLevel zap.AtomicLevel

	HTTPAddr        string
	ShutdownTimeout time.Duration
	// SweepSessions drops expired planning sessions; nil when the store
	// expires entries itself.
	SweepSessions func() int

	Location      *time.Location
	Version       string
	IsInteractive func() bool
	Now           func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) location() *time.Location {
	if a.Location != nil {
		return a.Location
	}
	return time.Local
}

func (a *App) logger() *zap.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return zap.NewNop()
}

// NewRootCmd creates the top-level "counsel" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "counsel",
		Short:         "Student standing and meeting planning for school counselors",
		Version:       app.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose && app.LogLevel != (zap.AtomicLevel{}) {
				app.LogLevel.SetLevel(zap.DebugLevel)
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = app.logger().Sync()
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level")

	root.AddCommand(
		newStudentsCmd(app),
		newOnTrackCmd(app),
		newTopicsCmd(app),
		newAgendaCmd(app),
		newAgendaTextCmd(app),
		newScheduleCmd(app),
		newMeetingsCmd(app),
		newSeedCmd(app),
		newServeCmd(app),
		newMCPCmd(app),
	)

	return root
}
