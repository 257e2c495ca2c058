package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"jobtrack/internal/app"
	"jobtrack/internal/domain/reminder"
	"jobtrack/internal/logging"
	"jobtrack/internal/repository"
	"jobtrack/internal/usecase"

	"github.com/spf13/cobra"
)

func newRemindersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "Inspect reminders",
	}
	cmd.AddCommand(newRemindersDueCmd())
	return cmd
}

func newRemindersDueCmd() *cobra.Command {
	var within time.Duration
	cmd := &cobra.Command{
		Use:   "due",
		Short: "List open reminders due within a window, overdue ones included",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := env()
			if err != nil {
				return err
			}
			defer func() { _ = logging.Sync(logger) }()

			db, err := app.OpenDB(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			uc := usecase.NewReminderUsecase(repository.NewPostgresReminderRepository(db), usecase.Deps{Logger: logger})
			items, err := uc.Due(cmd.Context(), within)
			if err != nil {
				return err
			}
			return printReminders(cmd.OutOrStdout(), items, time.Now(), cfg.Location())
		},
	}
	cmd.Flags().DurationVar(&within, "within", 24*time.Hour, "look-ahead window")
	return cmd
}

func printReminders(w io.Writer, items []reminder.Reminder, now time.Time, loc *time.Location) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "no reminders due")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DUE\tTYPE\tTITLE\tSTATE")
	for _, r := range items {
		state := "upcoming"
		if r.Overdue(now) {
			state = "overdue"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.DueDate.In(loc).Format("2006-01-02 15:04"), r.Type, r.Title, state)
	}
	return tw.Flush()
}
