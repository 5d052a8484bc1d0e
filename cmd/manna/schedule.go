package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rjcarver/manna/internal/models"
	"github.com/rjcarver/manna/internal/scheduler"
	"github.com/rjcarver/manna/internal/scripture"
)

func newScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Scheduled passage commands",
	}

	cmd.AddCommand(newScheduleAddCmd())
	cmd.AddCommand(newScheduleListCmd())
	cmd.AddCommand(newScheduleDeleteCmd())
	return cmd
}

func newScheduleAddCmd() *cobra.Command {
	var (
		configPath string
		book       string
		chapter    int
		startVerse int
		endVerse   int
		timeOfDay  string
		recipient  string
		daily      bool
		reflection bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Schedule a passage for delivery",
		Long: `Schedules a Bible passage for delivery at a time of day. Recipients are
phone numbers by default; prefix with "slack:" or "discord:" to deliver
to a channel instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			recurrence := string(models.RecurOnce)
			if daily {
				recurrence = string(models.RecurDaily)
			}
			return runScheduleAdd(cmd, configPath, models.ScheduledPassage{
				Book:              book,
				Chapter:           chapter,
				StartVerse:        startVerse,
				EndVerse:          endVerse,
				TimeOfDay:         timeOfDay,
				Recipient:         recipient,
				Recurrence:        recurrence,
				IncludeReflection: reflection,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
	cmd.Flags().StringVar(&book, "book", "", "book name (required)")
	cmd.Flags().IntVar(&chapter, "chapter", 0, "chapter number (required)")
	cmd.Flags().IntVar(&startVerse, "verse", 0, "start verse (required)")
	cmd.Flags().IntVar(&endVerse, "end-verse", 0, "end verse for a range")
	cmd.Flags().StringVar(&timeOfDay, "at", "", "delivery time as zero-padded HH:MM (required)")
	cmd.Flags().StringVar(&recipient, "to", "", "recipient phone number or channel (required)")
	cmd.Flags().BoolVar(&daily, "daily", false, "redeliver every day instead of once")
	cmd.Flags().BoolVar(&reflection, "reflection", false, "include an AI reflection")
	cmd.MarkFlagRequired("book")
	cmd.MarkFlagRequired("chapter")
	cmd.MarkFlagRequired("verse")
	cmd.MarkFlagRequired("at")
	cmd.MarkFlagRequired("to")
	return cmd
}

func runScheduleAdd(cmd *cobra.Command, configPath string, p models.ScheduledPassage) error {
	_, st, err := openStore(configPath)
	if err != nil {
		return err
	}

	row, err := st.EnqueueSchedule(p)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	ref := scripture.Reference(row.Book, row.Chapter, row.StartVerse, row.EndVerse)
	fmt.Fprintf(out, "Scheduled %s for %s at %s (id %d)\n", ref, row.Recipient, row.TimeOfDay, row.ID)
	if next, err := scheduler.NextFire(row.TimeOfDay, time.Now()); err == nil {
		fmt.Fprintf(out, "Next delivery: %s\n", next.Format("Mon Jan 2 15:04"))
	}
	return nil
}

func newScheduleListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pending scheduled passages",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScheduleList(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
	return cmd
}

func runScheduleList(cmd *cobra.Command, configPath string) error {
	_, st, err := openStore(configPath)
	if err != nil {
		return err
	}

	rows, err := st.PendingSchedules()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintln(out, "No pending schedules.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPASSAGE\tAT\tTO\tREPEAT\tREFLECTION")
	for _, p := range rows {
		repeat := "once"
		if p.Recurrence == string(models.RecurDaily) {
			repeat = "daily"
		}
		reflect := "-"
		if p.IncludeReflection {
			reflect = "yes"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, scripture.Reference(p.Book, p.Chapter, p.StartVerse, p.EndVerse),
			p.TimeOfDay, p.Recipient, repeat, reflect)
	}
	return w.Flush()
}

func newScheduleDeleteCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a scheduled passage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScheduleDelete(cmd, configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
	return cmd
}

func runScheduleDelete(cmd *cobra.Command, configPath, rawID string) error {
	id, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil {
		return fmt.Errorf("invalid schedule id %q", rawID)
	}

	_, st, err := openStore(configPath)
	if err != nil {
		return err
	}
	if err := st.DeleteSchedule(uint(id)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted schedule %d\n", id)
	return nil
}
