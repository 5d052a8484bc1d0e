package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rjcarver/manna/internal/scripture"
)

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Reading plan commands",
	}

	cmd.AddCommand(newPlanAddCmd())
	cmd.AddCommand(newPlanListCmd())
	return cmd
}

func newPlanAddCmd() *cobra.Command {
	var (
		configPath string
		book       string
		chapter    int
		startVerse int
		endVerse   int
		reflection bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Bookmark a passage in the reading plan",
		Long:  "Adds a passage to the reading plan. Plan entries are bookmarks only and are never delivered by the scheduler.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlanAdd(cmd, configPath, book, chapter, startVerse, endVerse, reflection)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
	cmd.Flags().StringVar(&book, "book", "", "book name (required)")
	cmd.Flags().IntVar(&chapter, "chapter", 0, "chapter number (required)")
	cmd.Flags().IntVar(&startVerse, "verse", 0, "start verse (required)")
	cmd.Flags().IntVar(&endVerse, "end-verse", 0, "end verse for a range")
	cmd.Flags().BoolVar(&reflection, "reflection", false, "include an AI reflection when delivered later")
	cmd.MarkFlagRequired("book")
	cmd.MarkFlagRequired("chapter")
	cmd.MarkFlagRequired("verse")
	return cmd
}

func runPlanAdd(cmd *cobra.Command, configPath, book string, chapter, startVerse, endVerse int, reflection bool) error {
	_, st, err := openStore(configPath)
	if err != nil {
		return err
	}

	row, err := st.AddPlanItem(book, chapter, startVerse, endVerse, reflection)
	if err != nil {
		return err
	}

	ref := scripture.Reference(row.Book, row.Chapter, row.StartVerse, row.EndVerse)
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s to the reading plan (id %d)\n", ref, row.ID)
	return nil
}

func newPlanListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the reading plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlanList(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
	return cmd
}

func runPlanList(cmd *cobra.Command, configPath string) error {
	_, st, err := openStore(configPath)
	if err != nil {
		return err
	}

	rows, err := st.ReadingPlan()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintln(out, "The reading plan is empty.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPASSAGE\tREFLECTION")
	for _, p := range rows {
		reflect := "-"
		if p.IncludeReflection {
			reflect = "yes"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n",
			p.ID, scripture.Reference(p.Book, p.Chapter, p.StartVerse, p.EndVerse), reflect)
	}
	return w.Flush()
}
