package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rjcarver/manna/internal/models"
	"github.com/rjcarver/manna/internal/scripture"
	"github.com/rjcarver/manna/internal/store"
)

func newSendCmd() *cobra.Command {
	var (
		configPath string
		book       string
		chapter    int
		startVerse int
		endVerse   int
		recipient  string
		reflection bool
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a passage immediately",
		Long: `Looks up a passage, formats it and delivers it right away, bypassing the
scheduler. Without --to, the saved default recipient is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSend(cmd, configPath, book, chapter, startVerse, endVerse, recipient, reflection)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
	cmd.Flags().StringVar(&book, "book", "", "book name (required)")
	cmd.Flags().IntVar(&chapter, "chapter", 0, "chapter number (required)")
	cmd.Flags().IntVar(&startVerse, "verse", 0, "start verse (required)")
	cmd.Flags().IntVar(&endVerse, "end-verse", 0, "end verse for a range")
	cmd.Flags().StringVar(&recipient, "to", "", "recipient phone number or channel")
	cmd.Flags().BoolVar(&reflection, "reflection", false, "include an AI reflection")
	cmd.MarkFlagRequired("book")
	cmd.MarkFlagRequired("chapter")
	cmd.MarkFlagRequired("verse")
	return cmd
}

func runSend(cmd *cobra.Command, configPath, book string, chapter, startVerse, endVerse int, recipient string, reflection bool) error {
	cfg, st, err := openStore(configPath)
	if err != nil {
		return err
	}

	if recipient == "" {
		recipient, err = st.Recipient()
		if err != nil {
			return err
		}
		if recipient == "" {
			return fmt.Errorf("no recipient given and none saved; pass --to or save one with `manna state set recipient_number <phone>`")
		}
	}

	sender, err := buildSender(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	ref := scripture.Reference(book, chapter, startVerse, endVerse)
	verseText := buildScripture().Lookup(ctx, book, chapter, startVerse, endVerse)
	result := buildDevotion(cfg).FormatVerse(ctx, verseText, ref, reflection)

	receipt, err := sender.Send(ctx, recipient, result.Text)
	if err != nil {
		return fmt.Errorf("send %s: %w", ref, err)
	}
	if err := st.RecordMessage(recipient, models.Outgoing, result.Text, receipt.ProviderID); err != nil {
		return err
	}

	// Remember the selection for next time.
	if err := st.SaveVerseSelection(store.VerseSelection{
		Book:       book,
		Chapter:    chapter,
		StartVerse: startVerse,
		EndVerse:   endVerse,
		Preview:    result.Text,
		Reference:  ref,
	}); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Sent %s to %s\n", ref, recipient)
	if result.Fallback {
		fmt.Fprintln(out, "Note: delivered without AI formatting (fallback text)")
	}
	return nil
}
