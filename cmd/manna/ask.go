package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rjcarver/manna/internal/devotion"
	"github.com/rjcarver/manna/internal/models"
	"github.com/rjcarver/manna/internal/store"
)

func newAskCmd() *cobra.Command {
	var (
		configPath string
		phone      string
	)

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a scripture question",
		Long: `Answers a scripture question the same way the SMS webhook does. With
--phone, the conversation history for that number provides context and
the exchange is logged to it.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, configPath, phone, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
	cmd.Flags().StringVar(&phone, "phone", "", "conversation to use for context and logging")
	return cmd
}

func runAsk(cmd *cobra.Command, configPath, phone, question string) error {
	cfg, st, err := openStore(configPath)
	if err != nil {
		return err
	}

	var history []devotion.ChatMessage
	if phone != "" {
		turns, err := st.ConversationWindow(phone, store.DefaultWindowSize)
		if err != nil {
			return err
		}
		for _, t := range turns {
			history = append(history, devotion.ChatMessage{Role: t.Role, Content: t.Content})
		}
		if err := st.RecordMessage(phone, models.Incoming, question, ""); err != nil {
			return err
		}
	}

	result := buildDevotion(cfg).AnswerQuestion(cmd.Context(), question, history)

	if phone != "" {
		if err := st.RecordMessage(phone, models.Outgoing, result.Text, ""); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, result.Text)
	if result.Fallback {
		fmt.Fprintln(cmd.ErrOrStderr(), "Note: AI unavailable, fallback answer shown")
	}
	return nil
}
