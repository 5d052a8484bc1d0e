package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Saved state commands",
		Long: `Reads and writes saved state values, such as the default recipient
(recipient_number) and the last verse selection.`,
	}

	cmd.AddCommand(newStateGetCmd())
	cmd.AddCommand(newStateSetCmd())
	return cmd
}

func newStateGetCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print a saved state value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStateGet(cmd, configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
	return cmd
}

func runStateGet(cmd *cobra.Command, configPath, key string) error {
	_, st, err := openStore(configPath)
	if err != nil {
		return err
	}

	value, err := st.GetState(key, "")
	if err != nil {
		return err
	}
	if value == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is not set\n", key)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func newStateSetCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Save a state value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStateSet(cmd, configPath, args[0], args[1])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
	return cmd
}

func runStateSet(cmd *cobra.Command, configPath, key, value string) error {
	_, st, err := openStore(configPath)
	if err != nil {
		return err
	}
	if err := st.SetState(key, value); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", key)
	return nil
}
