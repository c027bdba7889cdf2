package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/glint/internal/presentation/tui"
	"github.com/aretw0/glint/pkg/domain"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage persisted sessions",
	Long:  `List, inspect, write and remove the sessions held by the configured adapter.`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		ids, err := svc.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("error listing sessions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(ids) == 0 {
			fmt.Fprintln(out, "No sessions found.")
			return nil
		}

		fmt.Fprintln(out, "Sessions:")
		for _, id := range ids {
			fmt.Fprintln(out, "- "+id)
		}
		return nil
	},
}

var sessionGetCmd = &cobra.Command{
	Use:     "get <session-id>",
	Aliases: []string{"inspect"},
	Short:   "Print the record of a session",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID := args[0]
		svc, err := openService(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		rec, err := svc.Get(cmd.Context(), sessionID)
		if err != nil {
			return fmt.Errorf("error loading session '%s': %w", sessionID, err)
		}
		if rec == nil {
			return fmt.Errorf("session '%s' not found", sessionID)
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON || !tui.IsTerminal(cmd.OutOrStdout()) {
			return printJSON(cmd, rec)
		}

		render, err := tui.NewRenderer()
		if err != nil {
			return err
		}
		out, err := render(tui.RecordMarkdown(sessionID, rec))
		if err != nil {
			return fmt.Errorf("error rendering session: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

var sessionSetCmd = &cobra.Command{
	Use:   "set <session-id> <json>",
	Short: "Write a session record",
	Long:  `Stores the given JSON object as the session record. The TTL field is added as the store would for any save.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID := args[0]

		var rec domain.Record
		if err := json.Unmarshal([]byte(args[1]), &rec); err != nil {
			return fmt.Errorf("invalid session record: %w", err)
		}

		svc, err := openService(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		if rec == nil {
			rec = domain.Record{}
		}
		if err := svc.Set(cmd.Context(), sessionID, rec); err != nil {
			return fmt.Errorf("error saving session '%s': %w", sessionID, err)
		}
		return printJSON(cmd, rec)
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <session-id>...",
	Short: "Remove one or more sessions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		out := cmd.OutOrStdout()
		var errs []error
		for _, sessionID := range args {
			if err := svc.Destroy(cmd.Context(), sessionID); err != nil {
				errs = append(errs, fmt.Errorf("error removing '%s': %w", sessionID, err))
				continue
			}
			fmt.Fprintf(out, "Removed session '%s'\n", sessionID)
		}
		return errors.Join(errs...)
	},
}

var sessionRegenerateCmd = &cobra.Command{
	Use:   "regenerate <session-id>",
	Short: "Destroy a session and print a fresh session id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		newID, err := svc.Regenerate(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("error regenerating session '%s': %w", args[0], err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), newID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionGetCmd)
	sessionCmd.AddCommand(sessionSetCmd)
	sessionCmd.AddCommand(sessionRmCmd)
	sessionCmd.AddCommand(sessionRegenerateCmd)

	sessionGetCmd.Flags().Bool("json", false, "Print raw JSON even on a terminal")
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling record: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
