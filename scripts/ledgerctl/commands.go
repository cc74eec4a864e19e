package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

const defaultServer = "http://localhost:9446"

func newRootCmd(out io.Writer) *cobra.Command {
	var server string

	rootCmd := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Command line client for the ledger server",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVar(&server, "server", defaultServer, "ledger server base URL")

	// run executes a request and prints the envelope.
	run := func(cmd *cobra.Command, method, path string, query url.Values) error {
		env, err := newClient(server).do(cmd.Context(), method, path, query)
		if err != nil {
			return err
		}
		return printEnvelope(cmd.OutOrStdout(), env)
	}

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "open <currency>",
			Short: "Open an account in a base currency",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, http.MethodPost, "/accounts", url.Values{"baseCcy": {args[0]}})
			},
		},
		&cobra.Command{
			Use:   "balance <account>",
			Short: "Show an account balance",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, http.MethodGet, "/accounts/"+url.PathEscape(args[0])+"/balance", nil)
			},
		},
		&cobra.Command{
			Use:   "accounts",
			Short: "List every account and its balance",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return run(cmd, http.MethodGet, "/accounts", nil)
			},
		},
		&cobra.Command{
			Use:   "history <account>",
			Short: "Show an account's transactions",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, http.MethodGet, "/accounts/"+url.PathEscape(args[0])+"/transactions", nil)
			},
		},
		&cobra.Command{
			Use:   "deposit <account> <amount> <currency>",
			Short: "Deposit money, converted to the account's base currency",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, http.MethodPost, "/accounts/"+url.PathEscape(args[0])+"/deposit",
					url.Values{"amount": {args[1]}, "currency": {args[2]}})
			},
		},
		&cobra.Command{
			Use:   "withdraw <account> <amount>",
			Short: "Withdraw money in the account's base currency",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, http.MethodPost, "/accounts/"+url.PathEscape(args[0])+"/withdrawal",
					url.Values{"amount": {args[1]}})
			},
		},
		&cobra.Command{
			Use:   "transfer <from> <to> <amount>",
			Short: "Transfer money between accounts",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, http.MethodPost, "/transfer",
					url.Values{"fromAccount": {args[0]}, "toAccount": {args[1]}, "amount": {args[2]}})
			},
		},
		&cobra.Command{
			Use:   "delete <account>",
			Short: "Delete an account with a zero balance",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, http.MethodDelete, "/accounts/"+url.PathEscape(args[0]), nil)
			},
		},
		&cobra.Command{
			Use:   "rates",
			Short: "List conversion rates",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return run(cmd, http.MethodGet, "/rates", nil)
			},
		},
	)

	return rootCmd
}

func printEnvelope(out io.Writer, env *envelope) error {
	if _, err := fmt.Fprintln(out, env.Message); err != nil {
		return err
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, env.Data, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := out.Write(buf.Bytes())
	return err
}
