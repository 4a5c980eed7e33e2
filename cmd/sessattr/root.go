package main

import (
	"context"
	"io"
	"log/slog"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/sessionattrs/core/attributes"
	"github.com/dmitrymomot/sessionattrs/core/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type opener func(ctx context.Context) (*backend, error)

type app struct {
	open opener
	log  *slog.Logger
}

// output is printed after every command.
type output struct {
	Token  string `json:"token"`
	Result any    `json:"result,omitempty"`
}

func newRootCmd(open opener, log *slog.Logger) *cobra.Command {
	a := &app{open: open, log: log}

	root := &cobra.Command{
		Use:   "sessattr",
		Short: "Inspect and edit expiring session attributes",
		Long: `sessattr runs one attribute operation against a stored session and prints the
session token to pass back with --token on the next call.

The storage is chosen with SESSATTR_BACKEND (buntdb, redis, pg, mongo).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("token", "", "Session token to resume; empty starts a new session")

	root.AddCommand(
		a.startCmd(),
		a.addCmd(),
		a.updateCmd(),
		a.getCmd(),
		a.removeCmd(),
		a.expireCmd(),
		a.activeCmd(),
		a.listCmd(),
		a.expiredCmd(),
		a.purgeCmd(),
		a.clearCmd(),
		a.destroyCmd(),
		a.regenerateCmd(),
		a.cleanupCmd(),
		a.pingCmd(),
	)
	return root
}

type storeFunc func(cmd *cobra.Command, store *attributes.Store, args []string) (any, error)

// storeCmd builds a command that opens the session named by --token, runs fn on
// its attribute store, commits and prints the resulting token.
func (a *app) storeCmd(use, short string, args cobra.PositionalArgs, fn storeFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, argv []string) error {
			ctx := cmd.Context()

			b, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := b.close(); err != nil {
					a.log.Warn("failed to close backend", logger.Error(err))
				}
			}()

			token, _ := cmd.Flags().GetString("token")
			sb := attributes.NewSessionBackend(b.manager, token, attributes.WithBackendLogger(a.log))
			store, err := attributes.New(ctx, sb, attributes.WithLogger(a.log))
			if err != nil {
				return err
			}

			result, err := fn(cmd, store, argv)
			if err != nil {
				return err
			}
			if err := store.Commit(ctx); err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), output{Token: sb.Token(), Result: result})
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseValue decodes raw as JSON when it is valid JSON, otherwise keeps it as a string.
func parseValue(raw string) any {
	if !json.Valid([]byte(raw)) {
		return raw
	}
	var v any
	if err := json.UnmarshalFromString(raw, &v); err != nil {
		return raw
	}
	return v
}
