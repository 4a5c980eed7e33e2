package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/sessionattrs/core/attributes"
	"github.com/dmitrymomot/sessionattrs/core/health"
)

type lookup struct {
	Key    string `json:"key"`
	Found  bool   `json:"found"`
	Value  any    `json:"value"`
	Active *bool  `json:"active,omitempty"`
	Live   *bool  `json:"live,omitempty"`
}

func (a *app) startCmd() *cobra.Command {
	return a.storeCmd("start", "Start or resume a session", cobra.NoArgs,
		func(*cobra.Command, *attributes.Store, []string) (any, error) {
			return nil, nil
		})
}

func (a *app) addCmd() *cobra.Command {
	cmd := a.storeCmd("add KEY VALUE", "Set an attribute, optionally expiring after --expiry minutes", cobra.ExactArgs(2),
		func(cmd *cobra.Command, store *attributes.Store, args []string) (any, error) {
			value := parseValue(args[1])
			if !cmd.Flags().Changed("expiry") {
				store.Add(args[0], value)
				return nil, nil
			}
			minutes, err := cmd.Flags().GetInt("expiry")
			if err != nil {
				return nil, err
			}
			store.AddWithExpiry(args[0], value, minutes)
			return nil, nil
		})
	cmd.Flags().Int("expiry", 0, "Minutes until the attribute expires; omit for no expiry")
	return cmd
}

func (a *app) updateCmd() *cobra.Command {
	return a.storeCmd("update KEY VALUE", "Replace the value of an existing attribute, keeping its expiry", cobra.ExactArgs(2),
		func(_ *cobra.Command, store *attributes.Store, args []string) (any, error) {
			store.Update(args[0], parseValue(args[1]))
			return nil, nil
		})
}

func (a *app) getCmd() *cobra.Command {
	return a.storeCmd("get KEY", "Read a live attribute; an expired one is dropped", cobra.ExactArgs(1),
		func(_ *cobra.Command, store *attributes.Store, args []string) (any, error) {
			v, ok := store.Get(args[0])
			return lookup{Key: args[0], Found: ok, Value: v}, nil
		})
}

func (a *app) removeCmd() *cobra.Command {
	return a.storeCmd("remove KEY", "Delete an attribute", cobra.ExactArgs(1),
		func(_ *cobra.Command, store *attributes.Store, args []string) (any, error) {
			store.Remove(args[0])
			return nil, nil
		})
}

func (a *app) expireCmd() *cobra.Command {
	return a.storeCmd("expire KEY", "Expire an attribute now", cobra.ExactArgs(1),
		func(_ *cobra.Command, store *attributes.Store, args []string) (any, error) {
			store.Expire(args[0])
			return nil, nil
		})
}

func (a *app) activeCmd() *cobra.Command {
	return a.storeCmd("active KEY", "Report whether an attribute is present and whether it is live", cobra.ExactArgs(1),
		func(_ *cobra.Command, store *attributes.Store, args []string) (any, error) {
			active, live := store.IsActive(args[0]), store.IsLive(args[0])
			return lookup{Key: args[0], Found: active, Active: &active, Live: &live}, nil
		})
}

func (a *app) listCmd() *cobra.Command {
	return a.storeCmd("list", "Print every stored attribute, including expired ones", cobra.NoArgs,
		func(_ *cobra.Command, store *attributes.Store, _ []string) (any, error) {
			return store.GetAll(), nil
		})
}

func (a *app) expiredCmd() *cobra.Command {
	return a.storeCmd("expired", "Print expired attributes that have not been dropped yet", cobra.NoArgs,
		func(_ *cobra.Command, store *attributes.Store, _ []string) (any, error) {
			return store.GetExpiredDetails(), nil
		})
}

func (a *app) purgeCmd() *cobra.Command {
	return a.storeCmd("purge", "Drop every expired attribute", cobra.NoArgs,
		func(_ *cobra.Command, store *attributes.Store, _ []string) (any, error) {
			return map[string]int{"purged": store.PurgeExpired()}, nil
		})
}

func (a *app) clearCmd() *cobra.Command {
	return a.storeCmd("clear", "Remove all attributes and keep the session", cobra.NoArgs,
		func(cmd *cobra.Command, store *attributes.Store, _ []string) (any, error) {
			return nil, store.ExpireAll(cmd.Context())
		})
}

func (a *app) destroyCmd() *cobra.Command {
	return a.storeCmd("destroy", "Remove all attributes and end the session", cobra.NoArgs,
		func(cmd *cobra.Command, store *attributes.Store, _ []string) (any, error) {
			return nil, store.RemoveAll(cmd.Context())
		})
}

func (a *app) regenerateCmd() *cobra.Command {
	return a.storeCmd("regenerate", "Issue a new session token and drop the old one", cobra.NoArgs,
		func(cmd *cobra.Command, store *attributes.Store, _ []string) (any, error) {
			return nil, store.RegenerateID(cmd.Context())
		})
}

func (a *app) cleanupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Delete expired sessions from storage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer b.close()

			n, err := b.manager.CleanupExpired(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), map[string]int64{"deleted": n})
		},
	}
}

func (a *app) pingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the storage is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer b.close()

			if err := health.Readiness(cmd.Context(), a.log, b.checks...); err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), map[string]string{"status": "ok"})
		},
	}
}
