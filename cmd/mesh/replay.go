package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newReplayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay <tick>",
		Short: "Print the persisted state snapshot and actions for a tick",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tick, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid tick %q: %w", args[0], err)
			}
			return runReplay(tick)
		},
	}
}

// runReplay opens the configured repository (through openRepository,
// which creates the database and applies the schema if needed) and
// dumps the state snapshot and executed actions recorded for tick, for
// offline audit and debugging. It writes no tick, action or snapshot.
func runReplay(tick uint64) error {
	repo, err := openRepository()
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}
	defer repo.Close()

	ctx := context.Background()

	state, err := repo.LoadState(ctx, tick)
	if err != nil {
		return fmt.Errorf("failed to load state for tick %d: %w", tick, err)
	}
	if state == nil {
		return fmt.Errorf("no state snapshot recorded for tick %d", tick)
	}

	actions, err := repo.LoadActions(ctx, tick)
	if err != nil {
		return fmt.Errorf("failed to load actions for tick %d: %w", tick, err)
	}

	stateJSON, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	fmt.Println("state:")
	fmt.Println(string(stateJSON))

	actionsJSON, err := json.MarshalIndent(actions, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode actions: %w", err)
	}
	fmt.Printf("%d actions:\n", len(actions))
	fmt.Println(string(actionsJSON))

	return nil
}
