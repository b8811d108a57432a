package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/ringlens/pkg/ports"
)

// RunSessionList prints the ids of stored sessions.
func RunSessionList(ctx context.Context, out *Output, store ports.StateStore) error {
	sessions, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("error listing sessions: %w", err)
	}

	if len(sessions) == 0 {
		out.Println("No active sessions found.")
		return nil
	}

	out.Println("Active Sessions:")
	for _, s := range sessions {
		out.Println("- " + s)
	}
	return nil
}

// RunSessionInspect prints the stored view state of a session as JSON.
func RunSessionInspect(ctx context.Context, out *Output, store ports.StateStore, sessionID string) error {
	state, err := store.Load(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("error loading session '%s': %w", sessionID, err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling state: %w", err)
	}
	out.Println(string(data))
	return nil
}

// RunSessionRemove deletes the given sessions, or every session when all is set.
// It keeps going after a failure and reports the failures together.
func RunSessionRemove(ctx context.Context, out *Output, store ports.StateStore, ids []string, all bool) error {
	if all {
		listed, err := store.List(ctx)
		if err != nil {
			return fmt.Errorf("error listing sessions: %w", err)
		}
		ids = listed
	}
	if len(ids) == 0 {
		return errors.New("no sessions to remove")
	}

	var errs []error
	for _, sessionID := range ids {
		if err := store.Delete(ctx, sessionID); err != nil {
			errs = append(errs, fmt.Errorf("error removing '%s': %w", sessionID, err))
			continue
		}
		out.Printf("Removed session '%s'\n", sessionID)
	}
	return errors.Join(errs...)
}
