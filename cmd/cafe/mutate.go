package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/cafedash/internal/client"
	"github.com/alfredjeanlab/cafedash/internal/events"
	"github.com/alfredjeanlab/cafedash/internal/idgen"
	"github.com/alfredjeanlab/cafedash/internal/model"
)

// mutationContext tags outgoing API calls with a request id that is also
// carried on the published change.
func mutationContext() context.Context {
	return client.WithRequestID(context.Background(), idgen.RequestID())
}

// announce publishes a change after a successful mutation. Publish failures
// are reported but do not fail the command; the data change already
// happened.
func announce(ctx context.Context, resource string, id model.ID, action string) {
	err := events.Emit(ctx, publisher, events.Change{
		Resource:  resource,
		ID:        id.String(),
		Action:    action,
		Actor:     sess.UserID,
		RequestID: client.RequestIDFrom(ctx),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: change not published: %v\n", err)
	}
}

// reportMutation prints the result of a create/update/review command.
func reportMutation(resource, action string, id model.ID, v any) error {
	if jsonOutput {
		return printJSON(v)
	}
	fmt.Printf("%s %s %s\n", strings.ToUpper(action[:1])+action[1:], strings.ReplaceAll(resource, "_", " "), id)
	return nil
}

// deleteCommand builds "<noun> delete <id>" for resource.
func deleteCommand(resource string, del func(ctx context.Context, id model.ID) error) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + strings.ReplaceAll(resource, "_", " "),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := mutationContext()
			id := model.ID(args[0])
			if err := del(ctx, id); err != nil {
				return err
			}
			announce(ctx, resource, id, events.ActionDeleted)
			if jsonOutput {
				return printJSON(map[string]string{"id": id.String(), "status": "deleted"})
			}
			fmt.Printf("Deleted %s %s\n", strings.ReplaceAll(resource, "_", " "), id)
			return nil
		},
	}
}
