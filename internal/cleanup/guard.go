// Package cleanup gates the irreversible table-clear behind a same-day
// backup existence check and an explicit user confirmation.
package cleanup

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/and161185/hr-console/internal/client"
)

// ErrNoTable rejects a delete intent before the existence check runs.
var ErrNoTable = errors.New("select a table to delete")

// State is the position of one guarded deletion in its workflow.
type State int

const (
	StateIdle State = iota
	StateChecking
	StateNoBackupFound
	StateAwaitingConfirmation
	StateCancelled
	StateDeleting
	StateDeleted
	StateDeletionFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateChecking:
		return "checking"
	case StateNoBackupFound:
		return "no-backup-found"
	case StateAwaitingConfirmation:
		return "awaiting-confirmation"
	case StateCancelled:
		return "cancelled"
	case StateDeleting:
		return "deleting"
	case StateDeleted:
		return "deleted"
	case StateDeletionFailed:
		return "deletion-failed"
	}
	return "unknown"
}

// Confirmer answers the yes/no gate before a deletion is dispatched.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(ctx context.Context, prompt string) (bool, error)

// Confirm implements Confirmer.
func (f ConfirmerFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// StdinConfirmer asks on the terminal. Anything but y/yes declines.
type StdinConfirmer struct {
	In  io.Reader
	Out io.Writer
}

// Confirm implements Confirmer.
func (c *StdinConfirmer) Confirm(_ context.Context, prompt string) (bool, error) {
	fmt.Fprintf(c.Out, "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// Outcome is the terminal result of one guarded deletion.
type Outcome struct {
	State   State
	Message string
}

// Guard runs the deletion workflow. The delete request is dispatched only
// after the same-day existence check returned a positive count and the
// confirmer answered yes; every other path ends without a request.
type Guard struct {
	client  *client.Client
	confirm Confirmer
	state   State
}

// NewGuard creates a guard over the shared HTTP client.
func NewGuard(clnt *client.Client, confirm Confirmer) *Guard {
	return &Guard{client: clnt, confirm: confirm, state: StateIdle}
}

// State returns the guard's current position in the workflow.
func (g *Guard) State() State { return g.state }

type existsResponse struct {
	Exist      bool `json:"existen"`
	TotalFiles int  `json:"total_archivos"`
}

// Run executes the guarded deletion for (table, dir). Any returned error is
// terminal for this invocation; the guard is not reusable after a terminal
// state without re-initiating.
func (g *Guard) Run(ctx context.Context, table, dir string) (Outcome, error) {
	if table == "" {
		return Outcome{State: g.state}, ErrNoTable
	}
	if dir == "" {
		dir = "respaldos"
	}

	g.state = StateChecking
	query := url.Values{
		"tabla":      {table},
		"directorio": {dir},
		"solo_hoy":   {"true"},
	}
	var check existsResponse
	if err := g.client.GetJSON(ctx, "/respaldos/existe", query, &check); err != nil {
		return Outcome{State: g.state}, err
	}

	if !check.Exist {
		g.state = StateNoBackupFound
		return Outcome{
			State:   g.state,
			Message: fmt.Sprintf("No backups from today for %s in %s", table, dir),
		}, nil
	}

	g.state = StateAwaitingConfirmation
	prompt := fmt.Sprintf("Found %d backups from TODAY for %s.\n\nDelete all records from the table?", check.TotalFiles, table)
	confirmed, err := g.confirm.Confirm(ctx, prompt)
	if err != nil {
		return Outcome{State: g.state}, err
	}
	if !confirmed {
		g.state = StateCancelled
		return Outcome{State: g.state, Message: "Action cancelled by user."}, nil
	}

	g.state = StateDeleting
	payload := map[string]any{"tabla": table, "directorio": dir, "solo_hoy": true}
	resp, err := g.client.Do(ctx, http.MethodDelete, "/limpiar_tabla", nil, payload)
	if err != nil {
		return Outcome{State: g.state}, err
	}

	if resp.OK() {
		g.state = StateDeleted
	} else {
		g.state = StateDeletionFailed
	}
	return Outcome{
		State:   g.state,
		Message: fmt.Sprintf("HTTP %d - %s", resp.Status, resp.Text()),
	}, nil
}
