package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/tally/internal/domain"
)

// resolveUser picks the user for a command: the flag, then TALLY_USER,
// then the last user who started a session on this machine.
func resolveUser(ctx context.Context, app *App, flag string) (string, error) {
	if u := domain.CoalesceStr(strings.TrimSpace(flag), strings.TrimSpace(app.Config.DefaultUser)); u != "" {
		return u, nil
	}
	last, err := app.Tracking.LastUser(ctx)
	if err != nil {
		return "", err
	}
	if last == "" {
		return "", fmt.Errorf("no user given: pass --user or set TALLY_USER")
	}
	return last, nil
}
