package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/pulse/internal/app"
	"github.com/colonyops/pulse/internal/data/db"
	"github.com/colonyops/pulse/internal/printer"
)

func newDBCmd(t *testing.T) (*DBCmd, *db.DB) {
	t.Helper()
	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return NewDBCmd(&Flags{}, &app.App{DB: database}), database
}

func TestDBCmd_StatusListsAppliedMigrations(t *testing.T) {
	cmd, _ := newDBCmd(t)
	var out bytes.Buffer

	require.NoError(t, cmd.runStatus(context.Background(), &cli.Command{Writer: &out}))

	text := out.String()
	assert.Contains(t, text, "VERSION")
	assert.Contains(t, text, "search_history")
	assert.Contains(t, text, "kv_store")
	assert.NotContains(t, text, "pending")
}

func TestDBCmd_RollbackRevertsNewestSteps(t *testing.T) {
	cmd, database := newDBCmd(t)
	cmd.steps = 1
	cmd.yes = true

	var msgs bytes.Buffer
	ctx := printer.NewContext(context.Background(), printer.New(&msgs))

	require.NoError(t, cmd.runRollback(ctx, nil))
	assert.Contains(t, msgs.String(), "0003_kv_store")

	status, err := database.Migrations(ctx)
	require.NoError(t, err)
	require.Len(t, status, 3)
	assert.False(t, status[2].Applied)

	var out bytes.Buffer
	require.NoError(t, writeMigrationTable(&out, status))
	assert.Contains(t, out.String(), "pending")
}

func TestDBCmd_RollbackRejectsNonPositiveSteps(t *testing.T) {
	cmd, _ := newDBCmd(t)
	cmd.steps = 0
	cmd.yes = true

	err := cmd.runRollback(printer.NewContext(context.Background(), printer.New(&bytes.Buffer{})), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--steps")
}

func TestDBCmd_WithoutDatabase(t *testing.T) {
	cmd := NewDBCmd(&Flags{}, &app.App{})

	err := cmd.runStatus(context.Background(), &cli.Command{Writer: &bytes.Buffer{}})
	assert.ErrorContains(t, err, "not open")
}
