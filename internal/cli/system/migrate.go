package system

import (
	"fmt"

	"github.com/IlyaKukarkin/bee-bloom/internal/cli"
	"github.com/IlyaKukarkin/bee-bloom/internal/migration"
)

type MigrateCmd struct{}

// Run executes the data-shape migrations explicitly. Startup already runs
// them; this exists for inspecting a file without going through a full app
// session, and for re-running after a restore.
func (c *MigrateCmd) Run(ctx *cli.Context) error {
	migration.NewRunner().Run(ctx.Store)
	if err := ctx.Persister.Save(); err != nil {
		return err
	}
	fmt.Println("Migrations complete")
	return nil
}
