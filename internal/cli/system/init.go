// Package system holds the maintenance commands: storage init, explicit
// migration runs, and diagnostics.
package system

import (
	"fmt"

	"github.com/IlyaKukarkin/bee-bloom/internal/cli"
)

type InitCmd struct{}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if err := ctx.Persister.Init(); err != nil {
		return err
	}
	if err := ctx.Persister.Save(); err != nil {
		return err
	}
	fmt.Printf("Initialized beebloom storage at: %s\n", ctx.Persister.Path())
	return nil
}
