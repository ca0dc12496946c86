package system

import (
	"fmt"

	"github.com/julianstephens/ember/internal/cli"
)

type RolloverCmd struct {
	Force bool `help:"Run the day-boundary pass even if it already ran today."`
}

func (c *RolloverCmd) Run(ctx *cli.Context) error {
	if err := ctx.Rollover(c.Force); err != nil {
		return err
	}
	fmt.Println("Rollover complete.")
	return nil
}
