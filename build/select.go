// Package build implements command actions: building single selectors from
// command line and selector recipes from files.
package build

import (
	"context"
	"errors"
	"fmt"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"cssb/recipe"
	"cssb/state"
)

// Select builds one selector from "category=value" arguments applied in
// order and prints it.
func Select(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("select")

	if cmd.Args().Len() == 0 {
		return errors.New("no selector steps have been specified")
	}

	text, err := selectorFromArgs(cmd.Args().Slice())
	if err != nil {
		return err
	}
	env.Overwrite = cmd.Bool("overwrite")
	log.Debug("Selector built", zap.Strings("steps", cmd.Args().Slice()), zap.String("selector", text))

	out, err := openOutput(cmd.String("out"), env)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, text)
	return closeOutput(out, err)
}

func selectorFromArgs(args []string) (string, error) {
	steps, err := recipe.ParseSteps(args)
	if err != nil {
		return "", err
	}
	sel, err := recipe.Node{Steps: steps}.Selector()
	if err != nil {
		return "", err
	}
	return sel.Stringify()
}
