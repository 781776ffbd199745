package build

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	pathpkg "path"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"cssb/archive"
	"cssb/common"
	"cssb/recipe"
	"cssb/state"
)

// Run builds all selectors from recipe files given as arguments and writes
// them out in requested format.
func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("build")

	if cmd.Args().Len() == 0 {
		return errors.New("no recipe files have been specified")
	}

	env.Format = env.Cfg.Output.Format
	if cmd.IsSet("format") {
		format, err := common.ParseOutputFormat(cmd.String("format"))
		if err != nil {
			log.Warn("Unknown output format requested, using configured one", zap.Stringer("format", env.Format), zap.Error(err))
		} else {
			env.Format = format
		}
	}
	env.Overwrite = cmd.Bool("overwrite")

	log.Debug("Processing starting", zap.Strings("recipes", cmd.Args().Slice()), zap.Stringer("format", env.Format))
	defer func(start time.Time) {
		log.Debug("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, cmd.Args().Slice(), cmd.String("out"), env, log)
}

// process handles the core logic independently of CLI framework. Output is
// produced for everything that could be built, errors are returned together.
func process(ctx context.Context, paths []string, dst string, env *state.LocalEnv, log *zap.Logger) error {
	var (
		rcps    = make([]*recipe.Recipe, 0, len(paths))
		results = make([]recipe.Result, 0)
		errs    error
	)

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		srcs, err := collectSources(ctx, path)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			log.Error("Unable to read recipes", zap.String("file", path), zap.Error(err))
			errs = multierr.Append(errs, err)
			continue
		}

		for _, src := range srcs {
			env.Rpt.StoreData(pathpkg.Join("recipes", src.name), src.data)

			rcp, err := recipe.Load(bytes.NewReader(src.data))
			if err != nil {
				err = fmt.Errorf("recipe %s: %w", src.name, err)
				log.Error("Unable to load recipe", zap.String("recipe", src.name), zap.Error(err))
				errs = multierr.Append(errs, err)
				continue
			}
			rcps = append(rcps, rcp)

			res, err := rcp.Build(log)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("recipe %s: %w", src.name, err))
			}
			log.Debug("Recipe processed", zap.String("recipe", src.name), zap.Int("selectors", len(res)))
			results = append(results, res...)
		}
	}

	if len(rcps) == 0 {
		return errs
	}

	out, err := openOutput(dst, env)
	if err != nil {
		return multierr.Append(errs, err)
	}
	err = write(out, env.Format, env.Cfg.Output.NaturalSort, rcps, results)
	return multierr.Append(errs, closeOutput(out, err))
}

type source struct {
	name string
	data []byte
}

// collectSources reads single recipe file or every recipe in a bundle. Names
// are what recipes are known by in logs and debug report.
func collectSources(ctx context.Context, path string) ([]source, error) {
	bundle, err := archive.IsBundle(path)
	if err != nil {
		return nil, fmt.Errorf("unable to check recipe file type: %w", err)
	}

	if !bundle {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("unable to read recipe: %w", err)
		}
		return []source{{name: filepath.Base(path), data: data}}, nil
	}

	var srcs []source
	err = archive.Walk(ctx, path, "", func(bundle, name string, data []byte) error {
		srcs = append(srcs, source{name: pathpkg.Join(filepath.Base(bundle), name), data: data})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to read recipe bundle: %w", err)
	}
	if len(srcs) == 0 {
		return nil, fmt.Errorf("recipe bundle %s has no recipes", path)
	}
	return srcs, nil
}
