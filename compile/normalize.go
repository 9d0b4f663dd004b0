package compile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"rgen/state"
	"rgen/symbols"
)

// Normalize reads single symbol file and writes it back in canonical form:
// one symbol per line sorted by class and name.
func Normalize(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("normalize")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Mailformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	t, err := symbols.ReadFile(env.Fs, src)
	if err != nil {
		return err
	}
	log.Debug("Symbols loaded", zap.String("source", src), zap.Int("count", t.Len()))

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		// stdout carries the result, keep console log quiet
		log.Debug("Outputing normalized symbols", zap.String("file", "STDOUT"))
		if err := symbols.Write(os.Stdout, t); err != nil {
			return fmt.Errorf("unable to write symbols: %w", err)
		}
		return nil
	}

	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if err := symbols.WriteFile(env.Fs, t, dst); err != nil {
		return err
	}
	log.Info("Outputing normalized symbols", zap.String("file", dst))

	if env.Rpt != nil {
		env.Rpt.Store("normalized/"+filepath.Base(dst), dst)
	}
	return nil
}
