// Package compile implements "compile" and "normalize" commands: finding
// symbol files in files, directories and archives, resolving table package
// and writing generated sources.
package compile

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"rgen/archive"
	"rgen/state"
	"rgen/symbols"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("compile")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Mailformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.TableName = env.Cfg.Generator.TableName
	if name := cmd.String("name"); len(name) > 0 {
		env.TableName = name
	}
	if !symbols.IsJavaIdentifier(env.TableName) {
		return fmt.Errorf("table name is not a valid java identifier: %q", env.TableName)
	}

	env.Package = cmd.String("package")
	if !symbols.IsJavaPackage(env.Package) {
		return fmt.Errorf("package is not a valid java package name: %q", env.Package)
	}

	env.FinalIDs = env.Cfg.Generator.FinalIDs && !cmd.Bool("non-final")
	env.NoDirs = cmd.Bool("nodirs")

	// Since zip "standard" does not define file name encoding we may need to
	// force archaic code page for old archives
	cp := cmd.String("force-zip-cp")
	if len(cp) > 0 {
		env.CodePage, err = ianaindex.IANA.Encoding(cp)
		if err != nil || env.CodePage == nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			env.CodePage = nil
		} else {
			n, _ := ianaindex.IANA.Name(env.CodePage)
			log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", n))
		}
	}

	log.Info("Processing starting",
		zap.String("source", src), zap.String("destination", dst),
		zap.String("table", env.TableName), zap.Bool("final", env.FinalIDs))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, log)
}

// process determines the input type (directory, archive, or single symbol
// file) and processes it accordingly. Archive path could be followed by path
// inside archive.
func process(ctx context.Context, src, dst string, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := env.Fs.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			if err := processDir(ctx, head, dst, log); err != nil {
				return fmt.Errorf("unable to process directory: %w", err)
			}
			return nil
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := isArchiveFile(env.Fs, head, env.Cfg.Input.ArchiveExtensions)
		if err != nil {
			// checking format - but cannot open target file
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			// we need to look inside to see if path makes sense
			tail = filepath.ToSlash(strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator)))
			if err := processArchive(ctx, head, tail, "", dst, log); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			return nil
		}

		if len(tail) != 0 {
			return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}
		// file requested explicitly is treated as symbol file regardless of its name
		return processFile(ctx, head, filepath.Base(head), dst, log)
	}
	return fmt.Errorf("input source was not found (%s)", src)
}

// processDir walks directory tree finding symbol files and archives and
// processes them. Failures of individual inputs do not stop the walk, they are
// collected and returned together.
func processDir(ctx context.Context, dir, dst string, log *zap.Logger) (err error) {
	env := state.EnvFromContext(ctx)

	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	var errs error
	err = afero.Walk(env.Fs, dir, func(path string, info os.FileInfo, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		rel := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))

		isArchive, err := isArchiveFile(env.Fs, path, env.Cfg.Input.ArchiveExtensions)
		if err != nil {
			// checking format - but cannot open target file
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if isArchive {
			count++
			if err := processArchive(ctx, path, "", filepath.Dir(rel), dst, log); err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
				errs = multierr.Append(errs, fmt.Errorf("%s: %w", path, err))
			}
			return nil
		}

		if info.Name() != env.Cfg.Input.SymbolFileName {
			log.Debug("Skipping file, not recognized as symbol file or archive", zap.String("file", path))
			return nil
		}

		count++
		if err := processFile(ctx, path, rel, dst, log); err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", path, err))
		}
		return nil
	})
	return multierr.Append(err, errs)
}

// processFile handles symbol file on disk. "src" is the file path relative
// to the requested source, it is used to place generated output.
func processFile(ctx context.Context, path, src, dst string, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	pkg := env.Package
	if len(pkg) == 0 {
		var err error
		if pkg, err = manifestPackageFile(env.Fs, path, env.Cfg.Input.ManifestFileName); err != nil {
			return err
		}
	}

	f, err := env.Fs.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return processSymbols(ctx, f, src, pkg, dst, log)
}

// processArchive walks all symbol files inside archive under "pathIn" and
// processes them. "pathOut" is directory of the archive relative to the
// requested source directory, generated sources for archive entries are
// placed under it.
func processArchive(ctx context.Context, path, pathIn, pathOut, dst string, log *zap.Logger) (err error) {
	env := state.EnvFromContext(ctx)

	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("archive", path))
		}
	}()

	var errs error
	err = archive.Walk(env.Fs, path, pathIn, archive.BaseNameIs(env.Cfg.Input.SymbolFileName),
		func(arc string, f *zip.File, entries archive.Entries) error {
			if err := ctx.Err(); err != nil {
				return err
			}

			count++

			pathInArchive := decodeName(f, env, log)
			if err := processEntry(ctx, f, entries, filepath.Join(pathOut, filepath.FromSlash(pathInArchive)), dst, log); err != nil {
				log.Error("Unable to process file in archive",
					zap.String("archive", arc), zap.String("file", f.FileHeader.Name), zap.Error(err))
				errs = multierr.Append(errs, fmt.Errorf("%s: %w", f.FileHeader.Name, err))
			}
			return nil
		})
	if err == nil && count == 0 && len(pathIn) > 0 {
		return fmt.Errorf("no symbol files found in archive under (%s)", pathIn)
	}
	return multierr.Append(err, errs)
}

func processEntry(ctx context.Context, f *zip.File, entries archive.Entries, src, dst string, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	pkg := env.Package
	if len(pkg) == 0 {
		if m := entries.Sibling(f, env.Cfg.Input.ManifestFileName); m != nil {
			r, err := m.Open()
			if err != nil {
				return err
			}
			pkg, err = manifestPackage(r)
			r.Close()
			if err != nil {
				return err
			}
		}
	}

	r, err := f.Open()
	if err != nil {
		return err
	}
	defer r.Close()

	return processSymbols(ctx, r, src, pkg, dst, log)
}

// decodeName returns archive entry name, converting it from forced code page
// when requested.
func decodeName(f *zip.File, env *state.LocalEnv, log *zap.Logger) string {
	name := f.FileHeader.Name
	if env.CodePage == nil || !f.FileHeader.NonUTF8 {
		return name
	}
	n, err := env.CodePage.NewDecoder().String(name)
	if err != nil {
		cs, _ := ianaindex.IANA.Name(env.CodePage)
		log.Warn("Unable to convert archive name from specified encoding",
			zap.String("charset", cs), zap.String("path", name), zap.Error(err))
		return name
	}
	return n
}

// processSymbols compiles single symbol table. "src" is part of the source
// path (always including file name) relative to the original path. "dst" is
// the destination directory where generated sources should be written.
func processSymbols(ctx context.Context, r io.Reader, src, pkg, dst string, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	var outputName string

	log.Info("Compilation starting", zap.String("from", src), zap.String("package", pkg))
	defer func(start time.Time) {
		log.Info("Compilation completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName))
	}(time.Now())

	t, err := symbols.Read(r, symbols.WithTableName(env.TableName), symbols.WithTablePackage(pkg))
	if err != nil {
		return fmt.Errorf("unable to parse symbols (%s): %w", src, err)
	}
	log.Debug("Symbols loaded", zap.Int("count", t.Len()), zap.Strings("classes", t.Classes()))

	if env.Rpt != nil {
		env.Rpt.StoreData(filepath.ToSlash(filepath.Join("tables", src)), []byte(t.String()))
	}

	if outputName, err = symbols.ExportToJava(env.Fs, t, outputDir(src, dst, env), env.FinalIDs); err != nil {
		return fmt.Errorf("unable to generate sources: %w", err)
	}

	// Store compilation result for debugging
	if env.Rpt != nil {
		env.Rpt.Store(filepath.ToSlash(filepath.Join("results", filepath.Dir(src), symbols.JavaPath(t))), outputName)
	}
	return nil
}

// outputDir mirrors input directory structure under destination unless asked
// otherwise.
func outputDir(src, dst string, env *state.LocalEnv) string {
	if env.NoDirs {
		return dst
	}
	return filepath.Join(dst, filepath.Dir(src))
}
