package inspect

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/foeb/mun/internal/syntax"
)

// Options control Files.
type Options struct {
	// Workers is the number of files processed at the same time.
	// Zero means one per CPU.
	Workers int
}

// Files reads, parses and inspects the given files concurrently. The
// reports are returned in the order of paths. The first file that cannot
// be read cancels the remaining work and is returned as the error.
func Files(ctx context.Context, fs afero.Fs, paths []string, opts Options) ([]Report, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	reports := make([]Report, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			tree, err := ParseFile(fs, path)
			if err != nil {
				return err
			}
			reports[i] = File(tree)
			reports[i].Duration = time.Since(start)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// ParseFile reads path from fs and parses it.
func ParseFile(fs afero.Fs, path string) (*syntax.Tree, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return syntax.ParseReader(path, f, nil)
}
