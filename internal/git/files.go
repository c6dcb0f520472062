package git

import (
	"bufio"
	"cmp"
	"context"
	"fmt"
	"iter"
)

// ListFilesOptions restricts the output of [Repository.ListFilesPaths].
type ListFilesOptions struct {
	// Unmerged states that only unmerged files should be listed.
	Unmerged bool
}

// ListFilesPaths lists paths of files in the working tree or index,
// filtered by the given options.
func (r *Repository) ListFilesPaths(ctx context.Context, opts *ListFilesOptions) iter.Seq2[string, error] {
	opts = cmp.Or(opts, &ListFilesOptions{})
	args := []string{"ls-files", "--format=%(path)"}
	if opts.Unmerged {
		args = append(args, "--unmerged")
	}

	return func(yield func(string, error) bool) {
		cmd := r.gitCmd(ctx, args...)
		out, err := cmd.StdoutPipe()
		if err != nil {
			yield("", fmt.Errorf("git ls-files: %w", err))
			return
		}

		if err := cmd.Start(r.exec); err != nil {
			yield("", fmt.Errorf("start git ls-files: %w", err))
			return
		}

		shown := make(map[string]struct{})
		scan := bufio.NewScanner(out)
		for scan.Scan() {
			path := scan.Text()
			if path == "" {
				continue
			}
			if _, ok := shown[path]; ok {
				continue
			}
			shown[path] = struct{}{}

			if !yield(path, nil) {
				_ = cmd.Kill(r.exec)
				return
			}
		}

		if err := scan.Err(); err != nil {
			yield("", fmt.Errorf("read output: %w", err))
			return
		}

		if err := cmd.Wait(r.exec); err != nil {
			yield("", fmt.Errorf("git ls-files: %w", err))
		}
	}
}
