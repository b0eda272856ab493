package scaffold

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const (
	dirMode  = 0o755
	fileMode = 0o644
)

// copyOp is a single directory or file to materialize.
type copyOp struct {
	entry string // plan entry the operation belongs to
	src   string
	dest  string // slash-separated, relative to the project root
	dir   bool
}

// expand walks directory entries of the plan into individual operations.
func expand(src fs.FS, plan Plan) ([]copyOp, error) {
	var ops []copyOp
	for _, e := range plan {
		if !e.IsDir {
			ops = append(ops, copyOp{entry: e.Source, src: e.Source, dest: e.Dest})
			continue
		}
		err := fs.WalkDir(src, e.Source, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel := strings.TrimPrefix(strings.TrimPrefix(p, e.Source), "/")
			ops = append(ops, copyOp{
				entry: e.Source,
				src:   p,
				dest:  path.Join(e.Dest, rel),
				dir:   d.IsDir(),
			})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("copying %s: %w", e.Source, err)
		}
	}
	return ops, nil
}

// Copy writes every plan entry from src under root on dst. Directories are
// copied recursively and files byte for byte. The first failure stops the
// copy; files already written stay. It returns the written file paths
// relative to root.
func Copy(ctx context.Context, src fs.FS, dst afero.Fs, root string, plan Plan) ([]string, error) {
	ops, err := expand(src, plan)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return files, err
		}
		if err := copyOne(src, dst, root, op); err != nil {
			return files, fmt.Errorf("copying %s: %w", op.entry, err)
		}
		if !op.dir {
			files = append(files, op.dest)
		}
	}
	return files, nil
}

func copyOne(src fs.FS, dst afero.Fs, root string, op copyOp) error {
	target := filepath.Join(root, filepath.FromSlash(op.dest))
	if op.dir {
		return dst.MkdirAll(target, dirMode)
	}
	data, err := fs.ReadFile(src, op.src)
	if err != nil {
		return err
	}
	if err := dst.MkdirAll(filepath.Dir(target), dirMode); err != nil {
		return err
	}
	return afero.WriteFile(dst, target, data, fileMode)
}

// plannedFiles lists the files Copy would write, without touching dst.
func plannedFiles(src fs.FS, plan Plan) ([]string, error) {
	ops, err := expand(src, plan)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, op := range ops {
		if !op.dir {
			files = append(files, op.dest)
		}
	}
	return files, nil
}
