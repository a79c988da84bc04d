package statica

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync/atomic"
)

type rootCheck struct {
	err error
}

// Resolver maps request paths onto a static root. The root directory itself is
// verified once per Resolver; the outcome, good or bad, is kept for its lifetime.
type Resolver struct {
	root    StaticRoot
	mode    ResolutionMode
	storage FileStorage
	checked atomic.Pointer[rootCheck]
}

// NewResolver validates the configuration shape and returns a Resolver. The root
// directory is not touched until VerifyRoot or the first Resolve.
func NewResolver(root StaticRoot, storage FileStorage) (*Resolver, error) {
	if err := root.Validate(); err != nil {
		return nil, err
	}

	if storage == nil {
		return nil, &ConfigError{Root: root.Root, Err: errors.New("file storage cannot be nil")}
	}

	return &Resolver{
		root:    root,
		mode:    root.EffectiveMode(),
		storage: storage,
	}, nil
}

// Root returns the configuration the resolver was built with.
func (r *Resolver) Root() StaticRoot {
	return r.root
}

// Resolve computes the on-disk path for a request. It returns a *RejectedError for
// paths escaping the root and a *ConfigError if the root directory is unusable.
func (r *Resolver) Resolve(ctx context.Context, req Request) (ResolvedPath, error) {
	p := r.requestPath(req)
	if r.root.IndexFile != "" && wantsIndex(p) {
		p += r.root.IndexFile
	}

	rel, ok := normalizePath(p)
	if !ok {
		return ResolvedPath{}, &RejectedError{Reason: ReasonPathEscape, Path: p}
	}

	if err := r.VerifyRoot(ctx); err != nil {
		return ResolvedPath{}, err
	}

	return ResolvedPath{
		Relative: rel,
		FullPath: filepath.Join(r.root.Root, filepath.FromSlash(rel)),
	}, nil
}

func (r *Resolver) requestPath(req Request) string {
	if r.mode == ModeRouteSuffix {
		return "/" + req.RouteSuffix
	}
	return req.Path
}

// VerifyRoot checks that the root exists and is a directory (or a symlink to one).
// Concurrent first calls may each stat the root; the first stored result wins.
// A cancelled context is returned as is and does not count as a verdict.
func (r *Resolver) VerifyRoot(ctx context.Context) error {
	if c := r.checked.Load(); c != nil {
		return c.err
	}

	err := r.checkRoot(ctx)
	if isContextErr(err) {
		return err
	}

	r.checked.CompareAndSwap(nil, &rootCheck{err: err})
	return r.checked.Load().err
}

func (r *Resolver) checkRoot(ctx context.Context) error {
	info, err := r.storage.Stat(ctx, r.root.Root)
	if err != nil {
		if isContextErr(err) {
			return err
		}
		if errors.Is(err, ErrNotFound) {
			return &ConfigError{Root: r.root.Root, Err: errors.New("directory does not exist")}
		}
		return &ConfigError{Root: r.root.Root, Err: fmt.Errorf("stat root: %w", err)}
	}

	if !info.IsDir() && info.Mode()&fs.ModeSymlink == 0 {
		return &ConfigError{Root: r.root.Root, Err: errors.New("path is not a directory")}
	}

	return nil
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
