// Package vcs reports which files an upstream commit touched.
package vcs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/aisystant/coursesync"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"
)

// Source is a git repository used as a diff source.
type Source struct {
	repo *git.Repository
	root string
}

// Open opens the repository containing dir.
func Open(dir string) (*Source, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}

	root := dir
	if wt, err := repo.Worktree(); err == nil {
		root = wt.Filesystem.Root()
	}
	return &Source{repo: repo, root: root}, nil
}

// Root returns the worktree root. Change paths are relative to it.
func (s *Source) Root() string {
	return s.root
}

// Changes returns one Change per path touched by rev relative to its first
// parent. Every file of a root commit is Added.
func (s *Source) Changes(ctx context.Context, rev string) (*coursesync.ChangeSet, error) {
	hash, err := s.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", rev, err)
	}
	commit, err := s.repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("reading commit %s: %w", rev, err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("reading tree: %w", err)
	}

	if commit.NumParents() == 0 {
		return treeFiles(tree, coursesync.Added)
	}

	parent, err := commit.Parent(0)
	if err != nil {
		return nil, fmt.Errorf("reading parent: %w", err)
	}
	parentTree, err := parent.Tree()
	if err != nil {
		return nil, fmt.Errorf("reading parent tree: %w", err)
	}

	diff, err := object.DiffTreeWithOptions(ctx, parentTree, tree, nil)
	if err != nil {
		return nil, fmt.Errorf("diffing %s: %w", rev, err)
	}

	cs := &coursesync.ChangeSet{}
	for _, c := range diff {
		action, err := c.Action()
		if err != nil {
			return nil, err
		}
		switch action {
		case merkletrie.Insert:
			cs.Add(c.To.Name, coursesync.Added)
		case merkletrie.Delete:
			cs.Add(c.From.Name, coursesync.Deleted)
		case merkletrie.Modify:
			if c.From.Name != c.To.Name {
				cs.Add(c.From.Name, coursesync.Deleted)
				cs.Add(c.To.Name, coursesync.Added)
				continue
			}
			cs.Add(c.To.Name, coursesync.Modified)
		}
	}
	cs.Sort()
	return cs, nil
}

func treeFiles(tree *object.Tree, status coursesync.ChangeStatus) (*coursesync.ChangeSet, error) {
	cs := &coursesync.ChangeSet{}
	err := tree.Files().ForEach(func(f *object.File) error {
		cs.Add(f.Name, status)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing tree: %w", err)
	}
	cs.Sort()
	return cs, nil
}

// WalkTree lists every file under root as Modified. A relative root is
// resolved against base and yields paths relative to base; an absolute root
// yields absolute paths. A missing root yields no changes.
func WalkTree(base, root string) (*coursesync.ChangeSet, error) {
	cs := &coursesync.ChangeSet{}
	abs := filepath.IsAbs(root)
	start := root
	if !abs {
		start = filepath.Join(base, root)
	}

	err := filepath.WalkDir(start, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == start && errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		if abs {
			cs.Add(filepath.ToSlash(p), coursesync.Modified)
			return nil
		}
		rel, err := filepath.Rel(base, p)
		if err != nil {
			return err
		}
		cs.Add(filepath.ToSlash(rel), coursesync.Modified)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", start, err)
	}
	cs.Sort()
	return cs, nil
}
