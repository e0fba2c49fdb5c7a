package migration

import (
	"fmt"
	"strings"
)

// Chain is a validated, base-first ordering of revisions.
type Chain struct {
	ordered []Migration
	index   map[string]int
}

// NewChain orders migrations by following down revision links from the
// single revision that has none.
func NewChain(migrations []Migration) (*Chain, error) {
	byRevision := make(map[string]Migration, len(migrations))
	children := make(map[string]string, len(migrations))
	var roots []string

	for _, m := range migrations {
		rev := strings.TrimSpace(m.Revision)
		if rev == "" || rev == Head || rev == Base {
			return nil, NewMigrationError(m.Revision, "validate chain", fmt.Errorf("%w: %q is not a usable revision id", ErrBrokenChain, m.Revision))
		}
		if _, exists := byRevision[rev]; exists {
			return nil, NewMigrationError(rev, "validate chain", ErrDuplicateRevision)
		}
		byRevision[rev] = m

		if m.DownRevision == "" {
			roots = append(roots, rev)
			continue
		}
		if sibling, forked := children[m.DownRevision]; forked {
			return nil, NewMigrationError(rev, "validate chain",
				fmt.Errorf("%w: %s and %s both revise %s", ErrBrokenChain, sibling, rev, m.DownRevision))
		}
		children[m.DownRevision] = rev
	}

	if len(migrations) == 0 {
		return &Chain{index: map[string]int{}}, nil
	}
	if len(roots) != 1 {
		return nil, NewMigrationError("", "validate chain",
			fmt.Errorf("%w: expected exactly one base revision, found %d", ErrBrokenChain, len(roots)))
	}

	chain := &Chain{
		ordered: make([]Migration, 0, len(migrations)),
		index:   make(map[string]int, len(migrations)),
	}
	for rev := roots[0]; rev != ""; rev = children[rev] {
		if _, seen := chain.index[rev]; seen {
			return nil, NewMigrationError(rev, "validate chain", fmt.Errorf("%w: cycle detected", ErrBrokenChain))
		}
		chain.index[rev] = len(chain.ordered)
		chain.ordered = append(chain.ordered, byRevision[rev])
	}

	if len(chain.ordered) != len(migrations) {
		for rev, m := range byRevision {
			if _, ok := chain.index[rev]; !ok {
				return nil, NewMigrationError(rev, "validate chain",
					fmt.Errorf("%w: down revision %s is not reachable from base", ErrBrokenChain, m.DownRevision))
			}
		}
	}
	return chain, nil
}

// Migrations returns the revisions base first.
func (c *Chain) Migrations() []Migration {
	out := make([]Migration, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Head returns the newest revision id, or "" for an empty chain.
func (c *Chain) Head() string {
	if len(c.ordered) == 0 {
		return ""
	}
	return c.ordered[len(c.ordered)-1].Revision
}

// position maps a revision id, "head", "base", or "" to its index.
// Base is -1.
func (c *Chain) position(target string) (int, error) {
	switch target {
	case "", Base:
		return -1, nil
	case Head:
		return len(c.ordered) - 1, nil
	}
	idx, ok := c.index[target]
	if !ok {
		return 0, NewMigrationError(target, "resolve revision", ErrUnknownRevision)
	}
	return idx, nil
}
