package catalog

import (
	"fmt"

	"cuelang.org/go/cue/token"
)

// Catalog is the immutable set of option lists, one per group.
type Catalog struct {
	groups map[Group][]Option
	index  map[Group]map[string]int
}

func build(groups map[Group][]Option, positions map[string]token.Pos) (*Catalog, error) {
	c := &Catalog{
		groups: groups,
		index:  make(map[Group]map[string]int, len(Groups)),
	}

	for _, g := range Groups {
		opts, ok := groups[g]
		if !ok {
			return nil, &CompileError{Field: string(g), Message: "group is required"}
		}
		if len(opts) == 0 {
			return nil, &CompileError{Field: string(g), Message: "group must declare at least one option"}
		}

		idx := make(map[string]int, len(opts))
		sentinels := 0
		for i, opt := range opts {
			field := fmt.Sprintf("%s[%d]", g, i)
			fail := func(msg string) error {
				return &CompileError{Field: field, Message: msg, Pos: positions[field]}
			}

			if opt.ID == "" {
				return nil, fail("id must not be empty")
			}
			if _, dup := idx[opt.ID]; dup {
				return nil, fail(fmt.Sprintf("duplicate id %q", opt.ID))
			}
			idx[opt.ID] = i

			switch {
			case g == GroupCard && opt.Category != CategorySingle && opt.Category != CategoryMulti:
				return nil, fail(fmt.Sprintf("card option %q needs category single or multi", opt.ID))
			case g != GroupCard && opt.Category != CategoryNone:
				return nil, fail(fmt.Sprintf("category is only allowed on card options, got %q", opt.Category))
			}

			if opt.Sentinel {
				if !hasSentinel(g) {
					return nil, fail(fmt.Sprintf("group %s does not take a sentinel option", g))
				}
				if opt.Code != "" {
					return nil, fail(fmt.Sprintf("sentinel %q must have an empty code", opt.ID))
				}
				sentinels++
			} else if opt.Code == "" && g != GroupBiometric && g != GroupNetwork {
				return nil, fail(fmt.Sprintf("option %q must have a code", opt.ID))
			}
		}

		if hasSentinel(g) && sentinels != 1 {
			return nil, &CompileError{
				Field:   string(g),
				Message: fmt.Sprintf("exactly one sentinel option is required, found %d", sentinels),
			}
		}
		c.index[g] = idx
	}

	return c, nil
}

// hasSentinel reports whether the group carries a "no selection" entry.
func hasSentinel(g Group) bool {
	return g == GroupBiometric || g == GroupNetwork
}

// Options returns a copy of the group's options in catalog order.
func (c *Catalog) Options(g Group) []Option {
	return append([]Option(nil), c.groups[g]...)
}

// Lookup finds an option by id within a group.
func (c *Catalog) Lookup(g Group, id string) (Option, bool) {
	i, ok := c.index[g][id]
	if !ok {
		return Option{}, false
	}
	return c.groups[g][i], true
}

// Position returns the option's index within its group, or -1 when absent.
func (c *Catalog) Position(g Group, id string) int {
	if i, ok := c.index[g][id]; ok {
		return i
	}
	return -1
}

// Sentinel returns the group's sentinel option, if it has one.
func (c *Catalog) Sentinel(g Group) (Option, bool) {
	for _, opt := range c.groups[g] {
		if opt.Sentinel {
			return opt, true
		}
	}
	return Option{}, false
}

// ByCategory returns the card options tagged with category, in catalog order.
func (c *Catalog) ByCategory(category Category) []Option {
	var out []Option
	for _, opt := range c.groups[GroupCard] {
		if opt.Category == category {
			out = append(out, opt)
		}
	}
	return out
}
