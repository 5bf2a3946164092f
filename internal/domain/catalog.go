package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type Provenance string

const (
	ProvenanceBuiltin Provenance = "builtin"
	ProvenanceCustom  Provenance = "custom"
)

// ActivityDefinition is a nameable activity and its XP reward.
type ActivityDefinition struct {
	Name       string
	XPValue    int
	Provenance Provenance
}

var builtinActivities = map[string]int{
	"Complete 1-hour study session":          50,
	"Complete a challenging coding exercise": 75,
	"Successfully debug a complex issue":     100,
	"Brush Teeth (Morning)":                  5,
	"Brush Teeth (Evening)":                  5,
	"Bath/Shower":                            10,
	"Breakfast":                              10,
	"Lunch":                                  10,
	"Dinner":                                 10,
	"Achieve 7-8 hours of sleep":             25,
}

// BuiltinActivities returns a copy of the fixed built-in set shared by all users.
func BuiltinActivities() map[string]int {
	out := make(map[string]int, len(builtinActivities))
	for name, xp := range builtinActivities {
		out[name] = xp
	}
	return out
}

// IsBuiltinActivity reports whether name is a built-in activity (exact match).
func IsBuiltinActivity(name string) bool {
	_, ok := builtinActivities[name]
	return ok
}

// Catalog is the two-tier view of one user's activities. Built-ins take
// precedence on lookup; collisions are rejected when a custom entry is
// defined, never resolved at read time.
type Catalog struct {
	builtin map[string]int
	custom  map[string]int
}

// NewCatalog builds a catalog from the built-in set and a user's custom set.
// Custom entries that shadow a built-in are ignored; they can only exist in
// stores written before the collision rule.
func NewCatalog(builtin, custom map[string]int) *Catalog {
	c := &Catalog{
		builtin: make(map[string]int, len(builtin)),
		custom:  make(map[string]int, len(custom)),
	}
	for name, xp := range builtin {
		c.builtin[name] = xp
	}
	for name, xp := range custom {
		if _, shadowed := c.builtin[name]; shadowed {
			continue
		}
		c.custom[name] = xp
	}
	return c
}

// NewUserCatalog builds a catalog over the standard built-in set.
func NewUserCatalog(custom map[string]int) *Catalog {
	return NewCatalog(builtinActivities, custom)
}

// Resolve looks the name up in the built-in set first, then the custom set.
func (c *Catalog) Resolve(name string) (ActivityDefinition, error) {
	if xp, ok := c.builtin[name]; ok {
		return ActivityDefinition{Name: name, XPValue: xp, Provenance: ProvenanceBuiltin}, nil
	}
	if xp, ok := c.custom[name]; ok {
		return ActivityDefinition{Name: name, XPValue: xp, Provenance: ProvenanceCustom}, nil
	}
	return ActivityDefinition{}, fmt.Errorf("%w: %q", ErrInvalidActivity, name)
}

// Names returns the union of both tiers as a name to XP mapping.
func (c *Catalog) Names() map[string]int {
	out := make(map[string]int, len(c.builtin)+len(c.custom))
	for name, xp := range c.builtin {
		out[name] = xp
	}
	for name, xp := range c.custom {
		out[name] = xp
	}
	return out
}

// All returns every definition sorted by provenance (built-ins first) then name.
func (c *Catalog) All() []ActivityDefinition {
	defs := make([]ActivityDefinition, 0, len(c.builtin)+len(c.custom))
	for name, xp := range c.builtin {
		defs = append(defs, ActivityDefinition{Name: name, XPValue: xp, Provenance: ProvenanceBuiltin})
	}
	for name, xp := range c.custom {
		defs = append(defs, ActivityDefinition{Name: name, XPValue: xp, Provenance: ProvenanceCustom})
	}
	sort.Slice(defs, func(i, j int) bool {
		if defs[i].Provenance != defs[j].Provenance {
			return defs[i].Provenance == ProvenanceBuiltin
		}
		return defs[i].Name < defs[j].Name
	})
	return defs
}

// CheckDefinable validates a prospective custom definition against this
// catalog and returns it normalized.
func (c *Catalog) CheckDefinable(name string, xp int) (ActivityDefinition, error) {
	normalized, err := NormalizeActivityName(name)
	if err != nil {
		return ActivityDefinition{}, err
	}
	if err := ValidateXP(xp); err != nil {
		return ActivityDefinition{}, err
	}
	if _, ok := c.builtin[normalized]; ok {
		return ActivityDefinition{}, fmt.Errorf("%w: %q is a built-in activity", ErrDuplicateName, normalized)
	}
	if _, ok := c.custom[normalized]; ok {
		return ActivityDefinition{}, fmt.Errorf("%w: %q", ErrDuplicateName, normalized)
	}
	return ActivityDefinition{Name: normalized, XPValue: xp, Provenance: ProvenanceCustom}, nil
}

// NormalizeActivityName trims surrounding whitespace and rejects empty names.
func NormalizeActivityName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("%w: name must not be empty", ErrInvalidName)
	}
	return trimmed, nil
}

// MaxActivityXP caps the reward of a single activity. It bounds how many
// levels one log can cross and keeps ledger arithmetic far from overflow.
const MaxActivityXP = 10_000

// ValidateXP rejects values outside 1..MaxActivityXP.
func ValidateXP(xp int) error {
	if xp <= 0 {
		return fmt.Errorf("%w: must be a positive integer, got %d", ErrInvalidXP, xp)
	}
	if xp > MaxActivityXP {
		return fmt.Errorf("%w: must be at most %d, got %d", ErrInvalidXP, MaxActivityXP, xp)
	}
	return nil
}

// ParseXP parses user input into an XP value accepted by ValidateXP.
func ParseXP(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidXP, s)
	}
	if err := ValidateXP(n); err != nil {
		return 0, err
	}
	return n, nil
}
