// Package catalog holds the static domain tables: the exercise catalog, per-muscle exercise pools,
// goal configuration, volume landmarks and recovery thresholds. Everything in here is immutable
// reference data.
package catalog

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

// Exercise is an immutable catalog entry.
type Exercise struct {
	ID            string    `yaml:"id"            json:"id"`
	Name          string    `yaml:"name"          json:"name"`
	LocalizedName string    `yaml:"name_de"       json:"localizedName,omitempty"`
	Target        Muscle    `yaml:"target"        json:"target"`
	BodyPart      string    `yaml:"body_part"     json:"bodyPart"`
	Equipment     Equipment `yaml:"equipment"     json:"equipment"`
	Secondary     []Muscle  `yaml:"secondary"     json:"secondary,omitempty"`
	Compound      bool      `yaml:"compound"      json:"compound"`
	GIFURL        string    `yaml:"gif_url"       json:"gifUrl,omitempty"`
	// Instructions are Markdown formatted.
	Instructions string `yaml:"instructions" json:"instructions,omitempty"`
}

// Catalog indexes exercises by id and by target muscle.
type Catalog struct {
	exercises []Exercise
	byID      map[string]int
	pools     map[Muscle][]int
}

type catalogFile struct {
	Exercises []Exercise `yaml:"exercises"`
}

//go:embed exercises.yaml
var exercisesYAML []byte

//nolint:gochecknoglobals // parsed once from embedded data.
var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return Load(exercisesYAML)
})

// Default returns the catalog embedded in the binary.
func Default() *Catalog {
	c, err := defaultCatalog()
	if err != nil {
		panic(fmt.Sprintf("embedded exercise catalog is invalid: %v", err))
	}
	return c
}

// Load parses and validates a YAML exercise catalog.
func Load(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}

	c := &Catalog{
		exercises: file.Exercises,
		byID:      make(map[string]int, len(file.Exercises)),
		pools:     make(map[Muscle][]int),
	}
	for i, ex := range file.Exercises {
		if ex.ID == "" {
			return nil, fmt.Errorf("exercise %d: missing id", i)
		}
		if _, dup := c.byID[ex.ID]; dup {
			return nil, fmt.Errorf("exercise %s: duplicate id", ex.ID)
		}
		if !ex.Target.Valid() {
			return nil, fmt.Errorf("exercise %s: unknown target muscle %q", ex.ID, ex.Target)
		}
		if !ex.Equipment.Valid() {
			return nil, fmt.Errorf("exercise %s: unknown equipment %q", ex.ID, ex.Equipment)
		}
		for _, m := range ex.Secondary {
			if !m.Valid() {
				return nil, fmt.Errorf("exercise %s: unknown secondary muscle %q", ex.ID, m)
			}
		}
		c.byID[ex.ID] = i
		c.pools[ex.Target] = append(c.pools[ex.Target], i)
	}
	return c, nil
}

// Exercise looks up an exercise by id.
func (c *Catalog) Exercise(id string) (Exercise, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Exercise{}, false
	}
	return c.exercises[i], true
}

// Pool returns the exercises targeting m in catalog order.
func (c *Catalog) Pool(m Muscle) []Exercise {
	idx := c.pools[m]
	pool := make([]Exercise, 0, len(idx))
	for _, i := range idx {
		pool = append(pool, c.exercises[i])
	}
	return pool
}

// PoolWithEquipment returns the pool of m restricted to the given equipment.
func (c *Catalog) PoolWithEquipment(m Muscle, equipment []Equipment) []Exercise {
	pool := c.Pool(m)
	return slices.DeleteFunc(pool, func(ex Exercise) bool {
		return !slices.Contains(equipment, ex.Equipment)
	})
}

// Exercises returns all exercises in catalog order.
func (c *Catalog) Exercises() []Exercise {
	return slices.Clone(c.exercises)
}

// CategoryOf classifies an exercise for the goal table lookup.
func CategoryOf(ex Exercise) Category {
	if ex.Target == Abs || ex.Target == Obliques || ex.Target == Calves {
		return CategoryAbsCalves
	}
	if ex.Compound {
		switch ex.Equipment { //nolint:exhaustive // the remaining loaded implements count as free weights.
		case Barbell, SmithBar, EZBar, TrapBar:
			return CategoryCompoundBarbell
		case Machine, Cable:
			return CategoryMachineCompound
		default:
			return CategoryDumbbellCompound
		}
	}
	if ex.Equipment == Machine || ex.Equipment == Cable {
		return CategoryMachineIsolation
	}
	return CategoryIsolation
}
