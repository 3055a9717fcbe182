package catalog_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/mesocycle/internal/catalog"
)

func TestDefault(t *testing.T) {
	c := catalog.Default()

	for _, m := range catalog.Muscles {
		if len(c.Pool(m)) == 0 {
			t.Errorf("muscle %s has an empty pool", m)
		}
	}

	ex, ok := c.Exercise("barbell_bench_press")
	if !ok {
		t.Fatal("barbell_bench_press not found")
	}
	if ex.Target != catalog.Chest || !ex.Compound || ex.Instructions == "" {
		t.Errorf("unexpected bench press entry %+v", ex)
	}

	if got := c.PoolWithEquipment(catalog.Chest, catalog.SetupEquipment(catalog.SetupBodyweight)); len(got) != 0 {
		t.Errorf("expected no bodyweight chest exercises, got %v", got)
	}
}

func TestLoad_rejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "duplicate id", yaml: `
exercises:
  - {id: a, name: A, target: chest, equipment: barbell}
  - {id: a, name: B, target: chest, equipment: barbell}
`},
		{name: "unknown muscle", yaml: `
exercises:
  - {id: a, name: A, target: neck, equipment: barbell}
`},
		{name: "unknown equipment", yaml: `
exercises:
  - {id: a, name: A, target: chest, equipment: rope}
`},
		{name: "missing id", yaml: `
exercises:
  - {name: A, target: chest, equipment: barbell}
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := catalog.Load([]byte(tt.yaml)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestPoolWithEquipment(t *testing.T) {
	c, err := catalog.Load([]byte(`
exercises:
  - {id: bench, name: Bench, target: chest, equipment: barbell, compound: true}
  - {id: fly, name: Fly, target: chest, equipment: cable}
  - {id: db_press, name: DB Press, target: chest, equipment: dumbbell, compound: true}
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	var got []string
	for _, ex := range c.PoolWithEquipment(catalog.Chest, []catalog.Equipment{catalog.Dumbbell, catalog.Barbell}) {
		got = append(got, ex.ID)
	}
	if diff := cmp.Diff([]string{"bench", "db_press"}, got); diff != "" {
		t.Errorf("pool mismatch (-want +got):\n%s", diff)
	}
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		ex   catalog.Exercise
		want catalog.Category
	}{
		{catalog.Exercise{Target: catalog.Chest, Equipment: catalog.Barbell, Compound: true}, catalog.CategoryCompoundBarbell},
		{catalog.Exercise{Target: catalog.Chest, Equipment: catalog.Dumbbell, Compound: true}, catalog.CategoryDumbbellCompound},
		{catalog.Exercise{Target: catalog.Lats, Equipment: catalog.Bodyweight, Compound: true}, catalog.CategoryDumbbellCompound},
		{catalog.Exercise{Target: catalog.Quads, Equipment: catalog.Machine, Compound: true}, catalog.CategoryMachineCompound},
		{catalog.Exercise{Target: catalog.Chest, Equipment: catalog.Cable}, catalog.CategoryMachineIsolation},
		{catalog.Exercise{Target: catalog.Biceps, Equipment: catalog.Dumbbell}, catalog.CategoryIsolation},
		{catalog.Exercise{Target: catalog.Calves, Equipment: catalog.Machine}, catalog.CategoryAbsCalves},
		{catalog.Exercise{Target: catalog.Abs, Equipment: catalog.Cable}, catalog.CategoryAbsCalves},
	}
	for _, tt := range tests {
		if got := catalog.CategoryOf(tt.ex); got != tt.want {
			t.Errorf("CategoryOf(%+v) = %s, want %s", tt.ex, got, tt.want)
		}
	}
}

func TestBodyweightRatio(t *testing.T) {
	tests := []struct {
		id        string
		equipment catalog.Equipment
		target    catalog.Muscle
		want      float64
		wantOK    bool
	}{
		{"barbell_bench_press", catalog.Barbell, catalog.Chest, 0.7, true},
		{"cable_fly", catalog.Cable, catalog.Chest, 0.2, true},
		{"good_morning", catalog.Barbell, catalog.LowerBack, 0.5, true},
		{"pull_up", catalog.Bodyweight, catalog.Lats, 0, false},
	}
	for _, tt := range tests {
		got, ok := catalog.BodyweightRatio(tt.id, tt.equipment, tt.target)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("BodyweightRatio(%s) = %v, %v, want %v, %v", tt.id, got, ok, tt.want, tt.wantOK)
		}
	}
}
