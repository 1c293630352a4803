package env

import (
	"fmt"
	"os"

	"evac-ca/internal/core"

	"gopkg.in/yaml.v3"
)

// SimulationSet is one exit configuration: a list of doorways, each a list of
// cells. A set replaces the environment's own exits for a batch of
// repetitions.
type SimulationSet [][]core.Location

type exitSpec struct {
	Cells [][]int `yaml:"cells"`
}

type setSpec struct {
	Exits []exitSpec `yaml:"exits"`
}

type setsFile struct {
	Sets []setSpec `yaml:"sets"`
}

// LoadSets reads a YAML simulation-set file:
//
//	sets:
//	  - exits:
//	      - cells: [[12, 0], [13, 0]]
//	  - exits:
//	      - cells: [[0, 5]]
//	      - cells: [[20, 9], [20, 10]]
func LoadSets(path string) ([]SimulationSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file setsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(file.Sets) == 0 {
		return nil, fmt.Errorf("%s: no simulation sets", path)
	}

	sets := make([]SimulationSet, 0, len(file.Sets))
	for si, s := range file.Sets {
		var set SimulationSet
		for ei, e := range s.Exits {
			var door []core.Location
			for _, c := range e.Cells {
				if len(c) != 2 {
					return nil, fmt.Errorf("%s: set %d exit %d: cell needs [x, y], got %v", path, si, ei, c)
				}
				door = append(door, core.Location{X: c[0], Y: c[1]})
			}
			if len(door) == 0 {
				return nil, fmt.Errorf("%s: set %d exit %d has no cells", path, si, ei)
			}
			set = append(set, door)
		}
		if len(set) == 0 {
			return nil, fmt.Errorf("%s: set %d has no exits", path, si)
		}
		sets = append(sets, set)
	}
	return sets, nil
}
