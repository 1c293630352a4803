package env

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"evac-ca/internal/core"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {

	Convey("Given a rectangular map with walls, exits and starts", t, func() {
		raw := strings.Join([]string{
			"##EE#",
			"#...#",
			"#.P.#",
			"#####",
		}, "\n")

		Convey("When the map is parsed", func() {
			e, err := Parse(strings.NewReader(raw))

			Convey("Then dimensions, walls and markers are extracted", func() {
				So(err, ShouldBeNil)
				So(e.Width, ShouldEqual, 5)
				So(e.Height, ShouldEqual, 4)
				So(e.IsWalkable(0, 0), ShouldBeFalse)
				So(e.IsWalkable(1, 1), ShouldBeTrue)
				So(e.IsWalkable(2, 0), ShouldBeTrue) // exit cells are walkable
				So(e.Starts, ShouldResemble, []core.Location{{X: 2, Y: 2}})
			})

			Convey("Then the two adjacent exit cells form one doorway", func() {
				So(e.Exits, ShouldHaveLength, 1)
				So(e.Exits[0], ShouldHaveLength, 2)
			})
		})
	})

	Convey("Given a map with two separated exit cells", t, func() {
		raw := strings.Join([]string{
			"#E#E#",
			"#...#",
			"#####",
		}, "\n")

		Convey("When parsed, each becomes its own doorway", func() {
			e, err := Parse(strings.NewReader(raw))
			So(err, ShouldBeNil)
			So(e.Exits, ShouldHaveLength, 2)
			So(e.Exits[0], ShouldResemble, []core.Location{{X: 1, Y: 0}})
			So(e.Exits[1], ShouldResemble, []core.Location{{X: 3, Y: 0}})
		})
	})

	Convey("Given malformed maps", t, func() {

		Convey("A ragged row is rejected", func() {
			_, err := Parse(strings.NewReader("##E#\n#.#\n####"))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "width")
		})

		Convey("An unknown cell character is rejected", func() {
			_, err := Parse(strings.NewReader("#E#\n#x#\n###"))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "unknown cell")
		})

		Convey("A map without exits is rejected", func() {
			_, err := Parse(strings.NewReader("###\n#.#\n###"))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "no exit")
		})

		Convey("An empty reader is rejected", func() {
			_, err := Parse(strings.NewReader(""))
			So(err, ShouldNotBeNil)
		})
	})
}

func TestLoadSets(t *testing.T) {

	Convey("Given a simulation-set YAML file", t, func() {
		raw := strings.Join([]string{
			"sets:",
			"  - exits:",
			"      - cells: [[12, 0], [13, 0]]",
			"  - exits:",
			"      - cells: [[0, 5]]",
			"      - cells: [[20, 9], [20, 10]]",
		}, "\n")
		path := filepath.Join(t.TempDir(), "sets.yaml")
		So(os.WriteFile(path, []byte(raw), 0o644), ShouldBeNil)

		Convey("When loaded", func() {
			sets, err := LoadSets(path)

			Convey("Then both sets come back with their doorways", func() {
				So(err, ShouldBeNil)
				So(sets, ShouldHaveLength, 2)
				So(sets[0], ShouldHaveLength, 1)
				So(sets[0][0], ShouldResemble, []core.Location{{X: 12, Y: 0}, {X: 13, Y: 0}})
				So(sets[1], ShouldHaveLength, 2)
				So(sets[1][1], ShouldResemble, []core.Location{{X: 20, Y: 9}, {X: 20, Y: 10}})
			})
		})
	})

	Convey("Given a set file with a malformed cell", t, func() {
		raw := "sets:\n  - exits:\n      - cells: [[1, 2, 3]]\n"
		path := filepath.Join(t.TempDir(), "sets.yaml")
		So(os.WriteFile(path, []byte(raw), 0o644), ShouldBeNil)

		Convey("Loading reports the bad coordinate pair", func() {
			_, err := LoadSets(path)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "[x, y]")
		})
	})

	Convey("Given an empty set file", t, func() {
		path := filepath.Join(t.TempDir(), "sets.yaml")
		So(os.WriteFile(path, []byte("sets: []\n"), 0o644), ShouldBeNil)

		Convey("Loading fails", func() {
			_, err := LoadSets(path)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestFromYaml(t *testing.T) {

	Convey("Given a YAML configuration file", t, func() {
		raw := strings.Join([]string{
			"width: 30",
			"height: 18",
			"exitwidth: 4",
			"seed: 77",
			"params:",
			"  pedestrians: 25",
			"  fieldsensitivity: 3.5",
			"  allowdiagonal: false",
		}, "\n")
		path := filepath.Join(t.TempDir(), "evac.yaml")
		So(os.WriteFile(path, []byte(raw), 0o644), ShouldBeNil)

		Convey("When loaded, file values override defaults and the rest survive", func() {
			cfg, err := FromYaml(path)
			So(err, ShouldBeNil)
			So(cfg.Width, ShouldEqual, 30)
			So(cfg.Height, ShouldEqual, 18)
			So(cfg.ExitWidth, ShouldEqual, 4)
			So(cfg.Seed, ShouldEqual, 77)
			So(cfg.Params.Pedestrians, ShouldEqual, 25)
			So(cfg.Params.FieldSensitivity, ShouldEqual, 3.5)
			So(cfg.Params.AllowDiagonal, ShouldBeFalse)
			// untouched defaults
			So(cfg.Params.StayWeight, ShouldEqual, 1.0)
		})
	})

	Convey("Given a missing configuration file", t, func() {
		_, err := FromYaml(filepath.Join(t.TempDir(), "absent.yaml"))
		So(err, ShouldNotBeNil)
	})
}
