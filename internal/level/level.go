// Package level loads level layouts from YAML files.
package level

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/bubble-drone/internal/bubble"
	"github.com/vovakirdan/bubble-drone/internal/core"
	"github.com/vovakirdan/bubble-drone/internal/spawner"
)

// ErrNotFound is returned when no level has the requested ID.
var ErrNotFound = errors.New("level: not found")

// Level is a parsed, validated level.
type Level struct {
	ID        int
	Name      string
	Bounds    core.Box
	Start     core.Vec2
	Terrain   []core.Box
	Dye       []Dye
	Producers []spawner.Config
	Bees      []core.Vec2
	Spines    []Spine
	Finish    core.Box
	Path      string
}

// Dye is a dye zone definition.
type Dye struct {
	Box   core.Box
	Color bubble.Type
}

// Spine is a spine definition. To equals the box origin for static spines.
type Spine struct {
	Box   core.Box
	To    core.Vec2
	Speed float64
}

// Moving reports whether the spine slides.
func (s Spine) Moving() bool {
	return s.Speed > 0 && s.To != core.V(s.Box.X, s.Box.Y)
}

type yamlLevel struct {
	ID        int            `yaml:"id"`
	Name      string         `yaml:"name"`
	Size      yamlSize       `yaml:"size"`
	Start     yamlPoint      `yaml:"start"`
	Terrain   []yamlRect     `yaml:"terrain"`
	Dye       []yamlDye      `yaml:"dye,omitempty"`
	Producers []yamlProducer `yaml:"producers,omitempty"`
	Bees      []yamlPoint    `yaml:"bees,omitempty"`
	Spines    []yamlSpine    `yaml:"spines,omitempty"`
	Finish    yamlRect       `yaml:"finish"`
}

type yamlSize struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

type yamlPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type yamlRect struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

func (r yamlRect) box() core.Box {
	return core.Box{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

type yamlDye struct {
	yamlRect `yaml:",inline"`
	Color    string `yaml:"color"`
}

type yamlProducer struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Color    string  `yaml:"color,omitempty"`
	Max      int     `yaml:"max,omitempty"`
	Interval float64 `yaml:"interval,omitempty"` // seconds
	RangeX   float64 `yaml:"range_x,omitempty"`
	RangeY   float64 `yaml:"range_y,omitempty"`
}

type yamlSpine struct {
	yamlRect `yaml:",inline"`
	To       *yamlPoint `yaml:"to,omitempty"`
	Speed    float64    `yaml:"speed,omitempty"`
}

// Parse decodes and validates a YAML level.
func Parse(data []byte) (Level, error) {
	var yl yamlLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("level: yaml unmarshal: %w", err)
	}

	lvl := Level{
		ID:     yl.ID,
		Name:   yl.Name,
		Bounds: core.Box{W: yl.Size.W, H: yl.Size.H},
		Start:  core.V(yl.Start.X, yl.Start.Y),
		Finish: yl.Finish.box(),
	}
	for _, r := range yl.Terrain {
		lvl.Terrain = append(lvl.Terrain, r.box())
	}
	for _, d := range yl.Dye {
		c, ok := bubble.ParseType(d.Color)
		if !ok {
			return Level{}, fmt.Errorf("level %d: unknown dye color %q", yl.ID, d.Color)
		}
		lvl.Dye = append(lvl.Dye, Dye{Box: d.box(), Color: c})
	}
	for _, p := range yl.Producers {
		cfg := spawner.DefaultConfig(core.V(p.X, p.Y))
		if p.Color != "" {
			c, ok := bubble.ParseType(p.Color)
			if !ok {
				return Level{}, fmt.Errorf("level %d: unknown producer color %q", yl.ID, p.Color)
			}
			cfg.Color = c
		}
		if p.Max > 0 {
			cfg.Max = p.Max
		}
		if p.Interval > 0 {
			cfg.Interval = time.Duration(p.Interval * float64(time.Second))
		}
		if p.RangeX > 0 {
			cfg.RangeX = p.RangeX
		}
		if p.RangeY > 0 {
			cfg.RangeY = p.RangeY
		}
		lvl.Producers = append(lvl.Producers, cfg)
	}
	for _, b := range yl.Bees {
		lvl.Bees = append(lvl.Bees, core.V(b.X, b.Y))
	}
	for _, s := range yl.Spines {
		sp := Spine{Box: s.box(), To: core.V(s.X, s.Y), Speed: s.Speed}
		if s.To != nil {
			sp.To = core.V(s.To.X, s.To.Y)
		}
		lvl.Spines = append(lvl.Spines, sp)
	}

	if err := lvl.Validate(); err != nil {
		return Level{}, err
	}
	return lvl, nil
}

// Validate checks that a level can be played.
func (l Level) Validate() error {
	if l.ID <= 0 {
		return fmt.Errorf("level: id must be positive, got %d", l.ID)
	}
	if l.Bounds.W <= 0 || l.Bounds.H <= 0 {
		return fmt.Errorf("level %d: size must be positive", l.ID)
	}
	if !l.Bounds.Contains(l.Start) {
		return fmt.Errorf("level %d: start %v outside the level", l.ID, l.Start)
	}
	if l.Finish.W <= 0 || l.Finish.H <= 0 {
		return fmt.Errorf("level %d: missing finish line", l.ID)
	}
	for _, t := range l.Terrain {
		if t.Contains(l.Start) {
			return fmt.Errorf("level %d: start %v inside terrain", l.ID, l.Start)
		}
	}
	return nil
}
