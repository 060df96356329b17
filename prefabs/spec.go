package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// Tuning holds every gameplay constant the simulation reads.
type Tuning struct {
	Name      string        `yaml:"name"`
	Motion    MotionSpec    `yaml:"motion"`
	Effects   EffectsSpec   `yaml:"effects"`
	Proximity ProximitySpec `yaml:"proximity"`
	Editor    EditorSpec    `yaml:"editor"`
	Recording RecordingSpec `yaml:"recording"`
	Generator GeneratorSpec `yaml:"generator"`
}

type MotionSpec struct {
	RollDuration       time.Duration `yaml:"roll_duration"`
	ClimbDuration      time.Duration `yaml:"climb_duration"`
	AssembleDuration   time.Duration `yaml:"assemble_duration"`
	AssembleHeight     float64       `yaml:"assemble_height"`
	FallSpeed          float64       `yaml:"fall_speed"`
	DeathY             float64       `yaml:"death_y"`
	BalanceTilt        float64       `yaml:"balance_tilt"`
	DirectionThreshold float64       `yaml:"direction_threshold"`
}

type EffectsSpec struct {
	FragileDelay     time.Duration `yaml:"fragile_delay"`
	IceDelay         time.Duration `yaml:"ice_delay"`
	BounceSpeed      float64       `yaml:"bounce_speed"`
	BounceHeight     float64       `yaml:"bounce_height"`
	ExplosiveDelay   time.Duration `yaml:"explosive_delay"`
	ExplosiveRadius  float64       `yaml:"explosive_radius"`
	ExplosiveBump    float64       `yaml:"explosive_bump"`
	GravityCooldown  time.Duration `yaml:"gravity_cooldown"`
	LaserPeriod      time.Duration `yaml:"laser_period"`
	PlatformTickRate float64       `yaml:"platform_tick_rate"`
}

type ProximitySpec struct {
	SwitchRadius         float64 `yaml:"switch_radius"`
	PrismRadius          float64 `yaml:"prism_radius"`
	CarryRadius          float64 `yaml:"carry_radius"`
	CarryHeightTolerance float64 `yaml:"carry_height_tolerance"`
	CrushRadius          float64 `yaml:"crush_radius"`
}

type EditorSpec struct {
	MaxUndo int `yaml:"max_undo"`
}

type RecordingSpec struct {
	SampleInterval time.Duration `yaml:"sample_interval"`
}

type GeneratorSpec struct {
	Width             int     `yaml:"width"`
	Depth             int     `yaml:"depth"`
	MaxHeight         int     `yaml:"max_height"`
	HazardChance      float64 `yaml:"hazard_chance"`
	InteractiveChance float64 `yaml:"interactive_chance"`
	PrismChance       float64 `yaml:"prism_chance"`
}

// DefaultTuning mirrors tuning.yaml so a missing or partial file still
// yields a playable configuration.
func DefaultTuning() Tuning {
	return Tuning{
		Name: "default",
		Motion: MotionSpec{
			RollDuration:       200 * time.Millisecond,
			ClimbDuration:      300 * time.Millisecond,
			AssembleDuration:   600 * time.Millisecond,
			AssembleHeight:     3,
			FallSpeed:          12,
			DeathY:             -20,
			BalanceTilt:        0.1,
			DirectionThreshold: 0.9,
		},
		Effects: EffectsSpec{
			FragileDelay:     500 * time.Millisecond,
			IceDelay:         150 * time.Millisecond,
			BounceSpeed:      8,
			BounceHeight:     3,
			ExplosiveDelay:   time.Second,
			ExplosiveRadius:  1.5,
			ExplosiveBump:    1,
			GravityCooldown:  2 * time.Second,
			LaserPeriod:      1500 * time.Millisecond,
			PlatformTickRate: 60,
		},
		Proximity: ProximitySpec{
			SwitchRadius:         0.6,
			PrismRadius:          0.8,
			CarryRadius:          0.6,
			CarryHeightTolerance: 0.1,
			CrushRadius:          0.8,
		},
		Editor:    EditorSpec{MaxUndo: 50},
		Recording: RecordingSpec{SampleInterval: 100 * time.Millisecond},
		Generator: GeneratorSpec{
			Width:             11,
			Depth:             11,
			MaxHeight:         4,
			HazardChance:      0.08,
			InteractiveChance: 0.08,
			PrismChance:       0.1,
		},
	}
}

// LoadTuning decodes tuning.yaml over DefaultTuning.
func LoadTuning() (Tuning, error) {
	return LoadTuningFile("tuning.yaml")
}

func LoadTuningFile(filename string) (Tuning, error) {
	tuning := DefaultTuning()
	data, err := Load(filename)
	if err != nil {
		return tuning, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, &tuning); err != nil {
		return DefaultTuning(), fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return tuning, nil
}

// PaletteSpec maps tile type names to display colors for front ends.
type PaletteSpec struct {
	Background *YAMLColor            `yaml:"background"`
	Player     *YAMLColor            `yaml:"player"`
	Tiles      map[string]*YAMLColor `yaml:"tiles"`
}

func LoadPaletteSpec() (*PaletteSpec, error) {
	spec, err := LoadSpec[PaletteSpec]("palette.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
