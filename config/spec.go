package config

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/freerun/common"
	"github.com/milk9111/freerun/motion"
	"github.com/milk9111/freerun/movement"
	"github.com/milk9111/freerun/obstacle"
	"github.com/milk9111/freerun/traversal"
)

// LoadSpec reads and unmarshals one yaml config file.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("config: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("config: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

// AbilitySpec configures the traversal ability: acceptance tolerances, the
// layer classification table, and the registered pose sequences.
type AbilitySpec struct {
	Tolerances ToleranceSpec  `yaml:"tolerances"`
	Layers     map[int]string `yaml:"layers"`
	Sequences  []SequenceSpec `yaml:"sequences"`
}

type ToleranceSpec struct {
	ContactThreshold float64 `yaml:"contact_threshold"`
	MaxLinearError   float64 `yaml:"max_linear_error"`
	MaxAngularError  float64 `yaml:"max_angular_error"`
}

type SequenceSpec struct {
	Name            string  `yaml:"name"`
	Category        string  `yaml:"category"`
	Duration        float64 `yaml:"duration"`
	ContactDistance float64 `yaml:"contact_distance"`
}

// LoadAbilitySpec loads and validates ability.yaml.
func LoadAbilitySpec() (*AbilitySpec, error) {
	spec, err := LoadSpec[AbilitySpec]("ability.yaml")
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Validate checks the tolerance ranges and sequence categories.
func (s *AbilitySpec) Validate() error {
	if err := s.Tolerances.Validate(); err != nil {
		return err
	}
	for _, seq := range s.Sequences {
		if seq.Name == "" {
			return fmt.Errorf("config: sequence with empty name")
		}
		if seq.Duration <= 0 {
			return fmt.Errorf("config: sequence %s: duration must be positive, got %v", seq.Name, seq.Duration)
		}
		if obstacle.ParseCategory(seq.Category) == obstacle.None {
			return fmt.Errorf("config: sequence %s: unknown category %q", seq.Name, seq.Category)
		}
	}
	for layer, category := range s.Layers {
		if obstacle.ParseCategory(category) == obstacle.None {
			return fmt.Errorf("config: layer %d: unknown category %q", layer, category)
		}
	}
	return nil
}

func (t ToleranceSpec) Validate() error {
	if t.ContactThreshold < 0 || t.ContactThreshold > 1 {
		return fmt.Errorf("config: contact_threshold must be in [0,1], got %v", t.ContactThreshold)
	}
	if t.MaxLinearError < 0 || t.MaxLinearError > 1 {
		return fmt.Errorf("config: max_linear_error must be in [0,1], got %v", t.MaxLinearError)
	}
	if t.MaxAngularError < 0 || t.MaxAngularError > 180 {
		return fmt.Errorf("config: max_angular_error must be in [0,180], got %v", t.MaxAngularError)
	}
	return nil
}

// TraversalConfig converts the tolerances into the ability's config.
func (s *AbilitySpec) TraversalConfig() traversal.Config {
	return traversal.Config{
		ContactThreshold: s.Tolerances.ContactThreshold,
		MaxLinearError:   s.Tolerances.MaxLinearError,
		MaxAngularError:  s.Tolerances.MaxAngularError,
	}
}

// LayerTable converts the layer map into a classification table.
func (s *AbilitySpec) LayerTable() obstacle.LayerTable {
	table := make(obstacle.LayerTable, len(s.Layers))
	for layer, category := range s.Layers {
		table[obstacle.Layer(layer)] = obstacle.ParseCategory(category)
	}
	return table
}

// BuildLibrary registers the spec's sequences into a fresh motion library.
func (s *AbilitySpec) BuildLibrary() *motion.Library {
	lib := motion.NewLibrary()
	for _, seq := range s.Sequences {
		lib.Register(motion.Sequence{
			Name:            seq.Name,
			Category:        obstacle.ParseCategory(seq.Category),
			Duration:        seq.Duration,
			ContactDistance: seq.ContactDistance,
		})
	}
	return lib
}

// LevelSpec describes the demo scene: a spawn point and obstacle volumes.
type LevelSpec struct {
	Name     string        `yaml:"name"`
	Spawn    Vec3Spec      `yaml:"spawn"`
	Surfaces []SurfaceSpec `yaml:"surfaces"`
}

type SurfaceSpec struct {
	Name     string   `yaml:"name"`
	Layer    int      `yaml:"layer"`
	Position Vec3Spec `yaml:"position"`
	Size     Vec3Spec `yaml:"size"`
	YawDeg   float64  `yaml:"yaw_deg"`
}

type Vec3Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v Vec3Spec) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// LoadLevelSpec loads level.yaml.
func LoadLevelSpec() (*LevelSpec, error) {
	spec, err := LoadSpec[LevelSpec]("level.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Surface converts one spec entry into a movement surface. id should be
// unique per entry; the ability uses it only for identity.
func (s SurfaceSpec) Surface(id uint64) movement.Surface {
	t := common.Transform{
		Position:    s.Position.Vec3(),
		Orientation: mgl64.QuatRotate(mgl64.DegToRad(s.YawDeg), common.AxisUp),
	}
	return movement.Surface{
		ID:        id,
		Layer:     obstacle.Layer(s.Layer),
		Transform: t,
		Size:      s.Size.Vec3(),
	}
}
