package prefabs

import (
	"fmt"

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

// EntityBuildSpec lists the components of a prefab by registry name.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

// DecodeComponentSpec re-decodes one raw component entry into T.
func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type PlayerComponentSpec struct {
	MoveSpeed    float64 `yaml:"move_speed"`
	JumpSpeed    float64 `yaml:"jump_speed"`
	ClimbSpeed   float64 `yaml:"climb_speed"`
	CoyoteFrames int     `yaml:"coyote_frames"`
}

type TransformComponentSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	ScaleX float64 `yaml:"scale_x"`
	ScaleY float64 `yaml:"scale_y"`
}

type ColliderComponentSpec struct {
	Shape   string  `yaml:"shape"` // "box" or "circle"
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Radius  float64 `yaml:"radius"`
	Align   string  `yaml:"align"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	Trigger bool    `yaml:"trigger"`
}

type PhysicsBodyComponentSpec struct {
	Mass     float64 `yaml:"mass"`
	Gravity  bool    `yaml:"gravity"`
	Disabled bool    `yaml:"disabled"`
}

type AIComponentSpec struct {
	Behavior  string  `yaml:"behavior"` // "patrol", "updown" or "hop"
	Min       float64 `yaml:"min"`
	Max       float64 `yaml:"max"`
	Speed     float64 `yaml:"speed"`
	JumpX     float64 `yaml:"jump_x"`
	JumpY     float64 `yaml:"jump_y"`
	HopFrames int     `yaml:"hop_frames"`
	Forward   bool    `yaml:"forward"`
}
