// Package catalog holds the static, versioned registry of metric kinds.
//
// The registry is loaded once from YAML and never mutated afterwards. Each descriptor
// tells the normalizer which groupings and filters a metric accepts and tells the
// aggregation engine which shape to compute and which columns to emit.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"

	"recruitment-metrics-service/internal/metrics/core/domain"
)

//go:embed catalog.yaml
var embedded []byte

var ErrUnknownMetric = errors.New("unknown metric")

// Pick selects the qualifying event of a placement.
type Pick string

const (
	PickLatest   Pick = "latest"
	PickEarliest Pick = "earliest"
)

// Descriptor describes one metric kind.
type Descriptor struct {
	Kind        string       `yaml:"kind" json:"metric"`
	Name        string       `yaml:"name" json:"name"`
	Shape       domain.Shape `yaml:"shape" json:"kind"`
	Description string       `yaml:"description" json:"description"`

	PrimaryGroups   []domain.Dimension `yaml:"primary_groups" json:"available_groups"`
	SecondaryGroups []domain.Dimension `yaml:"secondary_groups" json:"secondary_groups"`
	DefaultPrimary  domain.Dimension   `yaml:"default_primary" json:"default_group,omitempty"`

	RequiredFilters []string `yaml:"required_filters" json:"required_filters"`
	OptionalFilters []string `yaml:"optional_filters" json:"available_filters"`

	// EventTypes and Pick define the qualifying event of breakdown and trend metrics.
	EventTypes []domain.EventType `yaml:"event_types" json:"event_types,omitempty"`
	Pick       Pick               `yaml:"pick" json:"pick,omitempty"`

	// StartPoint and EndPoint are the endpoints of time-based single values.
	StartPoint   domain.EventPoint `yaml:"start_point" json:"start_point,omitempty"`
	EndPoint     domain.EventPoint `yaml:"end_point" json:"end_point,omitempty"`
	CustomPoints bool              `yaml:"custom_points" json:"custom_points"`

	Sortable    bool                  `yaml:"sortable" json:"is_sortable"`
	ValueColumn string                `yaml:"value_column" json:"value_column"`
	Columns     []domain.MetricColumn `yaml:"columns" json:"columns"`
}

// Formula returns the formula of the value column, if any.
func (d Descriptor) Formula() string {
	if c, ok := d.Column(d.ValueColumn); ok {
		return c.Formula
	}
	return ""
}

func (d Descriptor) Column(name string) (domain.MetricColumn, bool) {
	for _, c := range d.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return domain.MetricColumn{}, false
}

func (d Descriptor) AllowsPrimary(dim domain.Dimension) bool {
	return slices.Contains(d.PrimaryGroups, dim)
}

func (d Descriptor) AllowsSecondary(dim domain.Dimension) bool {
	return slices.Contains(d.SecondaryGroups, dim)
}

func (d Descriptor) AllowsFilter(field string) bool {
	return slices.Contains(d.RequiredFilters, field) || slices.Contains(d.OptionalFilters, field)
}

// IsTimeBased reports whether the metric is a mean duration between two event points.
func (d Descriptor) IsTimeBased() bool {
	return d.Shape == domain.ShapeSingle && d.StartPoint != "" && d.EndPoint != ""
}

// HasEventType reports whether t qualifies for the metric.
func (d Descriptor) HasEventType(t domain.EventType) bool {
	return slices.Contains(d.EventTypes, t)
}

type file struct {
	Version string       `yaml:"version"`
	Metrics []Descriptor `yaml:"metrics"`
}

// Catalog is an immutable set of descriptors.
type Catalog struct {
	version string
	kinds   []string
	byKind  map[string]Descriptor
}

// Embedded loads the catalog shipped with the binary.
func Embedded() (*Catalog, error) {
	return Load(embedded)
}

// Load parses and validates a YAML catalog.
func Load(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if f.Version == "" {
		return nil, errors.New("catalog: missing version")
	}

	c := &Catalog{version: f.Version, byKind: make(map[string]Descriptor, len(f.Metrics))}
	for _, d := range f.Metrics {
		if err := validate(d); err != nil {
			return nil, err
		}
		if _, dup := c.byKind[d.Kind]; dup {
			return nil, fmt.Errorf("catalog: duplicate metric %q", d.Kind)
		}
		c.byKind[d.Kind] = d
		c.kinds = append(c.kinds, d.Kind)
	}
	sort.Strings(c.kinds)
	return c, nil
}

func validate(d Descriptor) error {
	if d.Kind == "" {
		return errors.New("catalog: metric without kind")
	}
	switch d.Shape {
	case domain.ShapeSingle, domain.ShapeBreakdown, domain.ShapeFunnel, domain.ShapeTrend:
	default:
		return fmt.Errorf("catalog: %s: unknown shape %q", d.Kind, d.Shape)
	}
	if _, ok := d.Column(d.ValueColumn); !ok {
		return fmt.Errorf("catalog: %s: value column %q not declared", d.Kind, d.ValueColumn)
	}
	for _, col := range d.Columns {
		switch col.Unit {
		case domain.UnitCount, domain.UnitRatio, domain.UnitSeconds:
		default:
			return fmt.Errorf("catalog: %s: column %s has unknown unit %q", d.Kind, col.Name, col.Unit)
		}
	}
	if d.DefaultPrimary != "" && !d.AllowsPrimary(d.DefaultPrimary) {
		return fmt.Errorf("catalog: %s: default group %q not allowed", d.Kind, d.DefaultPrimary)
	}
	if len(d.PrimaryGroups) == 0 && len(d.SecondaryGroups) > 0 {
		return fmt.Errorf("catalog: %s: secondary groups without primary groups", d.Kind)
	}

	switch d.Shape {
	case domain.ShapeBreakdown, domain.ShapeTrend:
		if len(d.EventTypes) == 0 {
			return fmt.Errorf("catalog: %s: no qualifying event types", d.Kind)
		}
		for _, t := range d.EventTypes {
			if !t.Valid() {
				return fmt.Errorf("catalog: %s: unknown event type %q", d.Kind, t)
			}
		}
		if d.Pick != PickLatest && d.Pick != PickEarliest {
			return fmt.Errorf("catalog: %s: unknown pick %q", d.Kind, d.Pick)
		}
	case domain.ShapeFunnel:
		if !d.AllowsPrimary(domain.DimensionStage) {
			return fmt.Errorf("catalog: %s: funnel metrics group by stage", d.Kind)
		}
	}
	if d.Shape == domain.ShapeTrend && d.DefaultPrimary != domain.DimensionPeriod {
		return fmt.Errorf("catalog: %s: trend metrics group by period", d.Kind)
	}
	if (d.StartPoint == "") != (d.EndPoint == "") {
		return fmt.Errorf("catalog: %s: start and end points go together", d.Kind)
	}
	return nil
}

func (c *Catalog) Version() string { return c.version }

// Describe returns the descriptor of kind.
func (c *Catalog) Describe(kind string) (Descriptor, error) {
	d, ok := c.byKind[kind]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownMetric, kind)
	}
	return d, nil
}

// List returns every descriptor ordered by kind.
func (c *Catalog) List() []Descriptor {
	out := make([]Descriptor, 0, len(c.kinds))
	for _, k := range c.kinds {
		out = append(out, c.byKind[k])
	}
	return out
}
