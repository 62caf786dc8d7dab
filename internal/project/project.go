// Package project implements the persisted map project document: maps with
// layers (visibility, symbology, definition queries) and layouts that export
// as GeoJSON. The document is a YAML flat file, saved after every mutating
// operation.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Color is an RGBA quad. Channels are 0-255, alpha 0-100.
type Color struct {
	R int `yaml:"r"`
	G int `yaml:"g"`
	B int `yaml:"b"`
	A int `yaml:"a"`
}

// Hex returns the #rrggbb form used by simplestyle properties.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Renderer is a single-symbol renderer.
type Renderer struct {
	FillColor    Color `yaml:"fill_color"`
	OutlineColor Color `yaml:"outline_color"`
}

// Layer is one entry in a map's table of contents. Source names a feature
// class in the workspace.
type Layer struct {
	Name            string    `yaml:"name"`
	Source          string    `yaml:"source"`
	Visible         bool      `yaml:"visible"`
	Transparency    int       `yaml:"transparency,omitempty"`
	DefinitionQuery string    `yaml:"definition_query,omitempty"`
	Renderer        *Renderer `yaml:"renderer,omitempty"`
}

// Extent is a stored bounding box.
type Extent struct {
	MinX float64 `yaml:"min_x"`
	MinY float64 `yaml:"min_y"`
	MaxX float64 `yaml:"max_x"`
	MaxY float64 `yaml:"max_y"`
}

// Map groups layers under one spatial reference.
type Map struct {
	Name             string  `yaml:"name"`
	SpatialReference int     `yaml:"spatial_reference"`
	Extent           *Extent `yaml:"extent,omitempty"`
	Layers           []Layer `yaml:"layers"`
}

// Layer finds a layer by name, nil when absent.
func (m *Map) Layer(name string) *Layer {
	for i := range m.Layers {
		if m.Layers[i].Name == name {
			return &m.Layers[i]
		}
	}
	return nil
}

// MapFrame places a map on a layout.
type MapFrame struct {
	Map    string  `yaml:"map"`
	Extent *Extent `yaml:"extent,omitempty"`
}

// Layout is a printable page: a title plus map frames.
type Layout struct {
	Name   string     `yaml:"name"`
	Title  string     `yaml:"title"`
	Frames []MapFrame `yaml:"frames"`
}

// Project is the map project document.
type Project struct {
	Title   string   `yaml:"title"`
	Maps    []Map    `yaml:"maps"`
	Layouts []Layout `yaml:"layouts"`

	path string
}

// New builds the default outbreak document: one map holding the three layers
// the workflow operates on, each sourced from the same-named feature class,
// and one layout framing that map.
func New(path string) *Project {
	return &Project{
		Title: "West Nile Virus Outbreak",
		Maps: []Map{{
			Name:             "Map",
			SpatialReference: 4326,
			Layers: []Layer{
				{Name: "avoid_points", Source: "avoid_points", Visible: true},
				{Name: "Target_Addresses", Source: "Target_Addresses", Visible: true},
				{Name: "Final_Analysis_Layer", Source: "Final_Analysis_Layer", Visible: true},
			},
		}},
		Layouts: []Layout{{
			Name:   "Layout",
			Title:  "West Nile Virus Outbreak",
			Frames: []MapFrame{{Map: "Map"}},
		}},
		path: path,
	}
}

// Load reads the document at path.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "project: read %s", path)
	}
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, eris.Wrapf(err, "project: parse %s", path)
	}
	p.path = path
	return &p, nil
}

// LoadOrInit loads the document at path, creating and saving the default
// document when none exists yet.
func LoadOrInit(path string) (*Project, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		p := New(path)
		if err := p.Save(); err != nil {
			return nil, err
		}
		zap.L().Info("project: initialized default document", zap.String("path", path))
		return p, nil
	}
	return Load(path)
}

// Save writes the document back to its path.
func (p *Project) Save() error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return eris.Wrap(err, "project: marshal document")
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return eris.Wrapf(err, "project: create dir for %s", p.path)
	}
	if err := os.WriteFile(p.path, data, 0o644); err != nil {
		return eris.Wrapf(err, "project: write %s", p.path)
	}
	return nil
}

// Path returns the document location.
func (p *Project) Path() string {
	return p.path
}

// FirstMap returns the document's first map, the one all map operations act
// on.
func (p *Project) FirstMap() (*Map, error) {
	if len(p.Maps) == 0 {
		return nil, eris.New("project: document has no maps")
	}
	return &p.Maps[0], nil
}

// Map finds a map by name, nil when absent.
func (p *Project) Map(name string) *Map {
	for i := range p.Maps {
		if p.Maps[i].Name == name {
			return &p.Maps[i]
		}
	}
	return nil
}
