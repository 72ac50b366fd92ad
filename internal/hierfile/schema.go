// Package hierfile loads class-hierarchy descriptions from YAML files
// into the semantic arenas. It plays the role of the front end for the
// CLI and the test harness: classes, supertype edges, members with
// visibilities and an explicit overrides relation. Unresolvable type
// references become the unresolved-type marker, mirroring what the real
// resolution stage hands to lowering.
package hierfile

import (
	"gopkg.in/yaml.v3"
)

// File is the top-level document.
type File struct {
	Package string      `yaml:"package"`
	Classes []ClassSpec `yaml:"classes"`
}

// ClassSpec describes one class declaration.
type ClassSpec struct {
	Name       string       `yaml:"name"`
	Package    string       `yaml:"package"` // defaults to the file package
	TypeParams []string     `yaml:"type_params"`
	Supertypes []string     `yaml:"supertypes"`
	Local      bool         `yaml:"local"`
	Expect     bool         `yaml:"expect"`
	Members    []MemberSpec `yaml:"members"`

	line int
}

// UnmarshalYAML records the source line alongside the decoded fields.
func (c *ClassSpec) UnmarshalYAML(n *yaml.Node) error {
	type plain ClassSpec
	if err := n.Decode((*plain)(c)); err != nil {
		return err
	}
	c.line = n.Line
	return nil
}

// MemberSpec describes one member declaration.
type MemberSpec struct {
	Kind       string   `yaml:"kind"` // "func" or "prop"
	Name       string   `yaml:"name"`
	Visibility string   `yaml:"visibility"` // defaults to public
	Params     []string `yaml:"params"`     // functions
	Returns    string   `yaml:"returns"`    // functions: return type; properties: value type
	Mutable    bool     `yaml:"mutable"`    // properties
	Getter     string   `yaml:"getter"`     // accessor visibility, defaults to member visibility
	Setter     string   `yaml:"setter"`
	Overrides  []string `yaml:"overrides"` // "Class.member" references

	line int
}

// UnmarshalYAML records the source line alongside the decoded fields.
func (m *MemberSpec) UnmarshalYAML(n *yaml.Node) error {
	type plain MemberSpec
	if err := n.Decode((*plain)(m)); err != nil {
		return err
	}
	m.line = n.Line
	return nil
}
