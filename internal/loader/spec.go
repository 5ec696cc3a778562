package loader

import (
	"gopkg.in/yaml.v3"
)

// position is the place of a YAML node in the fixture file.
type position struct {
	Line   int
	Column int
}

func at(n *yaml.Node) position { return position{Line: n.Line, Column: n.Column} }

// fileSpec is one YAML document: the declarations of one package.
type fileSpec struct {
	Package    string         `yaml:"package"`
	Classes    []classSpec    `yaml:"classes"`
	Aliases    []aliasSpec    `yaml:"aliases"`
	Functions  []functionSpec `yaml:"functions"`
	Properties []propertySpec `yaml:"properties"`
}

type classSpec struct {
	Name        string            `yaml:"name"`
	Kind        string            `yaml:"kind"`
	SuperTypes  []string          `yaml:"supertypes"`
	Constructor *[]parameterSpec  `yaml:"constructor"`
	Secondary   [][]parameterSpec `yaml:"secondary"`
	Annotations []annotationSpec  `yaml:"annotations"`
	Nested      []classSpec       `yaml:"nested"`
	Pos         position          `yaml:"-"`
}

func (c *classSpec) UnmarshalYAML(n *yaml.Node) error {
	type plain classSpec
	if err := n.Decode((*plain)(c)); err != nil {
		return err
	}
	c.Pos = at(n)
	return nil
}

type parameterSpec struct {
	Name        string           `yaml:"name"`
	Type        string           `yaml:"type"`
	Default     string           `yaml:"default"`
	Vararg      bool             `yaml:"vararg"`
	Annotations []annotationSpec `yaml:"annotations"`
	Pos         position         `yaml:"-"`
}

func (p *parameterSpec) UnmarshalYAML(n *yaml.Node) error {
	type plain parameterSpec
	if err := n.Decode((*plain)(p)); err != nil {
		return err
	}
	p.Pos = at(n)
	return nil
}

// annotationSpec is either written as a plain string, `Marker(tag = "q", 5)`,
// or as a mapping with explicit fields.
type annotationSpec struct {
	Type     string   `yaml:"type"`
	Args     []string `yaml:"args"`
	Target   string   `yaml:"target"`
	Resolved bool     `yaml:"resolved"`
	Text     string   `yaml:"-"`
	Pos      position `yaml:"-"`
}

func (a *annotationSpec) UnmarshalYAML(n *yaml.Node) error {
	a.Pos = at(n)
	if n.Kind == yaml.ScalarNode {
		a.Text = n.Value
		return nil
	}
	type plain annotationSpec
	pos := a.Pos
	if err := n.Decode((*plain)(a)); err != nil {
		return err
	}
	a.Pos = pos
	return nil
}

type aliasSpec struct {
	Name        string           `yaml:"name"`
	Type        string           `yaml:"type"`
	Annotations []annotationSpec `yaml:"annotations"`
	Pos         position         `yaml:"-"`
}

func (a *aliasSpec) UnmarshalYAML(n *yaml.Node) error {
	type plain aliasSpec
	if err := n.Decode((*plain)(a)); err != nil {
		return err
	}
	a.Pos = at(n)
	return nil
}

type functionSpec struct {
	Name        string           `yaml:"name"`
	Receiver    string           `yaml:"receiver"`
	Params      []parameterSpec  `yaml:"params"`
	Returns     string           `yaml:"returns"`
	Annotations []annotationSpec `yaml:"annotations"`
	Contract    []effectSpec     `yaml:"contract"`
	Pos         position         `yaml:"-"`
}

func (f *functionSpec) UnmarshalYAML(n *yaml.Node) error {
	type plain functionSpec
	if err := n.Decode((*plain)(f)); err != nil {
		return err
	}
	f.Pos = at(n)
	return nil
}

type propertySpec struct {
	Name        string           `yaml:"name"`
	Type        string           `yaml:"type"`
	Annotations []annotationSpec `yaml:"annotations"`
	Pos         position         `yaml:"-"`
}

func (p *propertySpec) UnmarshalYAML(n *yaml.Node) error {
	type plain propertySpec
	if err := n.Decode((*plain)(p)); err != nil {
		return err
	}
	p.Pos = at(n)
	return nil
}

// effectSpec is one contract effect. Exactly one of Returns, ReturnsNotNull
// and CallsInPlace is set.
type effectSpec struct {
	Returns        *string        `yaml:"returns"`
	ReturnsNotNull bool           `yaml:"returnsNotNull"`
	CallsInPlace   *callsSpec     `yaml:"callsInPlace"`
	Implies        *conditionSpec `yaml:"implies"`
	Pos            position       `yaml:"-"`
}

func (e *effectSpec) UnmarshalYAML(n *yaml.Node) error {
	type plain effectSpec
	if err := n.Decode((*plain)(e)); err != nil {
		return err
	}
	e.Pos = at(n)
	return nil
}

type callsSpec struct {
	Param string `yaml:"param"`
	Kind  string `yaml:"kind"`
}

// conditionSpec is one node of a contract condition. Exactly one field is
// set.
type conditionSpec struct {
	Is       *isSpec          `yaml:"is"`
	IsNot    *isSpec          `yaml:"isNot"`
	IsNull   string           `yaml:"isNull"`
	NotNull  string           `yaml:"notNull"`
	Param    string           `yaml:"param"`
	Constant *bool            `yaml:"const"`
	Not      *conditionSpec   `yaml:"not"`
	And      []*conditionSpec `yaml:"and"`
	Or       []*conditionSpec `yaml:"or"`
	Pos      position         `yaml:"-"`
}

func (c *conditionSpec) UnmarshalYAML(n *yaml.Node) error {
	type plain conditionSpec
	if err := n.Decode((*plain)(c)); err != nil {
		return err
	}
	c.Pos = at(n)
	return nil
}

type isSpec struct {
	Param string `yaml:"param"`
	Type  string `yaml:"type"`
}
