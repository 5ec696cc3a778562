// Package loader builds FIR declarations from YAML fixtures.
//
// A fixture file holds one or more YAML documents, one per package:
//
//	package: lib
//	classes:
//	  - name: Marker
//	    kind: annotation class
//	    constructor:
//	      - {name: level, type: Int}
//	      - {name: tag, type: String, default: '"x"'}
//	  - name: Foo
//	    annotations: ['Marker(tag = "q", 5)']
//	aliases:
//	  - {name: M, type: Marker}
//	functions:
//	  - name: check
//	    params: [{name: x, type: 'Any?'}]
//	    returns: Boolean
//	    contract:
//	      - returns: "true"
//	        implies: {is: {param: x, type: String}}
//
// Every declaration comes out at phase RAW with unresolved type references.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/AmrAfifiy/kotlin/internal/fir"
	"github.com/AmrAfifiy/kotlin/internal/names"
	"github.com/AmrAfifiy/kotlin/internal/session"
	"github.com/AmrAfifiy/kotlin/internal/source"
)

// Fixture is the result of loading one file.
type Fixture struct {
	Filename     string
	Declarations []fir.Declaration
}

// LoadFile reads and loads a fixture file
func LoadFile(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(path, bytes.NewReader(data))
}

// LoadString loads a fixture held in memory.
func LoadString(filename, content string) (*Fixture, error) {
	return Load(filename, bytes.NewBufferString(content))
}

// Load decodes every YAML document of r.
func Load(filename string, r io.Reader) (*Fixture, error) {
	fx := &Fixture{Filename: filename}
	dec := yaml.NewDecoder(r)
	for {
		var spec fileSpec
		err := dec.Decode(&spec)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		b := &builder{filename: filename, pkg: names.NewFqName(spec.Package)}
		decls, err := b.file(&spec)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		fx.Declarations = append(fx.Declarations, decls...)
	}
	return fx, nil
}

// Declare adds every declaration of the fixture to b.
func (f *Fixture) Declare(b *session.Builder) *session.Builder {
	return b.Declare(f.Declarations...)
}

// Symbols returns the symbols of the fixture's declarations in order.
func (f *Fixture) Symbols() []*fir.Symbol {
	out := make([]*fir.Symbol, 0, len(f.Declarations))
	for _, d := range f.Declarations {
		out = append(out, d.Symbol())
	}
	return out
}

type builder struct {
	filename string
	pkg      names.FqName
}

func (b *builder) loc(p position) *source.Location {
	return source.NewLocation(b.filename, p.Line, p.Column, 1)
}

func (b *builder) typeRef(text string, p position) (*fir.TypeRef, error) {
	if text == "" {
		return nil, nil
	}
	t, err := ParseType(text)
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", p.Line, err)
	}
	return fir.NewUserTypeRef(t, b.loc(p)), nil
}

func (b *builder) file(spec *fileSpec) ([]fir.Declaration, error) {
	var decls []fir.Declaration
	for i := range spec.Classes {
		classes, err := b.class(&spec.Classes[i], names.Root)
		if err != nil {
			return nil, err
		}
		decls = append(decls, classes...)
	}
	for i := range spec.Aliases {
		a, err := b.alias(&spec.Aliases[i])
		if err != nil {
			return nil, err
		}
		decls = append(decls, a)
	}
	for i := range spec.Functions {
		f, err := b.function(&spec.Functions[i])
		if err != nil {
			return nil, err
		}
		decls = append(decls, f)
	}
	for i := range spec.Properties {
		p, err := b.property(&spec.Properties[i])
		if err != nil {
			return nil, err
		}
		decls = append(decls, p)
	}
	return decls, nil
}

// class builds a class and, after it, its nested classes.
func (b *builder) class(spec *classSpec, outer names.FqName) ([]fir.Declaration, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("line %d: class without a name", spec.Pos.Line)
	}
	kind := fir.KindClass
	if spec.Kind != "" {
		k, ok := fir.ParseClassKind(spec.Kind)
		if !ok {
			return nil, fmt.Errorf("line %d: unknown class kind %q", spec.Pos.Line, spec.Kind)
		}
		kind = k
	}
	relative := outer.Child(names.Name(spec.Name))
	class := fir.NewRegularClass(names.NewClassId(b.pkg, relative), kind)
	class.Location = b.loc(spec.Pos)

	annos, err := b.annotations(spec.Annotations)
	if err != nil {
		return nil, err
	}
	class.AddAnnotations(annos...)

	for _, st := range spec.SuperTypes {
		ref, err := b.typeRef(st, spec.Pos)
		if err != nil {
			return nil, err
		}
		class.SuperTypes = append(class.SuperTypes, ref)
	}

	if spec.Constructor != nil {
		ctor, err := b.constructor(*spec.Constructor, true, spec.Pos)
		if err != nil {
			return nil, err
		}
		class.AddConstructor(ctor)
	}
	for _, params := range spec.Secondary {
		ctor, err := b.constructor(params, false, spec.Pos)
		if err != nil {
			return nil, err
		}
		class.AddConstructor(ctor)
	}

	decls := []fir.Declaration{class}
	for i := range spec.Nested {
		nested, err := b.class(&spec.Nested[i], relative)
		if err != nil {
			return nil, err
		}
		class.Members = append(class.Members, nested[0])
		decls = append(decls, nested...)
	}
	return decls, nil
}

func (b *builder) constructor(params []parameterSpec, primary bool, p position) (*fir.Constructor, error) {
	ctor := &fir.Constructor{IsPrimary: primary}
	ctor.Location = b.loc(p)
	vps, err := b.parameters(params)
	if err != nil {
		return nil, err
	}
	ctor.ValueParameters = vps
	return ctor, nil
}

func (b *builder) parameters(specs []parameterSpec) ([]*fir.ValueParameter, error) {
	out := make([]*fir.ValueParameter, 0, len(specs))
	for i := range specs {
		spec := &specs[i]
		ref, err := b.typeRef(spec.Type, spec.Pos)
		if err != nil {
			return nil, err
		}
		vp := &fir.ValueParameter{Name: names.Name(spec.Name), Type: ref, IsVararg: spec.Vararg}
		vp.Location = b.loc(spec.Pos)
		if spec.Default != "" {
			def, err := ParseArgument(spec.Default, vp.Location)
			if err != nil {
				return nil, fmt.Errorf("line %d: default of %s: %w", spec.Pos.Line, spec.Name, err)
			}
			vp.DefaultValue = def
		}
		annos, err := b.annotations(spec.Annotations)
		if err != nil {
			return nil, err
		}
		vp.AddAnnotations(annos...)
		out = append(out, vp)
	}
	return out, nil
}

func (b *builder) annotations(specs []annotationSpec) ([]fir.AnnotationUse, error) {
	out := make([]fir.AnnotationUse, 0, len(specs))
	for i := range specs {
		a, err := b.annotation(&specs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// annotation builds a call, or a plain resolved annotation when the fixture
// says so. Resolved annotations only take named arguments.
func (b *builder) annotation(spec *annotationSpec) (fir.AnnotationUse, error) {
	loc := b.loc(spec.Pos)
	var call *fir.AnnotationCall
	if spec.Text != "" {
		c, err := ParseAnnotation(spec.Text, loc)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", spec.Pos.Line, err)
		}
		call = c
	} else {
		ref, err := b.typeRef(spec.Type, spec.Pos)
		if err != nil {
			return nil, err
		}
		if ref == nil {
			return nil, fmt.Errorf("line %d: annotation without a type", spec.Pos.Line)
		}
		call = fir.NewAnnotationCall(ref)
		call.Location = loc
		for _, text := range spec.Args {
			arg, err := ParseArgument(text, loc)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", spec.Pos.Line, err)
			}
			call.ArgumentList = append(call.ArgumentList, arg)
		}
	}
	call.UseSiteTarget = spec.Target

	if !spec.Resolved {
		return call, nil
	}
	mapping := fir.ArgumentMapping{}
	for _, arg := range call.ArgumentList {
		named, ok := arg.(*fir.NamedArgumentExpression)
		if !ok {
			return nil, fmt.Errorf("line %d: resolved annotation %s takes named arguments only", spec.Pos.Line, call.TypeRef)
		}
		mapping[named.Name] = named.Expression
	}
	plain := fir.NewAnnotation(call.TypeRef, mapping)
	plain.UseSiteTarget = call.UseSiteTarget
	plain.Location = loc
	return plain, nil
}

func (b *builder) alias(spec *aliasSpec) (*fir.TypeAlias, error) {
	ref, err := b.typeRef(spec.Type, spec.Pos)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		return nil, fmt.Errorf("line %d: type alias %s without a type", spec.Pos.Line, spec.Name)
	}
	alias := fir.NewTypeAlias(names.TopLevel(b.pkg, names.Name(spec.Name)), ref)
	alias.Location = b.loc(spec.Pos)
	annos, err := b.annotations(spec.Annotations)
	if err != nil {
		return nil, err
	}
	alias.AddAnnotations(annos...)
	return alias, nil
}

func (b *builder) function(spec *functionSpec) (*fir.SimpleFunction, error) {
	fn := fir.NewSimpleFunction(b.pkg, names.Name(spec.Name))
	fn.Location = b.loc(spec.Pos)

	var err error
	if fn.Receiver, err = b.typeRef(spec.Receiver, spec.Pos); err != nil {
		return nil, err
	}
	if fn.ReturnType, err = b.typeRef(spec.Returns, spec.Pos); err != nil {
		return nil, err
	}
	if fn.ValueParameters, err = b.parameters(spec.Params); err != nil {
		return nil, err
	}
	annos, err := b.annotations(spec.Annotations)
	if err != nil {
		return nil, err
	}
	fn.AddAnnotations(annos...)

	if len(spec.Contract) > 0 {
		raw := &fir.RawContract{Location: fn.Location}
		for i := range spec.Contract {
			eff, err := b.effect(&spec.Contract[i])
			if err != nil {
				return nil, fmt.Errorf("contract of %s: %w", spec.Name, err)
			}
			raw.Effects = append(raw.Effects, eff)
		}
		fn.RawContract = raw
	}
	return fn, nil
}

func (b *builder) property(spec *propertySpec) (*fir.Property, error) {
	ref, err := b.typeRef(spec.Type, spec.Pos)
	if err != nil {
		return nil, err
	}
	prop := fir.NewProperty(b.pkg, names.Name(spec.Name), ref)
	prop.Location = b.loc(spec.Pos)
	annos, err := b.annotations(spec.Annotations)
	if err != nil {
		return nil, err
	}
	prop.AddAnnotations(annos...)
	return prop, nil
}
