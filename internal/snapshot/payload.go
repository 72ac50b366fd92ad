// Package snapshot exports lowered member tables and caches them on
// disk keyed by a digest of the hierarchy source, so unchanged inputs
// skip re-lowering.
package snapshot

import (
	"crypto/sha256"
	"fmt"

	"velar/internal/ir"
	"velar/internal/lower"
	"velar/internal/sem"
)

// Current schema version - increment when Payload format changes.
const schemaVersion uint16 = 1

// Digest identifies the content of one hierarchy source.
type Digest [sha256.Size]byte

// DigestOf hashes raw source bytes.
func DigestOf(data []byte) Digest {
	return sha256.Sum256(data)
}

// Accessor is the exported view of a property accessor.
type Accessor struct {
	Present    bool
	Visibility string
	Overridden []string
}

// Member is the exported view of one member-table entry.
type Member struct {
	Kind       string
	Name       string
	Visibility string
	Origin     string
	Type       string
	Mutable    bool
	Getter     Accessor
	Setter     Accessor
	Overridden []string // "Class.member" references
}

// ClassTable is the exported member table of one class.
type ClassTable struct {
	Name    string
	Package string
	Members []Member
}

// Payload is the cached artifact for one hierarchy source.
type Payload struct {
	Schema  uint16
	Source  Digest
	Session string
	Classes []ClassTable
}

// Build exports the member tables of a lowering result.
func Build(semMod *sem.Module, res *lower.Result, source Digest, session string) *Payload {
	p := &Payload{
		Schema:  schemaVersion,
		Source:  source,
		Session: session,
	}
	irMod := res.IR
	for _, cid := range irMod.ClassIDs() {
		cls := irMod.Class(cid)
		table := ClassTable{
			Name:    semMod.Strings.MustLookup(cls.Name),
			Package: pkgName(semMod, cls.Pkg),
		}
		for _, fid := range cls.Funcs {
			table.Members = append(table.Members, exportFunc(semMod, irMod, fid))
		}
		for _, pid := range cls.Props {
			table.Members = append(table.Members, exportProp(semMod, irMod, pid))
		}
		p.Classes = append(p.Classes, table)
	}
	return p
}

func pkgName(semMod *sem.Module, pkg sem.PackageID) string {
	info := semMod.PackageInfo(pkg)
	if info == nil {
		return ""
	}
	return semMod.Strings.MustLookup(info.Name)
}

func exportFunc(semMod *sem.Module, irMod *ir.Module, id ir.FuncID) Member {
	f := irMod.Func(id)
	m := Member{
		Kind:       "func",
		Name:       semMod.Strings.MustLookup(f.Name),
		Visibility: f.Vis.String(),
		Origin:     f.Origin.String(),
		Type:       TypeString(semMod, f.Ret),
	}
	for _, o := range f.Overridden {
		m.Overridden = append(m.Overridden, funcRefString(semMod, irMod, o))
	}
	return m
}

func exportProp(semMod *sem.Module, irMod *ir.Module, id ir.PropID) Member {
	p := irMod.Prop(id)
	m := Member{
		Kind:       "prop",
		Name:       semMod.Strings.MustLookup(p.Name),
		Visibility: p.Vis.String(),
		Origin:     p.Origin.String(),
		Type:       TypeString(semMod, p.Type),
		Mutable:    p.IsMutable,
		Getter:     exportAccessor(semMod, irMod, p.Getter),
		Setter:     exportAccessor(semMod, irMod, p.Setter),
	}
	for _, o := range p.Overridden {
		m.Overridden = append(m.Overridden, propRefString(semMod, irMod, o))
	}
	return m
}

func exportAccessor(semMod *sem.Module, irMod *ir.Module, a ir.Accessor) Accessor {
	out := Accessor{Present: a.Present}
	if !a.Present {
		return out
	}
	out.Visibility = a.Vis.String()
	for _, o := range a.Overridden {
		out.Overridden = append(out.Overridden, propRefString(semMod, irMod, o))
	}
	return out
}

func funcRefString(semMod *sem.Module, irMod *ir.Module, id ir.FuncID) string {
	f := irMod.Func(id)
	cls := irMod.Class(f.Parent)
	return fmt.Sprintf("%s.%s", semMod.Strings.MustLookup(cls.Name), semMod.Strings.MustLookup(f.Name))
}

func propRefString(semMod *sem.Module, irMod *ir.Module, id ir.PropID) string {
	p := irMod.Prop(id)
	cls := irMod.Class(p.Parent)
	return fmt.Sprintf("%s.%s", semMod.Strings.MustLookup(cls.Name), semMod.Strings.MustLookup(p.Name))
}
