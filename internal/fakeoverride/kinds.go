package fakeoverride

import (
	"slices"

	"velar/internal/ir"
	"velar/internal/scope"
	"velar/internal/sem"
	"velar/internal/source"
)

// funcOps is the function-kind strategy of the synthesis algorithm.
type funcOps struct {
	sess *Session
}

func (o funcOps) symbols(sc *scope.Scope, name source.StringID) []sem.CallableID {
	return sc.FunctionsByName(name)
}

func (o funcOps) cached(decl sem.CallableID, parent ir.ClassID) (ir.FuncID, bool) {
	return o.sess.Store.CachedFunc(decl, parent)
}

func (o funcOps) create(decl sem.CallableID, parent ir.ClassID, isLocal bool) ir.FuncID {
	return o.sess.Store.CreateFunc(decl, parent, ir.OriginFakeOverride, isLocal)
}

func (o funcOps) parent(d ir.FuncID) ir.ClassID {
	return o.sess.Store.OwningFuncClass(d)
}

func (o funcOps) setParent(d ir.FuncID, parent ir.ClassID) {
	o.sess.Store.SetFuncParent(d, parent)
}

func (o funcOps) containsError(d ir.FuncID) bool {
	f := o.sess.Store.IR().Func(d)
	tt := o.sess.Sem.Types
	if tt.ContainsError(f.Ret) {
		return true
	}
	for _, p := range f.Params {
		if tt.ContainsError(p) {
			return true
		}
	}
	return false
}

func (o funcOps) attach(class ir.ClassID, d ir.FuncID) {
	mod := o.sess.Store.IR()
	if slices.Contains(mod.Class(class).Funcs, d) {
		return
	}
	mod.AttachFunc(class, d)
}

func (o funcOps) record(base *BaseSymbols, d ir.FuncID, syms []sem.CallableID) {
	base.RecordFunc(d, syms)
}

func (o funcOps) ref(d ir.FuncID) ir.DeclRef { return ir.FuncRef(d) }

// propOps is the property-kind strategy.
type propOps struct {
	sess *Session
}

func (o propOps) symbols(sc *scope.Scope, name source.StringID) []sem.CallableID {
	return sc.PropertiesByName(name)
}

func (o propOps) cached(decl sem.CallableID, parent ir.ClassID) (ir.PropID, bool) {
	return o.sess.Store.CachedProp(decl, parent)
}

func (o propOps) create(decl sem.CallableID, parent ir.ClassID, isLocal bool) ir.PropID {
	return o.sess.Store.CreateProp(decl, parent, ir.OriginFakeOverride, isLocal)
}

func (o propOps) parent(d ir.PropID) ir.ClassID {
	return o.sess.Store.OwningPropClass(d)
}

func (o propOps) setParent(d ir.PropID, parent ir.ClassID) {
	o.sess.Store.SetPropParent(d, parent)
}

func (o propOps) containsError(d ir.PropID) bool {
	p := o.sess.Store.IR().Prop(d)
	tt := o.sess.Sem.Types
	return tt.ContainsError(p.Type) || tt.ContainsError(p.Ret)
}

func (o propOps) attach(class ir.ClassID, d ir.PropID) {
	mod := o.sess.Store.IR()
	if slices.Contains(mod.Class(class).Props, d) {
		return
	}
	mod.AttachProp(class, d)
}

func (o propOps) record(base *BaseSymbols, d ir.PropID, syms []sem.CallableID) {
	base.RecordProp(d, syms)
}

func (o propOps) ref(d ir.PropID) ir.DeclRef { return ir.PropRef(d) }
