// Package scope implements the member-scope provider consumed by the
// fake-override generator: for any class it computes the merged,
// per-edge-substituted view of every member visible through the class's
// supertypes, and answers direct-overridden queries for merge points.
package scope

import (
	"fmt"
	"slices"

	"velar/internal/sem"
	"velar/internal/source"
	"velar/internal/types"
)

// Provider computes and memoizes merged supertype scopes.
type Provider struct {
	mod  *sem.Module
	memo map[sem.ClassID]*Scope

	// direct records, per intersection override, the incomparable
	// symbols it merged. Provider-scoped rather than per-scope: an
	// intersection symbol stays queryable when a deeper subclass
	// inherits it through the class where the merge happened.
	direct map[sem.CallableID][]sem.CallableID

	// building guards against supertype cycles, which upstream
	// resolution must have rejected already.
	building map[sem.ClassID]bool
}

// NewProvider creates a provider over one semantic module.
func NewProvider(mod *sem.Module) *Provider {
	return &Provider{
		mod:      mod,
		memo:     make(map[sem.ClassID]*Scope, 16),
		direct:   make(map[sem.CallableID][]sem.CallableID, 16),
		building: make(map[sem.ClassID]bool, 16),
	}
}

// Scope is the merged member view of one class's supertypes.
type Scope struct {
	names []source.StringID
	funcs map[source.StringID][]sem.CallableID
	props map[source.StringID][]sem.CallableID
}

// CallableNames returns every member name visible through supertypes,
// in first-appearance order.
func (s *Scope) CallableNames() []source.StringID {
	return s.names
}

// FunctionsByName returns the merged function symbols for a name.
func (s *Scope) FunctionsByName(name source.StringID) []sem.CallableID {
	return s.funcs[name]
}

// PropertiesByName returns the merged property symbols for a name.
func (s *Scope) PropertiesByName(name source.StringID) []sem.CallableID {
	return s.props[name]
}

// DirectOverridden returns the incomparable symbols an intersection
// override merged, or nil for any other symbol.
func (p *Provider) DirectOverridden(sym sem.CallableID) []sem.CallableID {
	if ds, ok := p.direct[sym]; ok {
		return ds
	}
	return nil
}

// MergedSupertypeScope returns the merged, unsubstituted-at-the-edges
// member scope of all the class's supertypes.
func (p *Provider) MergedSupertypeScope(class sem.ClassID) *Scope {
	if sc, ok := p.memo[class]; ok {
		return sc
	}
	if p.building[class] {
		panic(fmt.Errorf("scope: supertype cycle through class %d", class))
	}
	p.building[class] = true
	defer delete(p.building, class)

	sc := &Scope{
		funcs: make(map[source.StringID][]sem.CallableID),
		props: make(map[source.StringID][]sem.CallableID),
	}
	cls := p.mod.Class(class)
	if cls == nil {
		p.memo[class] = sc
		return sc
	}

	// Per-slot candidate lists gathered across all inheritance edges.
	// Slot identity matches SameSlot: functions of different arity are
	// distinct overloads and must never be merged against each other.
	type slotKey struct {
		name  source.StringID
		kind  sem.CallableKind
		arity int
	}
	type slot struct {
		name  source.StringID
		kind  sem.CallableKind
		cands []sem.CallableID
	}
	var order []slot
	index := make(map[slotKey]int)

	for _, st := range cls.Supertypes {
		info, ok := p.mod.Types.ClassInfo(st)
		if !ok {
			continue
		}
		superID := sem.ClassID(info.Class)
		super := p.mod.Class(superID)
		if super == nil {
			continue
		}
		subst := edgeSubstitution(super.TypeParams, info.Args)
		for _, member := range p.visibleMembers(superID) {
			sym := p.substituteForEdge(member, class, subst)
			c := p.mod.Callable(sym)
			key := slotKey{name: c.Name, kind: c.Kind}
			if c.Kind == sem.CallableFunc {
				key.arity = len(c.ParamTypes)
			}
			i, ok := index[key]
			if !ok {
				i = len(order)
				index[key] = i
				order = append(order, slot{name: c.Name, kind: c.Kind})
			}
			order[i].cands = append(order[i].cands, sym)
		}
	}

	seenName := make(map[source.StringID]bool, len(order))
	for _, sl := range order {
		merged := p.merge(class, sl.cands)
		if !merged.IsValid() {
			continue
		}
		if !seenName[sl.name] {
			seenName[sl.name] = true
			sc.names = append(sc.names, sl.name)
		}
		switch sl.kind {
		case sem.CallableFunc:
			sc.funcs[sl.name] = append(sc.funcs[sl.name], merged)
		case sem.CallableProp:
			sc.props[sl.name] = append(sc.props[sl.name], merged)
		}
	}

	p.memo[class] = sc
	return sc
}

// visibleMembers returns a class's full member surface: its explicit
// members plus everything visible through its own supertype scope that
// is not shadowed by an explicit member.
func (p *Provider) visibleMembers(class sem.ClassID) []sem.CallableID {
	cls := p.mod.Class(class)
	if cls == nil {
		return nil
	}
	out := slices.Clone(cls.Members)
	sc := p.MergedSupertypeScope(class)
	for _, name := range sc.CallableNames() {
		for _, sym := range sc.FunctionsByName(name) {
			if !p.shadowedByExplicit(cls, sym) {
				out = append(out, sym)
			}
		}
		for _, sym := range sc.PropertiesByName(name) {
			if !p.shadowedByExplicit(cls, sym) {
				out = append(out, sym)
			}
		}
	}
	return out
}

// shadowedByExplicit reports whether one of the class's own members
// replaces the inherited symbol in its member surface.
func (p *Provider) shadowedByExplicit(cls *sem.Class, sym sem.CallableID) bool {
	c := p.mod.Callable(sym)
	for _, m := range cls.Members {
		if SameSlot(p.mod, p.mod.Callable(m), c) {
			return true
		}
	}
	return false
}

// SameSlot reports whether two callables occupy the same logical member
// slot: same name, same kind, and for functions the same arity.
func SameSlot(mod *sem.Module, a, b *sem.Callable) bool {
	if a == nil || b == nil {
		return false
	}
	if a.Name != b.Name || a.Kind != b.Kind {
		return false
	}
	if a.Kind == sem.CallableFunc && len(a.ParamTypes) != len(b.ParamTypes) {
		return false
	}
	return true
}

// edgeSubstitution zips a supertype's parameters with the arguments
// used at one inheritance edge.
func edgeSubstitution(params, args []types.TypeID) map[types.TypeID]types.TypeID {
	if len(params) == 0 || len(params) != len(args) {
		return nil
	}
	subst := make(map[types.TypeID]types.TypeID, len(params))
	for i, tp := range params {
		subst[tp] = args[i]
	}
	return subst
}

// substituteForEdge instantiates a supertype member for one inheritance
// edge. When the substitution changes nothing the symbol is passed
// through untouched; otherwise a FromSupertypes copy anchored at the
// inheriting class is created, linked to the declaration it substitutes.
func (p *Provider) substituteForEdge(sym sem.CallableID, class sem.ClassID, subst map[types.TypeID]types.TypeID) sem.CallableID {
	if len(subst) == 0 {
		return sym
	}
	c := p.mod.Callable(sym)
	ret := p.mod.Types.Substitute(c.ReturnType, subst)
	backing := p.mod.Types.Substitute(c.BackingType, subst)
	params := c.ParamTypes
	changed := ret != c.ReturnType || backing != c.BackingType
	if len(c.ParamTypes) > 0 {
		params = make([]types.TypeID, len(c.ParamTypes))
		for i, pt := range c.ParamTypes {
			params[i] = p.mod.Types.Substitute(pt, subst)
			if params[i] != pt {
				changed = true
			}
		}
	}
	if !changed {
		return sym
	}
	copyDecl := *c
	copyDecl.Origin = sem.OriginFromSupertypes
	copyDecl.Receiver = class
	copyDecl.ReturnType = ret
	copyDecl.BackingType = backing
	copyDecl.ParamTypes = params
	copyDecl.Original = sym
	copyDecl.Overrides = nil
	return p.mod.NewCallable(&copyDecl)
}

// merge collapses the per-edge candidates for one member slot into a
// single symbol: duplicates of one original are deduplicated, overridden
// candidates are dropped in favor of the overriding one, and genuinely
// incomparable survivors are folded into an intersection override.
func (p *Provider) merge(class sem.ClassID, cands []sem.CallableID) sem.CallableID {
	if len(cands) == 0 {
		return sem.NoCallableID
	}
	// Deduplicate by original declaration.
	var uniq []sem.CallableID
	seen := make(map[sem.CallableID]bool, len(cands))
	for _, sym := range cands {
		orig := p.mod.Unwrap(sym)
		if seen[orig] {
			continue
		}
		seen[orig] = true
		uniq = append(uniq, sym)
	}
	// Keep only candidates not overridden by another candidate.
	var maximal []sem.CallableID
	for i, a := range uniq {
		dominated := false
		for j, b := range uniq {
			if i != j && p.overridesTransitively(p.mod.Unwrap(b), p.mod.Unwrap(a)) {
				dominated = true
				break
			}
		}
		if !dominated {
			maximal = append(maximal, a)
		}
	}
	if len(maximal) == 1 {
		return maximal[0]
	}

	// Diamond with no single most-specific member: intersection override.
	first := p.mod.Callable(maximal[0])
	inter := *first
	inter.Origin = sem.OriginIntersection
	inter.Receiver = class
	inter.Original = maximal[0]
	inter.Overrides = nil
	id := p.mod.NewCallable(&inter)
	p.direct[id] = slices.Clone(maximal)
	return id
}

// overridesTransitively reports whether original declaration a
// overrides original declaration b, directly or through a chain.
func (p *Provider) overridesTransitively(a, b sem.CallableID) bool {
	if a == b {
		return false
	}
	for _, o := range p.mod.Callable(a).Overrides {
		o = p.mod.Unwrap(o)
		if o == b || p.overridesTransitively(o, b) {
			return true
		}
	}
	return false
}

// SubstituteOverride creates the substitution-override declaration used
// by the trivial fake-override path: a copy of decl re-anchored at the
// inheriting class. The scope already instantiated generic members per
// edge, so the copy's signature carries over unchanged.
func (p *Provider) SubstituteOverride(decl sem.CallableID, receiver sem.ClassID) sem.CallableID {
	c := p.mod.Callable(decl)
	if c == nil {
		panic("scope: SubstituteOverride on invalid declaration")
	}
	copyDecl := *c
	copyDecl.Origin = sem.OriginSubstitution
	copyDecl.Receiver = receiver
	copyDecl.Original = decl
	copyDecl.Overrides = nil
	return p.mod.NewCallable(&copyDecl)
}
