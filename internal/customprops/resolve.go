package customprops

import (
	"slices"

	"bennypowers.dev/cpsort/internal/collections"
	"bennypowers.dev/cpsort/internal/log"
)

// MaxResolvePasses bounds the reinsertion loop of the dependency resolver
const MaxResolvePasses = 100

// resolution is the outcome of placing dependents after their dependencies
type resolution struct {
	seq []Property
	// passes is the number of reinsertion passes that ran
	passes int
	// unresolved counts staged groups that were force-appended after the cap
	unresolved int
}

// resolve moves every dependent that sorts before one of its dependencies to
// directly after that dependency. Dependents already placed after their
// dependency are left alone, and dependencies missing from seq are ignored.
// Once a group is spliced in, dependents of its members are checked again,
// except where they are part of a reference cycle with that member.
func resolve(seq []Property, dependents collections.Edges[string], order SortOrder) resolution {
	return resolveWithin(seq, dependents, order, MaxResolvePasses)
}

func resolveWithin(seq []Property, dependents collections.Edges[string], order SortOrder, maxPasses int) resolution {
	seq = slices.Clone(seq)

	// dependency name -> dependents waiting to be spliced in after it
	staged := collections.NewOrderedMap[string, []Property]()

	// hoist moves every dependent of dep that sits before it into dep's staged
	// group. Members are taken in sequence order so comparator ties stay put.
	// With skipCycles set, dependents that dep itself depends on stay where
	// they are.
	hoist := func(dep string, skipCycles bool) {
		set := dependents.Targets(dep)
		if set.Len() == 0 {
			return
		}

		members := make([]Property, 0, set.Len())
		for _, p := range seq {
			if !set.Has(p.Name) {
				continue
			}
			if skipCycles && dependsOn(dependents, dep, p.Name) {
				continue
			}
			members = append(members, p)
		}
		sortProperties(members, order)

		for _, dependent := range members {
			depIdx := indexOf(seq, dep)
			if depIdx == -1 {
				return
			}
			idx := indexOf(seq, dependent.Name)
			if idx == -1 || idx > depIdx {
				continue
			}

			seq = slices.Delete(seq, idx, idx+1)
			group, _ := staged.Get(dep)
			group = append(group, dependent)
			sortProperties(group, order)
			staged.Set(dep, group)
		}
	}

	for _, dep := range names(seq) {
		hoist(dep, false)
	}

	passes := 0
	for staged.Len() > 0 {
		if passes == maxPasses {
			unresolved := staged.Len()
			log.Warn("Dependent properties not resolved after %d iterations: %d", maxPasses, unresolved)
			staged.Each(func(_ string, group []Property) {
				seq = append(seq, group...)
			})
			return resolution{seq: seq, passes: passes, unresolved: unresolved}
		}
		passes++

		for _, dep := range staged.Keys() {
			depIdx := indexOf(seq, dep)
			if depIdx == -1 {
				continue
			}
			group, _ := staged.Get(dep)
			seq = slices.Insert(seq, depIdx+1, group...)
			staged.Delete(dep)

			// a moved property may now trail its own dependents
			for _, moved := range group {
				hoist(moved.Name, true)
			}
		}
	}

	return resolution{seq: seq, passes: passes}
}

func indexOf(seq []Property, name string) int {
	return slices.IndexFunc(seq, func(p Property) bool { return p.Name == name })
}

func names(seq []Property) []string {
	out := make([]string, len(seq))
	for i, p := range seq {
		out[i] = p.Name
	}
	return out
}

// dependsOn reports whether name transitively references dep.
func dependsOn(dependents collections.Edges[string], name, dep string) bool {
	seen := collections.NewSet[string]()
	queue := []string{dep}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for next := range dependents.Targets(cur) {
			if next == name {
				return true
			}
			if seen.Has(next) {
				continue
			}
			seen.Add(next)
			queue = append(queue, next)
		}
	}
	return false
}
