package container

import "sort"

// ScopeInfo is a point-in-time description of a scope, for diagnostics.
type ScopeInfo struct {
	Name        string        `json:"name"`
	Parent      string        `json:"parent,omitempty"`
	Children    []string      `json:"children"`
	Closed      bool          `json:"closed"`
	Annotations []string      `json:"annotations"`
	Singletons  int           `json:"singletons"`
	Bindings    []BindingInfo `json:"bindings"`
}

// BindingInfo describes one installed binding.
type BindingInfo struct {
	Key        string `json:"key"`
	Mode       string `json:"mode"`
	Target     string `json:"target,omitempty"`
	Singleton  bool   `json:"singleton"`
	Releasable bool   `json:"releasable"`
	Override   bool   `json:"override"`
}

// Snapshot describes the scope. Bindings are sorted by key, overrides first
// for equal keys.
func (s *Scope) Snapshot() ScopeInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info := ScopeInfo{
		Name:       s.name,
		Parent:     parentName(s),
		Children:   make([]string, 0, len(s.children)),
		Closed:     s.IsClosed(),
		Singletons: len(s.singletons),
	}
	for name := range s.children {
		info.Children = append(info.Children, name)
	}
	for a := range s.annotations {
		info.Annotations = append(info.Annotations, a)
	}
	for _, b := range s.overrides {
		info.Bindings = append(info.Bindings, describe(b, true))
	}
	for _, b := range s.bindings {
		info.Bindings = append(info.Bindings, describe(b, false))
	}

	sort.Strings(info.Children)
	sort.Strings(info.Annotations)
	sort.SliceStable(info.Bindings, func(i, j int) bool {
		if info.Bindings[i].Key != info.Bindings[j].Key {
			return info.Bindings[i].Key < info.Bindings[j].Key
		}
		return info.Bindings[i].Override && !info.Bindings[j].Override
	})
	return info
}

func describe(b *Binding, override bool) BindingInfo {
	bi := BindingInfo{
		Key:        b.key.String(),
		Mode:       b.mode.String(),
		Singleton:  b.singleton,
		Releasable: b.releasable,
		Override:   override,
	}
	if b.target != nil {
		bi.Target = b.target.String()
	}
	return bi
}
