package domain

import (
	"slices"
	"strings"
)

// ItemKind distinguishes flat resources from instantiable composites.
type ItemKind uint8

const (
	// KindResource is a flat resource (texture, audio clip, text).
	KindResource ItemKind = iota
	// KindPrefab is an instantiable composite made of named components.
	KindPrefab
)

// String returns the textual form of the kind.
func (k ItemKind) String() string {
	if k == KindPrefab {
		return "prefab"
	}
	return "resource"
}

// Component is a named part of a prefab.
type Component struct {
	Name string `cbor:"1,keyasint"`
	Data []byte `cbor:"2,keyasint"`
}

// Item is one packaged asset inside a bundle archive.
type Item struct {
	Name       string      `cbor:"1,keyasint"`
	Kind       ItemKind    `cbor:"2,keyasint"`
	Extension  string      `cbor:"3,keyasint"`
	Data       []byte      `cbor:"4,keyasint,omitempty"`
	Components []Component `cbor:"5,keyasint,omitempty"`
}

// BundleContent is the in-memory representation of a resident bundle.
type BundleContent struct {
	Name  string
	Items map[string]Item
	// Passthrough marks content whose items are read from the source tree on demand.
	Passthrough bool
}

// NewBundleContent creates an empty bundle content.
func NewBundleContent(name string) *BundleContent {
	return &BundleContent{Name: name, Items: make(map[string]Item)}
}

// Strategy selects how a resolved item is handed to the caller.
type Strategy struct {
	kind      strategyKind
	component string
}

type strategyKind uint8

const (
	strategyResource strategyKind = iota
	strategyInstance
	strategyComponent
)

// ResolveResource returns the item as a flat resource.
func ResolveResource() Strategy { return Strategy{kind: strategyResource} }

// ResolveInstance instantiates a prefab item.
func ResolveInstance() Strategy { return Strategy{kind: strategyInstance} }

// ResolveComponent instantiates a prefab and extracts one named component.
func ResolveComponent(name string) Strategy {
	return Strategy{kind: strategyComponent, component: name}
}

// ParseStrategy parses "resource", "instance" or "component:<name>".
func ParseStrategy(s string) (Strategy, error) {
	switch {
	case s == "" || s == "resource":
		return ResolveResource(), nil
	case s == "instance":
		return ResolveInstance(), nil
	case strings.HasPrefix(s, "component:") && len(s) > len("component:"):
		return ResolveComponent(strings.TrimPrefix(s, "component:")), nil
	default:
		return Strategy{}, Annotate(ErrUnknownStrategy, "strategy", s)
	}
}

// String returns the textual form accepted by ParseStrategy.
func (s Strategy) String() string {
	switch s.kind {
	case strategyInstance:
		return "instance"
	case strategyComponent:
		return "component:" + s.component
	default:
		return "resource"
	}
}

// Instance is a freshly constructed copy of a prefab.
type Instance struct {
	ID         string
	Prefab     string
	Data       []byte
	Components []Component
}

// LoadedAsset is the value delivered to a completed asset request.
type LoadedAsset struct {
	Asset    Asset
	Strategy Strategy
	// Resource holds the item for ResolveResource.
	Resource *Item
	// Instance holds the constructed object for ResolveInstance and ResolveComponent.
	Instance *Instance
	// Component holds the extracted component for ResolveComponent.
	Component *Component
}

// Resolve extracts an asset from resident content using the given strategy.
// newID supplies identities for constructed instances.
func Resolve(content *BundleContent, asset Asset, strategy Strategy, newID func() string) (*LoadedAsset, error) {
	item, ok := content.Items[asset.Name]
	if !ok {
		return nil, Annotate(ErrAssetNotFound, "asset", asset.Name, "bundle", content.Name)
	}

	loaded := &LoadedAsset{Asset: asset, Strategy: strategy}
	if strategy.kind == strategyResource {
		cp := item
		cp.Data = slices.Clone(item.Data)
		loaded.Resource = &cp
		return loaded, nil
	}

	if item.Kind != KindPrefab {
		return nil, Annotate(ErrAssetNotFound, "asset", asset.Name, "reason", "not instantiable", "kind", item.Kind.String())
	}

	inst := &Instance{
		ID:         newID(),
		Prefab:     item.Name,
		Data:       slices.Clone(item.Data),
		Components: make([]Component, len(item.Components)),
	}
	for i, comp := range item.Components {
		inst.Components[i] = Component{Name: comp.Name, Data: slices.Clone(comp.Data)}
	}
	loaded.Instance = inst

	if strategy.kind == strategyComponent {
		idx := slices.IndexFunc(inst.Components, func(c Component) bool { return c.Name == strategy.component })
		if idx < 0 {
			return nil, Annotate(ErrAssetNotFound, "asset", asset.Name, "component", strategy.component)
		}
		loaded.Component = &inst.Components[idx]
	}
	return loaded, nil
}
