package rules

import "fmt"

// Kind names a registrable record family. Reference attributes resolve
// against the registry entry for their kind.
type Kind string

// Registrable record kinds.
const (
	KindGoods    Kind = "goods-type"
	KindResource Kind = "resource-type"
	KindDisaster Kind = "disaster"
	KindTile     Kind = "tile-type"
)

// Registry indexes loaded records by kind and identifier. It must be fully
// populated with primitive types before any record referencing them is
// read; the loader's two-phase order guarantees this.
type Registry struct {
	byKind map[Kind]map[string]any
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byKind: make(map[Kind]map[string]any)}
}

// Register adds a record under its kind and identifier.
func (r *Registry) Register(kind Kind, id string, obj any) error {
	if id == "" {
		return fmt.Errorf("registering %s: empty identifier", kind)
	}
	m := r.byKind[kind]
	if m == nil {
		m = make(map[string]any)
		r.byKind[kind] = m
	}
	if _, ok := m[id]; ok {
		return fmt.Errorf("registering %s: duplicate identifier %q", kind, id)
	}
	m[id] = obj
	return nil
}

// Resolve returns the record registered under kind and id.
func (r *Registry) Resolve(kind Kind, id string) (any, error) {
	if obj, ok := r.byKind[kind][id]; ok {
		return obj, nil
	}
	return nil, fmt.Errorf("%s %q: %w", kind, id, ErrUnknownReference)
}

// Goods resolves a goods type reference.
func (r *Registry) Goods(id string) (*GoodsType, error) {
	obj, err := r.Resolve(KindGoods, id)
	if err != nil {
		return nil, err
	}
	return obj.(*GoodsType), nil
}

// Resource resolves a resource type reference.
func (r *Registry) Resource(id string) (*ResourceType, error) {
	obj, err := r.Resolve(KindResource, id)
	if err != nil {
		return nil, err
	}
	return obj.(*ResourceType), nil
}

// Disaster resolves a disaster reference.
func (r *Registry) Disaster(id string) (*Disaster, error) {
	obj, err := r.Resolve(KindDisaster, id)
	if err != nil {
		return nil, err
	}
	return obj.(*Disaster), nil
}

// Tile resolves a tile type reference.
func (r *Registry) Tile(id string) (*TileType, error) {
	obj, err := r.Resolve(KindTile, id)
	if err != nil {
		return nil, err
	}
	return obj.(*TileType), nil
}
