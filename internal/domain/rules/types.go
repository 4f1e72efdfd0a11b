package rules

// Primitive record types. Their game semantics live in external
// collaborators; the model only needs them as identified registry entries
// that production, resource, and disaster references resolve to.

// GoodsType identifies a tradeable or producible goods kind.
type GoodsType struct {
	Base
}

// NewGoodsType creates an empty goods type to be populated by Read.
func NewGoodsType() *GoodsType {
	return &GoodsType{}
}

// TagName returns "goods-type".
func (g *GoodsType) TagName() string {
	return string(KindGoods)
}

// ResourceType identifies a resource that can appear on a tile.
type ResourceType struct {
	Base
}

// NewResourceType creates an empty resource type to be populated by Read.
func NewResourceType() *ResourceType {
	return &ResourceType{}
}

// TagName returns "resource-type".
func (r *ResourceType) TagName() string {
	return string(KindResource)
}

// Disaster identifies a disaster that may strike a tile.
type Disaster struct {
	Base
}

// NewDisaster creates an empty disaster to be populated by Read.
func NewDisaster() *Disaster {
	return &Disaster{}
}

// TagName returns "disaster".
func (d *Disaster) TagName() string {
	return string(KindDisaster)
}
