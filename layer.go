// layer.go — which side of the boundary a failure lives on.
//
// Conventions:
//   - LayerInternal failures are produced by the lowest layer and must not
//     be returned from a public entry point in their original form.
//   - LayerPublic failures are the only ones a module hands to its callers.
//   - Foreign errors (not Classified) report LayerUnknown.
package xgxboundary

import "strconv"

// Layer classifies a failure by boundary side.
type Layer uint8

const (
	LayerUnknown Layer = iota
	LayerInternal
	LayerPublic
)

// allLayers is the ordered set of known layers.
var allLayers = []Layer{LayerUnknown, LayerInternal, LayerPublic}

var layerNames = map[Layer]string{
	LayerUnknown:  "unknown",
	LayerInternal: "internal",
	LayerPublic:   "public",
}

// Layers returns the known layers in a stable order.
func Layers() []Layer {
	out := make([]Layer, len(allLayers))
	copy(out, allLayers)
	return out
}

// String returns the lowercase layer name, or "layer(N)" for values outside
// the known set.
func (l Layer) String() string {
	if s, ok := layerNames[l]; ok {
		return s
	}
	return "layer(" + strconv.Itoa(int(l)) + ")"
}

// Valid reports whether l is one of the known layers.
func (l Layer) Valid() bool {
	_, ok := layerNames[l]
	return ok
}
