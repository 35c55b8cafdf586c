// layer_test.go — verification of the layer set and its names.
package xgxboundary

import (
	"reflect"
	"testing"
)

func TestLayers_StableOrder(t *testing.T) {
	t.Parallel()

	want := []Layer{LayerUnknown, LayerInternal, LayerPublic}
	if got := Layers(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Layers() = %v, want %v", got, want)
	}
}

func TestLayers_ReturnsCopy(t *testing.T) {
	t.Parallel()

	orig := Layers()
	orig[0] = Layer(42)
	if Layers()[0] != LayerUnknown {
		t.Fatalf("mutating the result of Layers() changed the registry")
	}
}

func TestLayer_String(t *testing.T) {
	t.Parallel()

	cases := map[Layer]string{
		LayerUnknown:  "unknown",
		LayerInternal: "internal",
		LayerPublic:   "public",
		Layer(9):      "layer(9)",
	}
	for l, want := range cases {
		if got := l.String(); got != want {
			t.Fatalf("Layer(%d).String() = %q, want %q", uint8(l), got, want)
		}
	}
}

func TestLayer_Valid(t *testing.T) {
	t.Parallel()

	for _, l := range Layers() {
		if !l.Valid() {
			t.Fatalf("%s should be valid", l)
		}
	}
	if Layer(200).Valid() {
		t.Fatalf("Layer(200) should not be valid")
	}
}
