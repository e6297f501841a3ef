package typesystem

import "testing"

func TestMergeIdentical(t *testing.T) {
	if got := Merge(I32, I32); got != I32 {
		t.Errorf("Merge(I32, I32) = %v, want I32", got)
	}
}

func TestMergeNilAbsorbs(t *testing.T) {
	if got := Merge(nil, String); !got.Equal(String) {
		t.Errorf("Merge(nil, String) = %v, want String", got)
	}
	if got := Merge(String, nil); !got.Equal(String) {
		t.Errorf("Merge(String, nil) = %v, want String", got)
	}
	if got := MergeAll(); got != nil {
		t.Errorf("MergeAll() = %v, want nil", got)
	}
}

func TestMergeDistinctBuildsUnion(t *testing.T) {
	got := Merge(I32, String)
	u, ok := got.(Union)
	if !ok {
		t.Fatalf("Merge(I32, String) = %T, want Union", got)
	}
	if len(u.Alts) != 2 {
		t.Fatalf("union has %d alts, want 2", len(u.Alts))
	}
}

func TestMergeOrderIndependent(t *testing.T) {
	a := MergeAll(I32, String, Bool)
	b := MergeAll(Bool, I32, String)
	if a.String() != b.String() {
		t.Errorf("merge order affected result: %s vs %s", a.String(), b.String())
	}
}

func TestMergeFlattensNestedUnions(t *testing.T) {
	ab := Merge(I32, String)
	abc := Merge(ab, Bool)
	u, ok := abc.(Union)
	if !ok {
		t.Fatalf("expected Union, got %T", abc)
	}
	if len(u.Alts) != 3 {
		t.Errorf("expected 3 flattened alts, got %d: %s", len(u.Alts), u.String())
	}
}

func TestMergeDedupesEqualAlts(t *testing.T) {
	got := MergeAll(I32, String, I32)
	u, ok := got.(Union)
	if !ok {
		t.Fatalf("expected Union, got %T", got)
	}
	if len(u.Alts) != 2 {
		t.Errorf("expected dedup to 2 alts, got %d: %s", len(u.Alts), u.String())
	}
}

func TestClassVirtualizedAndUninstantiatedGeneric(t *testing.T) {
	box := Class{Name: "Box", Kind: KindGenericClass, Params: []string{"T"}}
	if !box.IsUninstantiatedGeneric() {
		t.Errorf("bare generic Box should be uninstantiated")
	}
	instantiated := box
	instantiated.Args = []Type{I32}
	if instantiated.IsUninstantiatedGeneric() {
		t.Errorf("Box(Int32) should not be uninstantiated")
	}

	concrete := Class{Name: "Animal", Kind: KindConcreteClass}
	v := concrete.Virtualized()
	if !v.IsVirtual || v.String() != "Animal+" {
		t.Errorf("Virtualized() = %+v (%s), want IsVirtual and \"Animal+\"", v, v.String())
	}
}
