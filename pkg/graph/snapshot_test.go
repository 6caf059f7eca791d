package graph

import (
	"reflect"
	"slices"
	"testing"
)

func star(t *testing.T) *Store {
	t.Helper()
	s, err := New(4)
	if err != nil {
		t.Fatal(err)
	}
	for i, e := range []Edge{{0, 1}, {0, 2}, {0, 3}, {2, 3}} {
		if err := s.CreateEdge(e.U, e.V); err != nil {
			t.Fatal(err)
		}
		_ = s.SetEdgeInfo(InfoWeight, e, i+1)
		_ = s.SetEdgeInfo(InfoLabel, e, e.String())
	}
	return s
}

func mustDump(t *testing.T, s *Store) ExportData {
	t.Helper()
	d, err := s.Dump()
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestIsolateRestore(t *testing.T) {
	s := star(t)
	before := mustDump(t, s)

	sn, err := s.Isolate(0)
	if err != nil {
		t.Fatal(err)
	}
	if got := sn.Edges(); !slices.Equal(got, []Edge{{0, 1}, {0, 2}, {0, 3}}) {
		t.Errorf("Snapshot.Edges() = %v", got)
	}
	for _, k := range s.Kinds() {
		r, _ := s.Representation(k)
		if got := r.Edges(); !slices.Equal(got, []Edge{{2, 3}}) {
			t.Errorf("%v Edges() while isolated = %v", k, got)
		}
	}
	if _, ok := s.EdgeInfo(InfoWeight, Edge{0, 1}); ok {
		t.Error("metadata of isolated edge still present")
	}
	if w, _ := s.EdgeInfo(InfoWeight, Edge{2, 3}); w != 4 {
		t.Errorf("unrelated edge weight = %v, want 4", w)
	}

	sn.Restore()
	sn.Restore()
	if after := mustDump(t, s); !reflect.DeepEqual(before, after) {
		t.Errorf("store changed across isolate/restore:\nbefore %+v\nafter  %+v", before, after)
	}
	if n, _ := s.EdgeCount(); n != 4 {
		t.Errorf("EdgeCount() = %d after double restore, want 4", n)
	}
}

func TestIsolateMetadataOnlyEdge(t *testing.T) {
	s, _ := New(3)
	_ = s.SetEdgeInfo(InfoWeight, Edge{1, 2}, 9)

	sn, err := s.Isolate(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.EdgeInfoKeys()) != 0 {
		t.Error("metadata-only edge not evicted")
	}
	sn.Restore()
	if exists, _ := s.EdgeExists(Edge{1, 2}); exists {
		t.Error("restore created a structural edge that never existed")
	}
	if w, _ := s.EdgeInfo(InfoWeight, Edge{2, 1}); w != 9 {
		t.Errorf("weight = %v, want 9", w)
	}
}

func TestWithIsolatedRestoresOnPanic(t *testing.T) {
	s := star(t)
	before := mustDump(t, s)

	func() {
		defer func() { _ = recover() }()
		_ = s.WithIsolated(0, func() error {
			panic("boom")
		})
	}()

	if after := mustDump(t, s); !reflect.DeepEqual(before, after) {
		t.Error("store not restored after panic")
	}
}

func TestWithIsolatedOutOfRange(t *testing.T) {
	s := star(t)
	called := false
	err := s.WithIsolated(9, func() error { called = true; return nil })
	if err == nil || called {
		t.Errorf("WithIsolated(9) = %v, called = %v", err, called)
	}
}
