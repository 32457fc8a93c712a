package foreign

import (
	"path/filepath"
	"testing"
)

func TestStoreSetAndGet(t *testing.T) {
	s := NewStore()
	if err := s.Set("precision", "6"); err != nil {
		t.Fatal(err)
	}
	got := s.Get("precision")
	if string(got.Chars) != "6" {
		t.Fatalf("got %q, want %q", string(got.Chars), "6")
	}
}

func TestStoreGetMissingPathIsEmpty(t *testing.T) {
	s := NewStore()
	got := s.Get("nope")
	if len(got.Chars) != 0 {
		t.Fatalf("got %q, want empty", string(got.Chars))
	}
}

func TestDispatcherParamPolicyDenies(t *testing.T) {
	d := New(Policy{AllowParamStore: false}, "")
	if _, err := d.GetParam("x"); err == nil {
		t.Fatal("expected policy to deny param access")
	}
}

func TestDispatcherCacheScriptWritesAtomically(t *testing.T) {
	dir := t.TempDir()
	d := New(Policy{AllowFileIO: true}, dir)
	path, err := d.CacheScript("sum.ijs", "+/1 2 3")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("cache path %q not under %q", path, dir)
	}
	got, err := d.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got.Chars) != "+/1 2 3" {
		t.Fatalf("got %q", string(got.Chars))
	}
}
