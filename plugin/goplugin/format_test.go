package goplugin

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-harness/internal/errkind"
	"github.com/cwbudde/algo-harness/plugin"
	"github.com/cwbudde/algo-harness/plugin/builtin"
)

func TestFindTypesIgnoresOtherFiles(t *testing.T) {
	f := NewFormat()

	for _, path := range []string{"builtin:gain", "effect.vst3", filepath.Join(t.TempDir(), "x.wav")} {
		descs, err := f.FindTypes(path)
		if err != nil || len(descs) != 0 {
			t.Fatalf("FindTypes(%q) = %v, %v", path, descs, err)
		}
	}
}

func TestFindTypesMissingFile(t *testing.T) {
	_, err := NewFormat().FindTypes(filepath.Join(t.TempDir(), "missing.so"))
	if !errors.Is(err, errkind.Resource) {
		t.Fatalf("err = %v, want resource error", err)
	}
}

func TestFindTypesRejectsNonPlugin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.so")
	if err := os.WriteFile(path, []byte("not an object file"), 0o644); err != nil {
		t.Fatal(err)
	}

	descs, err := NewFormat().FindTypes(path)
	if supported && err == nil {
		t.Fatal("expected an error opening a bogus shared object")
	}
	if !supported && (err != nil || len(descs) != 0) {
		t.Fatalf("unsupported platform: descs=%v err=%v", descs, err)
	}
}

func TestResolve(t *testing.T) {
	ctor := func() plugin.Instance {
		inst, _ := builtin.NewPassthrough(48000, 256)
		return inst
	}

	fn, err := resolve(ctor)
	if err != nil || fn().Name() != "Passthrough" {
		t.Fatalf("resolve(func) = %v", err)
	}

	fn, err = resolve(&ctor)
	if err != nil || fn == nil {
		t.Fatalf("resolve(*func) = %v", err)
	}

	var nilCtor func() plugin.Instance
	if _, err := resolve(&nilCtor); !errors.Is(err, ErrBadSymbol) {
		t.Fatalf("resolve(nil func) err = %v", err)
	}
	if _, err := resolve(func() {}); !errors.Is(err, ErrBadSymbol) {
		t.Fatalf("resolve(wrong type) err = %v", err)
	}
}
