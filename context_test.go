package teximage

import "testing"

func TestContextRegistryEnsureHeadless(t *testing.T) {
	r := NewContextRegistry()
	if r.Current() != nil {
		t.Fatal("new registry has a current context")
	}

	c := r.Ensure()
	if c == nil || c.Name() != HeadlessContext {
		t.Fatalf("Ensure() = %v, want headless context", c)
	}
	if c.ID() == 0 {
		t.Error("headless context has zero ID")
	}
	if again := r.Ensure(); again != c {
		t.Errorf("second Ensure() = %v, want %v", again, c)
	}
}

func TestContextRegistryFactoryPriority(t *testing.T) {
	r := NewContextRegistry("window", "offscreen")
	r.RegisterFactory("offscreen", func() *Context { return r.NewContext("offscreen") })
	r.RegisterFactory("window", func() *Context { return r.NewContext("window") })

	if r.Factories() != 2 {
		t.Fatalf("Factories() = %d, want 2", r.Factories())
	}
	if got := r.Ensure().Name(); got != "window" {
		t.Errorf("Ensure() picked %q, want window", got)
	}

	r.MakeCurrent(nil)
	r.UnregisterFactory("window")
	if got := r.Ensure().Name(); got != "offscreen" {
		t.Errorf("Ensure() after unregister picked %q, want offscreen", got)
	}
}

func TestContextRegistryMakeCurrent(t *testing.T) {
	r := NewContextRegistry()
	a := r.NewContext("a")
	b := r.NewContext("b")
	if a.ID() == b.ID() {
		t.Fatalf("contexts share ID %d", a.ID())
	}

	r.MakeCurrent(b)
	if r.Ensure() != b {
		t.Error("Ensure() replaced an existing current context")
	}
}

func TestNilContext(t *testing.T) {
	var c *Context
	if c.ID() != 0 || c.Name() != "" || c.String() != "context(none)" {
		t.Errorf("nil context = (%d, %q, %q)", c.ID(), c.Name(), c.String())
	}
}
