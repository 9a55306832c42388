package teximage

import (
	"errors"
	"testing"

	"github.com/gogpu/teximage/backend"
	"github.com/gogpu/teximage/driver"
)

func newTestBinder(t *testing.T) (*TextureBinder, *backend.SoftwareDriver, *ContextRegistry) {
	t.Helper()
	drv := backend.NewSoftwareDriver()
	contexts := NewContextRegistry()
	contexts.Ensure()
	return NewTextureBinder(drv, contexts), drv, contexts
}

func TestBinderElidesRedundantBinds(t *testing.T) {
	b, drv, _ := newTestBinder(t)
	tex, _ := drv.NewTexture()

	for range 3 {
		if err := b.MakeCurrent(tex); err != nil {
			t.Fatal(err)
		}
	}
	if got := drv.Stats().Binds; got != 1 {
		t.Errorf("driver binds = %d, want 1", got)
	}
	if b.Current() != tex || b.Binds() != 1 {
		t.Errorf("Current() = %v, Binds() = %d", b.Current(), b.Binds())
	}
}

func TestBinderContextSwitchRebinds(t *testing.T) {
	b, drv, contexts := newTestBinder(t)
	tex, _ := drv.NewTexture()
	first := contexts.Current()

	_ = b.MakeCurrent(tex)
	second := contexts.NewContext("second")
	contexts.MakeCurrent(second)
	_ = b.MakeCurrent(tex)

	if got := drv.Stats().Binds; got != 2 {
		t.Errorf("driver binds = %d, want 2", got)
	}
	if drv.Bound(first.ID()) != tex || drv.Bound(second.ID()) != tex {
		t.Error("texture not bound in both contexts")
	}
	if b.LastContext() != second {
		t.Errorf("LastContext() = %v, want %v", b.LastContext(), second)
	}
}

func TestBinderWillDelete(t *testing.T) {
	b, drv, _ := newTestBinder(t)
	a, _ := drv.NewTexture()
	other, _ := drv.NewTexture()

	_ = b.MakeCurrent(a)
	b.WillDelete(other)
	if b.Current() != a {
		t.Error("WillDelete of another texture reset current")
	}
	b.WillDelete(a)
	if b.Current() != driver.NoTexture {
		t.Errorf("Current() after WillDelete = %v", b.Current())
	}

	// Binding the same ID again reaches the driver.
	_ = b.MakeCurrent(a)
	if got := drv.Stats().Binds; got != 2 {
		t.Errorf("driver binds = %d, want 2", got)
	}
}

func TestBinderError(t *testing.T) {
	b, drv, _ := newTestBinder(t)
	if err := b.MakeCurrent(driver.TextureID(77)); !errors.Is(err, driver.ErrUnknownTexture) {
		t.Errorf("MakeCurrent(unknown) error = %v", err)
	}
	if b.Current() != driver.NoTexture {
		t.Error("failed bind changed Current()")
	}
	if drv.Stats().Binds != 0 {
		t.Error("failed bind counted")
	}
}
