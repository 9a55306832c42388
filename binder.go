package teximage

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/teximage/driver"
)

// TextureBinder remembers the last texture bound and the context it was
// bound in, and skips driver binds that would not change anything.
//
// Every texture bind of a Device must go through its binder; a bind made
// directly on the driver leaves the binder believing a stale texture is
// current.
type TextureBinder struct {
	driver   driver.Driver
	contexts *ContextRegistry
	log      *slog.Logger

	current     driver.TextureID
	lastContext *Context
	binds       int
}

// NewTextureBinder creates a binder for drv that reads the current context
// from contexts.
func NewTextureBinder(drv driver.Driver, contexts *ContextRegistry) *TextureBinder {
	return &TextureBinder{
		driver:   drv,
		contexts: contexts,
		log:      Logger(),
	}
}

// MakeCurrent binds tex in the current context unless it is already bound
// there. NoTexture unbinds.
func (b *TextureBinder) MakeCurrent(tex driver.TextureID) error {
	ctx := b.contexts.Current()
	if tex == b.current && ctx == b.lastContext {
		return nil
	}
	if err := b.driver.BindTexture(ctx.ID(), tex); err != nil {
		return fmt.Errorf("teximage: bind %v: %w", tex, err)
	}
	b.current = tex
	b.lastContext = ctx
	b.binds++
	b.log.Debug("teximage: texture bound", "texture", tex, "context", ctx.String())
	return nil
}

// WillDelete must be called before tex is deleted. If tex is current the
// binder forgets it, so a texture reusing the ID is bound again.
func (b *TextureBinder) WillDelete(tex driver.TextureID) {
	if b.current == tex {
		b.current = driver.NoTexture
	}
}

// Current returns the texture the binder believes is bound.
func (b *TextureBinder) Current() driver.TextureID {
	return b.current
}

// LastContext returns the context of the last bind.
func (b *TextureBinder) LastContext() *Context {
	return b.lastContext
}

// Binds returns the number of binds that reached the driver.
func (b *TextureBinder) Binds() int {
	return b.binds
}
