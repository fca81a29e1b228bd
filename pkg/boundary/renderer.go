package boundary

// StartConfig is the one-shot configuration handed to the renderer at start.
type StartConfig struct {
	// AssetsPath is the directory the renderer loads fonts and images from.
	AssetsPath string
	// FontDefs is the font definition document, e.g.
	// {"defs":[{"name":"roboto-regular","size":16}]}.
	FontDefs []byte
	// StyleOverrides is the style override document; "{}" for none.
	StyleOverrides []byte
}

// Renderer is the foreign renderer as seen from Go.
//
// Start installs the inbound entry points and hands control to the renderer.
// It is called at most once per process. Implementations may block until the
// renderer shuts down or return as soon as the renderer runs on its own
// threads.
//
// SetElement and SetChildren consume their buffer during the call only; the
// caller releases it afterwards. Either may trigger inbound callbacks before
// returning.
type Renderer interface {
	Start(cfg StartConfig, in *Inbound) error
	SetElement(descriptor *Buffer)
	SetChildren(parent int32, children *Buffer)
}
