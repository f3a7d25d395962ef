package mandel

// Renderer turns a viewport into pixels. Calls block until the whole image
// is ready; a failed call returns no image.
type Renderer interface {
	Render(v Viewport, maxIter int, bound float64) (*ColorImage, error)
}
