package dashboard

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"github.com/ericogr/tank-dashboard/pkg/render"
)

// Window is a single fyne window holding the chart image.
type Window struct {
	win fyne.Window
	img *canvas.Image
}

func NewWindow(a fyne.App, title string, width, height int) *Window {
	w := a.NewWindow(title)
	img := canvas.NewImageFromImage(render.Blank(width, height))
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(float32(width), float32(height)))
	w.SetContent(img)
	w.Resize(fyne.NewSize(float32(width), float32(height)))
	return &Window{win: w, img: img}
}

// Show swaps the chart image on the fyne main goroutine.
func (w *Window) Show(img image.Image) {
	fyne.Do(func() { w.set(img) })
}

func (w *Window) set(img image.Image) {
	w.img.Image = img
	w.img.Refresh()
}

// Run shows the window and blocks in the UI event loop until it is
// closed. onClosed runs once the window goes away.
func (w *Window) Run(onClosed func()) {
	if onClosed != nil {
		w.win.SetOnClosed(onClosed)
	}
	w.win.ShowAndRun()
}
