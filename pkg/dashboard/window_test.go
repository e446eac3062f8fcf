package dashboard

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ericogr/tank-dashboard/pkg/render"
)

func TestWindowSetImage(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	w := NewWindow(a, "Tank Dashboard", 80, 40)
	if w.img.Image == nil {
		t.Fatalf("window should start with a placeholder image")
	}
	img := render.Blank(20, 10)
	w.set(img)
	if w.img.Image != img {
		t.Fatalf("chart image not swapped")
	}
}
