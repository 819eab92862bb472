package core

import "testing"

func TestDefaultWindowConfig(t *testing.T) {
	c := DefaultWindowConfig()
	if c.Width != 640 || c.Height != 480 {
		t.Errorf("size: expected 640x480, got %dx%d", c.Width, c.Height)
	}
	if !c.Resizable {
		t.Error("Resizable: expected true")
	}
}
