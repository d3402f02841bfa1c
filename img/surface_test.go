package img

import (
	"image/color"
	"testing"
)

func TestDecode_NaturalSize(t *testing.T) {
	data := pngBytes(t, 16, 12, color.RGBA{10, 20, 30, 255})

	surf, err := Decode(data, 0, 0)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if surf.Width() != 16 || surf.Height() != 12 {
		t.Errorf("dimensions: got %dx%d, want 16x12", surf.Width(), surf.Height())
	}
	if surf.Format() != "png" {
		t.Errorf("format: got %q, want png", surf.Format())
	}
}

func TestDecode_TargetSize(t *testing.T) {
	data := pngBytes(t, 4, 4, color.White)

	surf, err := Decode(data, 8, 8)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if surf.Width() != 8 || surf.Height() != 8 {
		t.Errorf("dimensions: got %dx%d, want 8x8", surf.Width(), surf.Height())
	}
}

func TestDecode_OneDimensionKeepsAspect(t *testing.T) {
	data := pngBytes(t, 4, 2, color.White)

	surf, err := Decode(data, 8, 0)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if surf.Width() != 8 || surf.Height() != 4 {
		t.Errorf("dimensions: got %dx%d, want 8x4", surf.Width(), surf.Height())
	}
}

func TestDecode_InvalidData(t *testing.T) {
	if _, err := Decode([]byte("not an image"), 0, 0); err == nil {
		t.Error("Decode should fail for invalid image data")
	}
}

func TestSurface_Release(t *testing.T) {
	surf, err := Decode(pngBytes(t, 4, 4, color.White), 0, 0)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	surf.Release()

	if !surf.Released() {
		t.Error("Released should report true after Release")
	}
	if surf.Image() != nil {
		t.Error("Image should be nil after Release")
	}
	if surf.Width() != 0 || surf.Height() != 0 {
		t.Error("dimensions should be zero after Release")
	}

	// Releasing twice is harmless.
	surf.Release()
}
