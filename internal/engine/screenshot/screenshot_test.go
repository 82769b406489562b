package screenshot

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/image/bmp"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"png", FormatPNG, false},
		{"PNG", FormatPNG, false},
		{" bmp ", FormatBMP, false},
		{"jpg", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownFormat) {
				t.Errorf("ParseFormat(%q) error = %v, want ErrUnknownFormat", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestFromPixelsFlipsRows(t *testing.T) {
	// 1x2 image: bottom row red, top row blue in GL order.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img, err := FromPixels(pixels, 1, 2)
	if err != nil {
		t.Fatalf("FromPixels: %v", err)
	}
	if r, _, b, _ := img.At(0, 0).RGBA(); r != 0 || b == 0 {
		t.Errorf("top pixel should be blue, got r=%d b=%d", r, b)
	}
	if r, _, b, _ := img.At(0, 1).RGBA(); r == 0 || b != 0 {
		t.Errorf("bottom pixel should be red, got r=%d b=%d", r, b)
	}
}

func TestFromPixelsSizeMismatch(t *testing.T) {
	if _, err := FromPixels(make([]byte, 7), 1, 2); err == nil {
		t.Error("expected size mismatch error")
	}
	if _, err := FromPixels(nil, 0, 0); err == nil {
		t.Error("expected invalid size error")
	}
}

func TestSavePixels(t *testing.T) {
	pixels := bytes.Repeat([]byte{10, 20, 30, 255}, 4)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	for _, format := range []Format{FormatPNG, FormatBMP} {
		t.Run(string(format), func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "shots")
			c := New(dir, "heightmap", format)
			c.now = func() time.Time { return fixed }

			path, err := c.SavePixels(pixels, 2, 2)
			if err != nil {
				t.Fatalf("SavePixels: %v", err)
			}
			if !strings.HasSuffix(path, "heightmap_2026-01-02_03-04-05.000."+string(format)) {
				t.Errorf("unexpected path %s", path)
			}

			f, err := os.Open(path)
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			defer f.Close()

			switch format {
			case FormatPNG:
				img, err := png.Decode(f)
				if err != nil {
					t.Fatalf("png decode: %v", err)
				}
				if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
					t.Errorf("bounds = %v", img.Bounds())
				}
			case FormatBMP:
				img, err := bmp.Decode(f)
				if err != nil {
					t.Fatalf("bmp decode: %v", err)
				}
				if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
					t.Errorf("bounds = %v", img.Bounds())
				}
			}
		})
	}
}
