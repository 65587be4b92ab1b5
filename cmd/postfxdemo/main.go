// Command postfxdemo applies the postfx color grade to an image file
// using the software device, for previewing settings without a GPU.
//
// Parameters use the engine's native 0..1000 scale (500 is neutral for
// the signed group, 0 for highlights/shadows/vibrance):
//
//	postfxdemo -in frame.png -out graded.png -contrast 550 -exposure 600
//	postfxdemo -in frame.jpg -out night.tiff -preset deep-night -scale 0.5
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
	"golang.org/x/image/tiff"

	"github.com/gogpu/postfx"
)

func main() {
	var (
		in     = flag.String("in", "", "input image (png or jpeg)")
		out    = flag.String("out", "graded.png", "output image (png or tiff)")
		scale  = flag.Float64("scale", 1.0, "pre-scale factor applied before grading")
		preset = flag.String("preset", "none", "preset: none, sunglasses-light, sunglasses-dark, deep-night")

		contrast   = flag.Int("contrast", 500, "contrast (0..1000, 500 neutral)")
		brightness = flag.Int("brightness", 500, "brightness (0..1000, 500 neutral)")
		exposure   = flag.Int("exposure", 500, "exposure (0..1000, 500 neutral)")
		saturation = flag.Int("saturation", 500, "saturation (0..1000, 500 neutral)")
		gainR      = flag.Int("gain-r", 500, "red gain (0..1000, 500 neutral)")
		gainG      = flag.Int("gain-g", 500, "green gain (0..1000, 500 neutral)")
		gainB      = flag.Int("gain-b", 500, "blue gain (0..1000, 500 neutral)")
		highlights = flag.Int("highlights", 0, "highlight compression (0..1000)")
		shadows    = flag.Int("shadows", 0, "shadow lift (0..1000)")
		vibrance   = flag.Int("vibrance", 0, "vibrance (0..1000)")
	)
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	img, err := loadImage(*in)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", *in, err)
	}
	if *scale != 1.0 && *scale > 0 {
		b := img.Bounds()
		img = resize.Resize(
			uint(float64(b.Dx())**scale), 0, img, resize.Lanczos3)
	}

	store := postfx.NewMemStore()
	store.Set(postfx.SettingPostProcess, int(postfx.ModeOn))
	store.Set(postfx.SettingSunglasses, int(presetFromName(*preset)))
	store.Set(postfx.SettingContrast, *contrast)
	store.Set(postfx.SettingBrightness, *brightness)
	store.Set(postfx.SettingExposure, *exposure)
	store.Set(postfx.SettingSaturation, *saturation)
	store.Set(postfx.SettingColorGainR, *gainR)
	store.Set(postfx.SettingColorGainG, *gainG)
	store.Set(postfx.SettingColorGainB, *gainB)
	store.Set(postfx.SettingHighlights, *highlights)
	store.Set(postfx.SettingShadows, *shadows)
	store.Set(postfx.SettingVibrance, *vibrance)

	device := postfx.NewSoftwareDevice()
	engine, err := postfx.New(device, store)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}
	defer engine.Close()

	input := postfx.PixmapFromImage(img)
	output := postfx.NewPixmap(input.Width(), input.Height())

	engine.Update()
	if err := engine.Process(input, output, 0); err != nil {
		log.Fatalf("Failed to process: %v", err)
	}

	if err := saveImage(*out, output.Image(0)); err != nil {
		log.Fatalf("Failed to save %s: %v", *out, err)
	}
	log.Printf("Graded image saved to %s (%dx%d, preset %s)",
		*out, input.Width(), input.Height(), *preset)
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

func saveImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".tiff", ".tif":
		return tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return png.Encode(f, img)
	}
}

func presetFromName(name string) postfx.Preset {
	for p := postfx.PresetNone; p < postfx.PresetCount; p++ {
		if p.String() == name {
			return p
		}
	}
	fmt.Fprintf(os.Stderr, "unknown preset %q, using none\n", name)
	return postfx.PresetNone
}
