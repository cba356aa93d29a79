package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"bitday/core/assets"
	"bitday/core/render"
)

func main() {
	var (
		outDir = flag.String("out", "assets", "Output directory.")
		width  = flag.Int("w", assets.DefaultGeneratedSize.X, "Image width.")
		height = flag.Int("h", assets.DefaultGeneratedSize.Y, "Image height.")
		only   = flag.String("bucket", "", "Write a single bucket (e.g. late_night).")
	)
	flag.Parse()

	if *width <= 0 || *height <= 0 {
		fatalf("usage: mkassets [-out dir] [-w 1280] [-h 720] [-bucket name]")
	}

	buckets := render.Buckets()
	if *only != "" {
		b, err := render.ParseBucket(*only)
		if err != nil {
			fatalf("%v", err)
		}
		buckets = []render.Bucket{b}
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fatalf("mkdir: %v", err)
	}
	for _, b := range buckets {
		path := filepath.Join(*outDir, b.String()+".png")
		if err := writeSky(path, b, *width, *height); err != nil {
			fatalf("%s: %v", b, err)
		}
		fmt.Println(path)
	}
}

func writeSky(path string, b render.Bucket, w, h int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, assets.Generate(b, w, h)); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
