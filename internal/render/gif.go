package render

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
)

var frameNumber = regexp.MustCompile(`\d+`)

// defaultFrameDelay is the inter-frame delay in hundredths of a second.
const defaultFrameDelay = 10

// AssembleGIF collects the PNG frames in srcDir, orders them by the first
// number embedded in each file name (unnumbered files sort last), and
// writes an animated GIF to outPath. It is a no-op when the directory
// holds no PNG frames.
func AssembleGIF(srcDir, outPath string) error {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return fmt.Errorf("read frames dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".png") {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return nil
	}

	sort.SliceStable(names, func(i, j int) bool {
		return frameOrder(names[i]) < frameOrder(names[j])
	})

	anim := &gif.GIF{}
	for _, name := range names {
		img, err := imaging.Open(filepath.Join(srcDir, name))
		if err != nil {
			return fmt.Errorf("load frame %s: %w", name, err)
		}
		frame := image.NewPaletted(img.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(frame, img.Bounds(), img, image.Point{})
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, defaultFrameDelay)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create animation: %w", err)
	}
	defer f.Close()

	if err := gif.EncodeAll(f, anim); err != nil {
		return fmt.Errorf("encode animation: %w", err)
	}
	return f.Close()
}

// frameOrder extracts the first embedded number of a frame file name;
// names without one sort after all numbered frames.
func frameOrder(name string) int {
	m := frameNumber.FindString(name)
	if m == "" {
		return int(^uint(0) >> 1)
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return int(^uint(0) >> 1)
	}
	return n
}
