package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"os"
)

const (
	cellW = 8
	cellH = 16

	// gifDelay is the frame delay in 1/100 s.
	gifDelay = 2
)

// FrameRecorder rasterizes canvas snapshots into a GIF animation. Every
// braille dot becomes a block of cellW/2 x cellH/4 pixels colored by the
// layer of its cell.
type FrameRecorder struct {
	frames  []*image.Paletted
	palette color.Palette
}

func NewFrameRecorder(t Theme) *FrameRecorder {
	pal := color.Palette{color.Black}
	for l := LayerBounds; l < numLayers; l++ {
		r, g, b := parseHex(string(t.LayerColor(l)))
		pal = append(pal, color.RGBA{R: r, G: g, B: b, A: 0xff})
	}
	return &FrameRecorder{palette: pal}
}

func (f *FrameRecorder) Len() int { return len(f.frames) }

// Capture appends the current canvas as a frame.
func (f *FrameRecorder) Capture(c *Canvas) {
	img := image.NewPaletted(image.Rect(0, 0, c.Width*cellW, c.Height*cellH), f.palette)
	dotW, dotH := cellW/2, cellH/4

	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			if c.Grid[row][col] == blank {
				continue
			}
			idx := uint8(c.layers[row][col])
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if !c.IsSet(col*2+dx, row*4+dy) {
						continue
					}
					baseX, baseY := col*cellW+dx*dotW, row*cellH+dy*dotH
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+px, baseY+py, idx)
						}
					}
				}
			}
		}
	}
	f.frames = append(f.frames, img)
}

// Encode writes the captured frames as a looping GIF.
func (f *FrameRecorder) Encode(w io.Writer) error {
	if len(f.frames) == 0 {
		return fmt.Errorf("viz: no frames captured")
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range f.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, gifDelay)
	}
	return gif.EncodeAll(w, &anim)
}

// Save encodes the frames into the file at path.
func (f *FrameRecorder) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("viz: create gif: %w", err)
	}
	if err := f.Encode(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
