package gfx

import "image"

// CommandKind identifies a recorded draw call.
type CommandKind uint8

const (
	CmdFilledRect CommandKind = iota
	CmdTexturedRect
)

// Command is one recorded draw call.
type Command struct {
	Kind    CommandKind
	Texture Texture
	Src     Rect
	Dst     Rect
	Color   Color
}

// Recorder is a Surface that stores commands instead of drawing them.
type Recorder struct {
	Width, Height int
	Commands      []Command

	nextTexture uint32
}

// NewRecorder creates a recorder reporting the given size.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{Width: width, Height: height}
}

// Size returns the recorder's logical size.
func (r *Recorder) Size() (int, int) { return r.Width, r.Height }

// DrawFilledRect records a filled rectangle.
func (r *Recorder) DrawFilledRect(rect Rect, c Color) {
	r.Commands = append(r.Commands, Command{Kind: CmdFilledRect, Dst: rect, Color: c})
}

// DrawTexturedRect records a textured rectangle.
func (r *Recorder) DrawTexturedRect(tex Texture, src, dst Rect, tint Color) {
	r.Commands = append(r.Commands, Command{Kind: CmdTexturedRect, Texture: tex, Src: src, Dst: dst, Color: tint})
}

// UploadTexture hands out a fresh handle sized like img.
func (r *Recorder) UploadTexture(img *image.RGBA) (Texture, error) {
	r.nextTexture++
	b := img.Bounds()
	return Texture{ID: r.nextTexture, Width: b.Dx(), Height: b.Dy()}, nil
}

// Reset drops recorded commands.
func (r *Recorder) Reset() {
	r.Commands = r.Commands[:0]
}

// Count returns the number of recorded commands of kind k.
func (r *Recorder) Count(k CommandKind) int {
	n := 0
	for _, c := range r.Commands {
		if c.Kind == k {
			n++
		}
	}
	return n
}
