// Package render rasterizes a scene into an image for PNG export and
// clipboard copies. It draws the procedural pitch, tokens and arrows with gg
// and resolves the scene's semantic color tags against a theme.
package render

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/bfleague/haxfootball-board/internal/board"
	"github.com/bfleague/haxfootball-board/internal/geom"
	"github.com/bfleague/haxfootball-board/internal/scene"
	"github.com/bfleague/haxfootball-board/internal/theme"
)

// Renderer rasterizes scene op lists against a fixed theme.
type Renderer struct {
	theme *theme.Theme

	mu    sync.Mutex
	font  *truetype.Font
	faces map[float64]font.Face
}

// New creates a Renderer. A nil theme uses the default palette.
func New(th *theme.Theme) *Renderer {
	if th == nil {
		th = theme.Default()
	}
	return &Renderer{theme: th, faces: make(map[float64]font.Face)}
}

// RenderBoard rasterizes a whole board at the given pixel size. The camera
// stored on the board decides the visible region.
func (r *Renderer) RenderBoard(b *board.Board, width, height int) (*image.RGBA, error) {
	viewport := geom.Pt(float64(width), float64(height))
	ops := scene.Build(b, viewport, "", nil)
	return r.Render(ops, width, height)
}

// Render rasterizes an op list front to back.
func (r *Renderer) Render(ops []scene.Op, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render size %dx%d is not positive", width, height)
	}
	dc := gg.NewContext(width, height)
	dc.SetColor(r.theme.Background)
	dc.Clear()

	for _, op := range ops {
		switch o := op.(type) {
		case scene.Background:
			r.drawBackground(dc, o)
		case scene.HighlightRing:
			r.drawHighlight(dc, o)
		case scene.Token:
			r.drawToken(dc, o)
		case scene.BallDot:
			r.drawBall(dc, o)
		case scene.Polyline:
			r.drawPolyline(dc, o)
		}
	}

	out, ok := dc.Image().(*image.RGBA)
	if !ok {
		bounds := dc.Image().Bounds()
		out = image.NewRGBA(bounds)
		draw.Draw(out, bounds, dc.Image(), bounds.Min, draw.Src)
	}
	return out, nil
}

func (r *Renderer) drawBackground(dc *gg.Context, bg scene.Background) {
	if bg.URL != nil {
		if img, err := loadBackgroundImage(*bg.URL); err == nil {
			drawScaled(dc, img, bg.Rect)
			return
		}
		// Unreadable image, fall through to the plain pitch.
	}
	r.drawPitch(dc, bg.Rect)
}

// drawPitch paints the procedural field: grass, border, halfway line, center
// circle and the two penalty boxes.
func (r *Renderer) drawPitch(dc *gg.Context, rect scene.Rect) {
	th := r.theme

	dc.SetColor(th.Pitch)
	dc.DrawRectangle(rect.X, rect.Y, rect.W, rect.H)
	dc.Fill()

	line := rect.H / 120
	if line < 1 {
		line = 1
	}
	dc.SetColor(th.PitchLine)
	dc.SetLineWidth(line)

	dc.DrawRectangle(rect.X, rect.Y, rect.W, rect.H)
	dc.Stroke()

	midX := rect.X + rect.W/2
	dc.DrawLine(midX, rect.Y, midX, rect.Y+rect.H)
	dc.Stroke()

	dc.DrawCircle(midX, rect.Y+rect.H/2, rect.H*0.18)
	dc.Stroke()

	boxW := rect.W * 0.12
	boxH := rect.H * 0.55
	boxY := rect.Y + (rect.H-boxH)/2
	dc.DrawRectangle(rect.X, boxY, boxW, boxH)
	dc.Stroke()
	dc.DrawRectangle(rect.X+rect.W-boxW, boxY, boxW, boxH)
	dc.Stroke()
}

func (r *Renderer) drawHighlight(dc *gg.Context, ring scene.HighlightRing) {
	dc.SetColor(r.theme.Selection)
	dc.SetLineWidth(2)
	dc.DrawCircle(ring.Center.X, ring.Center.Y, ring.Radius)
	dc.Stroke()
}

func (r *Renderer) drawToken(dc *gg.Context, tok scene.Token) {
	th := r.theme

	dc.SetColor(th.TeamColor(tok.Team))
	dc.DrawCircle(tok.Center.X, tok.Center.Y, tok.Radius)
	dc.Fill()

	dc.SetColor(th.PitchLine)
	dc.SetLineWidth(tok.Radius / 9)
	dc.DrawCircle(tok.Center.X, tok.Center.Y, tok.Radius)
	dc.Stroke()

	if tok.Label != "" {
		dc.SetFontFace(r.face(tok.Radius * 1.1))
		dc.SetColor(th.TokenText)
		dc.DrawStringAnchored(tok.Label, tok.Center.X, tok.Center.Y, 0.5, 0.5)
	}
	if tok.Name != "" {
		dc.SetFontFace(r.face(tok.Radius * 0.8))
		dc.SetColor(th.Foreground)
		dc.DrawStringAnchored(tok.Name, tok.Center.X, tok.Center.Y+tok.Radius*1.6, 0.5, 0.5)
	}
}

func (r *Renderer) drawBall(dc *gg.Context, ball scene.BallDot) {
	th := r.theme
	dc.SetColor(th.Ball)
	dc.DrawCircle(ball.Center.X, ball.Center.Y, ball.Radius)
	dc.Fill()
	dc.SetColor(th.BallOutline)
	dc.SetLineWidth(ball.Radius / 5)
	dc.DrawCircle(ball.Center.X, ball.Center.Y, ball.Radius)
	dc.Stroke()
}

func (r *Renderer) drawPolyline(dc *gg.Context, line scene.Polyline) {
	if len(line.Points) < 2 {
		return
	}
	col := r.theme.ArrowRGBA(line.Color)
	if line.Ghost {
		col.A = r.theme.Ghost.A
	}
	dc.SetColor(col)
	dc.SetLineWidth(line.Width)
	dc.SetLineCapRound()
	if line.Dashed {
		dc.SetDash(line.Width*3, line.Width*2.5)
	}

	for i, p := range line.Points {
		if i == 0 {
			dc.MoveTo(p.X, p.Y)
		} else {
			dc.LineTo(p.X, p.Y)
		}
	}
	dc.Stroke()
	dc.SetDash()

	drawArrowHead(dc, line, col)
}

// drawArrowHead fills a triangle at the last point, oriented along the final
// segment.
func drawArrowHead(dc *gg.Context, line scene.Polyline, col color.Color) {
	n := len(line.Points)
	tip := line.Points[n-1]
	// Walk back past zero-length trailing segments.
	prev := tip
	for i := n - 2; i >= 0; i-- {
		if line.Points[i] != tip {
			prev = line.Points[i]
			break
		}
	}
	if prev == tip {
		return
	}
	angle := math.Atan2(tip.Y-prev.Y, tip.X-prev.X)
	size := line.HeadSize
	const spread = 0.45

	dc.SetColor(col)
	dc.MoveTo(tip.X, tip.Y)
	dc.LineTo(tip.X-size*math.Cos(angle-spread), tip.Y-size*math.Sin(angle-spread))
	dc.LineTo(tip.X-size*math.Cos(angle+spread), tip.Y-size*math.Sin(angle+spread))
	dc.ClosePath()
	dc.Fill()
}

// face returns a cached goregular face at the given pixel size.
func (r *Renderer) face(size float64) font.Face {
	if size < 6 {
		size = 6
	}
	size = math.Round(size)

	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.faces[size]; ok {
		return f
	}
	if r.font == nil {
		f, err := truetype.Parse(goregular.TTF)
		if err != nil {
			// goregular is embedded and known-good.
			panic(err)
		}
		r.font = f
	}
	face := truetype.NewFace(r.font, &truetype.Options{Size: size})
	r.faces[size] = face
	return face
}

// loadBackgroundImage opens a background referenced by a local path or
// file:// URL. Remote URLs are not fetched.
func loadBackgroundImage(url string) (image.Image, error) {
	path := strings.TrimPrefix(url, "file://")
	if strings.Contains(path, "://") {
		return nil, fmt.Errorf("unsupported background url %q", url)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

// drawScaled scales img into the target rectangle.
func drawScaled(dc *gg.Context, img image.Image, rect scene.Rect) {
	w := int(math.Round(rect.W))
	h := int(math.Round(rect.H))
	if w <= 0 || h <= 0 {
		return
	}
	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Over, nil)
	dc.DrawImage(scaled, int(math.Round(rect.X)), int(math.Round(rect.Y)))
}
