package scene

import (
	"gallery/internal/assets"
	"gallery/internal/config"
	"gallery/internal/layout"
	"gallery/internal/locomotion"
	"gallery/internal/picking"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

const (
	frameMargin    = 1.0 // frame border around the canvas, world units
	frameDepth     = 0.5 // frame thickness
	canvasDepth    = 0.1 // canvas sits just in front of the frame
	wallThickness  = 1.0
	ceilingSurface = 0.5
)

// Scene draws the hall and its placements with raylib. It is populated once from a generated
// layout; textures arrive from the asset loader over time and each placement shows a
// placeholder colour until its image is ready (or for good if the image failed).
type Scene struct {
	Camera rl.Camera3D

	log        *zap.Logger
	loader     *assets.Loader
	hall       layout.Params
	hallHeight float32
	placements []layout.Placement
	palette    palette

	// GPU resources are created on the first Draw, after the window/GL context exists.
	gpuReady  bool
	box       rl.Mesh
	plainMtl  rl.Material
	canvasMtl rl.Material
	textures  map[string]rl.Texture2D
}

type palette struct {
	background, wall, floor, ceiling, frame, placeholder rl.Color
}

func toColor(hex string) rl.Color {
	c, err := config.ParseColor(hex)
	if err != nil {
		return rl.Magenta
	}
	return rl.NewColor(c[0], c[1], c[2], c[3])
}

// New returns a scene for placements and requests every distinct image from loader.
func New(cfg config.Config, hall layout.Params, placements []layout.Placement, loader *assets.Loader, log *zap.Logger) *Scene {
	s := &Scene{
		log:        log,
		loader:     loader,
		hall:       hall,
		hallHeight: cfg.Hall.Height,
		placements: placements,
		textures:   make(map[string]rl.Texture2D),
		palette: palette{
			background:  toColor(cfg.Palette.Background),
			wall:        toColor(cfg.Palette.Wall),
			floor:       toColor(cfg.Palette.Floor),
			ceiling:     toColor(cfg.Palette.Ceiling),
			frame:       toColor(cfg.Palette.Frame),
			placeholder: toColor(cfg.Palette.Placeholder),
		},
	}
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = cfg.Camera.FovY
	s.Camera.Projection = rl.CameraPerspective
	for _, p := range placements {
		loader.Request(p.Exhibit.ImageRef)
	}
	return s
}

// Background is the clear colour for the frame.
func (s *Scene) Background() rl.Color {
	return s.palette.background
}

// SetView points the camera from the avatar's eye using the session's projection.
func (s *Scene) SetView(cam picking.Camera) {
	dir := locomotion.ViewDirection(cam.Yaw, cam.Pitch)
	s.Camera.Position = rl.NewVector3(cam.Position[0], cam.Position[1], cam.Position[2])
	s.Camera.Target = rl.NewVector3(cam.Position[0]+dir[0], cam.Position[1]+dir[1], cam.Position[2]+dir[2])
	s.Camera.Fovy = cam.FovY
}

func (s *Scene) ensureGPU() {
	if s.gpuReady {
		return
	}
	s.box = rl.GenMeshCube(1, 1, 1)
	s.plainMtl = rl.LoadMaterialDefault()
	s.canvasMtl = rl.LoadMaterialDefault()
	if albedo := s.canvasMtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rl.White
	}
	s.gpuReady = true
}

// uploadTextures moves decoded images onto the GPU. Must run on the main thread.
func (s *Scene) uploadTextures() {
	for _, r := range s.loader.Drain() {
		if r.Err != nil {
			continue
		}
		img := rl.NewImageFromImage(r.Image)
		tex := rl.LoadTextureFromImage(img)
		rl.UnloadImage(img)
		if !rl.IsTextureValid(tex) {
			s.log.Warn("texture upload failed, using placeholder", zap.String("image", r.Ref))
			continue
		}
		rl.SetTextureFilter(tex, rl.FilterBilinear)
		s.textures[r.Ref] = tex
	}
}

// Draw renders the hall. Call between BeginDrawing and EndDrawing.
func (s *Scene) Draw() {
	s.ensureGPU()
	s.uploadTextures()
	rl.BeginMode3D(s.Camera)
	s.drawHall()
	for i := range s.placements {
		s.drawPlacement(&s.placements[i])
	}
	rl.EndMode3D()
}

// drawHall covers the generated rows with floor, ceiling and two walls.
func (s *Scene) drawHall() {
	first, last := s.placements[0].Row, s.placements[len(s.placements)-1].Row
	zNear := s.hall.RowZ(first) + s.hall.RowSpacing
	zFar := s.hall.RowZ(last) - s.hall.RowSpacing
	length := zNear - zFar
	midZ := (zNear + zFar) / 2
	width := s.hall.RightX - s.hall.LeftX
	midX := (s.hall.LeftX + s.hall.RightX) / 2

	rl.DrawPlane(rl.NewVector3(midX, 0, midZ), rl.NewVector2(width, length), s.palette.floor)
	rl.DrawCubeV(rl.NewVector3(midX, s.hallHeight+ceilingSurface/2, midZ), rl.NewVector3(width, ceilingSurface, length), s.palette.ceiling)
	wall := rl.NewVector3(wallThickness, s.hallHeight, length)
	rl.DrawCubeV(rl.NewVector3(s.hall.LeftX-wallThickness/2-frameDepth, s.hallHeight/2, midZ), wall, s.palette.wall)
	rl.DrawCubeV(rl.NewVector3(s.hall.RightX+wallThickness/2+frameDepth, s.hallHeight/2, midZ), wall, s.palette.wall)
	if !s.hall.Loop {
		rl.DrawCubeV(rl.NewVector3(midX, s.hallHeight/2, zFar-wallThickness/2), rl.NewVector3(width, s.hallHeight, wallThickness), s.palette.wall)
	}
}

// drawPlacement draws a dark frame box pushed back against the wall and the canvas in front.
func (s *Scene) drawPlacement(p *layout.Placement) {
	rot := rl.MatrixRotateY(p.Yaw)
	back := rl.MatrixMultiply(
		rl.MatrixMultiply(rl.MatrixScale(p.Width+frameMargin, p.Height+frameMargin, frameDepth), rl.MatrixTranslate(0, 0, -frameDepth/2)),
		rot,
	)
	front := rl.MatrixMultiply(
		rl.MatrixMultiply(rl.MatrixScale(p.Width, p.Height, canvasDepth), rl.MatrixTranslate(0, 0, canvasDepth/2)),
		rot,
	)
	at := rl.MatrixTranslate(p.Position[0], p.Position[1], p.Position[2])

	s.drawBox(rl.MatrixMultiply(back, at), s.palette.frame)
	if tex, ok := s.textures[p.Exhibit.ImageRef]; ok {
		rl.SetMaterialTexture(&s.canvasMtl, rl.MapAlbedo, tex)
		rl.DrawMesh(s.box, s.canvasMtl, rl.MatrixMultiply(front, at))
		return
	}
	s.drawBox(rl.MatrixMultiply(front, at), s.palette.placeholder)
}

func (s *Scene) drawBox(transform rl.Matrix, c rl.Color) {
	if albedo := s.plainMtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = c
	}
	rl.DrawMesh(s.box, s.plainMtl, transform)
}

// Unload frees GPU resources. Call before the window closes.
func (s *Scene) Unload() {
	for ref, tex := range s.textures {
		rl.UnloadTexture(tex)
		delete(s.textures, ref)
	}
	if s.gpuReady {
		rl.UnloadMesh(&s.box)
		s.gpuReady = false
	}
}
