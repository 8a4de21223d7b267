package render

import (
	"sync"

	"github.com/taigrr/raster3d/pkg/math3d"
	"github.com/taigrr/raster3d/pkg/models"
	"github.com/taigrr/raster3d/pkg/pool"
)

// Scene is everything Pipeline.Draw needs for one frame beyond the camera:
// the mesh plus its placement, the material it's shaded with, and the
// lights illuminating it.
type Scene struct {
	Mesh     *models.Mesh
	Pose     *ModelPose
	Material models.Material
	Lights   []Light
	Ambient  math3d.Vec3
}

// Pipeline drives one frame end to end — clear, vertex transform,
// clip+rasterize, shade — fanning each stage out across a fixed worker pool
// and barriering between stages. A Pipeline's Draw is not safe to call
// concurrently with itself; the pool it owns only parallelizes within a
// single frame.
type Pipeline struct {
	workers *pool.Pool
	surf    *Surface
	depth   *DepthBuffer

	mode            Mode
	backfaceCulling bool
	background      Color
	wireColor       Color

	mu        sync.Mutex
	fragments []Fragment

	wPos    []math3d.Vec3
	cPos    []math3d.Vec4
	wNormal []math3d.Vec3
}

// NewPipeline creates a pipeline rendering into surf with a pool of workers
// goroutines (0 uses runtime.NumCPU).
func NewPipeline(surf *Surface, workers int) *Pipeline {
	return &Pipeline{
		workers:         pool.New(workers),
		surf:            surf,
		depth:           NewDepthBuffer(surf.Width(), surf.Height()),
		mode:            PhongShading,
		backfaceCulling: true,
		background:      ColorBlack,
		wireColor:       ColorWhite,
	}
}

func (p *Pipeline) Mode() Mode { return p.mode }
func (p *Pipeline) SetMode(m Mode) { p.mode = m }
func (p *Pipeline) SetBackfaceCulling(on bool) { p.backfaceCulling = on }
func (p *Pipeline) SetBackground(c Color) { p.background = c }
func (p *Pipeline) SetWireColor(c Color) { p.wireColor = c }
func (p *Pipeline) Surface() *Surface { return p.surf }

// Close releases the pipeline's worker pool. Call once, after the last
// Draw.
func (p *Pipeline) Close() { p.workers.Close() }

// UpdatePose applies one tick of movement/rotation to pose from whatever
// action bits the input loop has set on it since the last call.
func (p *Pipeline) UpdatePose(pose *Pose) { pose.UpdateAttitude() }

// blockSize splits n units of work into chunks sized for roughly 8 chunks
// per worker, bounded to [32, 512] so a tiny frame doesn't spawn one task
// per triangle and a huge one doesn't starve the barrier behind a single
// oversized chunk.
func blockSize(n, workers int) int {
	b := n / (8 * workers)
	if b < 32 {
		b = 32
	}
	if b > 512 {
		b = 512
	}
	return b
}

// Draw renders one frame of scene as viewed by camera into the pipeline's
// surface, blocking until every stage has completed.
func (p *Pipeline) Draw(camera *Camera, scene Scene) {
	p.clear()

	modelMat := scene.Pose.ModelMatrix()
	normalMat := modelMat.Inverse().Transpose()
	viewProj := camera.ViewProjectionMatrix()

	p.transformVertices(scene.Mesh, modelMat, normalMat, viewProj)
	p.rasterizeTriangles(scene.Mesh, camera.ZNear)
	p.shadeFragments(scene.Material, scene.Lights, scene.Ambient, camera.WPos)
}

func (p *Pipeline) clear() {
	p.surf.Clear(p.background)
	p.fragments = p.fragments[:0]

	n := len(p.depth.Values)
	bs := blockSize(n, p.workers.Workers())
	if bs < 1 {
		bs = 1
	}
	for i := 0; i < n; i += bs {
		st, ed := i, min(i+bs, n)
		p.workers.Submit(func() { p.depth.ClearRange(st, ed) })
	}
	p.workers.Barrier()
}

func (p *Pipeline) transformVertices(mesh *models.Mesh, modelMat, normalMat, viewProj math3d.Mat4) {
	if cap(p.wPos) < len(mesh.Positions) {
		p.wPos = make([]math3d.Vec3, len(mesh.Positions))
		p.cPos = make([]math3d.Vec4, len(mesh.Positions))
	} else {
		p.wPos = p.wPos[:len(mesh.Positions)]
		p.cPos = p.cPos[:len(mesh.Positions)]
	}
	if cap(p.wNormal) < len(mesh.Normals) {
		p.wNormal = make([]math3d.Vec3, len(mesh.Normals))
	} else {
		p.wNormal = p.wNormal[:len(mesh.Normals)]
	}

	workers := p.workers.Workers()

	n := len(mesh.Positions)
	if n > 0 {
		bs := blockSize(n, workers)
		for i := 0; i < n; i += bs {
			st, ed := i, min(i+bs, n)
			p.workers.Submit(func() {
				for id := st; id < ed; id++ {
					worldPos := modelMat.MulVec4(math3d.V4FromV3(mesh.Positions[id], 1))
					p.wPos[id] = worldPos.Vec3()
					p.cPos[id] = viewProj.MulVec4(worldPos)
				}
			})
		}
	}

	nn := len(mesh.Normals)
	if nn > 0 {
		bs := blockSize(nn, workers)
		for i := 0; i < nn; i += bs {
			st, ed := i, min(i+bs, nn)
			p.workers.Submit(func() {
				for id := st; id < ed; id++ {
					p.wNormal[id] = normalMat.MulVec3Dir(mesh.Normals[id]).Normalize()
				}
			})
		}
	}

	p.workers.Barrier()
}

func (p *Pipeline) rasterizeTriangles(mesh *models.Mesh, zNear float64) {
	n := len(mesh.Triangles)
	if n == 0 {
		return
	}

	width, height := p.surf.Width(), p.surf.Height()
	bs := blockSize(n, p.workers.Workers())

	for i := 0; i < n; i += bs {
		st, ed := i, min(i+bs, n)
		p.workers.Submit(func() {
			staging := NewStagingBuffer(p.depth, &p.fragments, &p.mu)
			for id := st; id < ed; id++ {
				tri := mesh.Triangles[id]
				t := Triangle{V: [3]Vertex{
					{WPos: p.wPos[tri[0].Pos], CPos: p.cPos[tri[0].Pos], WNormal: p.wNormal[tri[0].Normal]},
					{WPos: p.wPos[tri[1].Pos], CPos: p.cPos[tri[1].Pos], WNormal: p.wNormal[tri[1].Normal]},
					{WPos: p.wPos[tri[2].Pos], CPos: p.cPos[tri[2].Pos], WNormal: p.wNormal[tri[2].Normal]},
				}}

				for _, clipped := range ClipNear(t, zNear) {
					for i := range clipped.V {
						clipped.V[i].CPos.X /= clipped.V[i].CPos.W
						clipped.V[i].CPos.Y /= clipped.V[i].CPos.W
					}

					if p.mode == Wireframe {
						RasterizeWireframe(clipped, p.surf, p.wireColor)
						continue
					}
					RasterizeTriangle(clipped, width, height, p.backfaceCulling, staging)
				}
			}
			staging.Close()
		})
	}
	p.workers.Barrier()
}

func (p *Pipeline) shadeFragments(mtl models.Material, lights []Light, ambient, viewerPos math3d.Vec3) {
	if p.mode == Wireframe {
		return
	}

	n := len(p.fragments)
	if n == 0 {
		return
	}

	shader := PhongShader{Material: mtl, Lights: lights, Ambient: ambient, ViewerPos: viewerPos}
	mode := p.mode
	bs := blockSize(n, p.workers.Workers())

	for i := 0; i < n; i += bs {
		st, ed := i, min(i+bs, n)
		p.workers.Submit(func() {
			for id := st; id < ed; id++ {
				f := p.fragments[id]
				if f.Depth != p.depth.Values[f.PID] {
					continue
				}
				var color math3d.Vec3
				if mode == ZColoring {
					color = DepthShade(f.Depth)
				} else {
					color = shader.Shade(f)
				}
				p.surf.DrawPixel(f.PID, color)
			}
		})
	}
	p.workers.Barrier()
}
