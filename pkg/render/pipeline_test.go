package render

import (
	"testing"

	"github.com/taigrr/raster3d/pkg/math3d"
	"github.com/taigrr/raster3d/pkg/models"
)

func quadMesh() *models.Mesh {
	m := models.NewMesh("quad")
	m.Positions = []math3d.Vec3{
		math3d.V3(-1, -1, 0),
		math3d.V3(1, -1, 0),
		math3d.V3(1, 1, 0),
		math3d.V3(-1, 1, 0),
	}
	m.Triangles = []models.Triangle{
		{{Pos: 0, Normal: 0}, {Pos: 1, Normal: 1}, {Pos: 2, Normal: 2}},
		{{Pos: 0, Normal: 0}, {Pos: 2, Normal: 2}, {Pos: 3, Normal: 3}},
	}
	m.GenerateNormals()
	m.CalculateBounds()
	return m
}

func testCamera() *Camera {
	c := NewCamera()
	c.SetPosition(math3d.V3(0, 0, 3))
	c.LookAt(math3d.Zero3())
	c.SetAspectRatio(1)
	return c
}

func TestPipelineDrawPhongProducesLitPixels(t *testing.T) {
	surf := NewSurface(40, 20)
	p := NewPipeline(surf, 2)
	defer p.Close()

	scene := Scene{
		Mesh:     quadMesh(),
		Pose:     NewModelPose(),
		Material: models.Material{Ka: math3d.V3(0.1, 0.1, 0.1), Kd: math3d.V3(0.8, 0.8, 0.8), Ks: math3d.V3(0.5, 0.5, 0.5)},
		Lights:   []Light{{WPos: math3d.V3(2, 2, 5), Intensity: math3d.V3(1, 1, 1)}},
		Ambient:  math3d.V3(0.2, 0.2, 0.2),
	}

	p.Draw(testCamera(), scene)

	lit := 0
	for _, px := range surf.Framebuffer().Pixels {
		if px.R != 0 || px.G != 0 || px.B != 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Fatal("expected Phong-shaded quad to light at least one pixel")
	}
}

func TestPipelineDrawZColoringProducesGrayscalePixels(t *testing.T) {
	surf := NewSurface(40, 20)
	p := NewPipeline(surf, 2)
	defer p.Close()
	p.SetMode(ZColoring)

	scene := Scene{Mesh: quadMesh(), Pose: NewModelPose(), Material: models.Material{}}
	p.Draw(testCamera(), scene)

	found := false
	for _, px := range surf.Framebuffer().Pixels {
		if px.R != 0 && px.R == px.G && px.G == px.B {
			found = true
			break
		}
	}
	if !found {
		t.Fatal("expected z-coloring mode to produce at least one grayscale pixel")
	}
}

func TestPipelineDrawWireframeDoesNotFillInterior(t *testing.T) {
	surfWire := NewSurface(40, 20)
	pw := NewPipeline(surfWire, 2)
	defer pw.Close()
	pw.SetMode(Wireframe)

	surfPhong := NewSurface(40, 20)
	pp := NewPipeline(surfPhong, 2)
	defer pp.Close()

	scene := Scene{
		Mesh:     quadMesh(),
		Pose:     NewModelPose(),
		Material: models.Material{Kd: math3d.V3(1, 1, 1)},
		Lights:   []Light{{WPos: math3d.V3(0, 0, 5), Intensity: math3d.V3(1, 1, 1)}},
	}

	cam := testCamera()
	pw.Draw(cam, scene)
	pp.Draw(cam, scene)

	litWire := 0
	for _, px := range surfWire.Framebuffer().Pixels {
		if px.R != 0 || px.G != 0 || px.B != 0 {
			litWire++
		}
	}
	litPhong := 0
	for _, px := range surfPhong.Framebuffer().Pixels {
		if px.R != 0 || px.G != 0 || px.B != 0 {
			litPhong++
		}
	}
	if litWire == 0 {
		t.Fatal("expected wireframe mode to draw triangle edges")
	}
	if litWire >= litPhong {
		t.Fatalf("expected wireframe to light fewer pixels than a filled draw (wire=%d, phong=%d)", litWire, litPhong)
	}
}

func TestPipelineDrawEmptyMeshProducesNoFragments(t *testing.T) {
	surf := NewSurface(10, 10)
	p := NewPipeline(surf, 1)
	defer p.Close()

	scene := Scene{Mesh: models.NewMesh("empty"), Pose: NewModelPose(), Material: models.Material{}}
	p.Draw(testCamera(), scene)

	for _, px := range surf.Framebuffer().Pixels {
		if px.R != 0 || px.G != 0 || px.B != 0 {
			t.Fatalf("expected an empty mesh to leave the background untouched, got %+v", px)
		}
	}
}

func TestPipelineDrawTwiceReusesBuffersCorrectly(t *testing.T) {
	surf := NewSurface(40, 20)
	p := NewPipeline(surf, 2)
	defer p.Close()

	scene := Scene{
		Mesh:     quadMesh(),
		Pose:     NewModelPose(),
		Material: models.Material{Kd: math3d.V3(1, 1, 1)},
		Lights:   []Light{{WPos: math3d.V3(0, 0, 5), Intensity: math3d.V3(1, 1, 1)}},
	}
	cam := testCamera()

	p.Draw(cam, scene)
	firstLit := 0
	for _, px := range surf.Framebuffer().Pixels {
		if px.R != 0 {
			firstLit++
		}
	}

	p.Draw(cam, scene)
	secondLit := 0
	for _, px := range surf.Framebuffer().Pixels {
		if px.R != 0 {
			secondLit++
		}
	}

	if firstLit != secondLit {
		t.Fatalf("redrawing an unchanged scene should light the same pixel count: %d vs %d", firstLit, secondLit)
	}
}
