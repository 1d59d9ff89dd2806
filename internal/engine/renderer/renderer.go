// Package renderer draws scene draw lists with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/grove/internal/engine/model"
	"github.com/Faultbox/grove/internal/engine/scene"
	"github.com/Faultbox/grove/internal/engine/shader"
	"github.com/Faultbox/grove/internal/logger"
)

// positionAttrib is the vertex attribute location of inPosition.
const positionAttrib = 0

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor mgl32.Vec4
}

// unitQuad is a 1x1 quad on the XZ plane centered at the origin, as a strip.
var unitQuad = []float32{
	-0.5, 0, 0.5,
	-0.5, 0, -0.5,
	0.5, 0, 0.5,
	0.5, 0, -0.5,
}

type gpuMesh struct {
	vao, vbo, ebo uint32
	count         int32
}

func (m *gpuMesh) release() {
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	*m = gpuMesh{}
}

// Renderer owns the GL program, uniform cache and uploaded meshes.
type Renderer struct {
	config   Config
	program  uint32
	uniforms *scene.UniformCache

	ground gpuMesh
	object gpuMesh

	log *zap.Logger
}

// New initializes GL, builds the program and uploads the ground quad.
// It must be called after the GL context exists.
func New(cfg Config, src shader.Source) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r := &Renderer{
		config:   cfg,
		uniforms: scene.NewUniformCache(shader.UniformLocation),
		log:      logger.Named("renderer"),
	}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	c := cfg.ClearColor
	gl.ClearColor(c.X(), c.Y(), c.Z(), c.W())
	gl.Enable(gl.DEPTH_TEST)

	if err := r.LoadProgram(src); err != nil {
		return nil, err
	}
	r.ground = uploadArrays(unitQuad)
	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// LoadProgram compiles src and resolves its uniforms, replacing the current
// program on success.
func (r *Renderer) LoadProgram(src shader.Source) error {
	program, err := shader.CompileProgram(src)
	if err != nil {
		return err
	}
	if err := r.uniforms.Resolve(program, scene.Uniforms...); err != nil {
		r.uniforms.Forget(program)
		gl.DeleteProgram(program)
		return fmt.Errorf("%s: %w", src.Name, err)
	}
	if r.program != 0 {
		r.uniforms.Forget(r.program)
		gl.DeleteProgram(r.program)
	}
	r.program = program
	return nil
}

// UploadMesh replaces the shared object mesh.
func (r *Renderer) UploadMesh(m *model.Mesh) {
	r.object.release()

	r.object = uploadArrays(m.Positions())
	r.object.count = int32(len(m.Indices))

	if len(m.Indices) > 0 {
		gl.BindVertexArray(r.object.vao)
		gl.GenBuffers(1, &r.object.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.object.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)
		gl.BindVertexArray(0)
	}

	r.log.Debug("mesh uploaded",
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("indices", len(m.Indices)),
		zap.Uint32("vao", r.object.vao))
}

func uploadArrays(positions []float32) gpuMesh {
	var m gpuMesh
	m.count = int32(len(positions) / 3)

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	if len(positions) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(positions)*4, unsafe.Pointer(&positions[0]), gl.STATIC_DRAW)
	}
	gl.VertexAttribPointer(positionAttrib, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(positionAttrib)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return m
}

// Resize updates the viewport.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Draw clears the frame and issues every draw in list.
func (r *Renderer) Draw(list *scene.DrawList) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(r.program)

	locModel := r.uniforms.MustLocation(r.program, scene.UniformModel)
	locColor := r.uniforms.MustLocation(r.program, scene.UniformColor)
	gl.UniformMatrix4fv(r.uniforms.MustLocation(r.program, scene.UniformView), 1, false, &list.View[0])
	gl.UniformMatrix4fv(r.uniforms.MustLocation(r.program, scene.UniformProj), 1, false, &list.Proj[0])

	bound := scene.MeshKind(-1)
	for i := range list.Draws {
		d := &list.Draws[i]
		if d.Mesh != bound {
			bound = d.Mesh
			gl.BindVertexArray(r.mesh(bound).vao)
		}
		gl.UniformMatrix4fv(locModel, 1, false, &d.Model[0])
		gl.Uniform4f(locColor, d.Color.X(), d.Color.Y(), d.Color.Z(), d.Color.W())

		switch d.Mesh {
		case scene.MeshGround:
			gl.DrawArrays(gl.TRIANGLE_STRIP, 0, r.ground.count)
		case scene.MeshObject:
			if r.object.ebo != 0 {
				gl.DrawElements(gl.TRIANGLES, r.object.count, gl.UNSIGNED_INT, nil)
			}
		}
	}

	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

func (r *Renderer) mesh(kind scene.MeshKind) *gpuMesh {
	if kind == scene.MeshGround {
		return &r.ground
	}
	return &r.object
}

// Close releases GL resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	r.ground.release()
	r.object.release()
	if r.program != 0 {
		r.uniforms.Forget(r.program)
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}
