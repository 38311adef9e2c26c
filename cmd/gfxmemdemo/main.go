//go:build !nogpu

// Command gfxmemdemo describes, allocates and fills GPU resources on the
// noop HAL backend and prints what the allocator tracked.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/gfxmem"
	"github.com/gogpu/gfxmem/backend/native"
	"github.com/gogpu/gfxmem/gpucore"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/noop"
)

// Flag limits. The texture bound is the default 2D texture dimension limit.
const (
	maxTextureSize = 8192
	maxVertices    = 1 << 20
)

const triangleWGSL = `
@fragment
fn main(@location(0) color: vec4<f32>) -> @location(0) vec4<f32> {
    return color;
}
`

func main() {
	var (
		width    = flag.Int("width", 256, "texture width")
		height   = flag.Int("height", 256, "texture height")
		vertices = flag.Int("vertices", 3, "number of vertices to upload")
		verbose  = flag.Bool("v", false, "log allocator activity")
	)
	flag.Parse()

	if err := validateFlags(*width, *height, *vertices); err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}

	if *verbose {
		gfxmem.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	instance, err := noop.API{}.CreateInstance(nil)
	if err != nil {
		log.Fatalf("Failed to create instance: %v", err)
	}
	defer instance.Destroy()

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		log.Fatal("No adapters")
	}
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		log.Fatalf("Failed to open device: %v", err)
	}
	defer openDev.Device.Destroy()

	a, err := native.NewAllocator(openDev.Device, openDev.Queue,
		native.WithLabelPrefix("demo/"),
		native.WithBufferUsage(gputypes.BufferUsageVertex),
	)
	if err != nil {
		log.Fatalf("Failed to create allocator: %v", err)
	}
	defer a.Close()

	if err := run(a, *vertices, uint32(*width), uint32(*height)); err != nil {
		log.Fatalf("Demo failed: %v", err)
	}
}

// validateFlags checks the sizes before they are converted to unsigned
// GPU dimensions.
func validateFlags(width, height, vertices int) error {
	if width < 1 || width > maxTextureSize {
		return fmt.Errorf("-width %d out of range [1, %d]", width, maxTextureSize)
	}
	if height < 1 || height > maxTextureSize {
		return fmt.Errorf("-height %d out of range [1, %d]", height, maxTextureSize)
	}
	if vertices < 1 || vertices > maxVertices {
		return fmt.Errorf("-vertices %d out of range [1, %d]", vertices, maxVertices)
	}
	return nil
}

func run(a *native.Allocator, n int, width, height uint32) error {
	// Interleaved position and color.
	verts := make([][2][4]float32, n)
	for i := range verts {
		verts[i] = [2][4]float32{{float32(i), 0, 0, 1}, {1, 1, 1, 1}}
	}

	vb, err := a.CreateBuffer(native.BufferDesc{
		Label: "vertices",
		Size:  uint64(gpucore.ByteLen(verts)),
		Usage: gpucore.Immutable(),
	})
	if err != nil {
		return err
	}
	if err := native.Upload(a, vb, 0, verts); err != nil {
		return err
	}

	ub, err := a.CreateBuffer(native.BufferDesc{
		Label: "transform",
		Size:  uint64(gpucore.SizeOf[[4][4]float32]()),
		Usage: gpucore.Dynamic(),
		Bind:  gpucore.BindShaderResource,
	})
	if err != nil {
		return err
	}
	identity := [4][4]float32{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}
	if err := native.Upload(a, ub, 0, [][4][4]float32{identity}); err != nil {
		return err
	}

	staging, err := a.CreateBuffer(native.BufferDesc{
		Label: "readback",
		Size:  uint64(width) * uint64(height) * 4,
		Usage: gpucore.CPUOnly(gpucore.AccessRead),
	})
	if err != nil {
		return err
	}

	target, err := a.CreateTexture(native.Texture2D("target", width, height,
		gputypes.TextureFormatRGBA8Unorm, gpucore.GPUOnly(),
		gpucore.BindRenderTarget|gpucore.BindShaderResource))
	if err != nil {
		return err
	}

	shader, err := a.CreateShader("passthrough", triangleWGSL)
	if err != nil {
		return err
	}

	for _, b := range []*native.Buffer{vb, ub, staging} {
		fmt.Printf("buffer  %-16s %6d bytes  %-24v %-20v flags=%#x\n",
			b.Label(), b.Size(), b.Usage(), b.Bind(), uint64(b.Flags()))
	}
	d := target.Desc()
	fmt.Printf("texture %-16s %dx%d  %v  flags=%#x\n", d.Label, d.Width, d.Height, d.Usage, uint64(target.Flags()))
	fmt.Printf("shader  %-16s %d words\n", shader.Label(), shader.Words())

	s := a.Stats()
	fmt.Printf("live: %d buffers (%d bytes), %d textures, %d shaders\n",
		s.Buffers, s.BufferBytes, s.Textures, s.Shaders)
	return nil
}
