//go:build cgo

package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"strings"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"cardan-sim/internal/batch"
	"cardan-sim/internal/camera"
	"cardan-sim/internal/config"
	"cardan-sim/internal/raster"
	"cardan-sim/internal/scene"
	"cardan-sim/internal/sim"
)

const title = "Cardan joint"

var (
	vertexShaderSource = `
		#version 410
		in vec2 vp;
		out vec2 uv;
		void main() {
			uv = vec2((vp.x + 1.0) * 0.5, (1.0 - vp.y) * 0.5);
			gl_Position = vec4(vp, 0.0, 1.0);
		}
	` + "\x00"

	fragmentShaderSource = `
		#version 410
		in vec2 uv;
		uniform sampler2D frame;
		out vec4 frag_colour;
		void main() {
			frag_colour = texture(frame, uv);
		}
	` + "\x00"
)

// Full-screen quad as a triangle strip.
var quadVertices = []float32{
	-1, -1,
	1, -1,
	-1, 1,
	1, 1,
}

var presetKeys = map[glfw.Key]camera.Preset{
	glfw.Key1: camera.PresetPosX,
	glfw.Key2: camera.PresetNegX,
	glfw.Key3: camera.PresetPosY,
	glfw.Key4: camera.PresetNegY,
	glfw.Key5: camera.PresetPosZ,
	glfw.Key6: camera.PresetNegZ,
	glfw.Key7: camera.PresetISO,
}

var actionKeys = map[glfw.Key]action{
	glfw.KeyUp:         actBetaUp,
	glfw.KeyDown:       actBetaDown,
	glfw.KeyRight:      actSpeedUp,
	glfw.KeyLeft:       actSpeedDown,
	glfw.KeyEqual:      actZoomIn,
	glfw.KeyMinus:      actZoomOut,
	glfw.KeyKPAdd:      actZoomIn,
	glfw.KeyKPSubtract: actZoomOut,
	glfw.KeySpace:      actPause,
	glfw.KeyR:          actReset,
}

func main() {
	speed := flag.Float64("speed", 60, "Driving speed in deg/s")
	beta := flag.Float64("beta", 30, "Misalignment angle in degrees, 0-60")
	ss := flag.Int("ss", 1, "Supersample factor")
	flag.Parse()

	cfg := config.Default()
	cfg.Resolve(config.Flags{Speed: speed, Beta: beta, Supersample: *ss})
	if err := cfg.Validate(); err != nil {
		log.Fatalln(err)
	}

	fonts, err := raster.LoadFonts()
	if err != nil {
		log.Fatalln(err)
	}

	s := sim.New(sim.Options{
		Speed:       cfg.Speed,
		Beta:        cfg.Beta,
		Offsets:     cfg.Offsets(),
		Style:       scene.DefaultStyle(),
		ViewWidth:   cfg.ViewWidth,
		ViewHeight:  cfg.ViewHeight,
		PanelWidth:  cfg.PanelWidth,
		PanelHeight: cfg.PanelHeight,
	})
	ctl := &controls{sim: s}

	width := cfg.ViewWidth + cfg.PanelWidth
	height := max(cfg.ViewHeight, cfg.PanelHeight)

	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		log.Fatalln("failed to initialize glfw:", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		log.Fatalln("failed to create window:", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		log.Fatalln("failed to initialize gl:", err)
	}
	fmt.Println("OpenGL version", gl.GoStr(gl.GetString(gl.VERSION)))
	fmt.Println("Drag: orbit  Wheel/+/-: zoom  1-7: +X -X +Y -Y +Z -Z ISO  ↑↓: β  ←→: speed  Space: pause  R: reset")

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, act glfw.Action, _ glfw.ModifierKey) {
		if act == glfw.Release {
			return
		}
		if key == glfw.KeyEscape {
			w.SetShouldClose(true)
			return
		}
		if p, ok := presetKeys[key]; ok {
			ctl.apply(actPreset, p)
			return
		}
		ctl.apply(actionKeys[key], "")
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, act glfw.Action, _ glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		if act == glfw.Press {
			x, y := w.GetCursorPos()
			ctl.press(x, y, float64(cfg.ViewWidth))
		} else if act == glfw.Release {
			ctl.release()
		}
	})
	window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		ctl.move(x, y)
	})
	window.SetScrollCallback(func(_ *glfw.Window, _, dy float64) {
		ctl.scroll(dy)
	})

	program, err := newProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		log.Fatalln(err)
	}
	gl.UseProgram(program)
	gl.Uniform1i(gl.GetUniformLocation(program, gl.Str("frame\x00")), 0)

	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	vertAttrib := uint32(gl.GetAttribLocation(program, gl.Str("vp\x00")))
	gl.EnableVertexAttribArray(vertAttrib)
	gl.VertexAttribPointer(vertAttrib, 2, gl.FLOAT, false, 0, gl.PtrOffset(0))

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	gl.ClearColor(0.06, 0.08, 0.1, 1.0)

	last := time.Now()
	lastTitle := last
	for !window.ShouldClose() {
		now := time.Now()
		frame := ctl.step(now.Sub(last))
		last = now

		img := batch.RenderFrame(frame, fonts, cfg.Supersample)
		b := img.Bounds()
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(b.Dx()), int32(b.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))

		fbw, fbh := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(fbw), int32(fbh))
		gl.Clear(gl.COLOR_BUFFER_BIT)
		gl.UseProgram(program)
		gl.BindVertexArray(vao)
		gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)

		if now.Sub(lastTitle) >= 100*time.Millisecond {
			window.SetTitle(ctl.title(title, frame))
			lastTitle = now
		}

		window.SwapBuffers()
		glfw.PollEvents()
	}
}

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}

	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))

		return 0, fmt.Errorf("failed to link program: %v", log)
	}

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))

		return 0, fmt.Errorf("failed to compile shader: %v", log)
	}

	return shader, nil
}
