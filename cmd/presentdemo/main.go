// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"flag"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"strconv"

	"github.com/gobuffalo/envy"
	"github.com/gobuffalo/packr"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
	vk "github.com/vulkan-go/vulkan"

	"github.com/koru3d/present/asset"
	"github.com/koru3d/present/core"
	"github.com/koru3d/present/device"
)

func init() {
	runtime.LockOSThread()
}

// Profiling
var (
	cpuProfile   = flag.String("cpuprof", "", "Profile CPU usage to file")
	memProfile   = flag.String("memprof", "", "Profile memory usage into a file")
	traceProfile = flag.String("trace", "", "Trace output for profiling")
	debug        = flag.Bool("vkdbg", false, "Load Vulkan validation layers")
)

// shaderBox embeds the compiled demo shaders next to the binary. The box
// serves the .spv output of go generate, not the GLSL sources.
//
//go:generate glslangValidator -V shaders/triangle.vert -o shaders/triangle.vert.spv
//go:generate glslangValidator -V shaders/triangle.frag -o shaders/triangle.frag.spv
var shaderBox = packr.NewBox("./shaders")

var configuration = core.Configuration{
	Time: core.TimeConfiguration{
		FramesPerSecond: 60,
		EventPollDelay:  50,
	},
	Session: core.SessionConfiguration{
		ScreenWidth:  800,
		ScreenHeight: 600,
		DeviceExtensions: []string{
			"VK_KHR_swapchain",
		},
	},
}

// loadConfiguration layers an optional .env file and environment
// variables over the built-in defaults.
func loadConfiguration() {
	godotenv.Load()

	if width, err := strconv.ParseUint(envy.Get("PRESENT_WIDTH", ""), 10, 32); err == nil {
		configuration.Session.ScreenWidth = uint32(width)
	}
	if height, err := strconv.ParseUint(envy.Get("PRESENT_HEIGHT", ""), 10, 32); err == nil {
		configuration.Session.ScreenHeight = uint32(height)
	}
	if fps, err := strconv.Atoi(envy.Get("PRESENT_FPS", "")); err == nil {
		configuration.Time.FramesPerSecond = fps
	}
	configuration.Session.ShaderBundle = envy.Get("PRESENT_SHADER_BUNDLE", "")
	if dbg, err := strconv.ParseBool(envy.Get("PRESENT_DEBUG", "")); err == nil {
		configuration.Session.DebugMode = dbg
	}
}

// loadShaders reads SPIR-V from the configured bundle, falling back to
// the embedded box.
func loadShaders() (vert, frag []byte, err error) {
	if path := configuration.Session.ShaderBundle; path != "" {
		bundle, err := asset.OpenFile(path)
		if err != nil {
			return nil, nil, err
		}
		defer bundle.Close()
		if vert, err = bundle.Load("shaders/triangle.vert.spv"); err != nil {
			return nil, nil, err
		}
		if frag, err = bundle.Load("shaders/triangle.frag.spv"); err != nil {
			return nil, nil, err
		}
		return vert, frag, nil
	}

	if vert, err = shaderBox.Find("triangle.vert.spv"); err != nil {
		return nil, nil, err
	}
	if frag, err = shaderBox.Find("triangle.frag.spv"); err != nil {
		return nil, nil, err
	}
	return vert, frag, nil
}

func newWindow() *sdl.Window {
	window, err := sdl.CreateWindow("Present demo",
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(configuration.Session.ScreenWidth),
		int32(configuration.Session.ScreenHeight),
		sdl.WINDOW_VULKAN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		panic(err)
	}
	return window
}

func main() {
	flag.Parse()
	loadConfiguration()

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			panic(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		defer pprof.StopCPUProfile()
	}

	if *traceProfile != "" {
		f, err := os.Create(*traceProfile)
		if err != nil {
			panic(err)
		}
		if err := trace.Start(f); err != nil {
			panic(err)
		}
		defer trace.Stop()
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		panic(err)
	}
	defer sdl.Quit()

	if err := sdl.VulkanLoadLibrary(""); err != nil {
		panic(err)
	}
	defer sdl.VulkanUnloadLibrary()

	window := newWindow()
	defer window.Destroy()

	instance, err := device.NewInstance(
		device.DefaultVulkanApplicationInfo,
		sdl.VulkanGetVkGetInstanceProcAddr(),
		device.InstanceConfiguration{
			DebugMode:  *debug || configuration.Session.DebugMode,
			Extensions: window.VulkanGetInstanceExtensions(),
		})
	if err != nil {
		panic(err)
	}
	defer instance.Destroy()

	rawSurface, err := window.VulkanCreateSurface(instance.Handle())
	if err != nil {
		panic(err)
	}
	surface := vk.SurfaceFromPointer(uintptr(rawSurface))

	var physicalDevice vk.PhysicalDevice
	info := instance.Info()
	for idx, candidate := range instance.PhysicalDevices() {
		suitable, reason := device.Suitable(candidate, surface, configuration.Session.DeviceExtensions)
		if suitable {
			physicalDevice = candidate
			log.WithField("device", info[idx].Name).Info("selected rendering device")
			break
		}
		log.WithFields(log.Fields{
			"device": info[idx].Name,
			"reason": reason,
		}).Warn("skipping unsuitable device")
	}
	if physicalDevice == nil {
		panic("no suitable rendering device available")
	}

	families, err := device.FindQueueFamilies(physicalDevice, surface)
	if err != nil {
		panic(err)
	}

	logical, err := device.NewLogical(physicalDevice, families, configuration.Session.DeviceExtensions)
	if err != nil {
		panic(err)
	}
	defer logical.Destroy()

	capabilities, err := core.QuerySurfaceSupport(physicalDevice, surface)
	if err != nil {
		panic(err)
	}
	format := core.ChooseFormat(capabilities)

	renderPass, err := newRenderPass(logical.Device, core.VulkanFormat(format.Format))
	if err != nil {
		panic(err)
	}
	defer vk.DestroyRenderPass(logical.Device, renderPass, nil)

	vertCode, fragCode, err := loadShaders()
	if err != nil {
		panic(err)
	}

	pipeline, err := newTrianglePipeline(logical.Device, physicalDevice, renderPass, vertCode, fragCode)
	if err != nil {
		panic(err)
	}
	defer pipeline.Destroy()

	backend, err := core.NewVulkanBackend(core.BackendConfiguration{
		PhysicalDevice:   physicalDevice,
		Device:           logical.Device,
		Surface:          surface,
		GraphicsQueue:    logical.GraphicsQueue,
		PresentQueue:     logical.PresentQueue,
		QueueFamilies:    families,
		RenderPass:       renderPass,
		AttachmentFormat: format.Format,
		ClearColor:       [4]float32{0.005, 0.005, 0.005, 1.0},
	})
	if err != nil {
		panic(err)
	}
	defer backend.Destroy()

	presenter, err := core.NewPresenter(backend, core.PresenterConfiguration{
		Extent: core.Extent{
			Width:  configuration.Session.ScreenWidth,
			Height: configuration.Session.ScreenHeight,
		},
		QueueFamilies: families,
		Record:        pipeline.Recorder(),
		Log:           log.StandardLogger(),
	})
	if err != nil {
		panic(err)
	}

	timeService := core.NewTime(configuration.Time)

	running := true
	for running {
		select {
		case <-timeService.EventTicker().C:
			for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
				switch et := event.(type) {
				case *sdl.KeyboardEvent:
					if et.Keysym.Sym == sdl.K_ESCAPE {
						running = false
					}
				case *sdl.QuitEvent:
					running = false
				case *sdl.WindowEvent:
					if et.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
						presenter.Resized(core.Extent{
							Width:  uint32(et.Data1),
							Height: uint32(et.Data2),
						})
					}
				}
			}
		case <-timeService.FpsTicker().C:
			outcome, err := presenter.Redraw()
			if err != nil {
				log.WithError(err).Error("presentation failed, shutting down")
				running = false
				continue
			}
			if outcome != core.OutcomePresented {
				log.WithField("outcome", outcome.String()).Debug("frame skipped")
			}
		}
	}

	if err := presenter.Shutdown(); err != nil {
		log.WithError(err).Error("shutdown did not complete cleanly")
	}

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			panic(err)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			panic(err)
		}
	}
}
