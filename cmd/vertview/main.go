// Command vertview is the desktop vertebra viewer: it loads per-patient
// anatomical meshes from an exported web_data tree over HTTP and renders
// them with interactive camera controls.
//
// Controls:
//
//	left-drag    orbit
//	right-drag   pan
//	scroll       zoom
//	1..4         camera presets (3d, front, side, top)
//	A / D        select all / deselect all
//	P            next patient
//	M            next processing mode
//	Esc          quit
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/chewxy/math32"

	"github.com/spinelab/vertview/camera"
	"github.com/spinelab/vertview/render"
	"github.com/spinelab/vertview/viewer/provider"
	"github.com/spinelab/vertview/viewer/session"
	"github.com/spinelab/vertview/window"
)

// GLFW key codes for the bindings that are not plain ASCII digits/letters.
const (
	key1 = uint32('1')
	key2 = uint32('2')
	key3 = uint32('3')
	key4 = uint32('4')
	keyA = uint32('A')
	keyD = uint32('D')
	keyM = uint32('M')
	keyP = uint32('P')
)

var modes = []provider.Mode{provider.ModeRaw, provider.ModeCleaned, provider.ModeDifference}

func main() {
	baseURL := flag.String("base-url", "http://localhost:8000", "root URL the web_data directory is served under")
	patientList := flag.String("patients", "patient_001", "comma-separated patient identifiers")
	width := flag.Int("width", 1280, "initial window width")
	height := flag.Int("height", 720, "initial window height")
	workers := flag.Int("workers", 8, "concurrent mesh load workers")
	flag.Parse()

	patients := strings.Split(*patientList, ",")
	for i := range patients {
		patients[i] = strings.TrimSpace(patients[i])
	}
	if len(patients) == 0 || patients[0] == "" {
		log.Fatal("at least one patient id is required")
	}

	win := window.NewWindow(
		window.WithTitle("Vertebra Viewer"),
		window.WithSize(*width, *height),
	)

	renderer, err := render.NewRenderer(win.SurfaceDescriptor(), win.Width(), win.Height())
	if err != nil {
		log.Fatalf("renderer setup: %v", err)
	}

	ctrl := camera.NewController()
	cam := camera.NewCamera(
		camera.WithController(ctrl),
		camera.WithAspect(float32(win.Width())/float32(win.Height())),
		camera.WithFov(45.0*(math32.Pi/180.0)),
	)

	sess := session.NewViewerSession(
		provider.NewHTTPProvider(*baseURL),
		session.WithRenderer(renderer),
		session.WithCamera(cam),
		session.WithWorkers(*workers),
		session.WithStatusCallback(printStatus),
	)
	defer sess.Close()

	// Current dataset selection, advanced by the P and M keys.
	var (
		selMu      sync.Mutex
		patientIdx int
		modeIdx    int
		loading    bool
	)

	load := func(patient string, mode provider.Mode) {
		go func() {
			defer func() {
				selMu.Lock()
				loading = false
				selMu.Unlock()
			}()
			if _, err := sess.LoadPatient(context.Background(), patient, mode); err != nil {
				// Manifest failures abort the load and keep the prior scene.
				log.Printf("LOAD FAILED: %s for patient %s: %v", mode.Label(), patient, err)
			}
		}()
	}

	reload := func(advancePatient, advanceMode bool) {
		selMu.Lock()
		if loading {
			selMu.Unlock()
			return
		}
		if advancePatient {
			patientIdx = (patientIdx + 1) % len(patients)
		}
		if advanceMode {
			modeIdx = (modeIdx + 1) % len(modes)
		}
		patient := patients[patientIdx]
		mode := modes[modeIdx]
		loading = true
		selMu.Unlock()
		load(patient, mode)
	}

	// Pointer drag state for orbit (left) and pan (right).
	var (
		dragButton window.MouseButton
		dragging   bool
		lastX      float64
		lastY      float64
	)

	win.SetMouseButtonCallback(func(button window.MouseButton, pressed bool, x, y float64) {
		if pressed {
			dragButton = button
			dragging = true
			lastX, lastY = x, y
			return
		}
		if dragging && button == dragButton {
			dragging = false
		}
	})

	win.SetMouseMoveCallback(func(x, y float64) {
		if !dragging {
			return
		}
		dx := float32(x - lastX)
		dy := float32(y - lastY)
		lastX, lastY = x, y
		switch dragButton {
		case window.MouseButtonLeft:
			ctrl.Orbit(dx, dy)
		case window.MouseButtonRight:
			ctrl.Pan(dx, dy)
		}
	})

	win.SetScrollCallback(func(delta float32) {
		ctrl.Zoom(delta)
	})

	win.SetKeyDownCallback(func(keyCode uint32) {
		switch keyCode {
		case key1:
			ctrl.ApplyPreset(camera.Preset3D)
		case key2:
			ctrl.ApplyPreset(camera.PresetFront)
		case key3:
			ctrl.ApplyPreset(camera.PresetSide)
		case key4:
			ctrl.ApplyPreset(camera.PresetTop)
		case keyA:
			sess.SelectAll()
		case keyD:
			sess.DeselectAll()
		case keyP:
			reload(true, false)
		case keyM:
			reload(false, true)
		}
	})

	win.SetResizeCallback(func(w, h int) {
		renderer.Resize(w, h)
		cam.SetAspect(float32(w) / float32(h))
	})

	win.SetUpdateCallback(func() {
		if err := sess.RenderFrame(); err != nil {
			log.Printf("frame: %v", err)
		}
	})

	reload(false, false)

	win.ProcessMessages()
	_ = win.Close()
}

// printStatus mirrors the UI status indicator on stdout, including the
// difference color legend when it applies.
func printStatus(st session.Status) {
	fmt.Printf("patient %s | %s\n", st.PatientID, st.Mode.Label())
	if st.ShowLegend {
		fmt.Println("  legend: red #FF4444 = removed by cleaning, blue #4444FF = added by cleaning")
	}
}
