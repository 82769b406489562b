// Package gui draws the editor's ImGui panels and renders the heightmap
// into the viewport window.
package gui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/heightmap-viewer/internal/app"
	"github.com/Faultbox/heightmap-viewer/internal/editor"
	"github.com/Faultbox/heightmap-viewer/internal/engine/framebuffer"
	"github.com/Faultbox/heightmap-viewer/internal/engine/heightfield"
	"github.com/Faultbox/heightmap-viewer/internal/engine/renderer"
	"github.com/Faultbox/heightmap-viewer/internal/engine/scene"
	"github.com/Faultbox/heightmap-viewer/internal/engine/screenshot"
	"github.com/Faultbox/heightmap-viewer/internal/engine/ui"
	"github.com/Faultbox/heightmap-viewer/internal/logger"
)

// Host is the window the GUI runs in.
type Host interface {
	SetWindowTitle(title string)
	SetBgColor(c [4]float32)
}

// GUI draws the editor panels and renders the heightmap into the viewport.
type GUI struct {
	editor   *editor.Editor
	renderer *scene.HeightmapRenderer
	target   *framebuffer.Framebuffer
	capture  *screenshot.Capture
	mesh     *heightfield.Mesh
	docking  bool

	windowClass *imgui.WindowClass
	lastMouse   imgui.Vec2
	title       string
	bgColor     [4]float32
	host        Host
	log         *zap.Logger

	// SavePreferences persists preference changes; nil hides the button.
	SavePreferences func(format screenshot.Format) error
}

// New wires the editor to its GL resources and host window.
func New(e *editor.Editor, host Host, r *scene.HeightmapRenderer, target *framebuffer.Framebuffer,
	capture *screenshot.Capture, mesh *heightfield.Mesh, docking bool) *GUI {
	return &GUI{
		editor:      e,
		renderer:    r,
		target:      target,
		capture:     capture,
		mesh:        mesh,
		docking:     docking,
		windowClass: imgui.NewWindowClass(),
		host:        host,
		log:         logger.Named("gui"),
	}
}

// Frame is the per-frame callback for app.Application.Run.
func (g *GUI) Frame(a *app.Application) {
	e := g.editor
	e.ProcessPending()
	e.Update(a.FrameDeltaTime())

	g.handleShortcuts()

	if g.docking {
		imgui.DockSpaceOverViewportV(0, imgui.MainViewport(), imgui.DockNodeFlagsPassthruCentralNode, g.windowClass)
	}

	g.drawMenuBar()
	g.drawControlPanel()
	g.drawViewport()
	g.drawCameraSettings()
	g.drawPreferences()
	g.drawHelp()
	g.drawAbout()
	g.drawNotification()

	if e.ShowDemoWindow {
		imgui.ShowDemoWindowV(&e.ShowDemoWindow)
	}
	if e.ShowMetrics {
		imgui.ShowMetricsWindowV(&e.ShowMetrics)
	}

	if title := e.Title(); title != g.title {
		g.title = title
		g.host.SetWindowTitle(title)
	}
	if c := e.Settings.ClearColor; c != g.bgColor {
		g.bgColor = c
		g.host.SetBgColor(c)
	}

	if e.ExitRequested() {
		a.Exit()
	}
}

// Destroy releases imgui allocations owned by the GUI.
func (g *GUI) Destroy() {
	if g.windowClass != nil {
		g.windowClass.Destroy()
		g.windowClass = nil
	}
}

func (g *GUI) handleShortcuts() {
	e := g.editor
	shortcuts := []struct {
		mod, key imgui.Key
		action   editor.Action
	}{
		{imgui.ModCtrl, imgui.KeyN, editor.ActionNewScene},
		{imgui.ModCtrl, imgui.KeyO, editor.ActionOpenScene},
		{imgui.ModCtrl, imgui.KeyS, editor.ActionSaveScene},
		{imgui.ModCtrl, imgui.KeyZ, editor.ActionUndo},
		{imgui.ModCtrl, imgui.KeyY, editor.ActionRedo},
		{imgui.ModCtrl, imgui.KeyG, editor.ActionToggleWireframe},
	}
	for _, s := range shortcuts {
		if ui.IsChordPressed(s.mod, s.key) {
			g.dispatch(s.action)
		}
	}
	if ui.IsKeyPressed(imgui.KeyF12) {
		g.dispatch(editor.ActionScreenshot)
	}
	if ui.IsKeyPressed(imgui.KeyF1) {
		e.ShowHelp = true
	}
}

func (g *GUI) dispatch(a editor.Action) {
	if err := g.editor.Dispatch(a); err != nil {
		g.editor.Notify(err.Error())
	}
}

func (g *GUI) menuItem(label, shortcut string, a editor.Action, enabled bool) {
	if imgui.MenuItemBoolV(label, shortcut, false, enabled) {
		g.dispatch(a)
	}
}

func (g *GUI) drawMenuBar() {
	e := g.editor
	if !imgui.BeginMainMenuBar() {
		return
	}

	if imgui.BeginMenu("File") {
		g.menuItem("New Scene", "Ctrl+N", editor.ActionNewScene, true)
		g.menuItem("Open Scene...", "Ctrl+O", editor.ActionOpenScene, true)
		g.menuItem("Save Scene", "Ctrl+S", editor.ActionSaveScene, true)
		g.menuItem("Save As...", "", editor.ActionSaveSceneAs, true)
		imgui.Separator()
		g.menuItem("Exit", "", editor.ActionExit, true)
		imgui.EndMenu()
	}

	if imgui.BeginMenu("Edit") {
		g.menuItem("Undo", "Ctrl+Z", editor.ActionUndo, e.CanUndo())
		g.menuItem("Redo", "Ctrl+Y", editor.ActionRedo, e.CanRedo())
		imgui.Separator()
		g.menuItem("Preferences", "", editor.ActionPreferences, true)
		imgui.EndMenu()
	}

	if imgui.BeginMenu("View") {
		if imgui.MenuItemBoolV("Toggle Grid", "Ctrl+G", e.Settings.Wireframe, true) {
			g.dispatch(editor.ActionToggleWireframe)
		}
		if imgui.MenuItemBoolV("Auto Rotate", "", e.Settings.Camera.AutoRotate, true) {
			g.dispatch(editor.ActionToggleRotation)
		}
		g.menuItem("Camera Settings", "", editor.ActionCameraSettings, true)
		imgui.Separator()
		g.menuItem("Screenshot", "F12", editor.ActionScreenshot, true)
		imgui.EndMenu()
	}

	if imgui.BeginMenu("GameObject") {
		g.menuItem("Add Cube", "", editor.ActionAddCube, true)
		g.menuItem("Add Sphere", "", editor.ActionAddSphere, true)
		g.menuItem("Delete", "", editor.ActionDeleteObject, true)
		imgui.EndMenu()
	}

	if imgui.BeginMenu("Help") {
		g.menuItem("Documentation", "F1", editor.ActionDocumentation, true)
		g.menuItem("About", "", editor.ActionAbout, true)
		imgui.EndMenu()
	}

	imgui.EndMainMenuBar()
}

func (g *GUI) drawControlPanel() {
	e := g.editor
	if !imgui.Begin("Control Panel") {
		imgui.End()
		return
	}

	fps := imgui.CurrentIO().Framerate()
	if fps > 0 {
		imgui.Text(fmt.Sprintf("Application average %.3f ms/frame (%.1f FPS)", 1000/fps, fps))
	}
	imgui.Text(fmt.Sprintf("Mesh: %d vertices, %d triangles", g.mesh.VertexCount(), g.mesh.TriangleCount()))
	imgui.Separator()

	demo := e.ShowDemoWindow
	if imgui.Checkbox("Demo Window", &demo) {
		e.SetDemoWindow(demo)
	}
	metrics := e.ShowMetrics
	if imgui.Checkbox("Metrics", &metrics) {
		e.SetMetrics(metrics)
	}

	imgui.SeparatorText("Light")
	for i, label := range []string{"Light X", "Light Y", "Light Z"} {
		imgui.SliderFloat(label, &e.Settings.LightPos[i], -editor.LightRange, editor.LightRange)
		g.commitOnRelease()
	}

	imgui.SeparatorText("Scene")
	imgui.ColorEdit4V("Clear Color", &e.Settings.ClearColor, imgui.ColorEditFlagsNoAlpha)
	g.commitOnRelease()
	imgui.SliderFloat("Height Scale", &e.Settings.HeightScale, editor.MinHeightScale, editor.MaxHeightScale)
	g.commitOnRelease()

	if imgui.Checkbox("Wireframe", &e.Settings.Wireframe) {
		e.Commit()
	}
	if imgui.Checkbox("Auto Rotate", &e.Settings.Camera.AutoRotate) {
		e.Commit()
	}

	imgui.End()
}

// commitOnRelease records the previous widget's value once the user lets go.
func (g *GUI) commitOnRelease() {
	if imgui.IsItemDeactivatedAfterEdit() {
		g.editor.Commit()
	}
}

func (g *GUI) drawViewport() {
	e := g.editor
	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(0, 0))
	visible := imgui.Begin("Viewport")
	imgui.PopStyleVar()
	if !visible {
		imgui.End()
		return
	}

	avail := imgui.ContentRegionAvail()
	scale := imgui.CurrentIO().DisplayFramebufferScale()
	w, h := int32(avail.X*scale.X), int32(avail.Y*scale.Y)
	if w < 1 || h < 1 {
		imgui.End()
		return
	}
	g.target.Resize(w, h)

	end := g.target.Begin()
	renderer.Clear(e.ClearColor())
	g.renderer.Render(e.FrameParams(float32(w) / float32(h)))
	renderer.CheckError("viewport")
	if e.TakeScreenshotRequest() {
		g.saveScreenshot()
	}
	end()

	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(g.target.ColorTexture()))
	imgui.ImageWithBgV(
		*texRef,
		avail,
		imgui.NewVec2(0, 1),
		imgui.NewVec2(1, 0),
		imgui.NewVec4(0, 0, 0, 1),
		imgui.NewVec4(1, 1, 1, 1),
	)

	if imgui.IsItemHovered() {
		mousePos := imgui.MousePos()
		if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
			e.Drag(mousePos.X - g.lastMouse.X)
		}
		g.lastMouse = mousePos

		if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
			e.Zoom(wheel)
		}
	}

	imgui.End()
}

func (g *GUI) saveScreenshot() {
	e := g.editor
	w, h := g.target.Size()
	g.capture.Format = e.ScreenshotFormat
	path, err := g.capture.SavePixels(g.target.ReadPixels(), int(w), int(h))
	if err != nil {
		g.log.Error("screenshot failed", zap.Error(err))
		e.Notify("Screenshot failed")
		return
	}
	g.log.Info("screenshot saved", zap.String("path", path))
	e.Notify("Saved " + path)
}

func (g *GUI) drawCameraSettings() {
	e := g.editor
	if !e.ShowCamera {
		return
	}
	if imgui.BeginV("Camera Settings", &e.ShowCamera, imgui.WindowFlagsAlwaysAutoResize) {
		c := &e.Settings.Camera
		imgui.SliderFloat("Radius", &c.Radius, e.Camera.MinRadius, e.Camera.MaxRadius)
		g.commitOnRelease()
		imgui.SliderFloat("Height", &c.Height, -50, 50)
		g.commitOnRelease()
		imgui.SliderFloat("Speed", &c.Speed, -5, 5)
		g.commitOnRelease()
		if imgui.Checkbox("Auto Rotate", &c.AutoRotate) {
			e.Commit()
		}
		p := e.Camera.Position()
		imgui.Text(fmt.Sprintf("Eye: (%.2f, %.2f, %.2f)", p[0], p[1], p[2]))
		if imgui.Button("Reset") {
			e.ResetCamera()
		}
		imgui.SameLine()
		if imgui.Button("Frame Mesh") {
			e.FrameBounds(g.mesh.Bounds)
		}
	}
	imgui.End()
}

func (g *GUI) drawPreferences() {
	e := g.editor
	if !e.ShowPreferences {
		return
	}
	if imgui.BeginV("Preferences", &e.ShowPreferences, imgui.WindowFlagsAlwaysAutoResize) {
		imgui.Text("Screenshot format")
		if imgui.RadioButtonBool("PNG", e.ScreenshotFormat == screenshot.FormatPNG) {
			e.SetScreenshotFormat(screenshot.FormatPNG)
		}
		imgui.SameLine()
		if imgui.RadioButtonBool("BMP", e.ScreenshotFormat == screenshot.FormatBMP) {
			e.SetScreenshotFormat(screenshot.FormatBMP)
		}
		imgui.TextDisabled("Directory: " + g.capture.Dir)
		if g.SavePreferences != nil && imgui.Button("Save as Default") {
			if err := g.SavePreferences(e.ScreenshotFormat); err != nil {
				g.log.Error("saving preferences failed", zap.Error(err))
				e.Notify("Saving preferences failed")
			} else {
				e.Notify("Preferences saved")
			}
		}
	}
	imgui.End()
}

func (g *GUI) drawHelp() {
	e := g.editor
	if !e.ShowHelp {
		return
	}
	if imgui.BeginV("Documentation", &e.ShowHelp, imgui.WindowFlagsAlwaysAutoResize) {
		imgui.Text("Heightfield h(x, y) = A sin(x) sin(y)")
		imgui.Separator()
		imgui.BulletText("Drag in the viewport to orbit, scroll to zoom")
		imgui.BulletText("Ctrl+G toggles the wireframe grid")
		imgui.BulletText("Ctrl+Z / Ctrl+Y undo and redo scene edits")
		imgui.BulletText("F12 saves a screenshot of the viewport")
	}
	imgui.End()
}

func (g *GUI) drawAbout() {
	if g.editor.TakeAboutRequest() {
		imgui.OpenPopupStr("About")
	}
	if imgui.BeginPopupModalV("About", nil, imgui.WindowFlagsAlwaysAutoResize) {
		imgui.Text("Heightmap Viewer")
		imgui.TextDisabled("Procedural sine heightfield rendered with OpenGL 4.1")
		imgui.Separator()
		if imgui.Button("Close") {
			imgui.CloseCurrentPopup()
		}
		imgui.EndPopup()
	}
}

func (g *GUI) drawNotification() {
	msg, ok := g.editor.Message()
	if !ok {
		return
	}
	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoFocusOnAppearing |
		imgui.WindowFlagsNoDocking
	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+10, workPos.Y+10))
	imgui.SetNextWindowBgAlpha(0.85)
	if imgui.BeginV("##Notify", nil, flags) {
		imgui.Text(msg)
	}
	imgui.End()
}
