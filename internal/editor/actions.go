package editor

// Action is a command triggered from a menu item or a shortcut.
type Action int

const (
	ActionNone Action = iota

	// File
	ActionNewScene
	ActionOpenScene
	ActionSaveScene
	ActionSaveSceneAs
	ActionExit

	// Edit
	ActionUndo
	ActionRedo
	ActionPreferences

	// View
	ActionToggleWireframe
	ActionCameraSettings
	ActionToggleRotation
	ActionScreenshot

	// GameObject
	ActionAddCube
	ActionAddSphere
	ActionDeleteObject

	// Help
	ActionDocumentation
	ActionAbout
)

var actionNames = map[Action]string{
	ActionNone:            "none",
	ActionNewScene:        "new-scene",
	ActionOpenScene:       "open-scene",
	ActionSaveScene:       "save-scene",
	ActionSaveSceneAs:     "save-scene-as",
	ActionExit:            "exit",
	ActionUndo:            "undo",
	ActionRedo:            "redo",
	ActionPreferences:     "preferences",
	ActionToggleWireframe: "toggle-wireframe",
	ActionCameraSettings:  "camera-settings",
	ActionToggleRotation:  "toggle-rotation",
	ActionScreenshot:      "screenshot",
	ActionAddCube:         "add-cube",
	ActionAddSphere:       "add-sphere",
	ActionDeleteObject:    "delete-object",
	ActionDocumentation:   "documentation",
	ActionAbout:           "about",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}
