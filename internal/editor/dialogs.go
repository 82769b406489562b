package editor

// Dialogs asks the user for scene file paths. An empty path with a nil
// error means the user cancelled.
type Dialogs interface {
	OpenScene(startDir string) (string, error)
	SaveScene(startDir string) (string, error)
}
