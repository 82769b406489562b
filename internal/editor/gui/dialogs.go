package gui

import (
	"errors"

	"github.com/sqweek/dialog"
)

// NativeDialogs shows the platform file dialogs.
type NativeDialogs struct{}

func (NativeDialogs) OpenScene(startDir string) (string, error) {
	path, err := sceneDialog(startDir).Title("Open Scene").Load()
	return cancelled(path, err)
}

func (NativeDialogs) SaveScene(startDir string) (string, error) {
	path, err := sceneDialog(startDir).Title("Save Scene As").Save()
	return cancelled(path, err)
}

func sceneDialog(startDir string) *dialog.FileBuilder {
	b := dialog.File().
		Filter("Scene Files", "yaml", "yml").
		Filter("All Files", "*")
	if startDir != "" {
		b = b.SetStartDir(startDir)
	}
	return b
}

// cancelled maps a dismissed dialog to an empty path.
func cancelled(path string, err error) (string, error) {
	if errors.Is(err, dialog.ErrCancelled) {
		return "", nil
	}
	return path, err
}
