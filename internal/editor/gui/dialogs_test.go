package gui

import (
	"errors"
	"testing"

	"github.com/sqweek/dialog"
)

func TestCancelled(t *testing.T) {
	path, err := cancelled("", dialog.ErrCancelled)
	if path != "" || err != nil {
		t.Errorf("cancelled(ErrCancelled) = %q, %v", path, err)
	}

	boom := errors.New("boom")
	if _, err := cancelled("", boom); !errors.Is(err, boom) {
		t.Errorf("other errors should pass through, got %v", err)
	}

	if path, err := cancelled("/tmp/a.scene.yaml", nil); path != "/tmp/a.scene.yaml" || err != nil {
		t.Errorf("cancelled(path) = %q, %v", path, err)
	}
}
