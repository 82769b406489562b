package shader

import (
	"strings"
	"testing"
)

func TestEmbeddedSources(t *testing.T) {
	for name, src := range map[string]string{
		"vertex":   HeightmapVertex,
		"fragment": HeightmapFragment,
	} {
		if !strings.HasPrefix(src, "#version 410 core") {
			t.Errorf("%s shader should target GLSL 410 core", name)
		}
	}

	// Attribute locations must match the heightfield vertex layout.
	for _, decl := range []string{
		"layout (location = 0) in vec3 aPosition",
		"layout (location = 1) in vec3 aNormal",
		"layout (location = 2) in vec4 aColor",
	} {
		if !strings.Contains(HeightmapVertex, decl) {
			t.Errorf("vertex shader missing %q", decl)
		}
	}

	for _, u := range []string{"uProjection", "uView", "uModel", "uHeightScale"} {
		if !strings.Contains(HeightmapVertex, "uniform") || !strings.Contains(HeightmapVertex, u) {
			t.Errorf("vertex shader missing uniform %s", u)
		}
	}
	if !strings.Contains(HeightmapFragment, "uLightPos") {
		t.Error("fragment shader missing uLightPos")
	}
}
