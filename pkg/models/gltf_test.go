package models

import "testing"

func TestLoadGLTFInvalidPath(t *testing.T) {
	_, err := LoadGLTF("/nonexistent/path.glb")
	if err == nil {
		t.Fatal("expected error for nonexistent file")
	}
}
