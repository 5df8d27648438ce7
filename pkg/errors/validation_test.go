package errors

import (
	"strings"
	"testing"
)

func TestValidateFileStem(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Cube", false},
		{"with dot", "Cube.001", false},
		{"with space", "Main Light", false},
		{"material suffix", "Cube_Glass", false},
		{"unicode", "Würfel", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 300), true},
		{"slash", "meshes/Cube", true},
		{"backslash", "meshes\\Cube", true},
		{"traversal", "..Cube", true},
		{"null byte", "Cube\x00", true},
		{"newline", "Cube\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFileStem(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFileStem(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateFileStem(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateRelativePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"mesh", "meshes/Cube.obj", false},
		{"texture", "textures/wood.png", false},
		{"bare", "scene.xml", false},

		{"empty", "", true},
		{"absolute", "/tmp/Cube.obj", true},
		{"traversal", "../Cube.obj", true},
		{"backslash", "meshes\\Cube.obj", true},
		{"control char", "meshes/\x01.obj", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRelativePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRelativePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidConfig,
		ErrCodeInvalidScene,
		ErrCodeInvalidFormat,
		ErrCodeInvalidPath,
		ErrCodeFileNotFound,
		ErrCodeNoCamera,
		ErrCodeIO,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
