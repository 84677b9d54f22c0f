package common

import "strings"

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW     = 87  // W key (ASCII)
	KeyA     = 65  // A key (ASCII)
	KeyS     = 83  // S key (ASCII)
	KeyD     = 68  // D key (ASCII)
	KeyQ     = 81  // Q key (ASCII)
	KeyE     = 69  // E key (ASCII)
	KeySpace = 32  // Spacebar (ASCII)
	KeyEsc   = 256 // Escape key (GLFW)

	KeyRight = 262 // Right arrow (GLFW)
	KeyLeft  = 263 // Left arrow (GLFW)
	KeyDown  = 264 // Down arrow (GLFW)
	KeyUp    = 265 // Up arrow (GLFW)
)

var keyNames = map[string]uint32{
	"w":     KeyW,
	"a":     KeyA,
	"s":     KeyS,
	"d":     KeyD,
	"q":     KeyQ,
	"e":     KeyE,
	"space": KeySpace,
	"esc":   KeyEsc,
	"right": KeyRight,
	"left":  KeyLeft,
	"down":  KeyDown,
	"up":    KeyUp,
}

// KeyByName resolves a case-insensitive key name ("W", "up", "space") to its key code.
//
// Parameters:
//   - name: the key name used in configuration files
//
// Returns:
//   - uint32: the key code
//   - bool: false if the name is unknown
func KeyByName(name string) (uint32, bool) {
	code, ok := keyNames[strings.ToLower(strings.TrimSpace(name))]
	return code, ok
}
