package common

// Key codes follow GLFW, which uses ASCII for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW = 87
	KeyA = 65
	KeyS = 83
	KeyD = 68
	KeyQ = 81
	KeyE = 69
	KeyM = 77

	Key1 = 49
	Key2 = 50

	KeySpace      = 32
	KeyEsc        = 256
	KeyLeftShift  = 340
	KeyRightShift = 344
)

// MaxKeyCode bounds the key table; GLFW_KEY_LAST is 348.
const MaxKeyCode = 512

// Mouse buttons, matching GLFW.
const (
	MouseButtonLeft   = 0
	MouseButtonRight  = 1
	MouseButtonMiddle = 2
)
