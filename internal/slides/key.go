package slides

import "strings"

// Key is a navigation key understood by the Controller.
type Key int

const (
	KeyUnknown Key = iota
	KeyDown
	KeyPageDown
	KeySpace
	KeyUp
	KeyPageUp
	KeyHome
	KeyEnd
	KeyEscape
)

var keyNames = map[Key]string{
	KeyDown:     "Down",
	KeyPageDown: "PageDown",
	KeySpace:    "Space",
	KeyUp:       "Up",
	KeyPageUp:   "PageUp",
	KeyHome:     "Home",
	KeyEnd:      "End",
	KeyEscape:   "Escape",
}

// String makes Key satisfy the fmt.Stringer interface.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "Unknown"
}

// ParseKey maps a key name such as "PageDown" or "esc" to a Key.
func ParseKey(name string) (Key, bool) {
	if name == " " {
		return KeySpace, true
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "down", "arrowdown":
		return KeyDown, true
	case "pagedown", "pgdown":
		return KeyPageDown, true
	case "space":
		return KeySpace, true
	case "up", "arrowup":
		return KeyUp, true
	case "pageup", "pgup":
		return KeyPageUp, true
	case "home":
		return KeyHome, true
	case "end":
		return KeyEnd, true
	case "escape", "esc":
		return KeyEscape, true
	default:
		return KeyUnknown, false
	}
}
