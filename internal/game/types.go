package game

// Mode is whether the match is advancing.
type Mode int

const (
	ModePlaying Mode = iota
	ModePaused
)

func (m Mode) String() string {
	switch m {
	case ModePlaying:
		return "playing"
	case ModePaused:
		return "paused"
	default:
		return "unknown"
	}
}
