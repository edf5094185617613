package core

// Effect identifies a sound or animation cue. The numbering is stable so that
// cue tables in config files keep their meaning.
type Effect int

const (
	EffectNone   Effect = iota
	EffectStart         // level start
	EffectAttach        // bubble stuck to the drone
	EffectSpawn         // producer released a bubble
	EffectPop           // bubble attacked
	EffectDye           // bubble re-skinned by a dye zone
	EffectDeath         // drone destroyed
	EffectShoot         // bee fired
)

// String returns the cue name.
func (e Effect) String() string {
	switch e {
	case EffectStart:
		return "start"
	case EffectAttach:
		return "attach"
	case EffectSpawn:
		return "spawn"
	case EffectPop:
		return "pop"
	case EffectDye:
		return "dye"
	case EffectDeath:
		return "death"
	case EffectShoot:
		return "shoot"
	default:
		return "none"
	}
}

// Cuer receives fire-and-forget presentation cues from the simulation.
// Implementations must not block.
type Cuer interface {
	Cue(source string, e Effect)
}

// NopCuer discards every cue.
type NopCuer struct{}

// Cue implements Cuer.
func (NopCuer) Cue(string, Effect) {}
