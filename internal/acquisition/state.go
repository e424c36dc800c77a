package acquisition

// State is the loop's lifecycle phase.
type State string

const (
	StateInitializing State = "initializing"
	StateWarmingUp    State = "warming_up"
	StateRunning      State = "running"
	StateDraining     State = "draining"
	StateStopped      State = "stopped"
)

// States lists every state in lifecycle order.
var States = []State{
	StateInitializing,
	StateWarmingUp,
	StateRunning,
	StateDraining,
	StateStopped,
}
