package scheduler

import "fmt"

// Task is one slot of the slow-tick round robin.
type Task uint8

const (
	TaskBus Task = iota
	TaskKnobs
	TaskPitch
	TaskLFO
	numTasks
)

func (t Task) String() string {
	switch t {
	case TaskBus:
		return "bus"
	case TaskKnobs:
		return "knobs"
	case TaskPitch:
		return "pitch"
	case TaskLFO:
		return "lfo"
	}
	return fmt.Sprintf("task(%d)", uint8(t))
}

// next is total: any out of range value restarts the rotation.
func (t Task) next() Task {
	switch t {
	case TaskBus:
		return TaskKnobs
	case TaskKnobs:
		return TaskPitch
	case TaskPitch:
		return TaskLFO
	default:
		return TaskBus
	}
}
