package chatclient

import (
	"fmt"
	"math"
	"time"
)

type State int

const (
	StateIdle State = iota
	StateAwaitingResponse
	StateStreaming
	StateRateLimited
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingResponse:
		return "awaiting_response"
	case StateStreaming:
		return "streaming"
	case StateRateLimited:
		return "rate_limited"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ThrottleError is returned by Send when the previous request was too
// recent. No request is made.
type ThrottleError struct {
	Wait time.Duration
}

func (e *ThrottleError) Seconds() int {
	return int(math.Ceil(e.Wait.Seconds()))
}

func (e *ThrottleError) Error() string {
	n := e.Seconds()
	unit := "seconds"
	if n == 1 {
		unit = "second"
	}
	return fmt.Sprintf("Please wait %d %s before sending another message.", n, unit)
}
