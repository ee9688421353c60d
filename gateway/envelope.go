package gateway

import (
	"encoding/json"
	"fmt"
	"time"
)

// Gateway opcodes the client receives.
const (
	OpDispatch         = 0
	OpHeartbeat        = 1
	OpIdentify         = 2
	OpStatusUpdate     = 3
	OpVoiceStateUpdate = 4
	OpResume           = 6
	OpReconnect        = 7
	OpInvalidSession   = 9
	OpHello            = 10
	OpHeartbeatAck     = 11
)

// GatewayEvent is an envelope-level frame: a dispatch carrying a typed Event
// or one of the connection control variants.
type GatewayEvent interface {
	gatewayEvent()
}

// Dispatch is an op 0 frame: a sequenced application event.
type Dispatch struct {
	Seq   int64
	Event Event
}

func (Dispatch) gatewayEvent() {}

// Heartbeat is an op 1 frame requesting an immediate heartbeat.
type Heartbeat struct {
	Seq int64
}

func (Heartbeat) gatewayEvent() {}

// Reconnect is an op 7 frame instructing the client to reconnect.
type Reconnect struct{}

func (Reconnect) gatewayEvent() {}

// InvalidateSession is an op 9 frame; Resumable reports whether the session
// may be resumed rather than re-identified.
type InvalidateSession struct {
	Resumable bool
}

func (InvalidateSession) gatewayEvent() {}

// Hello is an op 10 frame announcing the heartbeat interval.
type Hello struct {
	HeartbeatInterval time.Duration
}

func (Hello) gatewayEvent() {}

// HeartbeatAck is an op 11 frame acknowledging a heartbeat.
type HeartbeatAck struct{}

func (HeartbeatAck) gatewayEvent() {}

// DecodeError reports an uninterpretable frame together with the offending
// raw payload.
type DecodeError struct {
	Op   int
	Name string
	Raw  json.RawMessage
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("decoding %s frame: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("decoding op %d frame: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// frame is the raw envelope shape.
type frame struct {
	Op int             `json:"op"`
	S  *int64          `json:"s"`
	T  *string         `json:"t"`
	D  json.RawMessage `json:"d"`
}

// DecodeFrame interprets one raw gateway frame.
func DecodeFrame(raw []byte) (GatewayEvent, error) {
	var f frame
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, &DecodeError{Raw: raw, Err: err}
	}

	switch f.Op {
	case OpDispatch:
		if f.T == nil {
			return nil, &DecodeError{Op: f.Op, Raw: f.D, Err: fmt.Errorf("dispatch frame missing event name")}
		}
		var seq int64
		if f.S != nil {
			seq = *f.S
		}
		ev, err := DecodeEvent(*f.T, f.D)
		if err != nil {
			return nil, err
		}
		return Dispatch{Seq: seq, Event: ev}, nil

	case OpHeartbeat:
		var seq int64
		if len(f.D) > 0 && string(f.D) != "null" {
			if err := json.Unmarshal(f.D, &seq); err != nil {
				return nil, &DecodeError{Op: f.Op, Raw: f.D, Err: err}
			}
		}
		return Heartbeat{Seq: seq}, nil

	case OpReconnect:
		return Reconnect{}, nil

	case OpInvalidSession:
		var resumable bool
		if len(f.D) > 0 && string(f.D) != "null" {
			if err := json.Unmarshal(f.D, &resumable); err != nil {
				return nil, &DecodeError{Op: f.Op, Raw: f.D, Err: err}
			}
		}
		return InvalidateSession{Resumable: resumable}, nil

	case OpHello:
		var d struct {
			HeartbeatInterval int64 `json:"heartbeat_interval"`
		}
		if err := json.Unmarshal(f.D, &d); err != nil {
			return nil, &DecodeError{Op: f.Op, Raw: f.D, Err: err}
		}
		return Hello{HeartbeatInterval: time.Duration(d.HeartbeatInterval) * time.Millisecond}, nil

	case OpHeartbeatAck:
		return HeartbeatAck{}, nil

	default:
		return nil, &DecodeError{Op: f.Op, Raw: f.D, Err: fmt.Errorf("unknown opcode %d", f.Op)}
	}
}
