// Package transport implements the bidirectional, ordered, reliable
// wire boundary described in §6.1: a single websocket endpoint carrying
// tagged JSON frames, plus an additive REST surface over the same
// game.Session.
package transport

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/darkhorsekelly/mesh/pkg/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Inbound frame type tags (§6.1).
const (
	CmdRequestState = "CMD_REQUEST_STATE"
	CmdQueueAction  = "CMD_QUEUE_ACTION"
	CmdExecuteTick  = "CMD_EXECUTE_TICK"
)

// Outbound frame type tags (§6.1).
const (
	EventStateUpdate          = "STATE_UPDATE"
	EventTickExecuted         = "TICK_EXECUTED"
	EventPendingActionsUpdate = "PENDING_ACTIONS_UPDATE"
	EventError                = "ERROR"
)

// InboundFrame is the envelope every client message arrives in. Only
// one of the payload fields is populated, depending on Type.
type InboundFrame struct {
	Type   string          `json:"type"`
	Action *models.Action  `json:"action,omitempty"`
}

// StatePayload is the body of STATE_UPDATE and TICK_EXECUTED frames.
type StatePayload struct {
	State          models.World    `json:"state"`
	PendingActions []models.Action `json:"pendingActions"`
}

// OutboundFrame is the envelope every server message is sent in.
type OutboundFrame struct {
	Type    string          `json:"type"`
	State   *StatePayload   `json:"state,omitempty"`
	Actions []models.Action `json:"actions,omitempty"`
	Message string          `json:"message,omitempty"`
}

func stateUpdateFrame(kind string, state models.World, pending []models.Action) OutboundFrame {
	return OutboundFrame{Type: kind, State: &StatePayload{State: state, PendingActions: pending}}
}

func pendingActionsFrame(actions []models.Action) OutboundFrame {
	return OutboundFrame{Type: EventPendingActionsUpdate, Actions: actions}
}

func errorFrame(message string) OutboundFrame {
	return OutboundFrame{Type: EventError, Message: message}
}
