package websocket

import "encoding/json"

// Message defines the structure for feed messages.
type Message struct {
	Action  string `json:"action"`
	Payload any    `json:"payload"`
}

// NewActivityMessage encodes an activity entry for broadcast.
func NewActivityMessage(entry any) []byte {
	data, err := json.Marshal(Message{Action: "activity", Payload: entry})
	if err != nil {
		return nil
	}
	return data
}
