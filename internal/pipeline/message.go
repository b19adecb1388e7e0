package pipeline

import "encoding/json"

// Message is the payload delivered to the processing pipeline.
type Message struct {
	ImageID      string `json:"imageId"`
	DispatchedAt string `json:"dispatchedAt,omitempty"`
}

// EncodeMessage returns the JSON representation of a message.
func EncodeMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

// DecodeMessage parses a JSON payload into a Message.
func DecodeMessage(payload []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}
