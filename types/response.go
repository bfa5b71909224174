package types

import "encoding/json"

// Role represents the role of a response message participant.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ImageContent represents image data in a multimodal content part.
type ImageContent struct {
	URL  string `json:"url,omitempty"`
	Data string `json:"data,omitempty"` // base64 encoded
}

// ContentPart is one part of a response message, discriminated by Type
// ("text" or "image").
type ContentPart struct {
	Type  string        `json:"type"`
	Text  string        `json:"text,omitempty"`
	Image *ImageContent `json:"image,omitempty"`
}

// ResponseMessage is one role-tagged message in the retrieval response.
type ResponseMessage struct {
	Role    Role          `json:"role"`
	Content []ContentPart `json:"content"`
}

// Text concatenates the text parts of the message.
func (m *ResponseMessage) Text() string {
	var out string
	for _, part := range m.Content {
		if part.Type == "text" {
			out += part.Text
		}
	}
	return out
}

// RetrievalResponse is the root aggregate returned by one retrieval call.
// It is constructed once by the retrieval service and consumed read-only;
// the processing layer never mutates it.
type RetrievalResponse struct {
	Response   []ResponseMessage `json:"response"`
	Activity   []Activity        `json:"activity"`
	References []Reference       `json:"references"`
}

// AnswerText returns the text of the last assistant message, or "" when the
// response carries no assistant message.
func (r *RetrievalResponse) AnswerText() string {
	for i := len(r.Response) - 1; i >= 0; i-- {
		if r.Response[i].Role == RoleAssistant {
			return r.Response[i].Text()
		}
	}
	return ""
}

// ParseRetrievalResponse decodes the JSON body of a retrieval call.
// Unknown activity or reference variants decode without error; classification
// of unknown tags is handled downstream, not here.
func ParseRetrievalResponse(data []byte) (*RetrievalResponse, error) {
	var resp RetrievalResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, NewError(ErrMalformedResponse, "decode retrieval response").WithCause(err)
	}
	return &resp, nil
}
