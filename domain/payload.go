package domain

import (
	"encoding/json"
	"fmt"

	"mood-chat/errors"
)

// PayloadKind tags the closed set of message payload variants.
type PayloadKind string

const (
	KindText    PayloadKind = "text"
	KindEmotion PayloadKind = "emotion-result"
	KindImage   PayloadKind = "image-attachment"
)

// Payload is the closed tagged variant carried by a Message.
// The engine validates payloads structurally; it has no knowledge of how
// emotion results or filtered images were produced by the AI add-ons.
type Payload interface {
	Kind() PayloadKind
}

// TextPayload is a plain chat message body.
type TextPayload struct {
	Body string
}

func (TextPayload) Kind() PayloadKind { return KindText }

// EmotionResult is the outcome of the external emotion classifier,
// re-submitted by the client as an ordinary message.
type EmotionResult struct {
	Emotion    string
	Confidence float64
}

func (EmotionResult) Kind() PayloadKind { return KindEmotion }

// ImageAttachment references an already uploaded image, possibly produced
// by the external style filter.
type ImageAttachment struct {
	URL  string
	Mime string
}

func (ImageAttachment) Kind() PayloadKind { return KindImage }

// ValidatePayload enforces the structural rules of each variant.
// maxBytes bounds the encoded size of the payload.
func ValidatePayload(p Payload, maxBytes int) error {
	if p == nil {
		return errors.ErrEmptyPayload
	}
	switch v := p.(type) {
	case TextPayload:
		if v.Body == "" {
			return errors.ErrEmptyPayload
		}
		if len(v.Body) > maxBytes {
			return errors.ErrPayloadTooLarge
		}
	case EmotionResult:
		if v.Emotion == "" {
			return errors.ErrEmptyPayload
		}
		if v.Confidence < 0 || v.Confidence > 1 {
			return fmt.Errorf("confidence %f out of range [0,1]", v.Confidence)
		}
	case ImageAttachment:
		if v.URL == "" {
			return errors.ErrEmptyPayload
		}
		if len(v.URL) > maxBytes {
			return errors.ErrPayloadTooLarge
		}
	default:
		return fmt.Errorf("unsupported payload kind %q", p.Kind())
	}
	return nil
}

// payloadEnvelope is the single wire and disk shape for every variant.
type payloadEnvelope struct {
	Kind       PayloadKind `json:"kind"`
	Body       string      `json:"body,omitempty"`
	Emotion    string      `json:"emotion,omitempty"`
	Confidence float64     `json:"confidence,omitempty"`
	URL        string      `json:"url,omitempty"`
	Mime       string      `json:"mime,omitempty"`
}

// EncodePayload serializes a payload into its JSON envelope.
func EncodePayload(p Payload) ([]byte, error) {
	if p == nil {
		return nil, errors.ErrEmptyPayload
	}
	env := payloadEnvelope{Kind: p.Kind()}
	switch v := p.(type) {
	case TextPayload:
		env.Body = v.Body
	case EmotionResult:
		env.Emotion = v.Emotion
		env.Confidence = v.Confidence
	case ImageAttachment:
		env.URL = v.URL
		env.Mime = v.Mime
	default:
		return nil, fmt.Errorf("unsupported payload kind %q", p.Kind())
	}
	return json.Marshal(env)
}

// DecodePayload parses a JSON envelope back into the matching variant.
func DecodePayload(data []byte) (Payload, error) {
	var env payloadEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	switch env.Kind {
	case KindText:
		return TextPayload{Body: env.Body}, nil
	case KindEmotion:
		return EmotionResult{Emotion: env.Emotion, Confidence: env.Confidence}, nil
	case KindImage:
		return ImageAttachment{URL: env.URL, Mime: env.Mime}, nil
	default:
		return nil, fmt.Errorf("unsupported payload kind %q", env.Kind)
	}
}
