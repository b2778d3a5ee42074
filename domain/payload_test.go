package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mood-chat/errors"
)

func TestValidatePayload_Text(t *testing.T) {
	req := require.New(t)

	req.NoError(ValidatePayload(TextPayload{Body: "hello"}, 64))
	req.ErrorIs(ValidatePayload(TextPayload{}, 64), errors.ErrEmptyPayload)
	req.ErrorIs(ValidatePayload(TextPayload{Body: "way too long for the limit"}, 8), errors.ErrPayloadTooLarge)
	req.ErrorIs(ValidatePayload(nil, 64), errors.ErrEmptyPayload)
}

func TestValidatePayload_Emotion(t *testing.T) {
	req := require.New(t)

	req.NoError(ValidatePayload(EmotionResult{Emotion: "happy", Confidence: 0.92}, 64))
	req.Error(ValidatePayload(EmotionResult{Emotion: "happy", Confidence: 1.2}, 64))
	req.ErrorIs(ValidatePayload(EmotionResult{Confidence: 0.5}, 64), errors.ErrEmptyPayload)
}

func TestPayload_Codec_RoundTrip(t *testing.T) {
	req := require.New(t)
	payloads := []Payload{
		TextPayload{Body: "bonjour"},
		EmotionResult{Emotion: "surprised", Confidence: 0.71},
		ImageAttachment{URL: "/uploads/cat.png", Mime: "image/png"},
	}

	for _, p := range payloads {
		data, err := EncodePayload(p)
		req.NoError(err)

		decoded, err := DecodePayload(data)
		req.NoError(err)
		req.Equal(p, decoded)
	}
}

func TestPayload_Decode_UnknownKind(t *testing.T) {
	req := require.New(t)

	_, err := DecodePayload([]byte(`{"kind":"sticker"}`))
	req.Error(err)
}
