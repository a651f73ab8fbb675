package apperror

import (
	"errors"
	"strings"
)

// User-facing messages returned by Classify.
const (
	MsgBusy         = "🔄 The AI service is currently busy. Please try again in a few moments."
	MsgAuth         = "🔐 Authentication issue with the AI service. Please contact support."
	MsgThrottled    = "⏳ Too many requests. Please wait a moment and try again."
	MsgSlow         = "⏱️ The analysis is taking longer than expected. Please try again."
	MsgConnectivity = "🌐 Network connectivity issue. Please check your internet connection."
	MsgOversize     = "📁 The uploaded image is too large. Please use a smaller image file."
	MsgBadFormat    = "🖼️ Invalid image format. Please upload a valid chart image (PNG, JPG, or GIF)."
	MsgGeneric      = "⚠️ Something went wrong during analysis. Please try again or contact support."
	MsgEmptyPayload = "📁 The uploaded file is empty. Please select a valid image file."
)

// textRule is one row of the substring table. All of its terms must be present.
type textRule struct {
	anyOf   []string
	allOf   []string
	message string
}

// textRules is checked in order; the first match wins.
var textRules = []textRule{
	{anyOf: []string{"503", "overloaded", "unavailable"}, message: MsgBusy},
	{anyOf: []string{"401", "unauthorized"}, message: MsgAuth},
	{anyOf: []string{"429", "rate limit"}, message: MsgThrottled},
	{anyOf: []string{"timeout"}, message: MsgSlow},
	{anyOf: []string{"network", "connection"}, message: MsgConnectivity},
	{allOf: []string{"file", "size"}, message: MsgOversize},
	{allOf: []string{"invalid", "image"}, message: MsgBadFormat},
}

// kindMessages maps kinds with a fixed user message.
var kindMessages = map[Kind]string{
	KindUnavailable:      MsgBusy,
	KindUnauthorized:     MsgAuth,
	KindRateLimited:      MsgThrottled,
	KindTimeout:          MsgSlow,
	KindNetwork:          MsgConnectivity,
	KindPayloadTooLarge:  MsgOversize,
	KindInvalidMediaType: MsgBadFormat,
	KindEmptyPayload:     MsgEmptyPayload,
}

// Classify converts an error into a user-facing message. It never panics.
//
// Tagged errors are mapped by kind. An exhausted fallback chain is classified
// by its last failure. Untagged errors and generic provider failures fall back
// to ClassifyText on the raw error text.
func Classify(err error) string {
	if err == nil {
		return MsgGeneric
	}
	var e *Error
	if !errors.As(err, &e) {
		return ClassifyText(err.Error())
	}
	if msg, ok := kindMessages[e.Kind]; ok {
		return msg
	}
	switch e.Kind {
	case KindProvidersExhausted:
		if e.Err == nil {
			return MsgGeneric
		}
		return Classify(e.Err)
	case KindInvalidRequest:
		if e.Message != "" {
			return e.Message
		}
		return MsgGeneric
	}
	return ClassifyText(err.Error())
}

// ClassifyText maps raw error text to a user-facing message using a
// case-insensitive substring match.
func ClassifyText(raw string) string {
	lower := strings.ToLower(raw)
	for _, r := range textRules {
		if r.matches(lower) {
			return r.message
		}
	}
	return MsgGeneric
}

func (r textRule) matches(lower string) bool {
	if len(r.allOf) > 0 {
		for _, term := range r.allOf {
			if !strings.Contains(lower, term) {
				return false
			}
		}
		return true
	}
	for _, term := range r.anyOf {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
