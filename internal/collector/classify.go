package collector

import "encoding/json"

// signalKind is the classification of a raw upstream response before any
// payload parsing.
type signalKind int

const (
	signalOK signalKind = iota
	signalError
	signalRateLimited
)

// advisory holds the free-text signaling fields the upstream may attach to
// any response. Classification depends on field presence, not content:
// "Error Message" marks a data error, "Note" and "Information" are the two
// spellings of the quota advisory.
type advisory struct {
	ErrorMessage string `json:"Error Message"`
	Note         string `json:"Note"`
	Information  string `json:"Information"`
}

// classify applies the precedence rules shared by all three upstream calls:
// an explicit error field wins, then a rate/quota advisory. Payload presence
// is checked by the caller after an OK classification.
func classify(raw []byte) (signalKind, string) {
	var adv advisory
	if err := json.Unmarshal(raw, &adv); err != nil {
		return signalError, "malformed response: " + err.Error()
	}
	if adv.ErrorMessage != "" {
		return signalError, adv.ErrorMessage
	}
	if adv.Note != "" {
		return signalRateLimited, adv.Note
	}
	if adv.Information != "" {
		return signalRateLimited, adv.Information
	}
	return signalOK, ""
}
