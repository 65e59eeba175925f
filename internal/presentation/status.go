package presentation

import (
	"fmt"
	"strconv"
)

// Tone selects how a status message is styled.
type Tone string

const (
	ToneNone    Tone = ""
	ToneInfo    Tone = "info"
	ToneSuccess Tone = "success"
	ToneError   Tone = "error"
)

// Status is the one-line outcome shown under the controls.
type Status struct {
	Text string `json:"text"`
	Tone Tone   `json:"tone"`
}

// Info is a neutral progress message, such as a pending location request.
func Info(text string) Status { return Status{Text: text, Tone: ToneInfo} }

// Error reports a failed user action. The reference point is never changed
// alongside an Error status.
func Error(text string) Status { return Status{Text: text, Tone: ToneError} }

// Found is shown once a reference point is known.
func Found(radiusKm float64) Status {
	return Status{
		Text: fmt.Sprintf("Location found! Showing nearby mosques within %s km.", formatKm(radiusKm)),
		Tone: ToneSuccess,
	}
}

func formatKm(km float64) string {
	return strconv.FormatFloat(km, 'f', -1, 64)
}
