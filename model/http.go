package model

import (
	"github.com/jsphweid/buzzer/player"
	"github.com/jsphweid/buzzer/score"
)

type ListResponse struct {
	Melodies []string `json:"melodies"`
}

type MelodyResponse struct {
	Name     string         `json:"name"`
	Length   int            `json:"length"`
	Duration uint32         `json:"duration_ms"`
	Notes    []score.Entry  `json:"notes"`
	Timeline []player.Event `json:"timeline"`
	// NOTE: notes under the buzzer's frequency floor, still played as is
	LowNotes int `json:"low_notes"`
}

type PutRequestBody struct {
	Notes []score.Entry `json:"notes"`
}

type PlayResponse struct {
	Job    string `json:"job"`
	Name   string `json:"name"`
	Queued bool   `json:"queued"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
