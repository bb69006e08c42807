package models

type PositionState string

const (
	PositionStateFlat PositionState = "FLAT"
	PositionStateLong PositionState = "LONG"
)
