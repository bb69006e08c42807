package models

import "fmt"

var (
	ErrNoData           = fmt.Errorf("no candle data for the requested symbol and period")
	ErrUnknownStrategy  = fmt.Errorf("unknown strategy identifier")
	ErrInvalidParameter = fmt.Errorf("invalid parameter")
	ErrMissingParameter = fmt.Errorf("missing required parameter")
)
