package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// AtoiSlice converts a comma-separated string to an int slice
func AtoiSlice(s string) ([]int, error) {
	strVals := strings.Split(s, ",")
	intVals := make([]int, len(strVals))
	for i, strVal := range strVals {
		strVal = strings.TrimSpace(strVal)
		intVal, err := strconv.Atoi(strVal)
		if err != nil {
			return nil, fmt.Errorf("failed to convert '%s' to int: %v", strVal, err)
		}
		intVals[i] = intVal
	}

	return intVals, nil
}

// AtofSlice converts a comma-separated string to a float64 slice
func AtofSlice(s string) ([]float64, error) {
	strVals := strings.Split(s, ",")
	floatVals := make([]float64, len(strVals))
	for i, strVal := range strVals {
		strVal = strings.TrimSpace(strVal)
		floatVal, err := strconv.ParseFloat(strVal, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to convert '%s' to float: %v", strVal, err)
		}
		floatVals[i] = floatVal
	}

	return floatVals, nil
}

// ParseParamRanges parses "short_window=5,10,20;long_window=30,50" into the
// grid shape the parameter sweep consumes.
func ParseParamRanges(s string) (map[string][]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	ranges := make(map[string][]float64)
	for _, clause := range strings.Split(s, ";") {
		parts := strings.SplitN(clause, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid param range clause '%s': expected name=v1,v2,...", clause)
		}

		name := strings.TrimSpace(parts[0])
		if name == "" {
			return nil, fmt.Errorf("invalid param range clause '%s': empty param name", clause)
		}

		vals, err := AtofSlice(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid param range clause '%s': %v", clause, err)
		}

		ranges[name] = vals
	}

	return ranges, nil
}
