package utils

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/feLLpe04/Project3/internal/dimensions"
	"github.com/feLLpe04/Project3/internal/mortality"
)

// ParseSelectionParams reads ?year= and ?cause= into a selection. The year is
// normalized to its canonical spelling and the cause is kept byte for byte
// since it is matched exactly. A missing year falls back to the dataset's default year and a missing cause to
// mortality.AllCauses. Values that are not in the dataset are kept; they
// simply match nothing.
func ParseSelectionParams(params url.Values, dims dimensions.Dimensions) (mortality.Selection, map[string][]string) {
	fieldErrors := make(map[string][]string)

	rawYear := params.Get("year")
	selection := mortality.Selection{
		Year:  mortality.NormalizeYear(SanitizeInput(rawYear)),
		Cause: params.Get("cause"),
	}

	// Validation sees the raw value so trimming cannot hide control characters.
	if err := ValidateYear(rawYear); err != nil {
		fieldErrors["year"] = append(fieldErrors["year"], err.Error())
	}
	if err := ValidateCause(selection.Cause); err != nil {
		fieldErrors["cause"] = append(fieldErrors["cause"], err.Error())
	}

	if selection.Year == "" {
		if def, ok := dims.DefaultSelection(); ok {
			selection.Year = def.Year
		}
	}
	if selection.Cause == "" {
		selection.Cause = mortality.AllCauses
	}

	return selection, fieldErrors
}

// ParseIntParam retrieves an optional integer value from the provided URL
// query parameters. Invalid values are reported in fieldErrors.
func ParseIntParam(params url.Values, key string, fieldErrors map[string][]string) (int, bool, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}

	val := params.Get(key)
	if val == "" {
		return 0, false, fieldErrors
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		fieldErrors[key] = append(fieldErrors[key], fmt.Sprintf("Invalid field value for field %q.", key))
		return 0, false, fieldErrors
	}
	return n, true, fieldErrors
}
