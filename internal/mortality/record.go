package mortality

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// AllCauses is the synthetic cause meaning "no cause filter".
	AllCauses = "All causes"

	SexMale      = "Male"
	SexFemale    = "Female"
	SexUndefined = ""
)

var (
	ErrNotAnObject  = errors.New("record is not a JSON object")
	ErrMissingYear  = errors.New("record has no Year")
	ErrInvalidYear  = errors.New("Year must be a number or a string")
	ErrNegativeDead = errors.New("Total_deaths must be non-negative")
)

// Year holds a year in its normalized string form, so that a dataset storing
// 2020 as a number and a selector holding "2020" compare equal.
type Year string

// IntYear returns the normalized Year for an integer year.
func IntYear(y int) Year {
	return Year(strconv.Itoa(y))
}

// NormalizeYear maps equivalent year spellings ("2020", " 2020", "2020.0",
// 2020) onto one representation. Non-numeric input is returned trimmed.
func NormalizeYear(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return s
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Equal reports whether y and other denote the same year after normalization.
func (y Year) Equal(other string) bool {
	return NormalizeYear(string(y)) == NormalizeYear(other)
}

func (y Year) String() string {
	return string(y)
}

// MarshalJSON writes numeric years as JSON numbers and anything else as a string.
func (y Year) MarshalJSON() ([]byte, error) {
	s := string(y)
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return []byte(s), nil
	}
	return json.Marshal(s)
}

func (y *Year) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return ErrMissingYear
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidYear, err)
		}
		*y = Year(NormalizeYear(s))
		return nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidYear, err)
		}
		*y = Year(NormalizeYear(n.String()))
		return nil
	default:
		return ErrInvalidYear
	}
}

// Record is one row of the mortality dataset.
type Record struct {
	Year        Year    `json:"Year"`
	CauseName   string  `json:"Cause_Name"`
	Sex         string  `json:"Sex"`
	TotalDeaths float64 `json:"Total_deaths"`
}

type rawRecord struct {
	Year        json.RawMessage `json:"Year"`
	CauseName   *string         `json:"Cause_Name"`
	Sex         *string         `json:"Sex"`
	TotalDeaths *float64        `json:"Total_deaths"`
}

// UnmarshalJSON enforces the dataset row shape. Missing Cause_Name and Sex
// decode as "", a missing Total_deaths as 0. Extra fields are ignored.
func (r *Record) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return ErrNotAnObject
	}

	var raw rawRecord
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return err
	}

	var year Year
	if err := year.UnmarshalJSON(raw.Year); err != nil {
		return err
	}

	rec := Record{Year: year}
	if raw.CauseName != nil {
		rec.CauseName = *raw.CauseName
	}
	if raw.Sex != nil {
		rec.Sex = *raw.Sex
	}
	if raw.TotalDeaths != nil {
		if *raw.TotalDeaths < 0 {
			return fmt.Errorf("%w: got %v", ErrNegativeDead, *raw.TotalDeaths)
		}
		rec.TotalDeaths = *raw.TotalDeaths
	}

	*r = rec
	return nil
}

// Selection is the pair of values currently chosen in the two selectors.
type Selection struct {
	Year  string `json:"year"`
	Cause string `json:"cause"`
}

// Matches reports whether r falls inside the selection: same year after
// normalization, and either the sentinel cause or an exact cause match.
func (s Selection) Matches(r Record) bool {
	if !r.Year.Equal(s.Year) {
		return false
	}
	return s.Cause == AllCauses || r.CauseName == s.Cause
}
