package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// The collection-valued fields of the domain records are denormalized into
// JSON text columns. Each column type below is the serialization boundary
// for one shape: Value encodes, Scan decodes, a SQL NULL or empty string
// decodes to an empty collection, and an unrecognized enum token is a
// storage error.

func scanJSONColumn(value any, dest any) (empty bool, err error) {
	if value == nil {
		return true, nil
	}
	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return false, fmt.Errorf("cannot scan %T into JSON column", value)
	}
	if len(raw) == 0 {
		return true, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decoding JSON column: %w", err)
	}
	return false, nil
}

func jsonColumnValue(v any) (driver.Value, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding JSON column: %w", err)
	}
	return string(raw), nil
}

// PositionList stores a set of positions as a JSON array of position tokens.
type PositionList []Position

func (l PositionList) Value() (driver.Value, error) {
	if l == nil {
		l = PositionList{}
	}
	return jsonColumnValue(l)
}

func (l *PositionList) Scan(value any) error {
	var tokens []string
	empty, err := scanJSONColumn(value, &tokens)
	if err != nil {
		return err
	}
	out := make(PositionList, 0, len(tokens))
	if !empty {
		for _, tok := range tokens {
			p, err := ParsePosition(tok)
			if err != nil {
				return err
			}
			out = append(out, p)
		}
	}
	*l = out
	return nil
}

func (l PositionList) Contains(p Position) bool {
	for _, have := range l {
		if have == p {
			return true
		}
	}
	return false
}

// SkillLevelMap stores per-position skill levels as a JSON object of
// position token to skill token.
type SkillLevelMap map[Position]SkillLevel

func (m SkillLevelMap) Value() (driver.Value, error) {
	encoded := make(map[string]string, len(m))
	for p, s := range m {
		encoded[string(p)] = string(s)
	}
	return jsonColumnValue(encoded)
}

func (m *SkillLevelMap) Scan(value any) error {
	var tokens map[string]string
	empty, err := scanJSONColumn(value, &tokens)
	if err != nil {
		return err
	}
	out := make(SkillLevelMap, len(tokens))
	if !empty {
		for posTok, skillTok := range tokens {
			p, err := ParsePosition(posTok)
			if err != nil {
				return err
			}
			s, err := ParseSkillLevel(skillTok)
			if err != nil {
				return err
			}
			out[p] = s
		}
	}
	*m = out
	return nil
}

// StringList stores free-form tags (trainings, preferred shift names,
// reported issues) as a JSON array.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return jsonColumnValue(l)
}

func (l *StringList) Scan(value any) error {
	out := StringList{}
	if _, err := scanJSONColumn(value, &out); err != nil {
		return err
	}
	if out == nil {
		out = StringList{}
	}
	*l = out
	return nil
}

func (l StringList) Contains(s string) bool {
	for _, have := range l {
		if have == s {
			return true
		}
	}
	return false
}

// IDList stores a list of employee ids as a JSON array.
type IDList []uint

func (l IDList) Value() (driver.Value, error) {
	if l == nil {
		l = IDList{}
	}
	return jsonColumnValue(l)
}

func (l *IDList) Scan(value any) error {
	out := IDList{}
	if _, err := scanJSONColumn(value, &out); err != nil {
		return err
	}
	if out == nil {
		out = IDList{}
	}
	*l = out
	return nil
}

func (l IDList) Contains(id uint) bool {
	for _, have := range l {
		if have == id {
			return true
		}
	}
	return false
}

// WeekDaySet stores applicable weekdays as a JSON array of day indices.
type WeekDaySet []WeekDay

func (s WeekDaySet) Value() (driver.Value, error) {
	if s == nil {
		s = WeekDaySet{}
	}
	return jsonColumnValue(s)
}

func (s *WeekDaySet) Scan(value any) error {
	var days []int
	empty, err := scanJSONColumn(value, &days)
	if err != nil {
		return err
	}
	out := make(WeekDaySet, 0, len(days))
	if !empty {
		for _, d := range days {
			day := WeekDay(d)
			if !day.Valid() {
				return fmt.Errorf("unknown weekday index %d", d)
			}
			out = append(out, day)
		}
	}
	*s = out
	return nil
}

func (s WeekDaySet) Contains(d WeekDay) bool {
	for _, have := range s {
		if have == d {
			return true
		}
	}
	return false
}

// BreakPeriod is one break window inside an assignment.
type BreakPeriod struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// BreakTimes stores an assignment's break windows as a JSON array of
// start/end pairs.
type BreakTimes []BreakPeriod

func (b BreakTimes) Value() (driver.Value, error) {
	if b == nil {
		b = BreakTimes{}
	}
	return jsonColumnValue(b)
}

func (b *BreakTimes) Scan(value any) error {
	out := BreakTimes{}
	if _, err := scanJSONColumn(value, &out); err != nil {
		return err
	}
	if out == nil {
		out = BreakTimes{}
	}
	*b = out
	return nil
}
