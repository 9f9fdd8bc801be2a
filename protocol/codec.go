package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/krisp619/AI-Assisted-collaborative-Diagramming-Tool/domain"
)

// DecodeError reports a malformed inbound payload. Field is set when a
// required coordinate was absent.
type DecodeError struct {
	Field string
	cause error
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("decode segment: missing field %q", e.Field)
	}
	return fmt.Sprintf("decode segment: %v", e.cause)
}

func (e *DecodeError) Unwrap() error { return e.cause }

// wireSegment uses pointer coordinates so a missing field is distinguishable
// from a legitimate zero.
type wireSegment struct {
	PrevX *float64 `json:"prevX"`
	PrevY *float64 `json:"prevY"`
	X     *float64 `json:"x"`
	Y     *float64 `json:"y"`
	Color string   `json:"color"`
}

// Encode serializes one segment for the wire. An empty color is written as
// the default so receivers never see a colorless segment.
func Encode(seg domain.DrawSegment) ([]byte, error) {
	if seg.Color == "" {
		seg.Color = domain.DefaultColor
	}
	return json.Marshal(seg)
}

// Decode parses one wire message into a segment. Unknown fields are ignored;
// a missing coordinate or non-JSON payload yields a *DecodeError.
func Decode(data []byte) (domain.DrawSegment, error) {
	var w wireSegment
	if err := json.Unmarshal(data, &w); err != nil {
		return domain.DrawSegment{}, &DecodeError{cause: err}
	}

	switch {
	case w.PrevX == nil:
		return domain.DrawSegment{}, &DecodeError{Field: "prevX"}
	case w.PrevY == nil:
		return domain.DrawSegment{}, &DecodeError{Field: "prevY"}
	case w.X == nil:
		return domain.DrawSegment{}, &DecodeError{Field: "x"}
	case w.Y == nil:
		return domain.DrawSegment{}, &DecodeError{Field: "y"}
	}

	seg := domain.DrawSegment{
		PrevX: *w.PrevX,
		PrevY: *w.PrevY,
		X:     *w.X,
		Y:     *w.Y,
		Color: w.Color,
	}
	if seg.Color == "" {
		seg.Color = domain.DefaultColor
	}
	return seg, nil
}
