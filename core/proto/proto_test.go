package proto

import (
	"errors"
	"testing"
	"time"
)

func TestClockPayloadKeepsLocalFields(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	at := time.Date(2024, 3, 1, 23, 45, 0, 0, loc)

	r, ok := DecodeClockPayload(ClockPayload(ReadingOf(at)))
	if !ok {
		t.Fatal("decode failed")
	}
	if r.Hour != 23 || r.Minute != 45 {
		t.Fatalf("local time = %02d:%02d, want 23:45", r.Hour, r.Minute)
	}
	if r.Offset != 5*3600 {
		t.Fatalf("offset = %d, want %d", r.Offset, 5*3600)
	}
	if r.Unix != at.Unix() {
		t.Fatalf("unix = %d, want %d", r.Unix, at.Unix())
	}
}

func TestDecodeClockPayloadRejectsGarbage(t *testing.T) {
	if _, ok := DecodeClockPayload([]byte{1, 2, 3}); ok {
		t.Fatal("expected short payload to fail")
	}
	bad := ClockPayload(ClockReading{Hour: 24})
	if _, ok := DecodeClockPayload(bad); ok {
		t.Fatal("expected out-of-range hour to fail")
	}
}

func TestOffsetsPayload(t *testing.T) {
	x, y, ok := DecodeOffsetsPayload(OffsetsPayload(0.25, 1))
	if !ok || x != 0.25 || y != 1 {
		t.Fatalf("offsets = %v,%v ok=%v", x, y, ok)
	}
	if _, _, ok := DecodeOffsetsPayload(nil); ok {
		t.Fatal("expected nil payload to fail")
	}
}

func TestSurfacePayloadClampsNegative(t *testing.T) {
	w, h, ok := DecodeSurfacePayload(SurfacePayload(-1, 1920))
	if !ok || w != 0 || h != 1920 {
		t.Fatalf("surface = %dx%d ok=%v, want 0x1920", w, h, ok)
	}
}

func TestVisibilityPayload(t *testing.T) {
	if v, ok := DecodeVisibilityPayload(VisibilityPayload(true)); !ok || !v {
		t.Fatal("expected visible")
	}
	if v, ok := DecodeVisibilityPayload(VisibilityPayload(false)); !ok || v {
		t.Fatal("expected hidden")
	}
}

func TestRemoteError(t *testing.T) {
	e, ok := AsError(ErrorPayload(ErrOverflow, MsgClockSubscribe, []byte("full")))
	if !ok {
		t.Fatal("decode failed")
	}
	var err error = e
	var re *RemoteError
	if !errors.As(err, &re) || re.Code != ErrOverflow {
		t.Fatalf("err = %v", err)
	}
	if got, want := err.Error(), "clock_subscribe: overflow: full"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}
