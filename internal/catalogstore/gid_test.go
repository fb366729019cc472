package catalogstore

import (
	"errors"
	"testing"
)

func TestGlobalIdEncodeDecodeRoundTrip(t *testing.T) {
	cases := []GlobalId{SystemID(0), SystemID(5044), UserID(0), UserID(7), UserID(1<<40 + 3)}
	for _, id := range cases {
		b, err := encodeGlobalId(id)
		if err != nil {
			t.Fatalf("encodeGlobalId(%s): %v", id, err)
		}
		got, err := decodeGlobalId(b)
		if err != nil {
			t.Fatalf("decodeGlobalId(%q): %v", b, err)
		}
		if got != id {
			t.Fatalf("round trip mismatch: want %s, got %s", id, got)
		}
	}
}

func TestGlobalIdEncodeRejectsTransientAndExplain(t *testing.T) {
	for _, id := range []GlobalId{TransientID(1), ExplainID} {
		_, err := encodeGlobalId(id)
		var codecErr *CodecError
		if !errors.As(err, &codecErr) {
			t.Fatalf("expected encodeGlobalId(%s) to fail with a CodecError, got %v", id, err)
		}
	}
}

func TestDecodeGlobalIdRejectsGarbage(t *testing.T) {
	for _, blob := range []string{"", "not json", `{"Transient":1}`, `{}`} {
		_, err := decodeGlobalId([]byte(blob))
		var codecErr *CodecError
		if !errors.As(err, &codecErr) {
			t.Fatalf("expected decodeGlobalId(%q) to fail with a CodecError, got %v", blob, err)
		}
	}
}

func TestGlobalIdStringAndParse(t *testing.T) {
	cases := []struct {
		id   GlobalId
		text string
	}{
		{SystemID(42), "s42"},
		{UserID(7), "u7"},
		{TransientID(3), "t3"},
	}
	for _, c := range cases {
		if got := c.id.String(); got != c.text {
			t.Fatalf("String(%v) = %q, want %q", c.id, got, c.text)
		}
		parsed, err := ParseGlobalId(c.text)
		if err != nil {
			t.Fatalf("ParseGlobalId(%q): %v", c.text, err)
		}
		if parsed != c.id {
			t.Fatalf("ParseGlobalId(%q) = %v, want %v", c.text, parsed, c.id)
		}
	}

	if got := ExplainID.String(); got != "Explained Query" {
		t.Fatalf("ExplainID.String() = %q, want %q", got, "Explained Query")
	}

	if _, err := ParseGlobalId("xyz"); err == nil {
		t.Fatalf("expected ParseGlobalId to reject an unknown prefix")
	}
	if _, err := ParseGlobalId(""); err == nil {
		t.Fatalf("expected ParseGlobalId to reject an empty string")
	}
}

func TestPartitionIdStringAndParse(t *testing.T) {
	if got := KafkaPartition(5).String(); got != "5" {
		t.Fatalf("KafkaPartition(5).String() = %q, want %q", got, "5")
	}
	if got := NoPartition.String(); got != "none" {
		t.Fatalf("NoPartition.String() = %q, want %q", got, "none")
	}

	p, err := ParsePartitionId("5")
	if err != nil || p != KafkaPartition(5) {
		t.Fatalf("ParsePartitionId(\"5\") = %v, %v; want KafkaPartition(5), nil", p, err)
	}
	p, err = ParsePartitionId("none")
	if err != nil || p != NoPartition {
		t.Fatalf("ParsePartitionId(\"none\") = %v, %v; want NoPartition, nil", p, err)
	}
	if _, err := ParsePartitionId("abc"); err == nil {
		t.Fatalf("expected ParsePartitionId to reject non-numeric, non-none input")
	}
}
