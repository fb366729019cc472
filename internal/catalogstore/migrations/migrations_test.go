package migrations

import "testing"

func TestAllIsOrderedAndContiguous(t *testing.T) {
	for i, step := range All {
		if step.Index != i {
			t.Fatalf("migration at position %d has Index %d, want %d", i, step.Index, i)
		}
		if step.Name == "" {
			t.Fatalf("migration %d has an empty name", i)
		}
		if step.Run == nil {
			t.Fatalf("migration %d has a nil Run func", i)
		}
	}
}

func TestDecodeSidDisplay(t *testing.T) {
	cases := []struct {
		blob string
		want string
	}{
		{`{"System":42}`, "s42"},
		{`{"User":7}`, "u7"},
	}
	for _, c := range cases {
		s, err := decodeSid([]byte(c.blob))
		if err != nil {
			t.Fatalf("decodeSid(%q): %v", c.blob, err)
		}
		if s.String() != c.want {
			t.Fatalf("decodeSid(%q).String() = %q, want %q", c.blob, s.String(), c.want)
		}
	}
}
