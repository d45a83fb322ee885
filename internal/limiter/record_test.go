package limiter

import "testing"

func TestRecordEncode(t *testing.T) {
	rec := record{Count: 3, ResetAt: 1_700_000_060}
	if got := rec.encode(); got != "3:1700000060" {
		t.Errorf("expected wire format \"3:1700000060\", got %q", got)
	}
}

func TestParseRecordRoundTrip(t *testing.T) {
	rec, err := parseRecord("3:1700000060")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Count != 3 || rec.ResetAt != 1_700_000_060 {
		t.Errorf("unexpected record %+v", rec)
	}
}

func TestParseRecordRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"", "3", "3:", ":100", "a:100", "3:b", "-1:100", "3:100:extra"} {
		if _, err := parseRecord(raw); err == nil {
			t.Errorf("expected parse error for %q", raw)
		}
	}
}
