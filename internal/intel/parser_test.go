package intel

import (
	"testing"
)

func TestParseIndicator(t *testing.T) {
	cases := []struct {
		name  string
		line  string
		value string
		typ   IndicatorType
	}{
		{name: "bare domain", line: "phish.example.com", value: "phish.example.com", typ: IndicatorTypeDomain},
		{name: "uppercase with trailing dot", line: "Malware.Example.NET.", value: "malware.example.net", typ: IndicatorTypeDomain},
		{name: "csv row", line: "bad.example.com,2024-01-01,phishing", value: "bad.example.com", typ: IndicatorTypeDomain},
		{name: "hosts format", line: "0.0.0.0 ads.tracker.example", value: "ads.tracker.example", typ: IndicatorTypeDomain},
		{name: "hosts loopback format", line: "127.0.0.1\tcoin.miner.example # added", value: "coin.miner.example", typ: IndicatorTypeDomain},
		{name: "hosts localhost entry", line: "127.0.0.1 localhost", value: "", typ: ""},
		{name: "url", line: "https://login.fake-bank.example/session?id=1", value: "login.fake-bank.example", typ: IndicatorTypeDomain},
		{name: "url with ip host", line: "http://93.184.216.34/payload", value: "93.184.216.34", typ: IndicatorTypeIP},
		{name: "ipv4", line: "203.0.113.10", value: "203.0.113.10", typ: IndicatorTypeIP},
		{name: "ipv6", line: "2001:db8::1", value: "2001:db8::1", typ: IndicatorTypeIP},
		{name: "cidr", line: "198.51.100.7/24", value: "198.51.100.0/24", typ: IndicatorTypeCIDR},
		{name: "private address ignored", line: "192.168.1.1", value: "", typ: ""},
		{name: "email ignored", line: "someone@example.com", value: "", typ: ""},
		{name: "comment line", line: "# generated daily", value: "", typ: ""},
		{name: "single label", line: "intranet", value: "", typ: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			val, typ := parseIndicator(tc.line)
			if val != tc.value {
				t.Fatalf("expected value %q, got %q", tc.value, val)
			}

			if typ != tc.typ {
				t.Fatalf("expected type %q, got %q", tc.typ, typ)
			}
		})
	}
}

func TestSanitizeLine(t *testing.T) {
	cases := map[string]string{
		"example.com":              "example.com",
		"  example.com  ":          "example.com",
		"example.com # note":       "example.com",
		"example.com;note":         "example.com",
		"# whole line":             "",
		"":                         "",
		"0.0.0.0 bad.example #ads": "0.0.0.0 bad.example",
	}

	for input, want := range cases {
		if got := sanitizeLine(input); got != want {
			t.Errorf("sanitizeLine(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestSplitFields(t *testing.T) {
	got := splitFields("a.example, b.example;c.example|d.example\te.example")
	want := []string{"a.example", "b.example", "c.example", "d.example", "e.example"}

	if len(got) != len(want) {
		t.Fatalf("expected %d fields, got %d", len(want), len(got))
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("field %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestParseIndicatorType(t *testing.T) {
	for _, input := range []string{"domain", " Domain ", "IP", "cidr"} {
		if _, err := ParseIndicatorType(input); err != nil {
			t.Errorf("ParseIndicatorType(%q) returned %v", input, err)
		}
	}

	if _, err := ParseIndicatorType(""); err != ErrEmptyIndicatorType {
		t.Errorf("expected ErrEmptyIndicatorType, got %v", err)
	}

	if _, err := ParseIndicatorType("email"); err == nil {
		t.Error("expected an error for an unsupported type")
	}
}
