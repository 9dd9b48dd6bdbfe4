package browser

import "testing"

func TestLocatorXPath(t *testing.T) {
	testCases := []struct {
		name     string
		label    string
		expected string
	}{
		{"Plain Label", "Mileage", `//td[contains(text(), 'Mileage')]/following-sibling::td`},
		{"Single Quote", "Owner's", `//td[contains(text(), "Owner's")]/following-sibling::td`},
		{"Both Quotes", `a'b"c`, `//td[contains(text(), concat('a', "'", 'b"c'))]/following-sibling::td`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := Label(tc.label).XPath()
			if result != tc.expected {
				t.Errorf("Label(%q).XPath() = %s; want %s", tc.label, result, tc.expected)
			}
		})
	}
}

func TestLocatorAndConditionString(t *testing.T) {
	if got := Selector("h2.link a").String(); got != "h2.link a" {
		t.Errorf("Selector String() = %q", got)
	}
	if got := Label("COE").String(); got != `label("COE")` {
		t.Errorf("Label String() = %q", got)
	}
	if got := Present(Selector("h1")).String(); got != "present h1" {
		t.Errorf("Present String() = %q", got)
	}
	if got := DocumentReady.String(); got != "document ready" {
		t.Errorf("DocumentReady String() = %q", got)
	}
}
