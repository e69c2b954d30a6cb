package timeline

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want Kind
	}{
		{"[music]", KindDescription},
		{"Он сказал [смеётся]", KindDescription},
		{"Where are you going?", KindTranslation},
		{"Куда ты идёшь?", KindMain},
		{"你要去哪里", KindMain},
		{"", KindMain},
		{"42", KindMain},
	}
	for _, tt := range tests {
		if got := Classify(tt.text); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestKindFor_AssignedWins(t *testing.T) {
	item := Interval{Payload: Payload{Text: "[door slams]"}, AssignedKind: KindGeneric}
	if got := KindFor(item); got != KindGeneric {
		t.Errorf("KindFor() = %q, want generic", got)
	}
	item.AssignedKind = ""
	if got := KindFor(item); got != KindDescription {
		t.Errorf("KindFor() = %q, want description", got)
	}
}
