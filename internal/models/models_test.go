package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestDifficultyPoints(t *testing.T) {
	expected := map[Difficulty]int{
		DifficultyEasy:     10,
		DifficultyMedium:   20,
		DifficultyHard:     30,
		DifficultyVeryHard: 40,
	}
	for d, want := range expected {
		if got := d.Points(); got != want {
			t.Errorf("%s: points = %d, want %d", d, got, want)
		}
	}
	if got := Difficulty("impossible").Points(); got != 0 {
		t.Errorf("unknown difficulty points = %d, want 0", got)
	}
}

func TestDifficultyValid(t *testing.T) {
	for _, d := range Difficulties() {
		if !d.Valid() {
			t.Errorf("%s should be valid", d)
		}
	}
	if Difficulty("brutal").Valid() {
		t.Error("brutal should not be valid")
	}
	if Difficulty("").Valid() {
		t.Error("empty difficulty should not be valid")
	}
}

func TestSubjectValid(t *testing.T) {
	for _, s := range Subjects() {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if Subject("Alchemy").Valid() {
		t.Error("Alchemy should not be valid")
	}
}

func TestHasAnswer(t *testing.T) {
	q := Question{Options: []string{"a", "b"}, Answer: "b"}
	if !q.HasAnswer() {
		t.Error("answer present in options but HasAnswer is false")
	}
	q.Answer = "z"
	if q.HasAnswer() {
		t.Error("answer absent from options but HasAnswer is true")
	}
}

func TestQuestionViewRedacts(t *testing.T) {
	q := &Question{
		Text:        "Capital of France?",
		Options:     []string{"Paris", "Lyon"},
		Answer:      "Paris",
		Difficulty:  DifficultyEasy,
		Subject:     SubjectGeography,
		Explanation: "Paris has been the capital since 987.",
	}

	data, err := json.Marshal(NewQuestionView(0, q))
	if err != nil {
		t.Fatal(err)
	}
	body := string(data)
	if strings.Contains(body, `"answer"`) || strings.Contains(body, "987") {
		t.Errorf("view leaks answer or explanation: %s", body)
	}
}

func TestDuelViewHidesQuestions(t *testing.T) {
	d := &Duel{
		ID:      "d-1",
		Status:  DuelInProgress,
		Questions: []Question{
			{Text: "q1", Options: []string{"a", "b"}, Answer: "a"},
			{Text: "q2", Options: []string{"a", "b"}, Answer: "b"},
		},
		ExpiresAt: time.Now().Add(time.Hour),
	}

	v := d.View()
	if v.QuestionCount != 2 {
		t.Errorf("question count = %d", v.QuestionCount)
	}
	if v.Current == nil || v.Current.Text != "q1" {
		t.Fatalf("current question missing from view")
	}

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	// only the current question's text may appear, never the full list or answers
	if strings.Contains(string(data), "q2") || strings.Contains(string(data), `"answer"`) {
		t.Errorf("view leaks upcoming questions or answers: %s", data)
	}
}

func TestDuelViewTerminalHasNoCurrent(t *testing.T) {
	d := &Duel{
		ID:           "d-2",
		Status:       DuelComplete,
		Questions:    []Question{{Text: "q1", Options: []string{"a", "b"}, Answer: "a"}},
		CurrentIndex: 0,
	}
	if v := d.View(); v.Current != nil {
		t.Error("terminal duel view offers a current question")
	}
}

func TestRoundThinkTimeSerializesAsMillis(t *testing.T) {
	r := Round{OpponentThinkTimeMs: 1500}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"opponent_think_time_ms":1500`) {
		t.Errorf("think time not serialized as milliseconds: %s", data)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	d := &Duel{
		ID:        "d-1",
		Status:    DuelInProgress,
		Questions: []Question{{Text: "q1", Options: []string{"a", "b"}, Answer: "a"}},
		Rounds:    []Round{{Index: 0, UserAnswer: "a"}},
	}

	c := d.Clone()
	d.Rounds[0].UserAnswer = "b"
	d.Rounds = append(d.Rounds, Round{Index: 1})
	d.Status = DuelComplete

	if len(c.Rounds) != 1 || c.Rounds[0].UserAnswer != "a" {
		t.Errorf("clone shares round storage: %+v", c.Rounds)
	}
	if c.Status != DuelInProgress {
		t.Errorf("clone shares status: %s", c.Status)
	}
}

func TestStatusTerminal(t *testing.T) {
	if DuelInProgress.IsTerminal() {
		t.Error("in_progress is not terminal")
	}
	if !DuelComplete.IsTerminal() || !DuelExpired.IsTerminal() {
		t.Error("complete and expired are terminal")
	}
}

func TestHasPermission(t *testing.T) {
	c := &ApiClient{
		IsActive:    true,
		Permissions: []string{"duels:read", "results:*"},
	}

	cases := []struct {
		perm string
		want bool
	}{
		{"duels:read", true},
		{"duels:write", false},
		{"results:read", true},
		{"results:write", true},
		{"admin:read", false},
	}
	for _, tc := range cases {
		if got := c.HasPermission(tc.perm); got != tc.want {
			t.Errorf("HasPermission(%q) = %v, want %v", tc.perm, got, tc.want)
		}
	}

	c.IsActive = false
	if c.HasPermission("duels:read") {
		t.Error("inactive client retains permissions")
	}

	var nilClient *ApiClient
	if nilClient.HasPermission("duels:read") {
		t.Error("nil client has permissions")
	}
}

func TestWildcardPermission(t *testing.T) {
	c := &ApiClient{IsActive: true, Permissions: []string{"*"}}
	for _, perm := range []string{"duels:read", "duels:write", "results:read"} {
		if !c.HasPermission(perm) {
			t.Errorf("global wildcard denies %q", perm)
		}
	}
}

func TestMaskedApiKey(t *testing.T) {
	c := &ApiClient{ApiKey: "sk_live_abcdef123456"}
	masked := c.MaskedApiKey()
	if masked != "sk_live_..." {
		t.Errorf("masked = %q", masked)
	}
	short := &ApiClient{ApiKey: "abc"}
	if short.MaskedApiKey() != "***" {
		t.Errorf("short key masked = %q", short.MaskedApiKey())
	}
}
