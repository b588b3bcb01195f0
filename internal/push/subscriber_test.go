package push

import (
	"context"
	"testing"
)

func TestDecode(t *testing.T) {
	got, err := Decode([]byte(`{"matchId":"m1","homeScore":2,"minute":45.5,"extra":true,"lineups":[1,2],"venue":null,"meta":{"a":1}}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	want := map[string]string{
		"matchId":   "m1",
		"homeScore": "2",
		"minute":    "45.5",
		"extra":     "true",
	}
	if len(got) != len(want) {
		t.Fatalf("Decode() = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("Decode()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestDecodeRejectsNonObjects(t *testing.T) {
	for _, in := range []string{``, `null`, `[1,2]`, `"m1"`, `{"matchId":`} {
		if _, err := Decode([]byte(in)); err == nil {
			t.Errorf("Decode(%q) expected an error", in)
		}
	}
}

type recordingHandler struct {
	got []map[string]string
}

func (h *recordingHandler) HandleLiveMatchData(_ context.Context, raw map[string]string) {
	h.got = append(h.got, raw)
}

func TestHandleDropsBadPayloads(t *testing.T) {
	h := &recordingHandler{}
	s := &Subscriber{subject: "matches.live.m1", handler: h}

	s.handle(context.Background(), []byte(`not json`))
	s.handle(context.Background(), []byte(`{"matchId":"m1","homeTeamName":"Ajax","awayTeamName":"PSV"}`))

	if len(h.got) != 1 || h.got[0]["homeTeamName"] != "Ajax" {
		t.Errorf("handled = %v", h.got)
	}
}

func TestHandleAfterCloseIsDropped(t *testing.T) {
	h := &recordingHandler{}
	s := &Subscriber{subject: "matches.live.m1", handler: h}

	s.Close()
	s.Close()
	s.handle(context.Background(), []byte(`{"matchId":"m1","homeTeamName":"Ajax","awayTeamName":"PSV"}`))

	if len(h.got) != 0 {
		t.Errorf("handled after Close = %v", h.got)
	}
}
