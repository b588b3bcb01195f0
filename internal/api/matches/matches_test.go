package matches

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/omarshaarawi/matchclock/internal/config"
	"github.com/omarshaarawi/matchclock/internal/models"
)

func newTestAPI(t *testing.T, handler http.HandlerFunc) *API {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewAPI(NewClient(config.MatchAPI{BaseURL: srv.URL + "/", Token: "secret", Timeout: 5 * time.Second}))
}

func TestListMatches(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/matches" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query()["status"]; len(got) != 2 || got[0] != "live" || got[1] != "scheduled" {
			t.Errorf("status params = %v", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q", got)
		}
		w.Write([]byte(`{"matches":[{"id":"m1","status":"live","liveStartedAt":"2026-05-02T15:00:00Z","startTime":"2026-05-02T15:00:00Z","homeTeamName":"Ajax","awayTeamName":"PSV","homeScore":1}],"total":1}`))
	})

	got, err := api.ListMatches(context.Background(), models.StatusLive, models.StatusScheduled)
	if err != nil {
		t.Fatalf("ListMatches() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "m1" || got[0].Status != models.StatusLive || got[0].HomeScore != 1 {
		t.Fatalf("ListMatches() = %+v", got)
	}
	if got[0].LiveStartedAt == nil || got[0].CurrentMinute != nil {
		t.Errorf("anchors decoded wrong: %+v", got[0])
	}
}

func TestGetMatchErrorStatus(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/matches/a%2Fb" && r.URL.Path != "/matches/a/b" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.WriteHeader(http.StatusNotFound)
	})

	if _, err := api.GetMatch(context.Background(), "a/b"); err == nil {
		t.Error("expected an error for a 404")
	}
}
