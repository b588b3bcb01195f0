package matches

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/omarshaarawi/matchclock/internal/models"
)

type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

// ListMatches fetches matches in the given phases; no phases means all.
func (a *API) ListMatches(ctx context.Context, statuses ...models.MatchStatus) ([]models.MatchSnapshot, error) {
	var resp models.MatchListResponse

	params := map[string]string{}
	if len(statuses) > 0 {
		names := make([]string, len(statuses))
		for i, s := range statuses {
			names[i] = string(s)
		}
		params["status"] = strings.Join(names, ",")
	}

	if err := a.client.Get(ctx, "/matches", params, &resp); err != nil {
		return nil, fmt.Errorf("fetching matches: %w", err)
	}
	return resp.Matches, nil
}

func (a *API) GetMatch(ctx context.Context, id string) (models.MatchSnapshot, error) {
	var resp models.MatchResponse
	if err := a.client.Get(ctx, "/matches/"+url.PathEscape(id), nil, &resp); err != nil {
		return models.MatchSnapshot{}, fmt.Errorf("fetching match %s: %w", id, err)
	}
	return resp.Match, nil
}
