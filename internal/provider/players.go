package provider

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/scout-profile/internal/candidate"
)

const (
	PlayersPath = "/players"
	TeamsPath   = "/teams"
)

type player struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Position    string   `json:"position"`
	DateOfBirth string   `json:"date_of_birth"`
	MarketValue *float64 `json:"market_value"`
	Nationality string   `json:"nationality"`
	Clubs       []club   `json:"clubs"`
}

type club struct {
	Club          string `json:"club"`
	Joined        string `json:"joined"`
	Left          string `json:"left"`
	ContractUntil string `json:"contract_until"`
}

// GetPlayer fetches one player by id.
func (c *Client) GetPlayer(ctx context.Context, id string) (*candidate.Attributes, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("player id is empty")
	}

	var raw map[string]any
	if err := c.getJSON(ctx, fmt.Sprintf("%s%s/%s", c.BaseURL, PlayersPath, url.PathEscape(id)), nil, &raw); err != nil {
		return nil, fmt.Errorf("get player %s: %w", id, err)
	}

	var p player
	if err := decode(raw, &p); err != nil {
		return nil, fmt.Errorf("decode player %s: %w", id, err)
	}

	return c.toAttributes(&p), nil
}

// GetSquad fetches every player of a team across all pages.
func (c *Client) GetSquad(ctx context.Context, teamID string) ([]*candidate.Attributes, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, fmt.Errorf("team id is empty")
	}

	items, err := c.GetItems(ctx, fmt.Sprintf("%s%s/%s/players", c.BaseURL, TeamsPath, url.PathEscape(teamID)), nil)
	if err != nil {
		return nil, fmt.Errorf("get squad of team %s: %w", teamID, err)
	}

	var players []*player
	if err := decode(items, &players); err != nil {
		return nil, fmt.Errorf("decode squad of team %s: %w", teamID, err)
	}

	out := make([]*candidate.Attributes, 0, len(players))
	for _, p := range players {
		if p == nil {
			continue
		}
		out = append(out, c.toAttributes(p))
	}

	c.logger.Debug("fetched squad", zap.String("team", teamID), zap.Int("players", len(out)))
	return out, nil
}

// decode is lenient about scalar types: numeric ids become strings and
// quoted numbers become market values.
func decode(input, result any) error {
	cfg := &mapstructure.DecoderConfig{
		Metadata:         nil,
		Result:           result,
		TagName:          "json",
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

func (c *Client) toAttributes(p *player) *candidate.Attributes {
	a := &candidate.Attributes{
		ID:          p.ID,
		Name:        strings.TrimSpace(p.Name),
		Position:    strings.TrimSpace(p.Position),
		DateOfBirth: c.parseDate(p.ID, "date_of_birth", p.DateOfBirth),
		MarketValue: p.MarketValue,
		Nationality: strings.TrimSpace(p.Nationality),
	}

	for _, cl := range p.Clubs {
		a.Clubs = append(a.Clubs, candidate.Affiliation{
			Club:          strings.TrimSpace(cl.Club),
			Joined:        c.parseDate(p.ID, "joined", cl.Joined),
			Left:          c.parseDate(p.ID, "left", cl.Left),
			ContractUntil: c.parseDate(p.ID, "contract_until", cl.ContractUntil),
		})
	}

	return a
}

// parseDate drops values it cannot read; an unknown date only skips a
// scoring term.
func (c *Client) parseDate(playerID, field, value string) *candidate.Date {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	d, err := candidate.ParseDate(value)
	if err != nil {
		c.logger.Debug("ignoring unparsable date",
			zap.String("player", playerID),
			zap.String("field", field),
			zap.String("value", value),
		)
		return nil
	}
	return d
}
