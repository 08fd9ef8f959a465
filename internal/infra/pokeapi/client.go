// Package pokeapi fetches species listings, details and ability descriptions from PokeAPI.
package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yanqian/pikacalc/internal/domain/roster"
	"github.com/yanqian/pikacalc/internal/domain/stats"
	"github.com/yanqian/pikacalc/internal/domain/typechart"
)

const (
	defaultBaseURL = "https://pokeapi.co/api/v2"
	defaultTimeout = 15 * time.Second
)

// Client implements roster.Source over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an API client. Empty or non-positive arguments fall back to defaults.
func NewClient(baseURL string, timeout time.Duration) *Client {
	u := strings.TrimSpace(baseURL)
	if u == "" {
		u = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(u, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ListSpecies fetches one page of summary pointers.
func (c *Client) ListSpecies(ctx context.Context, limit, offset int) (roster.Page, error) {
	q := url.Values{}
	q.Set("limit", fmt.Sprint(limit))
	q.Set("offset", fmt.Sprint(offset))

	var raw listResponse
	if err := c.getJSON(ctx, c.baseURL+"/pokemon?"+q.Encode(), &raw); err != nil {
		return roster.Page{}, fmt.Errorf("list species: %w", err)
	}

	page := roster.Page{Count: raw.Count, Results: make([]roster.SpeciesRef, 0, len(raw.Results))}
	for _, r := range raw.Results {
		page.Results = append(page.Results, roster.SpeciesRef{Name: r.Name, URL: r.URL})
	}
	return page, nil
}

// FetchSpecies resolves a summary pointer into a full record.
func (c *Client) FetchSpecies(ctx context.Context, ref roster.SpeciesRef) (roster.Species, error) {
	endpoint := strings.TrimSpace(ref.URL)
	if endpoint == "" {
		endpoint = c.baseURL + "/pokemon/" + url.PathEscape(ref.Name)
	}
	return c.fetchDetail(ctx, endpoint)
}

// LookupSpecies resolves a species by slug or numeric id.
func (c *Client) LookupSpecies(ctx context.Context, nameOrID string) (roster.Species, error) {
	return c.fetchDetail(ctx, c.baseURL+"/pokemon/"+url.PathEscape(strings.ToLower(strings.TrimSpace(nameOrID))))
}

func (c *Client) fetchDetail(ctx context.Context, endpoint string) (roster.Species, error) {
	var raw detailResponse
	if err := c.getJSON(ctx, endpoint, &raw); err != nil {
		return roster.Species{}, fmt.Errorf("fetch species detail: %w", err)
	}
	sp, err := raw.toSpecies()
	if err != nil {
		return roster.Species{}, err
	}
	sp.Abilities = c.resolveAbilities(ctx, raw.Abilities)
	return sp, nil
}

// resolveAbilities keeps non-hidden abilities in API order and fetches their descriptions concurrently.
func (c *Client) resolveAbilities(ctx context.Context, entries []abilityEntry) []roster.Ability {
	visible := make([]abilityEntry, 0, len(entries))
	for _, a := range entries {
		if !a.IsHidden {
			visible = append(visible, a)
		}
	}

	out := make([]roster.Ability, len(visible))
	var g errgroup.Group
	for i, a := range visible {
		i, a := i, a
		g.Go(func() error {
			out[i] = roster.Ability{
				Name:        roster.FormatName(a.Ability.Name),
				Description: c.abilityDescription(ctx, a.Ability.URL),
			}
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// abilityDescription prefers the English effect text, then English flavor text.
func (c *Client) abilityDescription(ctx context.Context, endpoint string) string {
	if strings.TrimSpace(endpoint) == "" {
		return roster.NoDescription
	}
	var raw abilityResponse
	if err := c.getJSON(ctx, endpoint, &raw); err != nil {
		return roster.NoDescription
	}
	for _, e := range raw.EffectEntries {
		if e.Language.Name == "en" && strings.TrimSpace(e.Effect) != "" {
			return e.Effect
		}
	}
	for _, e := range raw.FlavorTextEntries {
		if e.Language.Name == "en" && strings.TrimSpace(e.FlavorText) != "" {
			return e.FlavorText
		}
	}
	return roster.NoDescription
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return roster.ErrSpeciesNotFound
	}
	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type namedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type listResponse struct {
	Count   int             `json:"count"`
	Results []namedResource `json:"results"`
}

type detailResponse struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Height  int    `json:"height"`
	Weight  int    `json:"weight"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
		Other        struct {
			OfficialArtwork struct {
				FrontDefault string `json:"front_default"`
			} `json:"official-artwork"`
		} `json:"other"`
	} `json:"sprites"`
	Types []typeSlot `json:"types"`
	Stats []struct {
		BaseStat int           `json:"base_stat"`
		Stat     namedResource `json:"stat"`
	} `json:"stats"`
	Abilities []abilityEntry `json:"abilities"`
}

type typeSlot struct {
	Slot int           `json:"slot"`
	Type namedResource `json:"type"`
}

type abilityEntry struct {
	Ability  namedResource `json:"ability"`
	IsHidden bool          `json:"is_hidden"`
}

type abilityResponse struct {
	EffectEntries []struct {
		Effect   string        `json:"effect"`
		Language namedResource `json:"language"`
	} `json:"effect_entries"`
	FlavorTextEntries []struct {
		FlavorText string        `json:"flavor_text"`
		Language   namedResource `json:"language"`
	} `json:"flavor_text_entries"`
}

// toSpecies maps the payload. Base stats are positional: slot i is stats.StatNames[i].
func (d detailResponse) toSpecies() (roster.Species, error) {
	if len(d.Stats) < len(stats.StatNames) {
		return roster.Species{}, fmt.Errorf("species %q: expected %d stats, got %d", d.Name, len(stats.StatNames), len(d.Stats))
	}
	values := make([]int, len(stats.StatNames))
	for i := range stats.StatNames {
		values[i] = d.Stats[i].BaseStat
	}
	base, err := stats.FromSlice(values)
	if err != nil {
		return roster.Species{}, err
	}

	tags := make([]string, 0, len(d.Types))
	for _, t := range d.Types {
		tags = append(tags, t.Type.Name)
	}

	sprite := d.Sprites.Other.OfficialArtwork.FrontDefault
	if sprite == "" {
		sprite = d.Sprites.FrontDefault
	}

	return roster.Species{
		ID:        d.ID,
		Name:      roster.FormatName(d.Name),
		Sprite:    sprite,
		Types:     typechart.FromStrings(tags),
		BaseStats: base,
		Height:    d.Height,
		Weight:    d.Weight,
	}, nil
}
