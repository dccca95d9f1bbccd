// Package backend is the REST client for the festival backend: nearest
// station lookup, zone-scoped station/facility listings, the route
// optimizer and the auth endpoints.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/festival-transit/pandal-hopper/model"
)

// TokenSource supplies the bearer token for authenticated requests.
// Requests are sent without the header when no token is present.
type TokenSource interface {
	Token() (string, bool)
}

// Client talks to the festival backend over JSON/REST.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// NewClient creates a backend client. tokens may be nil for an
// unauthenticated client.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
	}
}

// NearestStation asks for the closest station to coord.
// A 404 maps to model.ErrNotFound: no station within the service area.
func (c *Client) NearestStation(ctx context.Context, coord model.Coordinate) (model.Station, error) {
	if !coord.Valid() {
		return model.Station{}, model.ErrInvalidCoordinate
	}
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(coord.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(coord.Lon, 'f', -1, 64))

	var dto nearestStationDTO
	if err := c.getJSON(ctx, "/metro/nearest/location?"+q.Encode(), &dto); err != nil {
		return model.Station{}, err
	}
	st := model.Station{
		Name:     dto.Name,
		Location: model.Coordinate{Lat: dto.Lat, Lon: dto.Lon},
	}
	if !st.Location.Valid() {
		return model.Station{}, fmt.Errorf("nearest station %q: %w", dto.Name, model.ErrInvalidCoordinate)
	}
	return st, nil
}

// AllFacilities fetches the global facility list.
func (c *Client) AllFacilities(ctx context.Context) ([]model.Facility, error) {
	return c.fetchFacilities(ctx, "/pandals")
}

// FacilitiesByZone fetches the facility list scoped to a zone.
func (c *Client) FacilitiesByZone(ctx context.Context, zone model.Zone) ([]model.Facility, error) {
	code, ok := zone.Code()
	if !ok {
		return nil, fmt.Errorf("zone %q has no backend code", zone)
	}
	return c.fetchFacilities(ctx, "/pandals/zone/"+url.PathEscape(code)+"/simple")
}

// StationsByZone fetches the station list for a zone.
func (c *Client) StationsByZone(ctx context.Context, zone model.Zone) ([]model.Station, error) {
	code, ok := zone.Code()
	if !ok {
		return nil, fmt.Errorf("zone %q has no backend code", zone)
	}
	var dtos []stationDTO
	if err := c.getJSON(ctx, "/zone/"+url.PathEscape(code)+"/metros/simple", &dtos); err != nil {
		return nil, err
	}
	out := make([]model.Station, 0, len(dtos))
	for _, d := range dtos {
		st := model.Station{
			ID:       d.MetroID,
			Name:     d.MetroName,
			Location: model.Coordinate{Lat: d.MetroLat, Lon: d.MetroLon},
		}
		if !st.Location.Valid() {
			return nil, fmt.Errorf("station %q: %w", d.MetroName, model.ErrInvalidCoordinate)
		}
		out = append(out, st)
	}
	return out, nil
}

// FacilitiesByStation fetches the facilities associated with one station.
func (c *Client) FacilitiesByStation(ctx context.Context, zone model.Zone, stationID int) ([]model.Facility, error) {
	code, ok := zone.Code()
	if !ok {
		return nil, fmt.Errorf("zone %q has no backend code", zone)
	}
	path := "/zone/" + url.PathEscape(code) + "/metro/" + strconv.Itoa(stationID) + "/pandals/simple"
	return c.fetchFacilities(ctx, path)
}

// PlanRoute submits the origin station and facility set to the optimizer
// and returns the ordered plan. A well-formed error response maps to
// model.ErrPlanningRejected; transport and server failures to
// model.ErrNetwork.
func (c *Client) PlanRoute(ctx context.Context, origin model.Station, facilities []model.Facility) (model.RoutePlan, error) {
	if !origin.Location.Valid() {
		return model.RoutePlan{}, model.ErrInvalidCoordinate
	}
	req := routeRequestDTO{
		StartPoint: routePointDTO{Lat: origin.Location.Lat, Lon: origin.Location.Lon, Name: origin.Name},
		Pandals:    make([]routePointDTO, 0, len(facilities)),
	}
	for _, f := range facilities {
		if !f.Location.Valid() {
			return model.RoutePlan{}, fmt.Errorf("facility %q: %w", f.Name, model.ErrInvalidCoordinate)
		}
		req.Pandals = append(req.Pandals, routePointDTO{Lat: f.Location.Lat, Lon: f.Location.Lon, Name: f.Name})
	}

	body, err := json.Marshal(req)
	if err != nil {
		return model.RoutePlan{}, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/route/optimal", bytes.NewReader(body))
	if err != nil {
		return model.RoutePlan{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-Id", uuid.NewString())
	c.authorize(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return model.RoutePlan{}, fmt.Errorf("%w: %v", model.ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		var e errorDTO
		if err := json.NewDecoder(resp.Body).Decode(&e); err == nil {
			msg := e.Message
			if msg == "" {
				msg = e.Error
			}
			if msg != "" {
				return model.RoutePlan{}, fmt.Errorf("%w: %s", model.ErrPlanningRejected, msg)
			}
		}
		return model.RoutePlan{}, model.ErrPlanningRejected
	}
	if resp.StatusCode != http.StatusOK {
		return model.RoutePlan{}, fmt.Errorf("%w: HTTP %d from route optimizer", model.ErrNetwork, resp.StatusCode)
	}

	var dto routeResponseDTO
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return model.RoutePlan{}, fmt.Errorf("%w: decoding route response: %v", model.ErrNetwork, err)
	}
	plan := model.RoutePlan{
		Origin:      stopFromDTO(dto.Origin),
		Destination: stopFromDTO(dto.Destination),
		Waypoints:   make([]model.Stop, 0, len(dto.Waypoints)),
	}
	for _, w := range dto.Waypoints {
		plan.Waypoints = append(plan.Waypoints, stopFromDTO(w))
	}
	for _, s := range plan.Stops() {
		if !s.Location.Valid() {
			return model.RoutePlan{}, fmt.Errorf("route stop %q: %w", s.Name, model.ErrInvalidCoordinate)
		}
	}
	return plan, nil
}

func stopFromDTO(d routePointDTO) model.Stop {
	return model.Stop{Name: d.Name, Location: model.Coordinate{Lat: d.Lat, Lon: d.Lon}}
}

func (c *Client) fetchFacilities(ctx context.Context, path string) ([]model.Facility, error) {
	var dtos []facilityDTO
	if err := c.getJSON(ctx, path, &dtos); err != nil {
		return nil, err
	}
	out := make([]model.Facility, 0, len(dtos))
	for _, d := range dtos {
		f := model.Facility{
			Name:     d.Name,
			Location: model.Coordinate{Lat: d.Latitude, Lon: d.Longitude},
		}
		if !f.Location.Valid() {
			return nil, fmt.Errorf("facility %q: %w", d.Name, model.ErrInvalidCoordinate)
		}
		out = append(out, f)
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return model.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: HTTP %d from %s", model.ErrNetwork, resp.StatusCode, path)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", model.ErrNetwork, path, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", model.ErrNetwork, path, err)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.tokens == nil {
		return
	}
	if tok, ok := c.tokens.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
}
