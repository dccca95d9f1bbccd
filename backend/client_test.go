package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/festival-transit/pandal-hopper/model"
)

type staticTokens struct{ token string }

func (s staticTokens) Token() (string, bool) { return s.token, s.token != "" }

func newTestClient(t *testing.T, handler http.Handler, tokens TokenSource) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second, tokens)
}

func TestNearestStation(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/metro/nearest/location" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("lat"); got != "22.5" {
			t.Errorf("lat = %s, want 22.5", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"name": "Park Street", "lat": 22.5519, "lon": 88.3520})
	})
	c := newTestClient(t, handler, nil)

	st, err := c.NearestStation(context.Background(), model.Coordinate{Lat: 22.5, Lon: 88.3})
	if err != nil {
		t.Fatal(err)
	}
	if st.Name != "Park Street" || st.Location.Lat != 22.5519 {
		t.Errorf("station = %+v", st)
	}
}

func TestNearestStationNotFound(t *testing.T) {
	c := newTestClient(t, http.NotFoundHandler(), nil)
	_, err := c.NearestStation(context.Background(), model.Coordinate{Lat: 10, Lon: 10})
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestNearestStationServerErrorIsNetwork(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	c := newTestClient(t, handler, nil)
	_, err := c.NearestStation(context.Background(), model.Coordinate{Lat: 10, Lon: 10})
	if !errors.Is(err, model.ErrNetwork) {
		t.Fatalf("err = %v, want ErrNetwork", err)
	}
}

func TestBearerHeaderSentWhenLoggedIn(t *testing.T) {
	var got string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, _ = w.Write([]byte("[]"))
	})
	c := newTestClient(t, handler, staticTokens{token: "tok-123"})

	if _, err := c.AllFacilities(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want Bearer tok-123", got)
	}
}

func TestNoBearerHeaderWhenLoggedOut(t *testing.T) {
	var got string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, _ = w.Write([]byte("[]"))
	})
	c := newTestClient(t, handler, staticTokens{})

	if _, err := c.AllFacilities(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("Authorization = %q, want empty", got)
	}
}

func TestStationsByZoneMapsDTO(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/zone/N/metros/simple" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[{"metroId":7,"metroName":"Shyambazar","metroLat":22.60,"metroLon":88.37}]`))
	})
	c := newTestClient(t, handler, nil)

	stations, err := c.StationsByZone(context.Background(), model.ZoneNorth)
	if err != nil {
		t.Fatal(err)
	}
	if len(stations) != 1 {
		t.Fatalf("stations = %d, want 1", len(stations))
	}
	st := stations[0]
	if st.ID != 7 || st.Name != "Shyambazar" || st.Location.Lat != 22.60 {
		t.Errorf("station = %+v", st)
	}
}

func TestStationsByZoneRejectsZoneAll(t *testing.T) {
	c := newTestClient(t, http.NotFoundHandler(), nil)
	if _, err := c.StationsByZone(context.Background(), model.ZoneAll); err == nil {
		t.Error("ZoneAll has no backend code and must be rejected")
	}
}

func TestFacilitiesByZonePath(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pandals/zone/H/simple" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[{"name":"Howrah Club","latitude":22.59,"longitude":88.31}]`))
	})
	c := newTestClient(t, handler, nil)

	facilities, err := c.FacilitiesByZone(context.Background(), model.ZoneHowrah)
	if err != nil {
		t.Fatal(err)
	}
	if len(facilities) != 1 || facilities[0].Name != "Howrah Club" {
		t.Errorf("facilities = %+v", facilities)
	}
}

func TestFacilitiesByStationPath(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/zone/N/metro/7/pandals/simple" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[]`))
	})
	c := newTestClient(t, handler, nil)
	if _, err := c.FacilitiesByStation(context.Background(), model.ZoneNorth, 7); err != nil {
		t.Fatal(err)
	}
}

func TestPlanRoute(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/route/optimal" || r.Method != http.MethodPost {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		var req struct {
			StartPoint struct {
				Name string `json:"name"`
			} `json:"startPoint"`
			Pandals []struct {
				Name string `json:"name"`
			} `json:"pandals"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req.StartPoint.Name != "Shyambazar" || len(req.Pandals) != 2 {
			t.Errorf("request = %+v", req)
		}
		_, _ = w.Write([]byte(`{
			"origin": {"lat":22.60,"lon":88.37,"name":"Shyambazar"},
			"destination": {"lat":22.62,"lon":88.37,"name":"F2"},
			"waypoints": [{"lat":22.61,"lon":88.37,"name":"F1"}]
		}`))
	})
	c := newTestClient(t, handler, nil)

	origin := model.Station{ID: 7, Name: "Shyambazar", Location: model.Coordinate{Lat: 22.60, Lon: 88.37}}
	facilities := []model.Facility{
		{Name: "F1", Location: model.Coordinate{Lat: 22.61, Lon: 88.37}},
		{Name: "F2", Location: model.Coordinate{Lat: 22.62, Lon: 88.37}},
	}
	plan, err := c.PlanRoute(context.Background(), origin, facilities)
	if err != nil {
		t.Fatal(err)
	}
	if plan.Origin.Name != "Shyambazar" || plan.Destination.Name != "F2" {
		t.Errorf("plan = %+v", plan)
	}
	if len(plan.Waypoints) != 1 || plan.Waypoints[0].Name != "F1" {
		t.Errorf("waypoints = %+v", plan.Waypoints)
	}
}

func TestPlanRouteRejected(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"no feasible route"}`))
	})
	c := newTestClient(t, handler, nil)

	origin := model.Station{Name: "X", Location: model.Coordinate{Lat: 22.6, Lon: 88.3}}
	_, err := c.PlanRoute(context.Background(), origin, []model.Facility{
		{Name: "F1", Location: model.Coordinate{Lat: 22.61, Lon: 88.37}},
	})
	if !errors.Is(err, model.ErrPlanningRejected) {
		t.Fatalf("err = %v, want ErrPlanningRejected", err)
	}
}

func TestPlanRouteServerErrorIsNetwork(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	c := newTestClient(t, handler, nil)

	origin := model.Station{Name: "X", Location: model.Coordinate{Lat: 22.6, Lon: 88.3}}
	_, err := c.PlanRoute(context.Background(), origin, []model.Facility{
		{Name: "F1", Location: model.Coordinate{Lat: 22.61, Lon: 88.37}},
	})
	if !errors.Is(err, model.ErrNetwork) {
		t.Fatalf("err = %v, want ErrNetwork", err)
	}
}

func TestLogin(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"jwt":"tok-abc","userId":"u-1"}`))
	})
	c := newTestClient(t, handler, nil)

	creds, err := c.Login(context.Background(), "a@b.c", "secret")
	if err != nil {
		t.Fatal(err)
	}
	if creds.Token != "tok-abc" || creds.UserID != "u-1" {
		t.Errorf("creds = %+v", creds)
	}
}

func TestLoginRejected(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"bad credentials"}`))
	})
	c := newTestClient(t, handler, nil)

	if _, err := c.Login(context.Background(), "a@b.c", "wrong"); err == nil {
		t.Error("login should fail")
	}
}
