package backend

// Wire DTOs for the festival backend. Field names follow the backend's
// JSON exactly; mapping to model types happens in the client.

type nearestStationDTO struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type facilityDTO struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type stationDTO struct {
	MetroID   int     `json:"metroId"`
	MetroName string  `json:"metroName"`
	MetroLat  float64 `json:"metroLat"`
	MetroLon  float64 `json:"metroLon"`
}

type routePointDTO struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Name string  `json:"name"`
}

type routeRequestDTO struct {
	StartPoint routePointDTO   `json:"startPoint"`
	Pandals    []routePointDTO `json:"pandals"`
}

type routeResponseDTO struct {
	Origin      routePointDTO   `json:"origin"`
	Destination routePointDTO   `json:"destination"`
	Waypoints   []routePointDTO `json:"waypoints"`
}

type errorDTO struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type signupRequestDTO struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponseDTO struct {
	JWT    string `json:"jwt"`
	UserID string `json:"userId"`
}
