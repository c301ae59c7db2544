package directions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/theoremus-urban-solutions/transit-trip-planner/geo"
)

// OSRMClient fetches walking routes from an OSRM-compatible endpoint
// (the public server or a self-hosted instance with a foot profile).
type OSRMClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewOSRMClient creates a client for the given base URL, e.g.
// "https://router.project-osrm.org".
func NewOSRMClient(baseURL string) *OSRMClient {
	return &OSRMClient{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry string  `json:"geometry"`
		Legs     []struct {
			Steps []struct {
				Distance float64 `json:"distance"`
				Name     string  `json:"name"`
				Maneuver struct {
					Type     string `json:"type"`
					Modifier string `json:"modifier"`
				} `json:"maneuver"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

// WalkingSegment fetches one walking leg. Any transport or decode
// failure is returned as an error; callers degrade to Estimate.
func (c *OSRMClient) WalkingSegment(ctx context.Context, from, to geo.Coordinate) (WalkingSegment, error) {
	url := fmt.Sprintf("%s/route/v1/foot/%f,%f;%f,%f?overview=full&steps=true",
		c.baseURL, from.Lon, from.Lat, to.Lon, to.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return WalkingSegment{}, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return WalkingSegment{}, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return WalkingSegment{}, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return WalkingSegment{}, err
	}

	var parsed osrmResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return WalkingSegment{}, fmt.Errorf("decode OSRM response: %w", err)
	}
	if parsed.Code != "Ok" || len(parsed.Routes) == 0 {
		return WalkingSegment{}, fmt.Errorf("OSRM returned %q with %d routes", parsed.Code, len(parsed.Routes))
	}

	r := parsed.Routes[0]
	seg := WalkingSegment{
		DistanceMeters:  r.Distance,
		DurationSeconds: r.Duration,
		Polyline:        r.Geometry,
	}
	for _, leg := range r.Legs {
		for _, st := range leg.Steps {
			instruction := st.Maneuver.Type
			if st.Maneuver.Modifier != "" {
				instruction += " " + st.Maneuver.Modifier
			}
			if st.Name != "" {
				instruction += " onto " + st.Name
			}
			seg.Steps = append(seg.Steps, Step{Instruction: instruction, DistanceMeters: st.Distance})
		}
	}
	return seg, nil
}
