package models

// LandingResult is the outcome of one landing analysis as shown to clients
type LandingResult struct {
	ID                string         `json:"id"`
	Source            string         `json:"source"`
	Reference         string         `json:"reference,omitempty"`
	Timestamp         string         `json:"timestamp"`
	ProcessingTimeSec float64        `json:"processing_time_sec"`
	Altitude          float64        `json:"altitude"`
	RequiredThrust    float64        `json:"required_thrust"`
	ActiveThrusters   ThrusterForces `json:"active_thrusters"`
	BestSpots         []LandingSpot  `json:"best_spots"`
	ProcessedImageURL string         `json:"processed_image_url"`
}

// ThrusterForces is the force assigned to each of the four thrusters
type ThrusterForces struct {
	Front float64 `json:"front"`
	Back  float64 `json:"back"`
	Left  float64 `json:"left"`
	Right float64 `json:"right"`
}

// LandingSpot is one ranked candidate site; X and Y are the window's top-left corner
type LandingSpot struct {
	Rank  int     `json:"rank"`
	Score float64 `json:"score"`
	X     int     `json:"x"`
	Y     int     `json:"y"`
}
