package models

// TeamLogo is one logo variant published for an NBA franchise
type TeamLogo struct {
	Alt         string   `json:"alt"`
	Height      int      `json:"height"`
	Href        string   `json:"href"`
	LastUpdated string   `json:"lastUpdated"`
	Rel         []string `json:"rel"`
	Width       int      `json:"width"`
}

// TeamData is the slice of NBA team data the team builder displays
type TeamData struct {
	Abbreviation string     `json:"abbreviation"`
	DisplayName  string     `json:"displayName"`
	Logos        []TeamLogo `json:"logos"`
}

// PrimaryLogo returns the first logo tagged "default", falling back to the
// first logo. ok is false when the team has no logos.
func (t TeamData) PrimaryLogo() (TeamLogo, bool) {
	for _, logo := range t.Logos {
		for _, rel := range logo.Rel {
			if rel == "default" {
				return logo, true
			}
		}
	}
	if len(t.Logos) == 0 {
		return TeamLogo{}, false
	}
	return t.Logos[0], true
}
