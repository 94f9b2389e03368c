package teams

// NumTeams is the number of NBA franchises
const NumTeams = 30

type Conference string

const (
	ConferenceWest Conference = "West"
	ConferenceEast Conference = "East"
)

var WesternTeams = []string{
	"Dallas Mavericks",
	"Denver Nuggets",
	"Golden State Warriors",
	"Houston Rockets",
	"Los Angeles Clippers",
	"Los Angeles Lakers",
	"Memphis Grizzlies",
	"Minnesota Timberwolves",
	"New Orleans Pelicans",
	"Oklahoma City Thunder",
	"Phoenix Suns",
	"Portland Trail Blazers",
	"Sacramento Kings",
	"San Antonio Spurs",
	"Utah Jazz",
}

var EasternTeams = []string{
	"Atlanta Hawks",
	"Boston Celtics",
	"Brooklyn Nets",
	"Charlotte Hornets",
	"Chicago Bulls",
	"Cleveland Cavaliers",
	"Detroit Pistons",
	"Indiana Pacers",
	"Miami Heat",
	"Milwaukee Bucks",
	"New York Knicks",
	"Orlando Magic",
	"Philadelphia 76ers",
	"Toronto Raptors",
	"Washington Wizards",
}

var conferenceByTeam = func() map[string]Conference {
	m := make(map[string]Conference, NumTeams)
	for _, name := range WesternTeams {
		m[name] = ConferenceWest
	}
	for _, name := range EasternTeams {
		m[name] = ConferenceEast
	}
	return m
}()

// ConferenceOf returns the conference of a team by display name
func ConferenceOf(displayName string) (Conference, bool) {
	c, ok := conferenceByTeam[displayName]
	return c, ok
}
