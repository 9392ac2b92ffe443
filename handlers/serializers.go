package handlers

import (
	"time"

	"levelup/models"
)

const dateLayout = "2006-01-02"

type GameResponse struct {
	ID              uint   `json:"id"`
	GameType        uint   `json:"game_type"`
	Title           string `json:"title"`
	Maker           string `json:"maker"`
	Gamer           uint   `json:"gamer"`
	NumberOfPlayers int    `json:"number_of_players"`
	SkillLevel      int    `json:"skill_level"`
}

type EventResponse struct {
	ID          uint   `json:"id"`
	Game        uint   `json:"game"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Organizer   uint   `json:"organizer"`
}

type GameTypeResponse struct {
	ID    uint   `json:"id"`
	Label string `json:"label"`
}

type GamerResponse struct {
	ID       uint   `json:"id"`
	User     uint   `json:"user"`
	Username string `json:"username"`
	Bio      string `json:"bio"`
}

type AttendanceResponse struct {
	ID    uint `json:"id"`
	Event uint `json:"event"`
	Gamer uint `json:"gamer"`
}

func SerializeGame(g models.Game) GameResponse {
	return GameResponse{
		ID:              g.ID,
		GameType:        g.GameTypeID,
		Title:           g.Title,
		Maker:           g.Maker,
		Gamer:           g.GamerID,
		NumberOfPlayers: g.NumberOfPlayers,
		SkillLevel:      g.SkillLevel,
	}
}

func SerializeGames(games []models.Game) []GameResponse {
	out := make([]GameResponse, 0, len(games))
	for _, g := range games {
		out = append(out, SerializeGame(g))
	}
	return out
}

func SerializeEvent(e models.Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		Game:        e.GameID,
		Description: e.Description,
		Date:        time.Time(e.Date).Format(dateLayout),
		Time:        e.Time.String(),
		Organizer:   e.OrganizerID,
	}
}

func SerializeEvents(events []models.Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, SerializeEvent(e))
	}
	return out
}

func SerializeGameType(t models.GameType) GameTypeResponse {
	return GameTypeResponse{ID: t.ID, Label: t.Label}
}

func SerializeGameTypes(types []models.GameType) []GameTypeResponse {
	out := make([]GameTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, SerializeGameType(t))
	}
	return out
}

// SerializeGamer expects User to be preloaded for the username.
func SerializeGamer(g models.Gamer) GamerResponse {
	return GamerResponse{ID: g.ID, User: g.UserID, Username: g.User.Username, Bio: g.Bio}
}

func SerializeGamers(gamers []models.Gamer) []GamerResponse {
	out := make([]GamerResponse, 0, len(gamers))
	for _, g := range gamers {
		out = append(out, SerializeGamer(g))
	}
	return out
}

func SerializeAttendance(a models.EventGamer) AttendanceResponse {
	return AttendanceResponse{ID: a.ID, Event: a.EventID, Gamer: a.GamerID}
}
