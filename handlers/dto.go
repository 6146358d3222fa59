package handlers

import (
	"fmt"
	"time"

	"github.com/Dosada05/fencing-tournament/models"
	"github.com/Dosada05/fencing-tournament/services"
)

// Request bodies

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
}

// tournamentRequest carries dates as YYYY-MM-DD. On update every field is optional.
type tournamentRequest struct {
	Name                  *string `json:"name"`
	RegistrationStartDate *string `json:"registration_start_date"`
	RegistrationEndDate   *string `json:"registration_end_date"`
	TournamentStartDate   *string `json:"tournament_start_date"`
	TournamentEndDate     *string `json:"tournament_end_date"`
	Venue                 *string `json:"venue"`
}

type stageRefRequest struct {
	ID int `json:"id,omitempty"`
}

// eventRequest uses RFC 3339 timestamps. A nil KnockoutStages leaves the stage set unchanged.
type eventRequest struct {
	TournamentID   *int               `json:"tournament_id,omitempty"`
	Gender         models.Gender      `json:"gender"`
	Weapon         models.WeaponType  `json:"weapon"`
	StartDate      time.Time          `json:"start_date"`
	EndDate        time.Time          `json:"end_date"`
	KnockoutStages *[]stageRefRequest `json:"knockout_stages,omitempty"`
}

type knockoutStageRequest struct {
	EventID int `json:"event_id,omitempty"`
}

type playerRequest struct {
	Username string  `json:"username"`
	Email    *string `json:"email"`
}

type scoreRequest struct {
	Score *int `json:"score"`
}

type roleRequest struct {
	Role models.UserRole `json:"role"`
}

// Response bodies

type userResponse struct {
	ID        int             `json:"id"`
	Username  string          `json:"username"`
	Email     string          `json:"email,omitempty"`
	Role      models.UserRole `json:"role"`
	CreatedAt time.Time       `json:"created_at"`
}

type tournamentResponse struct {
	ID                    int       `json:"id"`
	Name                  string    `json:"name"`
	RegistrationStartDate string    `json:"registration_start_date"`
	RegistrationEndDate   string    `json:"registration_end_date"`
	TournamentStartDate   string    `json:"tournament_start_date"`
	TournamentEndDate     string    `json:"tournament_end_date"`
	Venue                 *string   `json:"venue,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
}

type rankingResponse struct {
	Position int    `json:"position,omitempty"`
	PlayerID int    `json:"player_id"`
	Username string `json:"username,omitempty"`
	Score    int    `json:"score"`
}

type knockoutStageResponse struct {
	ID        int       `json:"id"`
	EventID   int       `json:"event_id"`
	CreatedAt time.Time `json:"created_at"`
}

type eventResponse struct {
	ID             int                     `json:"id"`
	TournamentID   int                     `json:"tournament_id"`
	Gender         models.Gender           `json:"gender"`
	Weapon         models.WeaponType       `json:"weapon"`
	StartDate      time.Time               `json:"start_date"`
	EndDate        time.Time               `json:"end_date"`
	Tournament     *tournamentResponse     `json:"tournament,omitempty"`
	Rankings       []rankingResponse       `json:"rankings"`
	KnockoutStages []knockoutStageResponse `json:"knockout_stages"`
}

type playerResponse struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     *string   `json:"email,omitempty"`
	PhotoURL  *string   `json:"photo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Conversions

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a date in YYYY-MM-DD format", field)
	}
	return t, nil
}

func parseOptionalDate(field string, value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := parseDate(field, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (req tournamentRequest) toCreateInput() (services.CreateTournamentInput, error) {
	input := services.CreateTournamentInput{Venue: req.Venue}
	if req.Name != nil {
		input.Name = *req.Name
	}

	fields := []struct {
		name  string
		value *string
		dst   *time.Time
	}{
		{"registration_start_date", req.RegistrationStartDate, &input.RegistrationStartDate},
		{"registration_end_date", req.RegistrationEndDate, &input.RegistrationEndDate},
		{"tournament_start_date", req.TournamentStartDate, &input.TournamentStartDate},
		{"tournament_end_date", req.TournamentEndDate, &input.TournamentEndDate},
	}
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		t, err := parseDate(f.name, *f.value)
		if err != nil {
			return input, err
		}
		*f.dst = t
	}
	return input, nil
}

func (req tournamentRequest) toUpdateInput() (services.UpdateTournamentInput, error) {
	input := services.UpdateTournamentInput{Name: req.Name, Venue: req.Venue}
	var err error
	if input.RegistrationStartDate, err = parseOptionalDate("registration_start_date", req.RegistrationStartDate); err != nil {
		return input, err
	}
	if input.RegistrationEndDate, err = parseOptionalDate("registration_end_date", req.RegistrationEndDate); err != nil {
		return input, err
	}
	if input.TournamentStartDate, err = parseOptionalDate("tournament_start_date", req.TournamentStartDate); err != nil {
		return input, err
	}
	if input.TournamentEndDate, err = parseOptionalDate("tournament_end_date", req.TournamentEndDate); err != nil {
		return input, err
	}
	return input, nil
}

// toModel builds the event; a missing tournament_id defaults to the one in the URL.
func (req eventRequest) toModel(tournamentID int) *models.Event {
	event := &models.Event{
		TournamentID: tournamentID,
		Gender:       req.Gender,
		Weapon:       req.Weapon,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
	}
	if req.TournamentID != nil {
		event.TournamentID = *req.TournamentID
	}
	if req.KnockoutStages != nil {
		event.KnockoutStages = make([]models.KnockoutStage, 0, len(*req.KnockoutStages))
		for _, ref := range *req.KnockoutStages {
			event.KnockoutStages = append(event.KnockoutStages, models.KnockoutStage{ID: ref.ID})
		}
	}
	return event
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func toUserResponses(users []models.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out
}

func toTournamentResponse(t *models.Tournament) tournamentResponse {
	return tournamentResponse{
		ID:                    t.ID,
		Name:                  t.Name,
		RegistrationStartDate: t.RegistrationStartDate.Format(time.DateOnly),
		RegistrationEndDate:   t.RegistrationEndDate.Format(time.DateOnly),
		TournamentStartDate:   t.TournamentStartDate.Format(time.DateOnly),
		TournamentEndDate:     t.TournamentEndDate.Format(time.DateOnly),
		Venue:                 t.Venue,
		CreatedAt:             t.CreatedAt,
	}
}

func toTournamentResponses(ts []models.Tournament) []tournamentResponse {
	out := make([]tournamentResponse, 0, len(ts))
	for i := range ts {
		out = append(out, toTournamentResponse(&ts[i]))
	}
	return out
}

func toRankingResponses(rankings []models.PlayerRank) []rankingResponse {
	out := make([]rankingResponse, 0, len(rankings))
	for i, pr := range rankings {
		entry := rankingResponse{Position: i + 1, PlayerID: pr.PlayerID, Score: pr.Score}
		if pr.Player != nil {
			entry.Username = pr.Player.Username
		}
		out = append(out, entry)
	}
	return out
}

func toKnockoutStageResponse(s *models.KnockoutStage) knockoutStageResponse {
	return knockoutStageResponse{ID: s.ID, EventID: s.EventID, CreatedAt: s.CreatedAt}
}

func toKnockoutStageResponses(stages []models.KnockoutStage) []knockoutStageResponse {
	out := make([]knockoutStageResponse, 0, len(stages))
	for i := range stages {
		out = append(out, toKnockoutStageResponse(&stages[i]))
	}
	return out
}

func toEventResponse(e *models.Event) eventResponse {
	resp := eventResponse{
		ID:             e.ID,
		TournamentID:   e.TournamentID,
		Gender:         e.Gender,
		Weapon:         e.Weapon,
		StartDate:      e.StartDate,
		EndDate:        e.EndDate,
		Rankings:       toRankingResponses(e.Rankings),
		KnockoutStages: toKnockoutStageResponses(e.KnockoutStages),
	}
	if e.Tournament != nil {
		t := toTournamentResponse(e.Tournament)
		resp.Tournament = &t
	}
	return resp
}

func toEventResponses(events []models.Event) []eventResponse {
	out := make([]eventResponse, 0, len(events))
	for i := range events {
		out = append(out, toEventResponse(&events[i]))
	}
	return out
}

func toPlayerResponse(p *models.Player) playerResponse {
	return playerResponse{
		ID:        p.ID,
		Username:  p.Username,
		Email:     p.Email,
		PhotoURL:  p.PhotoURL,
		CreatedAt: p.CreatedAt,
	}
}

func toPlayerResponses(players []models.Player) []playerResponse {
	out := make([]playerResponse, 0, len(players))
	for i := range players {
		out = append(out, toPlayerResponse(&players[i]))
	}
	return out
}
