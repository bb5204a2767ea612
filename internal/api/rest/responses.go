package rest

import (
	"time"

	"github.com/fortuna/courtside/internal/store"
)

type gameResponse struct {
	GameID       string     `json:"game_id"`
	League       string     `json:"league"`
	Season       string     `json:"season"`
	StartTime    time.Time  `json:"start_time"`
	Status       string     `json:"status"`
	StatusDetail string     `json:"status_detail,omitempty"`
	Venue        string     `json:"venue,omitempty"`
	HomeTeamID   int        `json:"home_team_id"`
	AwayTeamID   int        `json:"away_team_id"`
	HomeScore    *int32     `json:"home_score,omitempty"`
	AwayScore    *int32     `json:"away_score,omitempty"`
	LastFetched  *time.Time `json:"last_fetched_at,omitempty"`
}

func toGameResponse(game *store.GameEvent) gameResponse {
	resp := gameResponse{
		GameID:       game.ExternalID,
		League:       game.League,
		Season:       game.Season,
		StartTime:    game.StartTime,
		Status:       string(game.Status),
		StatusDetail: game.StatusDetail,
		Venue:        game.Venue,
		HomeTeamID:   game.HomeTeamID,
		AwayTeamID:   game.AwayTeamID,
		HomeScore:    ni(game.HomeScore),
		AwayScore:    ni(game.AwayScore),
	}
	if game.LastFetchedAt.Valid {
		resp.LastFetched = &game.LastFetchedAt.Time
	}
	return resp
}

type teamStatsResponse struct {
	PPG                 *float64 `json:"ppg,omitempty"`
	OppPPG              *float64 `json:"opp_ppg,omitempty"`
	Pace                *float64 `json:"pace,omitempty"`
	OffensiveRating     *float64 `json:"offensive_rating,omitempty"`
	DefensiveRating     *float64 `json:"defensive_rating,omitempty"`
	NetRating           *float64 `json:"net_rating,omitempty"`
	FieldGoalPct        *float64 `json:"field_goal_pct,omitempty"`
	ThreePointPct       *float64 `json:"three_point_pct,omitempty"`
	FreeThrowPct        *float64 `json:"free_throw_pct,omitempty"`
	EffectiveFGPct      *float64 `json:"effective_fg_pct,omitempty"`
	TrueShootingPct     *float64 `json:"true_shooting_pct,omitempty"`
	ReboundsPG          *float64 `json:"rebounds_pg,omitempty"`
	OffReboundsPG       *float64 `json:"off_rebounds_pg,omitempty"`
	DefReboundsPG       *float64 `json:"def_rebounds_pg,omitempty"`
	AssistsPG           *float64 `json:"assists_pg,omitempty"`
	TurnoversPG         *float64 `json:"turnovers_pg,omitempty"`
	StealsPG            *float64 `json:"steals_pg,omitempty"`
	BlocksPG            *float64 `json:"blocks_pg,omitempty"`
	FoulsPG             *float64 `json:"fouls_pg,omitempty"`
	AssistTurnoverRatio *float64 `json:"assist_turnover_ratio,omitempty"`
}

type teamRanksResponse struct {
	PPG             *int32 `json:"ppg,omitempty"`
	OppPPG          *int32 `json:"opp_ppg,omitempty"`
	Pace            *int32 `json:"pace,omitempty"`
	OffensiveRating *int32 `json:"offensive_rating,omitempty"`
	DefensiveRating *int32 `json:"defensive_rating,omitempty"`
	NetRating       *int32 `json:"net_rating,omitempty"`
	FieldGoalPct    *int32 `json:"field_goal_pct,omitempty"`
	ThreePointPct   *int32 `json:"three_point_pct,omitempty"`
	FreeThrowPct    *int32 `json:"free_throw_pct,omitempty"`
	EffectiveFGPct  *int32 `json:"effective_fg_pct,omitempty"`
	TrueShootingPct *int32 `json:"true_shooting_pct,omitempty"`
	ReboundsPG      *int32 `json:"rebounds_pg,omitempty"`
	AssistsPG       *int32 `json:"assists_pg,omitempty"`
	TurnoversPG     *int32 `json:"turnovers_pg,omitempty"`
	StealsPG        *int32 `json:"steals_pg,omitempty"`
	BlocksPG        *int32 `json:"blocks_pg,omitempty"`
}

type teamResponse struct {
	TeamID         string            `json:"team_id"`
	League         string            `json:"league"`
	Season         string            `json:"season"`
	Name           string            `json:"name"`
	Abbreviation   string            `json:"abbreviation"`
	Location       string            `json:"location,omitempty"`
	Conference     string            `json:"conference,omitempty"`
	ConferenceRank int               `json:"conference_rank,omitempty"`
	Wins           int               `json:"wins"`
	Losses         int               `json:"losses"`
	HomeRecord     string            `json:"home_record,omitempty"`
	AwayRecord     string            `json:"away_record,omitempty"`
	LastTenRecord  string            `json:"last_ten_record,omitempty"`
	PointsFor      float64           `json:"points_for,omitempty"`
	PointsAgainst  float64           `json:"points_against,omitempty"`
	Stats          teamStatsResponse `json:"stats"`
	Ranks          teamRanksResponse `json:"ranks"`
}

func toTeamResponse(team *store.Team) teamResponse {
	return teamResponse{
		TeamID:         team.ExternalID,
		League:         team.League,
		Season:         team.Season,
		Name:           team.Name,
		Abbreviation:   team.Abbreviation,
		Location:       team.Location,
		Conference:     team.Conference,
		ConferenceRank: team.ConferenceRank,
		Wins:           team.Wins,
		Losses:         team.Losses,
		HomeRecord:     team.HomeRecord,
		AwayRecord:     team.AwayRecord,
		LastTenRecord:  team.LastTenRecord,
		PointsFor:      team.PointsFor,
		PointsAgainst:  team.PointsAgainst,
		Stats: teamStatsResponse{
			PPG:                 nf(team.PPG),
			OppPPG:              nf(team.OppPPG),
			Pace:                nf(team.Pace),
			OffensiveRating:     nf(team.OffensiveRating),
			DefensiveRating:     nf(team.DefensiveRating),
			NetRating:           nf(team.NetRating),
			FieldGoalPct:        nf(team.FieldGoalPct),
			ThreePointPct:       nf(team.ThreePointPct),
			FreeThrowPct:        nf(team.FreeThrowPct),
			EffectiveFGPct:      nf(team.EffectiveFGPct),
			TrueShootingPct:     nf(team.TrueShootingPct),
			ReboundsPG:          nf(team.ReboundsPG),
			OffReboundsPG:       nf(team.OffReboundsPG),
			DefReboundsPG:       nf(team.DefReboundsPG),
			AssistsPG:           nf(team.AssistsPG),
			TurnoversPG:         nf(team.TurnoversPG),
			StealsPG:            nf(team.StealsPG),
			BlocksPG:            nf(team.BlocksPG),
			FoulsPG:             nf(team.FoulsPG),
			AssistTurnoverRatio: nf(team.AssistTurnoverRatio),
		},
		Ranks: teamRanksResponse{
			PPG:             ni(team.PPGRank),
			OppPPG:          ni(team.OppPPGRank),
			Pace:            ni(team.PaceRank),
			OffensiveRating: ni(team.ORtgRank),
			DefensiveRating: ni(team.DRtgRank),
			NetRating:       ni(team.NetRtgRank),
			FieldGoalPct:    ni(team.FGPctRank),
			ThreePointPct:   ni(team.ThreePctRank),
			FreeThrowPct:    ni(team.FTPctRank),
			EffectiveFGPct:  ni(team.EFGPctRank),
			TrueShootingPct: ni(team.TSPctRank),
			ReboundsPG:      ni(team.ReboundsRank),
			AssistsPG:       ni(team.AssistsRank),
			TurnoversPG:     ni(team.TurnoversRank),
			StealsPG:        ni(team.StealsRank),
			BlocksPG:        ni(team.BlocksRank),
		},
	}
}

type playerResponse struct {
	PlayerID     string   `json:"player_id"`
	Name         string   `json:"name"`
	Position     string   `json:"position,omitempty"`
	Jersey       string   `json:"jersey,omitempty"`
	Height       string   `json:"height,omitempty"`
	Weight       int      `json:"weight,omitempty"`
	GamesPlayed  int      `json:"games_played"`
	GamesStarted int      `json:"games_started"`
	MinutesPG    *float64 `json:"minutes_pg,omitempty"`
	PPG          *float64 `json:"ppg,omitempty"`
	ReboundsPG   *float64 `json:"rebounds_pg,omitempty"`
	AssistsPG    *float64 `json:"assists_pg,omitempty"`
	StealsPG     *float64 `json:"steals_pg,omitempty"`
	BlocksPG     *float64 `json:"blocks_pg,omitempty"`
	TurnoversPG  *float64 `json:"turnovers_pg,omitempty"`
	FoulsPG      *float64 `json:"fouls_pg,omitempty"`
	FieldGoalPct *float64 `json:"field_goal_pct,omitempty"`
	ThreePtPct   *float64 `json:"three_point_pct,omitempty"`
	FreeThrowPct *float64 `json:"free_throw_pct,omitempty"`
}

func toPlayerResponse(player *store.Player) playerResponse {
	return playerResponse{
		PlayerID:     player.ExternalID,
		Name:         player.Name,
		Position:     player.Position,
		Jersey:       player.Jersey,
		Height:       player.Height,
		Weight:       player.Weight,
		GamesPlayed:  player.GamesPlayed,
		GamesStarted: player.GamesStarted,
		MinutesPG:    nf(player.MinutesPG),
		PPG:          nf(player.PPG),
		ReboundsPG:   nf(player.ReboundsPG),
		AssistsPG:    nf(player.AssistsPG),
		StealsPG:     nf(player.StealsPG),
		BlocksPG:     nf(player.BlocksPG),
		TurnoversPG:  nf(player.TurnoversPG),
		FoulsPG:      nf(player.FoulsPG),
		FieldGoalPct: nf(player.FieldGoalPct),
		ThreePtPct:   nf(player.ThreePointPct),
		FreeThrowPct: nf(player.FreeThrowPct),
	}
}

type teamLineResponse struct {
	TeamID            int     `json:"team_id"`
	Points            int     `json:"points"`
	FieldGoalsMade    int     `json:"field_goals_made"`
	FieldGoalsAtt     int     `json:"field_goals_att"`
	ThreePointersMade int     `json:"three_pointers_made"`
	ThreePointersAtt  int     `json:"three_pointers_att"`
	FreeThrowsMade    int     `json:"free_throws_made"`
	FreeThrowsAtt     int     `json:"free_throws_att"`
	Rebounds          int     `json:"rebounds"`
	OffRebounds       int     `json:"off_rebounds"`
	DefRebounds       int     `json:"def_rebounds"`
	Assists           int     `json:"assists"`
	Turnovers         int     `json:"turnovers"`
	Steals            int     `json:"steals"`
	Blocks            int     `json:"blocks"`
	Fouls             int     `json:"fouls"`
	Pace              float64 `json:"pace"`
	OffensiveRating   float64 `json:"offensive_rating"`
	DefensiveRating   float64 `json:"defensive_rating"`
	NetRating         float64 `json:"net_rating"`
	EffectiveFGPct    float64 `json:"effective_fg_pct"`
	TrueShootingPct   float64 `json:"true_shooting_pct"`
}

func toTeamLineResponse(te *store.TeamEvent) teamLineResponse {
	return teamLineResponse{
		TeamID:            te.TeamID,
		Points:            te.Points,
		FieldGoalsMade:    te.FieldGoalsMade,
		FieldGoalsAtt:     te.FieldGoalsAtt,
		ThreePointersMade: te.ThreePointersMade,
		ThreePointersAtt:  te.ThreePointersAtt,
		FreeThrowsMade:    te.FreeThrowsMade,
		FreeThrowsAtt:     te.FreeThrowsAtt,
		Rebounds:          te.Rebounds,
		OffRebounds:       te.OffRebounds,
		DefRebounds:       te.DefRebounds,
		Assists:           te.Assists,
		Turnovers:         te.Turnovers,
		Steals:            te.Steals,
		Blocks:            te.Blocks,
		Fouls:             te.Fouls,
		Pace:              te.Pace,
		OffensiveRating:   te.OffensiveRating,
		DefensiveRating:   te.DefensiveRating,
		NetRating:         te.NetRating,
		EffectiveFGPct:    te.EffectiveFGPct,
		TrueShootingPct:   te.TrueShootingPct,
	}
}

type playerLineResponse struct {
	PlayerID          int     `json:"player_id"`
	Name              string  `json:"name,omitempty"`
	TeamID            int     `json:"team_id"`
	Starter           bool    `json:"starter"`
	Active            bool    `json:"active"`
	Minutes           float64 `json:"minutes"`
	Points            int     `json:"points"`
	FieldGoalsMade    int     `json:"field_goals_made"`
	FieldGoalsAtt     int     `json:"field_goals_att"`
	ThreePointersMade int     `json:"three_pointers_made"`
	ThreePointersAtt  int     `json:"three_pointers_att"`
	FreeThrowsMade    int     `json:"free_throws_made"`
	FreeThrowsAtt     int     `json:"free_throws_att"`
	Rebounds          int     `json:"rebounds"`
	Assists           int     `json:"assists"`
	Turnovers         int     `json:"turnovers"`
	Steals            int     `json:"steals"`
	Blocks            int     `json:"blocks"`
	Fouls             int     `json:"fouls"`
	PlusMinus         *int32  `json:"plus_minus,omitempty"`
}

func toPlayerLineResponse(pe *store.PlayerEvent, name string) playerLineResponse {
	return playerLineResponse{
		PlayerID:          pe.PlayerID,
		Name:              name,
		TeamID:            pe.TeamID,
		Starter:           pe.Starter,
		Active:            pe.Active,
		Minutes:           pe.Minutes,
		Points:            pe.Points,
		FieldGoalsMade:    pe.FieldGoalsMade,
		FieldGoalsAtt:     pe.FieldGoalsAtt,
		ThreePointersMade: pe.ThreePointersMade,
		ThreePointersAtt:  pe.ThreePointersAtt,
		FreeThrowsMade:    pe.FreeThrowsMade,
		FreeThrowsAtt:     pe.FreeThrowsAtt,
		Rebounds:          pe.Rebounds,
		Assists:           pe.Assists,
		Turnovers:         pe.Turnovers,
		Steals:            pe.Steals,
		Blocks:            pe.Blocks,
		Fouls:             pe.Fouls,
		PlusMinus:         ni(pe.PlusMinus),
	}
}
