package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"housegame/internal/app"
	"housegame/internal/bot"
	"housegame/internal/config"
	"housegame/internal/domain"
	"housegame/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats     [4]string                   `json:"seats"`      // user IDs of joined humans, empty string means seat is empty
	OwnerSeat int                         `json:"owner_seat"` // seat index of the match owner
	Tick      int64                       `json:"tick"`
	Presences map[string]runtime.Presence `json:"-"` // userId -> presence for targeted messaging
	App       *app.Service                `json:"-"` // phase engine command surface
	Game      *domain.GameState           `json:"-"` // current season state (nil while in lobby)
	Wallet    ports.WalletPort            `json:"-"` // season prize settlement

	CastSize         int   `json:"cast_size"`
	AutoAdvanceTicks int64 `json:"auto_advance_ticks"`
	NextAutoAdvance  int64 `json:"next_auto_advance"`
}

// GetOpenSeatsCount returns how many lobby seats are free.
func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

// GetOccupiedSeatCount returns how many lobby seats are taken.
func (ms *MatchState) GetOccupiedSeatCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" {
			count++
		}
	}
	return count
}

// findFirstOccupiedSeat returns the first taken seat index or -1.
func findFirstOccupiedSeat(seats []string) int {
	for i, userID := range seats {
		if userID != "" {
			return i
		}
	}
	return -1
}

func newMatchHandler() runtime.Match {
	return &matchHandler{}
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: initializing house match.")

	if err := bot.LoadIdentities("data/houseguest_identities.json"); err != nil {
		logger.Warn("MatchInit: could not load houseguest identities: %v", err)
	}
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: could not load game config: %v", err)
	}
	if err := config.LoadSeason("data/season.yaml"); err != nil {
		logger.Warn("MatchInit: could not load season file: %v", err)
	}

	state := &MatchState{
		Tick:             time.Now().Unix(),
		Presences:        make(map[string]runtime.Presence),
		App:              app.NewService(config.GetJurySize(), config.GetPovPlayers()),
		OwnerSeat:        -1,
		CastSize:         config.GetCastSize(),
		AutoAdvanceTicks: int64(config.GetAutoAdvanceTicks()),
		Wallet:           NewNakamaWalletAdapter(nk),
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["housegame_cast_size"]; ok {
		if i, err := strconv.Atoi(val); err == nil && i >= app.MinCastSize {
			state.CastSize = i
		}
	}
	if val, ok := env["housegame_auto_advance_ticks"]; ok {
		if i, err := strconv.Atoi(val); err == nil && i > 0 {
			state.AutoAdvanceTicks = int64(i)
		}
	}

	labelBytes, err := json.Marshal(matchLabel{Open: true, Game: "housegame", Phase: "lobby"})
	if err != nil {
		logger.Error("MatchInit: failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, string(labelBytes)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Once a season is running only cast members may (re)join.
	if matchState.Game != nil {
		if c := matchState.Game.Competitor(presence.GetUserId()); c != nil && c.Human {
			return state, true, ""
		}
		return state, false, "season_in_progress"
	}

	if matchState.GetOpenSeatsCount() <= 0 {
		return state, false, "match_full"
	}
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		// Rejoining cast members already hold their seat.
		already := false
		for _, seatUserID := range matchState.Seats {
			if seatUserID == p.GetUserId() {
				already = true
				break
			}
		}
		if already {
			continue
		}

		assigned := -1
		for i, seatUserID := range matchState.Seats {
			if seatUserID == "" {
				matchState.Seats[i] = p.GetUserId()
				assigned = i
				break
			}
		}
		if assigned < 0 {
			logger.Warn("MatchJoin: user %s joined but no seat was available.", p.GetUserId())
			continue
		}

		if matchState.OwnerSeat < 0 {
			matchState.OwnerSeat = assigned
		}

		evt, _ := json.Marshal(playerJoinedEvent{
			UserID: p.GetUserId(),
			Seat:   assigned,
			Owner:  assigned == matchState.OwnerSeat,
		})
		if err := dispatcher.BroadcastMessage(OpPlayerJoined, evt, nil, nil, true); err != nil {
			logger.Error("MatchJoin: broadcast failed: %v", err)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	if matchState.Game != nil {
		mh.broadcastSnapshot(matchState, dispatcher, logger)
	}
	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		// Lobby seats free up; a running season keeps the seat so the player
		// can rejoin their competitor.
		if matchState.Game == nil {
			for i, seatUserID := range matchState.Seats {
				if seatUserID == p.GetUserId() {
					matchState.Seats[i] = ""
					break
				}
			}
		}

		evt, _ := json.Marshal(playerLeftEvent{UserID: p.GetUserId()})
		if err := dispatcher.BroadcastMessage(OpPlayerLeft, evt, nil, nil, true); err != nil {
			logger.Error("MatchLeave: broadcast failed: %v", err)
		}
	}

	if matchState.OwnerSeat < 0 || matchState.Seats[matchState.OwnerSeat] == "" ||
		matchState.Presences[matchState.Seats[matchState.OwnerSeat]] == nil {
		newOwner := -1
		for i, seatUserID := range matchState.Seats {
			if seatUserID != "" && matchState.Presences[seatUserID] != nil {
				newOwner = i
				break
			}
		}
		matchState.OwnerSeat = newOwner
	}

	if len(matchState.Presences) == 0 && matchState.Game == nil {
		logger.Info("MatchLeave: terminating empty lobby.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		mh.dispatchCommand(ctx, matchState, dispatcher, logger, msg.GetUserId(), msg.GetOpCode(), msg.GetData())
	}

	mh.processAutoAdvance(ctx, matchState, dispatcher, logger)

	return matchState
}

// dispatchCommand routes one client message into the engine. Rejected engine
// commands are logged and dropped; players never see an error surface.
func (mh *matchHandler) dispatchCommand(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string, opCode int64, data []byte) {
	if opCode == OpStartSeason {
		mh.handleStartSeason(ctx, state, dispatcher, logger, senderID, data)
		return
	}

	if state.Game == nil {
		logger.Warn("dispatchCommand: op %d from %s before season start.", opCode, senderID)
		return
	}
	g := state.Game

	var (
		next   *domain.GameState
		events []app.Event
		err    error
	)

	switch opCode {
	case OpAdvance:
		if !mh.isOwner(state, senderID) {
			logger.Warn("dispatchCommand: %s tried to advance but is not owner.", senderID)
			return
		}
		next, events, err = state.App.Advance(g)

	case OpSelectNominee1:
		target, ok := decodeTarget(logger, data)
		if !ok || senderID != g.HOHID {
			return
		}
		next, events, err = state.App.SelectNominee1(g, target)

	case OpFinalizeNominations:
		target, ok := decodeTarget(logger, data)
		if !ok || senderID != g.HOHID {
			return
		}
		next, events, err = state.App.FinalizeNominations(g, target)

	case OpPovDecision:
		if senderID != g.POVWinnerID {
			return
		}
		request := povDecisionPayload{}
		if jsonErr := json.Unmarshal(data, &request); jsonErr != nil {
			logger.Warn("dispatchCommand: invalid pov decision payload: %v", jsonErr)
			return
		}
		next, events, err = state.App.SubmitPovDecision(g, request.UseVeto)

	case OpPovSaveTarget:
		target, ok := decodeTarget(logger, data)
		if !ok || senderID != g.POVWinnerID {
			return
		}
		next, events, err = state.App.SubmitPovSaveTarget(g, target)

	case OpReplacementNominee:
		target, ok := decodeTarget(logger, data)
		if !ok || senderID != g.HOHID {
			return
		}
		next, events, err = state.App.SetReplacementNominee(g, target)

	case OpHumanVote:
		target, ok := decodeTarget(logger, data)
		if !ok {
			return
		}
		next, events, err = state.App.SubmitHumanVote(g, senderID, target)

	case OpTieBreak:
		target, ok := decodeTarget(logger, data)
		if !ok || senderID != g.HOHID {
			return
		}
		next, events, err = state.App.SubmitTieBreak(g, target)

	case OpFinal4Eviction:
		target, ok := decodeTarget(logger, data)
		if !ok || senderID != g.POVWinnerID {
			return
		}
		next, events, err = state.App.FinalizeFinal4Eviction(g, target)

	case OpFinal3Eviction:
		target, ok := decodeTarget(logger, data)
		if !ok || senderID != g.HOHID {
			return
		}
		next, events, err = state.App.FinalizeFinal3Eviction(g, target)

	case OpMinigameResult:
		request := minigameResultPayload{}
		if jsonErr := json.Unmarshal(data, &request); jsonErr != nil {
			logger.Warn("dispatchCommand: invalid minigame result payload: %v", jsonErr)
			return
		}
		if !g.Minigame.Includes(senderID) {
			logger.Warn("dispatchCommand: %s reported a minigame result without competing.", senderID)
			return
		}
		next, events, err = state.App.ApplyF3MinigameWinner(g, request.WinnerID)

	case OpAddTvEvent:
		if !mh.isOwner(state, senderID) {
			return
		}
		request := tvEventPayload{}
		if jsonErr := json.Unmarshal(data, &request); jsonErr != nil {
			logger.Warn("dispatchCommand: invalid tv event payload: %v", jsonErr)
			return
		}
		next, events, err = state.App.AddTvEvent(g, request.Text, domain.TvKind(request.Kind))

	case OpFinalizeSeason:
		if !mh.isOwner(state, senderID) {
			return
		}
		request := finalizeSeasonPayload{}
		if jsonErr := json.Unmarshal(data, &request); jsonErr != nil {
			logger.Warn("dispatchCommand: invalid finalize payload: %v", jsonErr)
			return
		}
		next, events, err = state.App.FinalizeSeason(g, request.Votes)

	default:
		logger.Warn("dispatchCommand: unknown opcode %d from %s.", opCode, senderID)
		return
	}

	if err != nil {
		logger.Warn("dispatchCommand: op %d from %s rejected: %v", opCode, senderID, err)
		return
	}
	state.Game = next
	mh.handleEvents(ctx, state, dispatcher, logger, events)
}

func (mh *matchHandler) handleStartSeason(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string, data []byte) {
	if state.Game != nil {
		logger.Warn("handleStartSeason: season already running.")
		return
	}
	if !mh.isOwner(state, senderID) {
		logger.Warn("handleStartSeason: %s tried to start the season but is not owner.", senderID)
		return
	}

	request := startSeasonPayload{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &request); err != nil {
			logger.Warn("handleStartSeason: invalid payload from %s: %v", senderID, err)
			return
		}
	}
	seed := request.Seed
	if seed == 0 {
		seed = uint32(time.Now().UnixNano())
	}

	cast := mh.buildCast(state, logger)
	game, events, err := state.App.StartSeason(config.GetSeasonNumber(), seed, cast)
	if err != nil {
		logger.Error("handleStartSeason: failed to start season: %v", err)
		return
	}

	state.Game = game
	logger.Info("handleStartSeason: season %d started with %d houseguests (seed %d).", game.Season, len(cast), seed)
	mh.handleEvents(ctx, state, dispatcher, logger, events)
	mh.broadcastSnapshot(state, dispatcher, logger)
	mh.updateLabel(state, dispatcher, logger)
}

// buildCast fills the season cast with the joined humans, the season file's
// pinned houseguests, then the identity pool.
func (mh *matchHandler) buildCast(state *MatchState, logger runtime.Logger) []app.CastEntry {
	var cast []app.CastEntry
	used := make(map[string]bool)

	for _, seatUserID := range state.Seats {
		if seatUserID == "" {
			continue
		}
		name := seatUserID
		if p, ok := state.Presences[seatUserID]; ok && p.GetUsername() != "" {
			name = p.GetUsername()
		}
		cast = append(cast, app.CastEntry{ID: seatUserID, Name: name, Human: true})
		used[seatUserID] = true
	}

	if season := config.GetSeason(); season != nil {
		for _, pinned := range season.Cast {
			if len(cast) >= state.CastSize {
				break
			}
			if pinned.ID == "" || used[pinned.ID] {
				continue
			}
			cast = append(cast, app.CastEntry{ID: pinned.ID, Name: pinned.Name})
			used[pinned.ID] = true
		}
	}

	for i := 0; len(cast) < state.CastSize; i++ {
		identity := bot.GetIdentity(i)
		if used[identity.ID] {
			// Identity pool exhausted; synthesize the remaining seats.
			identity.ID = fmt.Sprintf("hg-bot-%d", i)
			identity.Name = fmt.Sprintf("Houseguest %d", i+1)
		}
		cast = append(cast, app.CastEntry{ID: identity.ID, Name: identity.Name})
		used[identity.ID] = true
	}

	logger.Debug("buildCast: %d humans, %d total.", state.GetOccupiedSeatCount(), len(cast))
	return cast
}

// processAutoAdvance keeps an all-AI season moving on a tick cadence. Pacing
// for seasons with living human competitors stays with the clients.
func (mh *matchHandler) processAutoAdvance(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	g := state.Game
	if g == nil || g.WinnerID != "" || state.AutoAdvanceTicks <= 0 {
		return
	}
	for _, c := range g.Alive() {
		if c.Human {
			return
		}
	}
	if state.Tick < state.NextAutoAdvance {
		return
	}
	state.NextAutoAdvance = state.Tick + state.AutoAdvanceTicks

	var (
		next   *domain.GameState
		events []app.Event
		err    error
	)
	if g.Phase.Terminal() {
		next, events, err = state.App.FinalizeSeason(g, nil)
	} else {
		next, events, err = state.App.Advance(g)
	}
	if err != nil {
		logger.Debug("processAutoAdvance: %v", err)
		return
	}
	state.Game = next
	mh.handleEvents(ctx, state, dispatcher, logger, events)
}

// handleEvents dispatches engine events to clients and collaborators.
func (mh *matchHandler) handleEvents(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case app.EventSeasonStarted:
			p := ev.Payload.(app.SeasonStartedPayload)
			payload, _ := json.Marshal(seasonStartedEvent{Season: p.Season, Week: p.Week})
			if err := dispatcher.BroadcastMessage(OpSeasonStarted, payload, nil, nil, true); err != nil {
				logger.Error("handleEvents: season started broadcast failed: %v", err)
			}

		case app.EventStateChanged:
			mh.broadcastSnapshot(state, dispatcher, logger)
			mh.updateLabel(state, dispatcher, logger)

		case app.EventMinigameStarted:
			p := ev.Payload.(app.MinigameStartedPayload)
			launcher := NewDispatcherMinigameLauncher(dispatcher, state.Presences)
			if err := launcher.Launch(ctx, p.Context); err != nil {
				logger.Error("handleEvents: minigame launch failed: %v", err)
			}

		case app.EventSeasonEnded:
			p := ev.Payload.(app.SeasonEndedPayload)
			payload, _ := json.Marshal(seasonEndedEvent{WinnerID: p.WinnerID, Votes: p.Votes})
			if err := dispatcher.BroadcastMessage(OpSeasonEnded, payload, nil, nil, true); err != nil {
				logger.Error("handleEvents: season ended broadcast failed: %v", err)
			}
			mh.settlePrize(ctx, state, logger, p.WinnerID)

		default:
			logger.Warn("handleEvents: unknown event kind %v.", ev.Kind)
		}
	}
}

// settlePrize awards the season prize to a human winner's wallet.
func (mh *matchHandler) settlePrize(ctx context.Context, state *MatchState, logger runtime.Logger, winnerID string) {
	if state.Wallet == nil || state.Game == nil {
		return
	}
	winner := state.Game.Competitor(winnerID)
	if winner == nil || !winner.Human {
		return
	}
	awards := []ports.PrizeAward{{
		UserID: winnerID,
		Amount: config.GetWinnerPrizeGold(),
		Metadata: map[string]interface{}{
			"match_id": ctx.Value(runtime.RUNTIME_CTX_MATCH_ID),
			"reason":   "season_prize",
			"season":   state.Game.Season,
		},
	}}
	if err := state.Wallet.Award(ctx, awards); err != nil {
		logger.Error("settlePrize: failed to award season prize: %v", err)
	}
}

func (mh *matchHandler) broadcastSnapshot(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Game == nil {
		return
	}
	payload, err := json.Marshal(buildSnapshot(state.Game))
	if err != nil {
		logger.Error("broadcastSnapshot: failed to marshal snapshot: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpStateSnapshot, payload, nil, nil, true); err != nil {
		logger.Error("broadcastSnapshot: broadcast failed: %v", err)
	}
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label := matchLabel{
		Open:  state.Game == nil && state.GetOpenSeatsCount() > 0,
		Game:  "housegame",
		Phase: "lobby",
	}
	if state.Game != nil {
		label.Phase = state.Game.Phase.String()
	}
	labelBytes, err := json.Marshal(label)
	if err != nil {
		logger.Error("updateLabel: failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("updateLabel: failed to update: %v", err)
	}
}

func (mh *matchHandler) isOwner(state *MatchState, userID string) bool {
	return state.OwnerSeat >= 0 && state.Seats[state.OwnerSeat] == userID
}

func decodeTarget(logger runtime.Logger, data []byte) (string, bool) {
	request := targetPayload{}
	if err := json.Unmarshal(data, &request); err != nil {
		logger.Warn("decodeTarget: invalid payload: %v", err)
		return "", false
	}
	if request.TargetID == "" {
		return "", false
	}
	return request.TargetID, true
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
