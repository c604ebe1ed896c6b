package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"nyayapath/internal/domain/entity"
	"nyayapath/internal/domain/repository"
	"nyayapath/internal/domain/service"
	"nyayapath/pkg/errors"
	"nyayapath/pkg/logger"
)

// BattlePacing carries the session-level timing knobs, wired from config.
type BattlePacing struct {
	SessionSeconds int64
	IdleTimeout    int64
}

// battleSession wraps the client-visible state with the server-side
// deadlines that drive it. Deadlines are computed from the injected
// clock and only ever observed on API calls; there are no background
// timers racing the handlers.
type battleSession struct {
	mu sync.Mutex

	state    *entity.BattleState
	scenario *entity.CaseScenario

	sessionDeadline time.Time
	choiceShownAt   time.Time
	choiceDeadline  time.Time
	lastActivity    time.Time
	completed       bool
}

// BattleUseCase runs the four-phase courtroom state machine over
// in-memory sessions, one active session per player. Battle state is
// never persisted: game-over reduces it to a CaseResult handed to the
// progression fold, and abandonment discards it without credit.
type BattleUseCase struct {
	caseRepo    repository.CaseRepository
	progression *ProgressionUseCase
	scoring     *service.ScoringService
	clock       service.Clock
	notifier    BattleNotifier
	pacing      BattlePacing

	mu       sync.RWMutex
	sessions map[string]*battleSession
	byPlayer map[string]string
}

func NewBattleUseCase(
	caseRepo repository.CaseRepository,
	progression *ProgressionUseCase,
	scoring *service.ScoringService,
	clock service.Clock,
	notifier BattleNotifier,
	pacing BattlePacing,
) *BattleUseCase {
	return &BattleUseCase{
		caseRepo:    caseRepo,
		progression: progression,
		scoring:     scoring,
		clock:       clock,
		notifier:    notifier,
		pacing:      pacing,
		sessions:    make(map[string]*battleSession),
		byPlayer:    make(map[string]string),
	}
}

// BattleOutcome is returned from the game-over transition: the terminal
// state plus the progression fold's output. Completion is nil until the
// battle actually ends.
type BattleOutcome struct {
	State      *entity.BattleState `json:"state"`
	Completion *CaseCompletion     `json:"completion,omitempty"`
}

// StartBattle creates a session for the player on the given case. A
// player has at most one active battle; starting a new one discards any
// session still in flight, without credit.
func (uc *BattleUseCase) StartBattle(ctx context.Context, playerID, caseID string, role entity.CaseRole) (*entity.BattleState, error) {
	if !role.Valid() {
		return nil, errors.BadRequest("Invalid courtroom role", nil)
	}

	scenario, err := uc.caseRepo.GetByID(ctx, caseID)
	if err != nil {
		return nil, errors.NotFound("Case", err)
	}
	if err := scenario.Validate(); err != nil {
		return nil, errors.Internal("Case content is not playable", err)
	}

	now := uc.clock.Now()
	firstPhase := scenario.Phases[0].Phase
	state := &entity.BattleState{
		SessionID:           uuid.New().String(),
		PlayerID:            playerID,
		CaseID:              caseID,
		Role:                role,
		Difficulty:          scenario.Difficulty,
		CurrentPhase:        firstPhase,
		PhaseNumber:         1,
		TotalPhases:         len(scenario.Phases),
		GamePhase:           entity.GamePhaseGandhiSpeaking,
		Score:               0,
		OpponentMood:        entity.MoodNeutral,
		TimeRemaining:       uc.pacing.SessionSeconds,
		ChoiceTimeRemaining: uc.scoring.ChoiceTimeLimit(firstPhase),
		ChoiceHistory:       []entity.ChoiceRecord{},
		StartedAt:           now,
	}

	session := &battleSession{
		state:           state,
		scenario:        scenario,
		sessionDeadline: now.Add(time.Duration(uc.pacing.SessionSeconds) * time.Second),
		lastActivity:    now,
	}

	uc.mu.Lock()
	if oldID, ok := uc.byPlayer[playerID]; ok {
		delete(uc.sessions, oldID)
		logger.LogBattleEvent(oldID, "discarded", "replaced by new battle")
	}
	uc.sessions[state.SessionID] = session
	uc.byPlayer[playerID] = state.SessionID
	uc.mu.Unlock()

	logger.LogBattleEvent(state.SessionID, "started", caseID)
	uc.push(state)
	return snapshot(state), nil
}

// Ready acknowledges the opponent's argument and opens the choice
// window: gandhi-speaking becomes player-choosing and the per-phase
// countdown starts. An already-expired session clock resolves to
// game-over here, fold included.
func (uc *BattleUseCase) Ready(ctx context.Context, sessionID, playerID string) (*BattleOutcome, error) {
	session, err := uc.session(sessionID, playerID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	now := uc.clock.Now()
	if state, done := uc.observeDeadlines(session, now); done {
		return uc.finish(ctx, session, state)
	}

	state := session.state
	if state.GamePhase != entity.GamePhaseGandhiSpeaking {
		return nil, errors.Conflict("Battle is not awaiting the opponent's argument")
	}

	limit := uc.scoring.ChoiceTimeLimit(state.CurrentPhase)
	state.GamePhase = entity.GamePhasePlayerChoosing
	state.ChoiceTimeRemaining = limit
	session.choiceShownAt = now
	session.choiceDeadline = now.Add(time.Duration(limit) * time.Second)
	session.lastActivity = now

	uc.push(state)
	return &BattleOutcome{State: snapshot(state)}, nil
}

// Choose records the player's strategy pick for the current phase. Past
// the choice deadline the pick is ignored and the last option, by
// catalog contract the worst one, is auto-selected instead; that is a
// defined resolution, not an error.
func (uc *BattleUseCase) Choose(ctx context.Context, sessionID, playerID string, optionIndex int) (*BattleOutcome, error) {
	session, err := uc.session(sessionID, playerID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	wasChoosing := session.state.GamePhase == entity.GamePhasePlayerChoosing

	now := uc.clock.Now()
	if state, done := uc.observeDeadlines(session, now); done {
		return uc.finish(ctx, session, state)
	}

	state := session.state
	if state.GamePhase != entity.GamePhasePlayerChoosing {
		if wasChoosing {
			// The choice deadline resolved this phase before the pick
			// arrived; the auto-selected result stands.
			return &BattleOutcome{State: snapshot(state)}, nil
		}
		return nil, errors.Conflict("Battle is not awaiting a choice")
	}

	options := session.scenario.Phases[state.PhaseNumber-1].OptionsForRole(state.Role)
	if optionIndex < 0 || optionIndex >= len(options) {
		return nil, errors.BadRequest("Choice is out of range", nil)
	}

	uc.applyChoice(session, optionIndex, now, false)
	uc.push(state)
	return &BattleOutcome{State: snapshot(state)}, nil
}

// Continue advances past the results screen: into the next phase's
// gandhi-speaking state, or to game-over after the final phase. The
// game-over transition produces the CaseResult and runs the progression
// fold exactly once.
func (uc *BattleUseCase) Continue(ctx context.Context, sessionID, playerID string) (*BattleOutcome, error) {
	session, err := uc.session(sessionID, playerID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	now := uc.clock.Now()
	if state, done := uc.observeDeadlines(session, now); done {
		return uc.finish(ctx, session, state)
	}

	state := session.state
	if state.GamePhase != entity.GamePhaseShowingResults {
		return nil, errors.Conflict("Battle is not showing results")
	}

	if state.PhaseNumber < state.TotalPhases {
		state.PhaseNumber++
		state.CurrentPhase = session.scenario.Phases[state.PhaseNumber-1].Phase
		state.GamePhase = entity.GamePhaseGandhiSpeaking
		state.ChoiceTimeRemaining = uc.scoring.ChoiceTimeLimit(state.CurrentPhase)
		session.lastActivity = now
		uc.push(state)
		return &BattleOutcome{State: snapshot(state)}, nil
	}

	uc.endBattle(session, now)
	return uc.finish(ctx, session, snapshot(state))
}

// Tick is the logical timer feed: it refreshes the countdowns and
// enforces any deadline that passed since the last call. Clients poll it
// or call it from their render loop; no server-side timer goroutines
// exist.
func (uc *BattleUseCase) Tick(ctx context.Context, sessionID, playerID string) (*BattleOutcome, error) {
	session, err := uc.session(sessionID, playerID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	now := uc.clock.Now()
	if state, done := uc.observeDeadlines(session, now); done {
		return uc.finish(ctx, session, state)
	}
	return &BattleOutcome{State: snapshot(session.state)}, nil
}

// GetState returns the current client-visible state without advancing
// anything except already-expired deadlines. Whichever call first
// observes an expired session clock runs the game-over fold, so a
// completed result is never left waiting on a further action.
func (uc *BattleUseCase) GetState(ctx context.Context, sessionID, playerID string) (*BattleOutcome, error) {
	session, err := uc.session(sessionID, playerID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	if state, done := uc.observeDeadlines(session, uc.clock.Now()); done {
		return uc.finish(ctx, session, state)
	}
	return &BattleOutcome{State: snapshot(session.state)}, nil
}

// Abandon discards the session. Nothing is persisted: no XP, no
// counters, no achievement evaluation.
func (uc *BattleUseCase) Abandon(ctx context.Context, sessionID, playerID string) error {
	session, err := uc.session(sessionID, playerID)
	if err != nil {
		return err
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	uc.remove(sessionID, playerID)
	logger.LogBattleEvent(sessionID, "abandoned", playerID)
	return nil
}

// ReapIdleSessions discards sessions with no activity for the idle
// timeout. Called periodically from the server loop.
//
// Lock order: the registry lock is released before any session lock is
// taken. Completing battles lock session-then-registry (finish ->
// remove), so holding both here the other way around would deadlock.
func (uc *BattleUseCase) ReapIdleSessions() int {
	now := uc.clock.Now()
	cutoff := time.Duration(uc.pacing.IdleTimeout) * time.Second

	uc.mu.RLock()
	candidates := make(map[string]*battleSession, len(uc.sessions))
	for id, session := range uc.sessions {
		candidates[id] = session
	}
	uc.mu.RUnlock()

	reaped := 0
	for id, session := range candidates {
		session.mu.Lock()
		idle := now.Sub(session.lastActivity) > cutoff
		playerID := session.state.PlayerID
		session.mu.Unlock()
		if idle {
			uc.remove(id, playerID)
			logger.LogBattleEvent(id, "reaped", "idle timeout")
			reaped++
		}
	}
	return reaped
}

func (uc *BattleUseCase) session(sessionID, playerID string) (*battleSession, error) {
	uc.mu.RLock()
	session, ok := uc.sessions[sessionID]
	uc.mu.RUnlock()
	if !ok {
		return nil, errors.NotFound("Battle session", nil)
	}
	if session.state.PlayerID != playerID {
		return nil, errors.Forbidden("Battle belongs to another player", nil)
	}
	return session, nil
}

// observeDeadlines enforces whatever expired since the last API call,
// under the session lock. It returns (state, true) when the session has
// reached game-over and the caller should hand off to finish.
func (uc *BattleUseCase) observeDeadlines(session *battleSession, now time.Time) (*entity.BattleState, bool) {
	state := session.state

	if state.GamePhase == entity.GamePhaseGameOver {
		return snapshot(state), true
	}

	// The overall session clock expiring ends the case on the spot with
	// whatever score stands.
	if !now.Before(session.sessionDeadline) {
		state.TimeRemaining = 0
		uc.endBattle(session, session.sessionDeadline)
		return snapshot(state), true
	}
	state.TimeRemaining = int64(session.sessionDeadline.Sub(now) / time.Second)

	if state.GamePhase == entity.GamePhasePlayerChoosing {
		if !now.Before(session.choiceDeadline) {
			options := session.scenario.Phases[state.PhaseNumber-1].OptionsForRole(state.Role)
			uc.applyChoice(session, len(options)-1, session.choiceDeadline, true)
			uc.push(state)
		} else {
			state.ChoiceTimeRemaining = int64(session.choiceDeadline.Sub(now) / time.Second)
		}
	}

	return snapshot(state), false
}

// applyChoice commits an option for the current phase: score delta,
// cosmetic mood, history entry, and the transition to showing-results.
func (uc *BattleUseCase) applyChoice(session *battleSession, optionIndex int, at time.Time, auto bool) {
	state := session.state
	option := session.scenario.Phases[state.PhaseNumber-1].OptionsForRole(state.Role)[optionIndex]

	state.Score += option.ScoreDelta
	state.OpponentMood = entity.MoodForEffectiveness(option.Effectiveness)

	timeTaken := int64(at.Sub(session.choiceShownAt) / time.Second)
	if limit := uc.scoring.ChoiceTimeLimit(state.CurrentPhase); timeTaken > limit {
		timeTaken = limit
	}

	state.ChoiceHistory = append(state.ChoiceHistory, entity.ChoiceRecord{
		Phase:         state.CurrentPhase,
		OptionIndex:   optionIndex,
		Strategy:      option.Strategy,
		Effectiveness: option.Effectiveness,
		ScoreDelta:    option.ScoreDelta,
		TimeTaken:     timeTaken,
		AutoSelected:  auto,
	})

	state.GamePhase = entity.GamePhaseShowingResults
	state.ChoiceTimeRemaining = 0
	session.lastActivity = at

	if auto {
		logger.LogBattleEvent(state.SessionID, "choice-timeout", state.CurrentPhase)
	}
}

// endBattle resolves the verdict from the standing score and moves the
// session to game-over. The given time is the moment the battle ended,
// which for an expired session clock is the deadline itself, not the
// later call that observed it.
func (uc *BattleUseCase) endBattle(session *battleSession, at time.Time) {
	state := session.state
	state.GamePhase = entity.GamePhaseGameOver
	state.Verdict = uc.scoring.VerdictForScore(state.Score)
	state.ChoiceTimeRemaining = 0
	state.EndedAt = at
	session.lastActivity = at
	logger.LogBattleEvent(state.SessionID, "game-over", state.Verdict)
	uc.push(state)
}

// finish builds the CaseResult from a terminal state, runs the
// progression fold exactly once, and drops the session. A
// STORAGE_UNAVAILABLE error from the fold is passed through with the
// outcome intact. Callers hold the session lock.
func (uc *BattleUseCase) finish(ctx context.Context, session *battleSession, state *entity.BattleState) (*BattleOutcome, error) {
	if session.completed {
		return &BattleOutcome{State: state}, nil
	}
	session.completed = true
	uc.remove(state.SessionID, state.PlayerID)

	result := buildCaseResult(state)
	completion, err := uc.progression.CompleteCase(ctx, state.PlayerID, result, state.Difficulty, state.ChoiceHistory)
	if completion == nil && err != nil {
		return nil, err
	}
	return &BattleOutcome{State: state, Completion: completion}, err
}

func (uc *BattleUseCase) remove(sessionID, playerID string) {
	uc.mu.Lock()
	delete(uc.sessions, sessionID)
	if uc.byPlayer[playerID] == sessionID {
		delete(uc.byPlayer, playerID)
	}
	uc.mu.Unlock()
}

func (uc *BattleUseCase) push(state *entity.BattleState) {
	if uc.notifier == nil {
		return
	}
	uc.notifier.PushBattleState(state.PlayerID, snapshot(state))
}

// snapshot copies the state so callers never hold a reference into a
// session that keeps mutating.
func snapshot(state *entity.BattleState) *entity.BattleState {
	copied := *state
	copied.ChoiceHistory = append([]entity.ChoiceRecord(nil), state.ChoiceHistory...)
	return &copied
}

// buildCaseResult reduces a terminal battle state to the progression
// engine's input. Accuracy is the share of choices that helped the case
// (perfect or good); elapsed time runs from start to the recorded
// game-over moment, so a late fold does not inflate it.
func buildCaseResult(state *entity.BattleState) *entity.CaseResult {
	perfect := 0
	positive := 0
	for _, record := range state.ChoiceHistory {
		switch record.Effectiveness {
		case entity.EffectivenessPerfect:
			perfect++
			positive++
		case entity.EffectivenessGood:
			positive++
		}
	}

	accuracy := 0.0
	if len(state.ChoiceHistory) > 0 {
		accuracy = float64(positive) / float64(len(state.ChoiceHistory))
	}

	elapsed := int64(state.EndedAt.Sub(state.StartedAt) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}

	return &entity.CaseResult{
		CaseID:         state.CaseID,
		Won:            state.Verdict == entity.VerdictWin,
		Verdict:        state.Verdict,
		Score:          state.Score,
		Accuracy:       accuracy,
		TimeElapsed:    elapsed,
		PerfectChoices: perfect,
		TotalChoices:   len(state.ChoiceHistory),
	}
}
