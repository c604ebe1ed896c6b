package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"nyayapath/internal/domain/entity"
	"nyayapath/internal/domain/service"
	"nyayapath/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeCaseRepo struct {
	cases map[string]*entity.CaseScenario
}

func newFakeCaseRepo(cases ...*entity.CaseScenario) *fakeCaseRepo {
	repo := &fakeCaseRepo{cases: make(map[string]*entity.CaseScenario)}
	for _, c := range cases {
		repo.cases[c.ID] = c
	}
	return repo
}

func (r *fakeCaseRepo) GetByID(ctx context.Context, id string) (*entity.CaseScenario, error) {
	c, ok := r.cases[id]
	if !ok {
		return nil, errors.NotFound("Case", nil)
	}
	return c, nil
}

func (r *fakeCaseRepo) List(ctx context.Context, difficulty entity.Difficulty, limit, offset int) ([]*entity.CaseScenario, int64, error) {
	var out []*entity.CaseScenario
	for _, c := range r.cases {
		if difficulty == "" || c.Difficulty == difficulty {
			out = append(out, c)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeCaseRepo) Count(ctx context.Context) (int, error) {
	return len(r.cases), nil
}

func (r *fakeCaseRepo) Create(ctx context.Context, c *entity.CaseScenario) error {
	r.cases[c.ID] = c
	return nil
}

func (r *fakeCaseRepo) Update(ctx context.Context, c *entity.CaseScenario) error {
	r.cases[c.ID] = c
	return nil
}

func (r *fakeCaseRepo) Delete(ctx context.Context, id string) error {
	delete(r.cases, id)
	return nil
}

type fakeStatsRepo struct {
	mu       sync.Mutex
	stats    map[string]*entity.PlayerStats
	failSave bool
	saves    int
}

func newFakeStatsRepo() *fakeStatsRepo {
	return &fakeStatsRepo{stats: make(map[string]*entity.PlayerStats)}
}

func (r *fakeStatsRepo) Get(ctx context.Context, playerID string) (*entity.PlayerStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stats[playerID]
	if !ok {
		return nil, errors.NotFound("Player stats", nil)
	}
	copied := *s
	return &copied, nil
}

func (r *fakeStatsRepo) Save(ctx context.Context, stats *entity.PlayerStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSave {
		return errors.Internal("backend down", nil)
	}
	copied := *stats
	r.stats[stats.PlayerID] = &copied
	r.saves++
	return nil
}

func (r *fakeStatsRepo) Top(ctx context.Context, limit int) ([]*entity.PlayerStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.PlayerStats
	for _, s := range r.stats {
		copied := *s
		out = append(out, &copied)
	}
	return out, nil
}

// testScenario builds a playable beginner case. Options per phase:
// index 0 perfect (+20), 1 good (+10), 2 weak (-10), 3 bad (-20).
func testScenario(id string) *entity.CaseScenario {
	options := []entity.StrategyOption{
		{Text: "a", Strategy: "constitutional", Effectiveness: entity.EffectivenessPerfect, ScoreDelta: 20, Explanation: "x"},
		{Text: "b", Strategy: "procedural", Effectiveness: entity.EffectivenessGood, ScoreDelta: 10, Explanation: "x"},
		{Text: "c", Strategy: "emotional", Effectiveness: entity.EffectivenessWeak, ScoreDelta: -10, Explanation: "x"},
		{Text: "d", Strategy: "aggressive", Effectiveness: entity.EffectivenessBad, ScoreDelta: -20, Explanation: "x"},
	}
	var phases []entity.CasePhase
	for _, phase := range entity.BattlePhaseOrder() {
		phases = append(phases, entity.CasePhase{
			Phase:              phase,
			OpponentArgument:   "the crown objects",
			DefenseOptions:     append([]entity.StrategyOption(nil), options...),
			ProsecutionOptions: append([]entity.StrategyOption(nil), options...),
		})
	}
	return &entity.CaseScenario{
		ID:         id,
		Title:      "Trial of 1922",
		Difficulty: entity.DifficultyBeginner,
		Phases:     phases,
		Status:     "active",
	}
}

func newBattleFixture(t *testing.T) (*BattleUseCase, *fakeClock, *fakeStatsRepo) {
	t.Helper()
	clock := newFakeClock()
	caseRepo := newFakeCaseRepo(testScenario("case-1"))
	statsRepo := newFakeStatsRepo()

	scoring := service.NewScoringService(service.DefaultScoringConfig())
	evaluator := service.NewAchievementEvaluator(service.DefaultAchievementCatalog(), clock)
	progression := NewProgressionUseCase(statsRepo, caseRepo, scoring, evaluator, clock)

	battles := NewBattleUseCase(caseRepo, progression, scoring, clock, nil, BattlePacing{
		SessionSeconds: 1200,
		IdleTimeout:    3600,
	})
	return battles, clock, statsRepo
}

func TestBattlePhaseOrdering(t *testing.T) {
	battles, clock, _ := newBattleFixture(t)
	ctx := context.Background()

	state, err := battles.StartBattle(ctx, "player-1", "case-1", entity.CaseRoleDefense)
	require.NoError(t, err)
	assert.Equal(t, entity.PhaseOpeningStatements, state.CurrentPhase)
	assert.Equal(t, entity.GamePhaseGandhiSpeaking, state.GamePhase)
	assert.Equal(t, 1, state.PhaseNumber)
	assert.Equal(t, 4, state.TotalPhases)

	wantPhases := entity.BattlePhaseOrder()
	for i := 0; i < 4; i++ {
		ready, err := battles.Ready(ctx, state.SessionID, "player-1")
		require.NoError(t, err)
		assert.Equal(t, wantPhases[i], ready.State.CurrentPhase)
		assert.Equal(t, entity.GamePhasePlayerChoosing, ready.State.GamePhase)

		clock.Advance(5 * time.Second)
		chosen, err := battles.Choose(ctx, state.SessionID, "player-1", 0)
		require.NoError(t, err)
		assert.Equal(t, entity.GamePhaseShowingResults, chosen.State.GamePhase)
		assert.Equal(t, (i+1)*20, chosen.State.Score)

		outcome, err := battles.Continue(ctx, state.SessionID, "player-1")
		require.NoError(t, err)
		if i < 3 {
			assert.Equal(t, entity.GamePhaseGandhiSpeaking, outcome.State.GamePhase)
			assert.Equal(t, i+2, outcome.State.PhaseNumber)
			assert.Equal(t, wantPhases[i+1], outcome.State.CurrentPhase)
			assert.Nil(t, outcome.Completion)
		} else {
			assert.Equal(t, entity.GamePhaseGameOver, outcome.State.GamePhase)
			assert.Equal(t, entity.VerdictWin, outcome.State.Verdict)
			require.NotNil(t, outcome.Completion)
			assert.True(t, outcome.Completion.Result.Won)
			assert.Equal(t, 4, outcome.Completion.Result.PerfectChoices)
		}
	}

	// Session is gone after game over.
	_, err = battles.GetState(ctx, state.SessionID, "player-1")
	assert.Error(t, err)
}

func TestBattleChoiceTimeoutAutoSelectsLastOption(t *testing.T) {
	battles, clock, _ := newBattleFixture(t)
	ctx := context.Background()

	state, err := battles.StartBattle(ctx, "player-1", "case-1", entity.CaseRoleDefense)
	require.NoError(t, err)

	_, err = battles.Ready(ctx, state.SessionID, "player-1")
	require.NoError(t, err)

	// Opening statements allow 45s; blow past the deadline.
	clock.Advance(46 * time.Second)

	outcome, err := battles.Tick(ctx, state.SessionID, "player-1")
	require.NoError(t, err)
	st := outcome.State

	assert.Equal(t, entity.GamePhaseShowingResults, st.GamePhase)
	require.Len(t, st.ChoiceHistory, 1)
	record := st.ChoiceHistory[0]
	assert.True(t, record.AutoSelected)
	assert.Equal(t, 3, record.OptionIndex)
	assert.Equal(t, entity.EffectivenessBad, record.Effectiveness)
	assert.Equal(t, -20, st.Score)
	assert.Equal(t, int64(45), record.TimeTaken)
}

func TestBattleLateChooseResolvesAsTimeout(t *testing.T) {
	battles, clock, _ := newBattleFixture(t)
	ctx := context.Background()

	state, err := battles.StartBattle(ctx, "player-1", "case-1", entity.CaseRoleDefense)
	require.NoError(t, err)
	_, err = battles.Ready(ctx, state.SessionID, "player-1")
	require.NoError(t, err)

	clock.Advance(50 * time.Second)

	// The late pick of the perfect option is ignored; the deadline
	// already committed the last option. No error: timeout resolution
	// is a defined outcome, not a conflict.
	outcome, err := battles.Choose(ctx, state.SessionID, "player-1", 0)
	require.NoError(t, err)
	st := outcome.State
	require.Len(t, st.ChoiceHistory, 1)
	assert.True(t, st.ChoiceHistory[0].AutoSelected)
	assert.Equal(t, 3, st.ChoiceHistory[0].OptionIndex)
	assert.Equal(t, -20, st.Score)
	assert.Equal(t, entity.GamePhaseShowingResults, st.GamePhase)
	assert.Nil(t, outcome.Completion)
}

func TestBattleSessionClockExpiryEndsGame(t *testing.T) {
	battles, clock, statsRepo := newBattleFixture(t)
	ctx := context.Background()

	state, err := battles.StartBattle(ctx, "player-1", "case-1", entity.CaseRoleDefense)
	require.NoError(t, err)
	_, err = battles.Ready(ctx, state.SessionID, "player-1")
	require.NoError(t, err)

	clock.Advance(1 * time.Second)
	chosen, err := battles.Choose(ctx, state.SessionID, "player-1", 0)
	require.NoError(t, err)
	assert.Equal(t, 20, chosen.State.Score)

	// Walk off; the 20-minute session clock runs out.
	clock.Advance(1300 * time.Second)

	outcome, err := battles.Tick(ctx, state.SessionID, "player-1")
	require.NoError(t, err)
	assert.Equal(t, entity.GamePhaseGameOver, outcome.State.GamePhase)
	// Score stands at +20, inside the hung band.
	assert.Equal(t, entity.VerdictHung, outcome.State.Verdict)
	require.NotNil(t, outcome.Completion)
	assert.False(t, outcome.Completion.Result.Won)

	// The fold still persisted the loss.
	saved, err := statsRepo.Get(ctx, "player-1")
	require.NoError(t, err)
	assert.Equal(t, 1, saved.TotalCasesPlayed)
	assert.Equal(t, 0, saved.CasesWon)
}

func TestBattleAbandonDiscardsWithoutCredit(t *testing.T) {
	battles, clock, statsRepo := newBattleFixture(t)
	ctx := context.Background()

	state, err := battles.StartBattle(ctx, "player-1", "case-1", entity.CaseRoleDefense)
	require.NoError(t, err)
	_, err = battles.Ready(ctx, state.SessionID, "player-1")
	require.NoError(t, err)
	clock.Advance(2 * time.Second)
	_, err = battles.Choose(ctx, state.SessionID, "player-1", 0)
	require.NoError(t, err)

	require.NoError(t, battles.Abandon(ctx, state.SessionID, "player-1"))

	_, err = battles.GetState(ctx, state.SessionID, "player-1")
	assert.Error(t, err)

	_, err = statsRepo.Get(ctx, "player-1")
	assert.Error(t, err, "abandoned battles must leave no stats document")
}

func TestBattleRejectsWrongPlayer(t *testing.T) {
	battles, _, _ := newBattleFixture(t)
	ctx := context.Background()

	state, err := battles.StartBattle(ctx, "player-1", "case-1", entity.CaseRoleDefense)
	require.NoError(t, err)

	_, err = battles.Ready(ctx, state.SessionID, "player-2")
	assert.Equal(t, "FORBIDDEN", errors.CodeOf(err))
}

func TestBattleRejectsOutOfOrderCalls(t *testing.T) {
	battles, _, _ := newBattleFixture(t)
	ctx := context.Background()

	state, err := battles.StartBattle(ctx, "player-1", "case-1", entity.CaseRoleDefense)
	require.NoError(t, err)

	// Choosing before Ready, and continuing before any results.
	_, err = battles.Choose(ctx, state.SessionID, "player-1", 0)
	assert.Equal(t, "CONFLICT", errors.CodeOf(err))
	_, err = battles.Continue(ctx, state.SessionID, "player-1")
	assert.Equal(t, "CONFLICT", errors.CodeOf(err))

	_, err = battles.Ready(ctx, state.SessionID, "player-1")
	require.NoError(t, err)
	_, err = battles.Ready(ctx, state.SessionID, "player-1")
	assert.Equal(t, "CONFLICT", errors.CodeOf(err))

	_, err = battles.Choose(ctx, state.SessionID, "player-1", 7)
	assert.Equal(t, "BAD_REQUEST", errors.CodeOf(err))
}

func TestStartBattleReplacesActiveSession(t *testing.T) {
	battles, _, _ := newBattleFixture(t)
	ctx := context.Background()

	first, err := battles.StartBattle(ctx, "player-1", "case-1", entity.CaseRoleDefense)
	require.NoError(t, err)
	second, err := battles.StartBattle(ctx, "player-1", "case-1", entity.CaseRoleProsecution)
	require.NoError(t, err)

	_, err = battles.GetState(ctx, first.SessionID, "player-1")
	assert.Error(t, err, "first session must be discarded")
	current, err := battles.GetState(ctx, second.SessionID, "player-1")
	require.NoError(t, err)
	assert.Equal(t, entity.CaseRoleProsecution, current.State.Role)
}

func TestBattleUnknownCase(t *testing.T) {
	battles, _, _ := newBattleFixture(t)

	_, err := battles.StartBattle(context.Background(), "player-1", "no-such-case", entity.CaseRoleDefense)
	assert.Equal(t, "NOT_FOUND", errors.CodeOf(err))
}

func TestBattleGetStateAfterExpiryRunsFold(t *testing.T) {
	battles, clock, statsRepo := newBattleFixture(t)
	ctx := context.Background()

	state, err := battles.StartBattle(ctx, "player-1", "case-1", entity.CaseRoleDefense)
	require.NoError(t, err)

	clock.Advance(1300 * time.Second)

	// A bare state read is the only call after expiry; it must carry
	// the completion, not leave the finished battle in limbo.
	outcome, err := battles.GetState(ctx, state.SessionID, "player-1")
	require.NoError(t, err)
	assert.Equal(t, entity.GamePhaseGameOver, outcome.State.GamePhase)
	require.NotNil(t, outcome.Completion)
	assert.Equal(t, entity.VerdictHung, outcome.State.Verdict)

	saved, err := statsRepo.Get(ctx, "player-1")
	require.NoError(t, err)
	assert.Equal(t, 1, saved.TotalCasesPlayed)

	// The session is gone, so nothing can fold the same case twice.
	_, err = battles.GetState(ctx, state.SessionID, "player-1")
	assert.Error(t, err)
}

func TestBattleExpiredFoldUsesDeadlineElapsedTime(t *testing.T) {
	battles, clock, _ := newBattleFixture(t)
	ctx := context.Background()

	state, err := battles.StartBattle(ctx, "player-1", "case-1", entity.CaseRoleDefense)
	require.NoError(t, err)

	// Observed long after the 1200s session clock ran out: elapsed
	// time is measured to the deadline, not to the late observation.
	clock.Advance(5000 * time.Second)

	outcome, err := battles.Tick(ctx, state.SessionID, "player-1")
	require.NoError(t, err)
	require.NotNil(t, outcome.Completion)
	assert.Equal(t, int64(1200), outcome.Completion.Result.TimeElapsed)
}

func TestReapIdleSessionsDoesNotBlockCompletions(t *testing.T) {
	battles, _, _ := newBattleFixture(t)
	ctx := context.Background()

	stop := make(chan struct{})
	var reaper sync.WaitGroup
	reaper.Add(1)
	go func() {
		defer reaper.Done()
		for {
			select {
			case <-stop:
				return
			default:
				battles.ReapIdleSessions()
			}
		}
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			state, err := battles.StartBattle(ctx, "player-1", "case-1", entity.CaseRoleDefense)
			if err != nil {
				t.Errorf("start battle: %v", err)
				return
			}
			for phase := 0; phase < 4; phase++ {
				if _, err := battles.Ready(ctx, state.SessionID, "player-1"); err != nil {
					t.Errorf("ready: %v", err)
					return
				}
				if _, err := battles.Choose(ctx, state.SessionID, "player-1", 0); err != nil {
					t.Errorf("choose: %v", err)
					return
				}
				if _, err := battles.Continue(ctx, state.SessionID, "player-1"); err != nil {
					t.Errorf("continue: %v", err)
					return
				}
			}
		}
	}()

	select {
	case <-done:
	case <-time.After(15 * time.Second):
		t.Fatal("battle completions stalled while the reaper was sweeping")
	}
	close(stop)
	reaper.Wait()
}
