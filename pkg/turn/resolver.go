// Package turn resolves one player turn: it asks the narrator what happened
// and applies the answer to the game through an ordered list of actions.
package turn

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/google/uuid"

	"github.com/jwebster45206/quest-engine/pkg/actor"
	"github.com/jwebster45206/quest-engine/pkg/chat"
	"github.com/jwebster45206/quest-engine/pkg/narrator"
	"github.com/jwebster45206/quest-engine/pkg/prompts"
	"github.com/jwebster45206/quest-engine/pkg/state"
	"github.com/jwebster45206/quest-engine/pkg/textfilter"
)

const (
	DefaultCooldown        = 4 * time.Second
	DefaultNarratorTimeout = 30 * time.Second

	defaultEnemyName = "Unknown Foe"
	defaultEnemyHP   = 20
	defaultEnemyDesc = "A hostile presence."
)

var (
	ErrNoGame       = errors.New("no game loaded")
	ErrEmptyInput   = errors.New("action is empty")
	ErrInvalidInput = errors.New("invalid action")
	ErrTurnInFlight = errors.New("a turn is already in progress")
	ErrCoolingDown  = errors.New("waiting for cooldown")
	ErrGameOver     = errors.New("game is over")
	ErrNoCombat     = errors.New("no combat in progress")

	// ErrGameReplaced means another game was loaded while the turn ran.
	ErrGameReplaced = errors.New("game was replaced during the turn")
)

// Failure messages written to the game log.
const (
	NotConfiguredMessage = "The narrator is silent. No API key is configured; set one and restart to continue your story."
	RateLimitedMessage   = "You stop to catch your breath while the world gathers itself. Try again in a moment."
	GenericErrorMessage  = "A strange fog clouds your mind and the moment slips away. Try again."
	GameOverMessage      = "Your journey has come to an end."
	DeathMessage         = "You collapse, and the world fades to black. Your journey has come to an end."
)

// WaitSuggestion replaces the suggestions after a rate-limited turn.
const WaitSuggestion = "Wait"

// Resolver runs turns against a Store. At most one turn runs at a time and
// a cooldown follows every turn; requests that arrive during either are
// rejected, not queued.
type Resolver struct {
	store    *state.Store
	narrator narrator.Narrator
	logger   *slog.Logger
	roller   dice.Roller
	now      func() time.Time
	filter   *textfilter.ProfanityFilter

	cooldown     time.Duration
	timeout      time.Duration
	historyLimit int
	directive    string

	mu            sync.Mutex
	inFlight      bool
	cooldownUntil time.Time
	suggestions   []string
}

type Option func(*Resolver)

func WithCooldown(d time.Duration) Option {
	return func(r *Resolver) { r.cooldown = d }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

func WithRoller(roller dice.Roller) Option {
	return func(r *Resolver) { r.roller = roller }
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

func WithHistoryLimit(n int) Option {
	return func(r *Resolver) { r.historyLimit = n }
}

func WithNarratorTimeout(d time.Duration) Option {
	return func(r *Resolver) { r.timeout = d }
}

// WithDirective overrides the system directive sent with every request.
func WithDirective(directive string) Option {
	return func(r *Resolver) { r.directive = directive }
}

// WithContentFilter masks profanity in narration before it is logged.
func WithContentFilter(enabled bool) Option {
	return func(r *Resolver) {
		if enabled {
			r.filter = textfilter.NewProfanityFilter()
		} else {
			r.filter = nil
		}
	}
}

func New(store *state.Store, n narrator.Narrator, opts ...Option) *Resolver {
	r := &Resolver{
		store:        store,
		narrator:     n,
		logger:       slog.Default(),
		roller:       dice.DefaultRoller,
		now:          time.Now,
		cooldown:     DefaultCooldown,
		timeout:      DefaultNarratorTimeout,
		historyLimit: prompts.DefaultHistoryLimit,
		directive:    prompts.BuildSystemPrompt(prompts.RatingPG13),
		suggestions:  []string{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// InFlight reports whether a turn is waiting on the narrator.
func (r *Resolver) InFlight() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inFlight
}

// CoolingDown reports whether new turns are currently refused.
func (r *Resolver) CoolingDown() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.now().Before(r.cooldownUntil)
}

// Suggestions returns the actions offered after the last turn.
func (r *Resolver) Suggestions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.suggestions...)
}

// Restart makes gs the current game and clears turn bookkeeping. It holds
// the turn lock, so it is refused while a turn is in flight and no turn can
// begin until the new game is in place.
func (r *Resolver) Restart(ctx context.Context, gs *state.GameState) error {
	if gs == nil {
		return ErrNoGame
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inFlight {
		return ErrTurnInFlight
	}
	r.store.Dispatch(ctx, state.LoadState{State: gs})
	r.suggestions = []string{}
	r.cooldownUntil = time.Time{}
	return nil
}

// SubmitAction runs one turn for free-text input. Blank input during combat
// becomes a combat roll. Rejections return one of the package errors and
// leave the game untouched; a failed narrator call is logged to the game
// and also returned.
func (r *Resolver) SubmitAction(ctx context.Context, text string) error {
	gs := r.store.State()
	if gs == nil {
		return ErrNoGame
	}
	text = strings.TrimSpace(text)
	if text == "" {
		if gs.Combat.IsActive {
			return r.SubmitCombatRoll(ctx)
		}
		return ErrEmptyInput
	}
	if err := chat.ValidateMessage(text); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := r.begin(gs); err != nil {
		return err
	}
	defer r.finish()
	return r.resolve(ctx, gs.ID, text)
}

// SubmitCombatRoll rolls a d20 and sends the attack as the player's action.
func (r *Resolver) SubmitCombatRoll(ctx context.Context) error {
	gs := r.store.State()
	if gs == nil {
		return ErrNoGame
	}
	if !gs.Combat.IsActive {
		return ErrNoCombat
	}
	if err := r.begin(gs); err != nil {
		return err
	}
	defer r.finish()

	roll, err := r.roller.Roll(20)
	if err != nil {
		return fmt.Errorf("failed to roll d20: %w", err)
	}
	attack := actor.NewAttackRoll(&gs.Player, roll)
	r.logger.Debug("Combat roll", "game_state_id", gs.ID.String(), "roll", roll, "total", attack.Total())
	return r.resolve(ctx, gs.ID, attack.Describe(gs.Combat.EnemyName))
}

func (r *Resolver) begin(gs *state.GameState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch {
	case r.inFlight:
		return ErrTurnInFlight
	case r.now().Before(r.cooldownUntil):
		return ErrCoolingDown
	case gs.IsGameOver:
		return ErrGameOver
	}
	r.inFlight = true
	return nil
}

func (r *Resolver) finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inFlight = false
	r.cooldownUntil = r.now().Add(r.cooldown)
}

func (r *Resolver) resolve(ctx context.Context, id uuid.UUID, text string) error {
	r.store.DispatchTo(ctx, id, state.AddLog{Entry: state.NewLogEntry(state.SenderPlayer, text)})
	gs := r.store.State()
	if gs == nil || gs.ID != id {
		return ErrGameReplaced
	}

	turnCtx, err := prompts.BuildContext(gs, r.historyLimit)
	if err != nil {
		r.fail(ctx, gs, err)
		return fmt.Errorf("failed to build turn context: %w", err)
	}

	narrateCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := r.now()
	resp, err := r.narrator.Narrate(narrateCtx, &narrator.Request{
		Action:    text,
		Context:   turnCtx,
		Directive: r.directive,
	})
	if err == nil {
		if resp == nil {
			err = fmt.Errorf("%w: empty response", narrator.ErrInvalidResponse)
		} else {
			err = resp.Validate()
		}
	}
	if current := r.store.State(); current == nil || current.ID != id {
		r.logger.Warn("Discarding turn for replaced game", "game_state_id", id.String())
		return ErrGameReplaced
	}
	if err != nil {
		r.fail(ctx, gs, err)
		return err
	}
	r.logger.Debug("Narrator responded",
		"game_state_id", id.String(),
		"duration", r.now().Sub(start))

	r.apply(ctx, id, resp)
	return nil
}

// apply dispatches the response in a fixed order. Later steps read values
// set by earlier ones, so the order must not change.
func (r *Resolver) apply(ctx context.Context, id uuid.UUID, resp *narrator.Response) {
	dispatch := func(a state.Action) { r.store.DispatchTo(ctx, id, a) }
	system := func(format string, args ...any) {
		dispatch(state.AddLog{Entry: state.NewLogEntry(state.SenderSystem, fmt.Sprintf(format, args...))})
	}

	narrative := textfilter.CleanNarrative(resp.Narrative)
	if r.filter != nil && r.filter.ContainsProfanity(narrative) {
		narrative = r.filter.FilterText(narrative)
		r.logger.Debug("Filtered narration", "game_state_id", id.String())
	}
	dispatch(state.AddLog{Entry: state.NewLogEntry(state.SenderNarrator, narrative)})

	stats := r.store.State().Player.Stats
	hp := min(max(stats.HP+resp.HPChange, 0), stats.MaxHP)
	supplies := max(stats.Supplies-resp.SuppliesConsumed, 0)
	xp := stats.XP + max(resp.XPGained, 0)
	level, maxHP := stats.Level, stats.MaxHP
	for xp >= state.XPThreshold(level) {
		level++
		maxHP += state.LevelUpMaxHP
		system("You reached level %d! Max HP increased to %d.", level, maxHP)
	}
	dispatch(state.UpdateStats{HP: &hp, MaxHP: &maxHP, XP: &xp, Level: &level, Supplies: &supplies})
	dispatch(state.AdvanceTurn{})

	if resp.GoldChange != nil {
		dispatch(state.UpdateGold{Delta: *resp.GoldChange})
	}
	for _, item := range resp.ItemsAdded {
		dispatch(state.AddItem{Item: item.ToItem()})
	}
	for _, name := range resp.ItemsRemovedNames {
		dispatch(state.RemoveItem{Name: name})
	}
	if resp.NewLocationName != "" {
		dispatch(state.SetLocation{Name: resp.NewLocationName, Description: resp.NewLocationDescription})
	}
	if resp.TimeOfDay != "" || resp.DangerLevel != nil {
		dispatch(state.UpdateWorld{TimeOfDay: resp.TimeOfDay, DangerLevel: resp.DangerLevel})
	}
	if resp.MovementDirection != "" || resp.CurrentTerrainType != "" {
		dispatch(state.UpdateMap{Direction: resp.MovementDirection, Terrain: resp.CurrentTerrainType})
	}
	if memories := resp.NPCMemories(); len(memories) > 0 {
		dispatch(state.UpdateNPCMemory{Memories: memories})
	}
	if resp.ReputationChange != nil {
		dispatch(state.UpdateReputation{Delta: *resp.ReputationChange})
	}
	if resp.NewQuest != nil || resp.QuestCompletedID != "" {
		dispatch(state.UpdateQuests{New: resp.NewQuest, CompletedID: resp.QuestCompletedID})
	}
	if resp.NewJournalEntry != "" {
		dispatch(state.AddJournal{Text: resp.NewJournalEntry})
	}
	if resp.CombatStart {
		dispatch(startCombat(resp))
	}
	if resp.EnemyDamageTaken != nil {
		dispatch(state.UpdateCombat{Damage: *resp.EnemyDamageTaken})
	}
	if resp.CombatEnded {
		dispatch(state.EndCombat{})
	}

	if hp <= 0 || resp.IsGameOver {
		dispatch(state.GameOver{})
		if hp <= 0 {
			system(DeathMessage)
		} else {
			system(GameOverMessage)
		}
		r.setSuggestions(nil)
		return
	}
	r.setSuggestions(resp.SuggestedActions)
}

func startCombat(resp *narrator.Response) state.StartCombat {
	sc := state.StartCombat{
		EnemyName:   resp.EnemyName,
		HP:          defaultEnemyHP,
		Description: resp.EnemyDesc,
		EnemyType:   resp.EnemyType,
	}
	if strings.TrimSpace(sc.EnemyName) == "" {
		sc.EnemyName = defaultEnemyName
	}
	if resp.EnemyHP != nil && *resp.EnemyHP > 0 {
		sc.HP = *resp.EnemyHP
	}
	if strings.TrimSpace(sc.Description) == "" {
		sc.Description = defaultEnemyDesc
	}
	return sc
}

// fail logs the failure category to the game. Nothing from the response
// has been applied at this point.
func (r *Resolver) fail(ctx context.Context, gs *state.GameState, err error) {
	message := GenericErrorMessage
	switch {
	case errors.Is(err, narrator.ErrNotConfigured):
		message = NotConfiguredMessage
		r.logger.Warn("Narrator not configured", "game_state_id", gs.ID.String())
	case errors.Is(err, narrator.ErrRateLimited):
		message = RateLimitedMessage
		r.setSuggestions([]string{WaitSuggestion})
		r.logger.Warn("Narrator rate limited", "game_state_id", gs.ID.String(), "error", err)
	default:
		r.logger.Error("Turn failed", "game_state_id", gs.ID.String(), "error", err)
	}
	r.store.DispatchTo(ctx, gs.ID, state.AddLog{Entry: state.NewLogEntry(state.SenderSystem, message)})
}

func (r *Resolver) setSuggestions(s []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s == nil {
		s = []string{}
	}
	r.suggestions = append([]string{}, s...)
}
