package core

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"exmplr-agent/internal/extract"
	"exmplr-agent/internal/llm"
	"exmplr-agent/internal/session"
	"exmplr-agent/internal/trials"
	apperrors "exmplr-agent/pkg/errors"
)

// offsetStep is how far "View More Results" advances the search offset.
const offsetStep = 5

// validPhases enumerates the allowed phase filter values.
var validPhases = map[string]struct{}{
	"Phase 1": {},
	"Phase 2": {},
	"Phase 3": {},
	"Phase 4": {},
}

// Searcher issues one filtered search. Satisfied by *trials.Client.
type Searcher interface {
	Search(ctx context.Context, params trials.Params) (*trials.SearchResult, error)
}

// Manager drives the lifecycle of query sessions: it runs the
// extract-normalize-merge-search turn for user messages and the three
// refinement transitions, each of which re-runs the search without another
// oracle call. Every per-turn failure is converted to a user-visible message
// at this boundary; nothing propagates to crash the session.
type Manager struct {
	store         *session.Store
	extractor     *extract.Extractor
	search        Searcher
	historyWindow int
}

// NewManager constructs a Manager. historyWindow caps how many recent
// transcript messages go to the oracle per turn; zero sends everything.
func NewManager(store *session.Store, extractor *extract.Extractor, search Searcher, historyWindow int) *Manager {
	return &Manager{
		store:         store,
		extractor:     extractor,
		search:        search,
		historyWindow: historyWindow,
	}
}

// TurnResult is what one user turn or refinement produces. On failure,
// Error carries the user-visible message and the other fields are empty;
// the session itself stays usable either way.
type TurnResult struct {
	Reply  string         `json:"reply,omitempty"`
	Trials []trials.Trial `json:"trials,omitempty"`
	Total  int            `json:"total"`
	Error  string         `json:"error,omitempty"`
}

// CreateSession starts a new session seeded with the assistant greeting.
func (m *Manager) CreateSession() *session.Session {
	sess := m.store.Create()
	sess.Lock()
	sess.Append(session.RoleAssistant, extract.Greeting)
	sess.Unlock()
	log.Info().Str("session_id", sess.ID).Msg("session created")
	return sess
}

// GetSession returns the session for id.
func (m *Manager) GetSession(id string) (*session.Session, error) {
	return m.store.Get(id)
}

// HandleMessage runs one full user turn: append the message, extract a
// candidate parameter set through the oracle, normalize and merge it, then
// search and render. The session lock is held for the whole turn so the
// sequence stays strictly linear per session.
func (m *Manager) HandleMessage(ctx context.Context, sessionID, content string) (*TurnResult, error) {
	if content == "" {
		return nil, apperrors.NewValidationError("message content must not be empty")
	}
	sess, err := m.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	sess.Append(session.RoleUser, content)

	candidate, err := m.extractor.Extract(ctx, toOracleMessages(sess.Window(m.historyWindow)))
	if err != nil {
		// No merge on extraction failure: the parameter set must be
		// untouched so the next turn proceeds from the same state.
		log.Warn().Err(err).Str("session_id", sess.ID).Msg("parameter extraction failed")
		return failedTurn(err), nil
	}

	sess.Params.Merge(trials.Normalize(candidate))

	return m.runSearch(ctx, sess), nil
}

// ApplyPhaseFilter sets the phase filter and re-runs the search. The phase
// must be one of the four enumerated values.
func (m *Manager) ApplyPhaseFilter(ctx context.Context, sessionID, phase string) (*TurnResult, error) {
	if _, ok := validPhases[phase]; !ok {
		return nil, apperrors.NewValidationError("phase must be one of Phase 1, Phase 2, Phase 3, Phase 4")
	}
	sess, err := m.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	sess.Params["phase"] = phase
	sess.Append(session.RoleAssistant, "Phase filter applied: "+phase)

	return m.runSearch(ctx, sess), nil
}

// MoreResults advances the search offset by a fixed step and re-runs the
// search. Repeated calls keep advancing; the offset is never reset here.
func (m *Manager) MoreResults(ctx context.Context, sessionID string) (*TurnResult, error) {
	sess, err := m.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	sess.Params.AdvanceOffset(offsetStep)
	sess.Append(session.RoleAssistant, "Loading more results...")

	return m.runSearch(ctx, sess), nil
}

// ApplyLocationFilter overrides the location filter and re-runs the search.
// User-typed locations go through the same normalization as extractor
// output, so "us" still becomes "United States" here.
func (m *Manager) ApplyLocationFilter(ctx context.Context, sessionID, location string) (*TurnResult, error) {
	if location == "" {
		return nil, apperrors.NewValidationError("location must not be empty")
	}
	sess, err := m.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	normalized := trials.NormalizeLocation(location)
	sess.Params["location"] = normalized
	sess.Append(session.RoleAssistant, "Location filter applied: "+normalized)

	return m.runSearch(ctx, sess), nil
}

// runSearch issues the search for the session's merged parameters and
// renders the outcome. The merge is never rolled back on failure; the
// parameters keep whatever was merged before the call. The caller must hold
// the session lock.
func (m *Manager) runSearch(ctx context.Context, sess *session.Session) *TurnResult {
	result, err := m.search.Search(ctx, sess.Params)
	if err != nil {
		log.Warn().Err(err).Str("session_id", sess.ID).Msg("trials search failed")
		return failedTurn(err)
	}

	reply := trials.Render(result)
	sess.Append(session.RoleAssistant, reply)

	out := &TurnResult{Reply: reply, Total: result.Total}
	if len(result.Trials) > 0 {
		out.Trials = result.Trials
	}
	log.Debug().
		Str("session_id", sess.ID).
		Int("total", result.Total).
		Int("hits", len(result.Trials)).
		Msg("search completed")
	return out
}

// failedTurn converts a classified per-turn error into the message shown to
// the user.
func failedTurn(err error) *TurnResult {
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeExtraction:
		return &TurnResult{Error: "Sorry, I could not parse the extracted parameters. Please try rephrasing your question."}
	case apperrors.ErrorTypeAPIStatus:
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return &TurnResult{Error: appErr.Message}
		}
	}
	return &TurnResult{Error: "Error processing your request: " + err.Error()}
}

// toOracleMessages converts transcript entries into oracle messages.
func toOracleMessages(transcript []session.Message) []llm.Message {
	out := make([]llm.Message, 0, len(transcript))
	for _, msg := range transcript {
		out = append(out, llm.Message{Role: string(msg.Role), Content: msg.Content})
	}
	return out
}
