package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exmplr-agent/internal/llm"
	apperrors "exmplr-agent/pkg/errors"
)

// fakeOracle replays a canned completion and records what it was asked.
type fakeOracle struct {
	response string
	err      error
	gotMsgs  []llm.Message
}

func (f *fakeOracle) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	f.gotMsgs = messages
	return f.response, f.err
}

func TestExtractParsesOracleJSON(t *testing.T) {
	oracle := &fakeOracle{response: `{"search_query": "diabetes", "size": 10, "phase": null}`}
	extractor := NewExtractor(oracle)

	transcript := []llm.Message{{Role: "user", Content: "find diabetes trials"}}
	candidate, err := extractor.Extract(context.Background(), transcript)
	require.NoError(t, err)

	assert.Equal(t, "diabetes", candidate["search_query"])
	assert.Equal(t, float64(10), candidate["size"])
	assert.Nil(t, candidate["phase"])

	// system instruction goes first, then the transcript verbatim
	require.Len(t, oracle.gotMsgs, 2)
	assert.Equal(t, "system", oracle.gotMsgs[0].Role)
	assert.Equal(t, SystemPrompt, oracle.gotMsgs[0].Content)
	assert.Equal(t, transcript[0], oracle.gotMsgs[1])
}

func TestExtractStripsMarkdownFences(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"json fence", "```json\n{\"search_query\": \"asthma\"}\n```"},
		{"bare fence", "```\n{\"search_query\": \"asthma\"}\n```"},
		{"surrounding whitespace", "  {\"search_query\": \"asthma\"}  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor := NewExtractor(&fakeOracle{response: tt.response})
			candidate, err := extractor.Extract(context.Background(), []llm.Message{{Role: "user", Content: "asthma"}})
			require.NoError(t, err)
			assert.Equal(t, "asthma", candidate["search_query"])
		})
	}
}

func TestExtractInvalidJSONIsExtractionError(t *testing.T) {
	extractor := NewExtractor(&fakeOracle{response: "not json"})

	_, err := extractor.Extract(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeExtraction, apperrors.TypeOf(err))
}

func TestExtractOracleFailureIsTransportError(t *testing.T) {
	extractor := NewExtractor(&fakeOracle{err: errors.New("connection reset")})

	_, err := extractor.Extract(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeTransport, apperrors.TypeOf(err))
}
