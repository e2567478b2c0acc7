package extract

import (
	"context"
	"encoding/json"
	"strings"

	"exmplr-agent/internal/llm"
	"exmplr-agent/internal/trials"
	apperrors "exmplr-agent/pkg/errors"
)

// Extractor asks the oracle to turn the conversation into a candidate
// Filter Parameter Set. The oracle gives no schema guarantee, so its output
// is validated here before anything downstream sees it.
type Extractor struct {
	oracle llm.Client
}

// NewExtractor constructs an Extractor over the given oracle client.
func NewExtractor(oracle llm.Client) *Extractor {
	return &Extractor{oracle: oracle}
}

// Extract sends the system instruction plus the transcript to the oracle and
// parses the response as a partial parameter set. The transcript must contain
// at least the latest user turn. Unparseable output is a per-turn error:
// no merge happens and the caller reports it to the user.
func (e *Extractor) Extract(ctx context.Context, transcript []llm.Message) (trials.Params, error) {
	messages := make([]llm.Message, 0, len(transcript)+1)
	messages = append(messages, llm.Message{Role: "system", Content: SystemPrompt})
	messages = append(messages, transcript...)

	raw, err := e.oracle.Complete(ctx, messages)
	if err != nil {
		return nil, apperrors.NewTransportError("oracle request", err)
	}

	var candidate trials.Params
	if err := json.Unmarshal([]byte(stripFences(raw)), &candidate); err != nil {
		return nil, apperrors.NewExtractionError("could not parse the extracted parameters", err)
	}
	return candidate, nil
}

// stripFences removes a wrapping markdown code block, which models emit
// despite being told to return bare JSON.
func stripFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	return strings.TrimSpace(cleaned)
}
