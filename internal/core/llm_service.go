package core

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
	"solace.app/backend/internal/config"
)

const (
	defaultPickerModelName = "gemini-1.5-flash-latest"

	pickerSystemInstruction = "You are an empathetic assistant for a mental wellness app. " +
		"You will be shown a user's sad post and a numbered list of positive posts from other users. " +
		"Choose the single post that is the most helpful, relevant, and non-judgmental recommendation. " +
		"Respond with ONLY the label of the post you choose (e.g., \"Post 3\"). " +
		"Do not add any other words or explanation."
)

// postLabelPattern matches the "Post N" label the picker is instructed to
// reply with, anywhere in the reply.
var postLabelPattern = regexp.MustCompile(`Post\s*(\d+)`)

type LLMService struct {
	client *genai.Client
}

func NewLLMService() *LLMService {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(config.AppConfig.GeminiAPIKey))
	if err != nil {
		log.Fatalf("Failed to create GenAI client: %v", err)
	}

	return &LLMService{
		client: client,
	}
}

func (s *LLMService) Close() {
	if s.client != nil {
		if err := s.client.Close(); err != nil {
			log.Printf("Error closing GenAI client: %v", err)
		} else {
			log.Println("GenAI client closed.")
		}
	}
}

// PickSupportivePost asks the model to choose among candidates and returns
// the zero-based index of its pick. The reply is only trusted after the
// label parses to an in-range number; anything else is ErrBadRecommendation.
func (s *LLMService) PickSupportivePost(ctx context.Context, sadContent string, candidates []string) (int, error) {
	if len(candidates) == 0 {
		return 0, fmt.Errorf("no candidates supplied for picking")
	}

	model := s.client.GenerativeModel(defaultPickerModelName)

	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(pickerSystemInstruction)},
	}

	temp := float32(0.2)
	maxTokens := int32(10)

	model.GenerationConfig = genai.GenerationConfig{
		MaxOutputTokens: &maxTokens,
		Temperature:     &temp,
	}

	var prompt strings.Builder
	prompt.WriteString("Here is the user's sad post:\n")
	fmt.Fprintf(&prompt, "%q\n\n", sadContent)
	prompt.WriteString("Here is the list of available positive posts from other users:\n")
	for i, candidate := range candidates {
		fmt.Fprintf(&prompt, "Post %d: %s\n", i+1, candidate)
	}
	prompt.WriteString("\nWhich single post from the list do you choose?")

	resp, err := model.GenerateContent(ctx, genai.Text(prompt.String()))
	if err != nil {
		return 0, fmt.Errorf("gemini pick request failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return 0, fmt.Errorf("%w: empty model response", ErrBadRecommendation)
	}

	var replyText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			replyText.WriteString(string(txt))
		}
	}

	return ParsePostLabel(replyText.String(), len(candidates))
}

// ParsePostLabel extracts the 1-based "Post N" label from a model reply
// and converts it to a zero-based index, rejecting anything that does not
// parse or falls outside [1, numCandidates].
func ParsePostLabel(reply string, numCandidates int) (int, error) {
	match := postLabelPattern.FindStringSubmatch(reply)
	if match == nil {
		return 0, fmt.Errorf("%w: %q", ErrBadRecommendation, strings.TrimSpace(reply))
	}
	label, err := strconv.Atoi(match[1])
	if err != nil || label < 1 || label > numCandidates {
		return 0, fmt.Errorf("%w: label %q out of range 1..%d", ErrBadRecommendation, match[1], numCandidates)
	}
	return label - 1, nil
}
