package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiClient struct {
	Client     *genai.Client
	FlashModel *genai.GenerativeModel
}

func NewGenAIClient(ctx context.Context, apiKey, flashModelName string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("genai client init failed: %w", err)
	}

	model := client.GenerativeModel(flashModelName)
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.2)

	return &GeminiClient{
		Client:     client,
		FlashModel: model,
	}, nil
}

// NewGenAIClients builds one client per API key. Keys that fail to initialise are skipped.
func NewGenAIClients(ctx context.Context, apiKeys []string, flashModelName string) []GeminiClient {
	clients := make([]GeminiClient, 0, len(apiKeys))
	for i, key := range apiKeys {
		c, err := NewGenAIClient(ctx, key, flashModelName)
		if err != nil {
			slog.Warn("Skipping Gemini API key", "index", i, "error", err)
			continue
		}
		clients = append(clients, *c)
	}
	return clients
}

func (g *GeminiClient) Close() error {
	if g.Client == nil {
		return nil
	}
	return g.Client.Close()
}

// SendAI sends a prompt plus optional images and decodes the JSON answer.
func (g *GeminiClient) SendAI(ctx context.Context, prompt string, images [][]byte) (map[string]any, error) {
	parts := []genai.Part{genai.Text(prompt)}
	for i, img := range images {
		if len(img) == 0 {
			slog.Warn("Empty image data at index, skipping", "index", i)
			continue
		}
		parts = append(parts, genai.Blob{
			MIMEType: DetectImageMIMEType(img),
			Data:     img,
		})
	}

	resp, err := g.FlashModel.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("no content returned from AI")
	}
	textPart, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("response part is not text, received %T", resp.Candidates[0].Content.Parts[0])
	}
	return ParseJSONResponse(string(textPart))
}

// ParseJSONResponse strips a markdown code fence if present and decodes the object.
func ParseJSONResponse(raw string) (map[string]any, error) {
	aiResponse := strings.TrimSpace(raw)
	if strings.HasPrefix(aiResponse, "```") {
		aiResponse = strings.TrimPrefix(aiResponse, "```json")
		aiResponse = strings.TrimPrefix(aiResponse, "```")
		aiResponse = strings.TrimSuffix(aiResponse, "```")
	}
	aiResponse = strings.TrimSpace(aiResponse)

	var resultMap map[string]any
	if err := json.Unmarshal([]byte(aiResponse), &resultMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal AI response to JSON: %w. \nRaw response was: %s", err, aiResponse)
	}
	return resultMap, nil
}

// Generator fans requests out over a selector's clients.
type Generator struct {
	selector *GeminiClientSelector
}

func NewGenerator(selector *GeminiClientSelector) *Generator {
	return &Generator{selector: selector}
}

func (g *Generator) Available() bool {
	return g != nil && g.selector != nil && g.selector.GetClientCount() > 0
}

// Generate attempts the request with automatic failover across the clients.
func (g *Generator) Generate(ctx context.Context, prompt string, images [][]byte) (map[string]any, error) {
	var result map[string]any
	err := g.selector.TryAllClients(func(client *GeminiClient, clientIdx int) error {
		resp, err := client.SendAI(ctx, prompt, images)
		if err != nil {
			return err
		}
		result = resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DetectImageMIMEType detects the MIME type of an image based on magic bytes
func DetectImageMIMEType(data []byte) string {
	if len(data) < 8 {
		return "image/jpeg"
	}

	switch {
	case data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47:
		return "image/png"
	case data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
		return "image/jpeg"
	case data[0] == 0x47 && data[1] == 0x49 && data[2] == 0x46 && data[3] == 0x38:
		return "image/gif"
	case data[0] == 0x52 && data[1] == 0x49 && data[2] == 0x46 && data[3] == 0x46 &&
		len(data) > 11 && data[8] == 0x57 && data[9] == 0x45 && data[10] == 0x42 && data[11] == 0x50:
		return "image/webp"
	case data[4] == 0x66 && data[5] == 0x74 && data[6] == 0x79 && data[7] == 0x70:
		// ISO BMFF "ftyp" box, as written by phone cameras
		return "image/heic"
	}

	return "image/jpeg"
}
