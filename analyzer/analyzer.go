package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"trends-service/config"
	"trends-service/model"
)

// Analyzer asks a generative model for a structured creative breakdown of a
// video. When the model is unconfigured or fails, a canned breakdown is
// returned so the endpoint stays usable in development.
type Analyzer struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func New(cfg *config.Config) *Analyzer {
	return &Analyzer{
		apiKey:  cfg.GeminiAPIKey,
		model:   cfg.GeminiModel,
		baseURL: cfg.GeminiBaseURL,
		client: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// AnalyzeVideo builds a metadata prompt, calls the model, and parses the JSON
// object out of its reply.
func (a *Analyzer) AnalyzeVideo(ctx context.Context, video model.Video) model.AnalysisReport {
	if a.apiKey == "" {
		return fallbackReport()
	}

	report, err := a.generate(ctx, video)
	if err != nil {
		log.Printf("[ERROR] Video analysis failed: %v", err)
		return fallbackReport()
	}
	return report
}

func (a *Analyzer) generate(ctx context.Context, video model.Video) (model.AnalysisReport, error) {
	var report model.AnalysisReport

	meta, err := json.MarshalIndent(video, "", "  ")
	if err != nil {
		return report, fmt.Errorf("marshal video metadata: %w", err)
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: buildPrompt(string(meta))}}}},
	})
	if err != nil {
		return report, fmt.Errorf("marshal prompt: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", a.baseURL, a.model, a.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return report, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return report, fmt.Errorf("generate content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return report, fmt.Errorf("model error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var gr generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return report, fmt.Errorf("decode response: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return report, fmt.Errorf("model returned no candidates")
	}

	text := gr.Candidates[0].Content.Parts[0].Text
	raw, ok := extractJSON(text)
	if !ok {
		return report, fmt.Errorf("no JSON object in model reply")
	}
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return report, fmt.Errorf("unmarshal report: %w", err)
	}
	return report, nil
}

// extractJSON cuts the outermost JSON object out of free-form model text.
func extractJSON(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

func buildPrompt(metadata string) string {
	return fmt.Sprintf(`Role: Expert Social Media Strategist and Video Editor.
Task: Perform a deep architectural breakdown of this short-video metadata.

Metadata:
%s

Instructions:
Extract the core 'winning formula' of this video. Return a valid JSON object with EXACTLY these keys:
1. visual_hook: Focus on the first 3 seconds. What visual or text element grabs attention immediately?
2. summary: The core value proposition and essence of the content.
3. editing_techniques: List specific montage tricks (speed ramps, micro-cuts, text overlays, audio syncing).
4. script_idea: A ready-to-shoot script based on this formula.

Format: Return ONLY the raw JSON object.`, metadata)
}

func fallbackReport() model.AnalysisReport {
	return model.AnalysisReport{
		VisualHook: "Dynamic split-screen comparison showing 'Reality vs Expectation' with a bold text overlay.",
		Summary:    "High-ticket lifestyle aspirational content emphasizing aesthetic consistency and status hooks.",
		EditingTechniques: []string{
			"Micro-cuts every 0.8 seconds to match high-tempo audio",
			"Subtle color grading (teal & orange preset)",
			"Floating text overlays in the 'center focus' zone",
			"Speed ramping during scene transitions",
		},
		ScriptIdea: "HOOK: 'The truth about [Niche] they aren't telling you...'\nBODY: Montage of 3 aesthetic shots. Text overlay: 'It only takes 4 hours/day.'\nCTA: 'Read the caption for the roadmap.'",
	}
}
