package estimator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/mkuznecov/nutritrack/internal/client/models"
	"github.com/mkuznecov/nutritrack/internal/common"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel   = "gemini-2.5-flash"

	foodSystemInstruction = "You are an expert nutritionist and dietitian. " +
		"You are analyzing meals to help a user track their daily intake."
)

// Gemini implements Estimator against the Gemini generateContent REST API.
type Gemini struct {
	apiKey     string
	model      string
	httpClient *http.Client

	// BaseURL can be overridden in tests.
	BaseURL string
}

// NewGemini returns a Gemini estimator. An empty model selects the default.
func NewGemini(apiKey, model string, httpClient *http.Client) *Gemini {
	if model == "" {
		model = defaultGeminiModel
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Gemini{
		apiKey:     apiKey,
		model:      model,
		httpClient: httpClient,
		BaseURL:    defaultGeminiBaseURL,
	}
}

// responseSchema is the subset of the Gemini schema language used here.
type responseSchema struct {
	Type        string                    `json:"type"`
	Description string                    `json:"description,omitempty"`
	Properties  map[string]responseSchema `json:"properties,omitempty"`
	Required    []string                  `json:"required,omitempty"`
}

var foodAnalysisSchema = responseSchema{
	Type: "OBJECT",
	Properties: map[string]responseSchema{
		"foodName":  {Type: "STRING", Description: "Name of the dish or food items identified"},
		"calories":  {Type: "NUMBER", Description: "Estimated total calories (kcal)"},
		"protein":   {Type: "NUMBER", Description: "Estimated protein in grams"},
		"carbs":     {Type: "NUMBER", Description: "Estimated carbohydrates in grams"},
		"fat":       {Type: "NUMBER", Description: "Estimated fat in grams"},
		"reasoning": {Type: "STRING", Description: "Short explanation of the estimation"},
	},
	Required: []string{"foodName", "calories", "protein", "carbs", "fat"},
}

var profilePlanSchema = responseSchema{
	Type: "OBJECT",
	Properties: map[string]responseSchema{
		"tdee":           {Type: "NUMBER", Description: "Estimated maintenance calories (TDEE)"},
		"targetCalories": {Type: "NUMBER"},
		"targetProtein":  {Type: "NUMBER"},
		"targetCarbs":    {Type: "NUMBER"},
		"targetFat":      {Type: "NUMBER"},
		"advice":         {Type: "STRING", Description: "Brief advice based on body data"},
	},
	Required: []string{"tdee", "targetCalories", "targetProtein", "targetCarbs", "targetFat", "advice"},
}

type generatePart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   *responseSchema `json:"responseSchema,omitempty"`
}

type generateRequest struct {
	SystemInstruction *generateContent  `json:"systemInstruction,omitempty"`
	Contents          []generateContent `json:"contents"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content generateContent `json:"content"`
	} `json:"candidates"`
}

// generate posts one generateContent call and returns the first text part.
func (g *Gemini) generate(ctx context.Context, req generateRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.BaseURL, g.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("model call failed with status %d", resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	for _, c := range decoded.Candidates {
		for _, p := range c.Content.Parts {
			if p.Text != "" {
				return p.Text, nil
			}
		}
	}
	return "", fmt.Errorf("model returned no text")
}

func (g *Gemini) EstimateFood(ctx context.Context, imageBase64, description string) (*FoodEstimate, error) {
	if imageBase64 == "" && strings.TrimSpace(description) == "" {
		return nil, common.ErrNoEstimatorInput
	}

	var parts []generatePart
	if imageBase64 != "" {
		parts = append(parts, generatePart{InlineData: &inlineData{MimeType: "image/jpeg", Data: imageBase64}})
	}
	prompt := "Analyze this meal. Identify the food, estimate the portion size, " +
		"and provide the nutritional content (Calories, Protein, Carbs, Fat). " +
		"Be realistic. If it's a combo meal, sum them up."
	if strings.TrimSpace(description) != "" {
		prompt += "\nMeal description: " + strings.TrimSpace(description)
	}
	parts = append(parts, generatePart{Text: prompt})

	text, err := g.generate(ctx, generateRequest{
		SystemInstruction: &generateContent{Parts: []generatePart{{Text: foodSystemInstruction}}},
		Contents:          []generateContent{{Parts: parts}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   &foodAnalysisSchema,
		},
	})
	if err != nil {
		return nil, err
	}

	var raw struct {
		FoodName  string  `json:"foodName"`
		Calories  float64 `json:"calories"`
		Protein   float64 `json:"protein"`
		Carbs     float64 `json:"carbs"`
		Fat       float64 `json:"fat"`
		Reasoning string  `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("failed to decode estimate: %w", err)
	}
	return &FoodEstimate{
		FoodName:  raw.FoodName,
		Calories:  roundToInt(raw.Calories),
		Protein:   roundToInt(raw.Protein),
		Carbs:     roundToInt(raw.Carbs),
		Fat:       roundToInt(raw.Fat),
		Reasoning: raw.Reasoning,
	}, nil
}

func (g *Gemini) PlanFromProfile(ctx context.Context, p models.Profile) (*Plan, error) {
	prompt := fmt.Sprintf(`User Profile:
Age: %d
Gender: %s
Height: %.0fcm
Weight: %.1fkg
Activity Level: %s
Goal: %s

Calculate the daily caloric needs (TDEE) and recommended macronutrient split (Protein/Carbs/Fat) for this user to achieve their goal.
Return JSON with targets and a short advice paragraph.`,
		p.Age, p.Gender, p.HeightCm, p.WeightKg, p.Activity, p.Goal)

	text, err := g.generate(ctx, generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   &profilePlanSchema,
		},
	})
	if err != nil {
		return nil, err
	}

	var raw struct {
		TDEE           float64 `json:"tdee"`
		TargetCalories float64 `json:"targetCalories"`
		TargetProtein  float64 `json:"targetProtein"`
		TargetCarbs    float64 `json:"targetCarbs"`
		TargetFat      float64 `json:"targetFat"`
		Advice         string  `json:"advice"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("failed to decode plan: %w", err)
	}
	return &Plan{
		TDEE:           roundToInt(raw.TDEE),
		TargetCalories: roundToInt(raw.TargetCalories),
		TargetProtein:  roundToInt(raw.TargetProtein),
		TargetCarbs:    roundToInt(raw.TargetCarbs),
		TargetFat:      roundToInt(raw.TargetFat),
		Advice:         raw.Advice,
	}, nil
}

func (g *Gemini) DailyAdvice(ctx context.Context, p models.Profile, recent []models.MealLog) (string, error) {
	if len(recent) > 10 {
		recent = recent[:10]
	}
	var lines []string
	for _, l := range recent {
		lines = append(lines, fmt.Sprintf("%s %s: %s (%dkcal)", l.Date, l.Type, l.Description, l.Calories))
	}

	prompt := fmt.Sprintf(`User: %s, Goal: %s.
Target: %d kcal.
Recent Logs:
%s

Provide a short, encouraging, and actionable summary advice for the user based on their recent eating habits and their goal. (Max 2 sentences).`,
		p.Name, p.Goal, p.TargetCals, strings.Join(lines, "\n"))

	return g.generate(ctx, generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
	})
}

func (g *Gemini) SuggestMeal(ctx context.Context, remaining Remaining, goal models.GoalType) (string, error) {
	prompt := fmt.Sprintf(`The user has the following macro budget left for today:
Calories: %d kcal, Protein: %dg, Carbs: %dg, Fat: %dg.
Their goal is %s.

Suggest one concrete meal that fits the remaining budget. Keep it short (max 2 sentences).`,
		remaining.Calories, remaining.Protein, remaining.Carbs, remaining.Fat, goal)

	return g.generate(ctx, generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
	})
}

func roundToInt(f float64) int {
	return int(math.Round(f))
}
