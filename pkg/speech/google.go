package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleSynthesizeURL = "https://texttospeech.googleapis.com/v1/text:synthesize"
const googleLanguageCode = "ja-JP"

type synthesisInput struct {
	Text string `json:"text"`
}

type voiceSelectionParams struct {
	LanguageCode string `json:"languageCode"`
	Name         string `json:"name"`
}

type audioConfig struct {
	AudioEncoding string `json:"audioEncoding"`
}

type synthesizeRequest struct {
	Input       synthesisInput       `json:"input"`
	Voice       voiceSelectionParams `json:"voice"`
	AudioConfig audioConfig          `json:"audioConfig"`
}

type synthesizeResponse struct {
	AudioContent string `json:"audioContent"` // base64 encoded audio
}

// Google synthesises mp3 audio with the Google Cloud text-to-speech REST API.
type Google struct {
	httpClient *http.Client
	endpoint   string
	voice      string
}

// NewGoogle authenticates with a service account JSON document.
func NewGoogle(ctx context.Context, credentialsJSON string, voice string) (*Google, error) {
	if credentialsJSON == "" {
		return nil, ErrNotConfigured
	}

	config, err := google.JWTConfigFromJSON(
		[]byte(credentialsJSON),
		"https://www.googleapis.com/auth/cloud-platform",
	)
	if err != nil {
		return nil, err
	}

	httpClient := oauth2.NewClient(ctx, config.TokenSource(ctx))
	httpClient.Timeout = 10 * time.Second

	return &Google{
		httpClient: httpClient,
		endpoint:   googleSynthesizeURL,
		voice:      voice,
	}, nil
}

func (g *Google) Synthesize(ctx context.Context, text string) (*Audio, error) {
	payload, err := json.Marshal(synthesizeRequest{
		Input: synthesisInput{Text: text},
		Voice: voiceSelectionParams{
			LanguageCode: googleLanguageCode,
			Name:         g.voice,
		},
		AudioConfig: audioConfig{AudioEncoding: "MP3"},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("text-to-speech status %d: %s", resp.StatusCode, body)
	}

	var synthesized synthesizeResponse
	if err := json.Unmarshal(body, &synthesized); err != nil {
		return nil, err
	}

	audio, err := base64.StdEncoding.DecodeString(synthesized.AudioContent)
	if err != nil {
		return nil, err
	}

	return &Audio{
		ContentType: "audio/mpeg",
		Data:        audio,
	}, nil
}
