package voice

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"voicedesk/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// maxPromptChars bounds a single synthesis request. Longer prompts are
// truncated rather than rejected; turns never fail over prompt length.
const maxPromptChars = 1000

// ElevenLabsRenderer synthesizes prompt audio with the ElevenLabs API,
// hosts the result on Cloudinary, and memoizes text-to-URL in Redis.
type ElevenLabsRenderer struct {
	APIKey     string
	BaseURL    string
	VoiceID    string
	Model      string
	HTTPClient *http.Client
	CDN        *cloudinary.Cloudinary
	Cache      *redis.Client
	Logger     *zap.Logger
}

func NewElevenLabsRenderer(apiKey, baseURL, voiceID, model string, cdn *cloudinary.Cloudinary, cache *redis.Client, logger *zap.Logger) *ElevenLabsRenderer {
	return &ElevenLabsRenderer{
		APIKey:     apiKey,
		BaseURL:    baseURL,
		VoiceID:    voiceID,
		Model:      model,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		CDN:        cdn,
		Cache:      cache,
		Logger:     logger,
	}
}

type synthesisRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// AudioURL returns a hosted audio rendition of text, synthesizing and
// uploading it on first use.
func (r *ElevenLabsRenderer) AudioURL(ctx context.Context, text string) (string, error) {
	text = utils.SanitizeText(text)
	if text == "" {
		return "", fmt.Errorf("empty prompt text")
	}
	if len(text) > maxPromptChars {
		text = text[:maxPromptChars]
	}

	key := utils.PromptCachePrefix + promptDigest(text)
	if cached, err := r.Cache.Get(ctx, key).Result(); err == nil && cached != "" {
		return cached, nil
	}

	audio, err := r.synthesize(ctx, text)
	if err != nil {
		return "", fmt.Errorf("failed to synthesize prompt: %w", err)
	}

	result, err := r.CDN.Upload.Upload(ctx, bytes.NewReader(audio), uploader.UploadParams{
		Folder:       "voice-prompts",
		PublicID:     promptDigest(text),
		ResourceType: "video",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload prompt audio: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("no secure URL returned for prompt audio")
	}

	if err := r.Cache.Set(ctx, key, result.SecureURL, utils.PromptCacheTTL).Err(); err != nil {
		r.Logger.Warn("failed to cache prompt audio URL", zap.Error(err))
	}
	return result.SecureURL, nil
}

func (r *ElevenLabsRenderer) synthesize(ctx context.Context, text string) ([]byte, error) {
	body, err := json.Marshal(synthesisRequest{
		Text:    text,
		ModelID: r.Model,
		VoiceSettings: voiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.8,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode synthesis request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", r.BaseURL, r.VoiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build synthesis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", r.APIKey)

	resp, err := r.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("synthesis request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("synthesis returned status %d: %s", resp.StatusCode, string(snippet))
	}
	return io.ReadAll(resp.Body)
}

func promptDigest(text string) string {
	h := sha1.Sum([]byte(text))
	return hex.EncodeToString(h[:])
}
