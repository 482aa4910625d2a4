// Package transcribe recovers caller speech from call recordings when the
// telephony provider delivers a recording URL instead of a transcript.
package transcribe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"voicedesk/utils"

	speech "cloud.google.com/go/speech/apiv1"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	speechpb "google.golang.org/genproto/googleapis/cloud/speech/v1"
)

// Recordings longer than this are rejected before download completes.
const maxRecordingBytes = 5 * 1024 * 1024

// Transcriber turns a hosted call recording into text.
type Transcriber interface {
	TranscribeRecording(ctx context.Context, recordingURL, language string) (string, error)
}

// GoogleTranscriber downloads the recording and runs synchronous
// recognition against the Cloud Speech API. Call recordings arrive as
// 8 kHz mono WAV.
type GoogleTranscriber struct {
	CredentialsFile string
	AccountSID      string
	AuthToken       string
	HTTPClient      *http.Client
	Logger          *zap.Logger
}

func NewGoogleTranscriber(credentialsFile, accountSID, authToken string, logger *zap.Logger) *GoogleTranscriber {
	return &GoogleTranscriber{
		CredentialsFile: credentialsFile,
		AccountSID:      accountSID,
		AuthToken:       authToken,
		HTTPClient:      &http.Client{Timeout: 20 * time.Second},
		Logger:          logger,
	}
}

func (t *GoogleTranscriber) TranscribeRecording(ctx context.Context, recordingURL, language string) (string, error) {
	recordingURL = utils.SanitizeURL(recordingURL)
	if recordingURL == "" {
		return "", fmt.Errorf("invalid recording URL")
	}
	if language == "" {
		language = "en-US"
	}

	audio, err := t.fetchRecording(ctx, recordingURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch recording: %w", err)
	}

	client, err := speech.NewClient(ctx, option.WithCredentialsFile(t.CredentialsFile))
	if err != nil {
		return "", fmt.Errorf("failed to initialize speech client: %w", err)
	}
	defer client.Close()

	resp, err := client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:          speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:   8000,
			LanguageCode:      language,
			AudioChannelCount: 1,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return "", fmt.Errorf("speech recognition failed: %w", err)
	}

	var transcript strings.Builder
	for _, result := range resp.Results {
		for _, alt := range result.Alternatives {
			transcript.WriteString(alt.Transcript + " ")
		}
	}
	text := strings.TrimSpace(transcript.String())
	t.Logger.Info("transcribed recording", zap.Int("bytes", len(audio)), zap.Int("chars", len(text)))
	return text, nil
}

// fetchRecording downloads recording audio, authenticating when the URL
// points at the telephony provider.
func (t *GoogleTranscriber) fetchRecording(ctx context.Context, recordingURL string) ([]byte, error) {
	// Provider recording URLs omit the extension; request the WAV rendition.
	if !strings.HasSuffix(recordingURL, ".wav") && !strings.HasSuffix(recordingURL, ".mp3") {
		recordingURL += ".wav"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, recordingURL, nil)
	if err != nil {
		return nil, err
	}
	if t.AccountSID != "" {
		req.SetBasicAuth(t.AccountSID, t.AuthToken)
	}

	resp, err := t.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recording fetch returned status %d", resp.StatusCode)
	}
	audio, err := io.ReadAll(io.LimitReader(resp.Body, maxRecordingBytes+1))
	if err != nil {
		return nil, err
	}
	if len(audio) > maxRecordingBytes {
		return nil, fmt.Errorf("recording exceeds %d bytes", maxRecordingBytes)
	}
	return audio, nil
}
