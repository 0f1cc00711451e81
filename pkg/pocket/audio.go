package pocket

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
)

const audioTempPattern = "pocket_audio_*.mp3"

var errNoSignedURL = errors.New("audio url response has no signed_url")

// Audio fetches recording audio through short-lived signed URLs. The
// download itself is a plain GET without the API credential.
type Audio struct {
	client *Client
}

func NewAudio(c *Client) *Audio { return &Audio{client: c} }

// URL asks the API for a fresh signed URL.
func (a *Audio) URL(ctx context.Context, recordingID string) (AudioURL, error) {
	env, err := a.client.Get(ctx, "recordings/"+url.PathEscape(recordingID)+"/audio-url", nil)
	if err != nil {
		return AudioURL{}, err
	}
	var u AudioURL
	if err := env.Decode("data", &u); err != nil {
		return AudioURL{}, fmt.Errorf("audio url %s: %w", recordingID, err)
	}
	return u, nil
}

// Stream opens the audio body. The caller must close it.
func (a *Audio) Stream(ctx context.Context, recordingID string) (io.ReadCloser, error) {
	u, err := a.URL(ctx, recordingID)
	if err != nil {
		return nil, err
	}
	if u.SignedURL == "" {
		return nil, &Error{Kind: KindGeneric, Message: errNoSignedURL.Error(), Details: map[string]any{}, cause: errNoSignedURL}
	}

	body, status, err := a.client.audio.Stream(ctx, u.SignedURL, nil)
	if err != nil {
		return nil, transportError(&Exchange{Method: http.MethodGet, URL: u.SignedURL, Attempts: 1}, err)
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		if body != nil {
			_ = body.Close()
		}
		return nil, &Error{
			Kind:       KindGeneric,
			Message:    fmt.Sprintf("Audio download failed: status %d", status),
			StatusCode: status,
			Details:    map[string]any{},
		}
	}
	return body, nil
}

// Contents reads the whole audio file into memory.
func (a *Audio) Contents(ctx context.Context, recordingID string) ([]byte, error) {
	body, err := a.Stream(ctx, recordingID)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read audio %s: %w", recordingID, err)
	}
	return data, nil
}

// Download writes the audio to a new temp file and returns its path.
func (a *Audio) Download(ctx context.Context, recordingID string) (string, error) {
	body, err := a.Stream(ctx, recordingID)
	if err != nil {
		return "", err
	}
	defer body.Close()

	f, err := os.CreateTemp("", audioTempPattern)
	if err != nil {
		return "", fmt.Errorf("create audio temp file: %w", err)
	}
	if err := copyAndClose(f, body); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write audio %s: %w", recordingID, err)
	}
	return f.Name(), nil
}

// SaveToPath writes the audio to path, creating parent directories.
func (a *Audio) SaveToPath(ctx context.Context, recordingID, path string) error {
	body, err := a.Stream(ctx, recordingID)
	if err != nil {
		return err
	}
	defer body.Close()

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create audio dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create audio file: %w", err)
	}
	if err := copyAndClose(f, body); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("write audio %s: %w", recordingID, err)
	}
	return nil
}

func copyAndClose(f *os.File, r io.Reader) error {
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
