package youtube

import (
	"context"
	"errors"
	"fmt"

	yt "github.com/kkdai/youtube/v2"
	"github.com/sony/gobreaker"
)

// Player resolves a watch URL to a directly playable audio stream URL. It
// implements domain.AudioResolver. Stream URLs are signed by the upstream
// service and expire after an upstream-defined TTL; no expiry tracking
// happens here.
type Player struct {
	client  *yt.Client
	breaker *gobreaker.CircuitBreaker
}

func NewPlayer() *Player {
	return &Player{
		client:  &yt.Client{},
		breaker: newBreaker("youtube_player"),
	}
}

func (p *Player) ResolveAudio(ctx context.Context, watchURL string) (string, error) {
	streamURL, err := p.breaker.Execute(func() (any, error) {
		return p.resolve(ctx, watchURL)
	})
	if err != nil {
		return "", fmt.Errorf("youtube player: %w", err)
	}
	return streamURL.(string), nil
}

func (p *Player) resolve(ctx context.Context, watchURL string) (string, error) {
	video, err := p.client.GetVideoContext(ctx, watchURL)
	if err != nil {
		return "", fmt.Errorf("get video info: %w", err)
	}

	format, err := pickAudioFormat(video.Formats)
	if err != nil {
		return "", err
	}

	streamURL, err := p.client.GetStreamURLContext(ctx, video, format)
	if err != nil {
		return "", fmt.Errorf("get stream url: %w", err)
	}
	return streamURL, nil
}

// pickAudioFormat filters to audio-only encodings and takes the one with the
// highest bitrate. No further negotiation happens.
func pickAudioFormat(formats yt.FormatList) (*yt.Format, error) {
	audio := formats.Type("audio")
	if len(audio) == 0 {
		return nil, errors.New("no audio-only format available")
	}

	best := &audio[0]
	for i := 1; i < len(audio); i++ {
		if audio[i].Bitrate > best.Bitrate {
			best = &audio[i]
		}
	}
	return best, nil
}
