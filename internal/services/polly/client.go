package polly

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"

	"audioheal/internal/services"
)

// SynthesizeAPI is the slice of the Polly API the client needs. Satisfied
// by *polly.Client and by test fakes.
type SynthesizeAPI interface {
	SynthesizeSpeech(ctx context.Context, params *polly.SynthesizeSpeechInput, optFns ...func(*polly.Options)) (*polly.SynthesizeSpeechOutput, error)
}

// Client issues synthesis requests and returns raw PCM audio.
type Client struct {
	api SynthesizeAPI
}

// Option customizes the client.
type Option func(*Client)

// WithAPI overrides the underlying Polly API, used by tests.
func WithAPI(api SynthesizeAPI) Option {
	return func(c *Client) {
		if api != nil {
			c.api = api
		}
	}
}

// NewClient builds a client from the ambient AWS configuration. Region
// overrides the environment when non-empty.
func NewClient(ctx context.Context, region string, opts ...Option) (*Client, error) {
	client := &Client{}
	for _, opt := range opts {
		opt(client)
	}
	if client.api == nil {
		loadOpts := []func(*awsconfig.LoadOptions) error{}
		if region != "" {
			loadOpts = append(loadOpts, awsconfig.WithRegion(region))
		}
		cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "polly", "credentials", "load AWS configuration", err)
		}
		client.api = polly.NewFromConfig(cfg)
	}
	return client, nil
}

// Synthesize renders the SSML document with the given voice and engine and
// returns signed 16-bit little-endian mono PCM at sampleRate Hz.
func (c *Client) Synthesize(ctx context.Context, ssml, voice, engine string, sampleRate int) ([]byte, error) {
	input := &polly.SynthesizeSpeechInput{
		Text:         aws.String(ssml),
		TextType:     types.TextTypeSsml,
		OutputFormat: types.OutputFormatPcm,
		SampleRate:   aws.String(strconv.Itoa(sampleRate)),
		VoiceId:      types.VoiceId(voice),
		Engine:       types.Engine(engine),
	}

	out, err := c.api.SynthesizeSpeech(ctx, input)
	if err != nil {
		detail := fmt.Sprintf("voice %s engine %s", voice, engine)
		return nil, services.Wrap(services.ErrSynthesis, "polly", "synthesize", detail, err)
	}
	defer out.AudioStream.Close()

	audio, err := io.ReadAll(out.AudioStream)
	if err != nil {
		return nil, services.Wrap(services.ErrSynthesis, "polly", "read audio stream", "", err)
	}
	if len(audio) == 0 {
		return nil, services.Wrap(services.ErrSynthesis, "polly", "synthesize", "empty audio stream", nil)
	}
	return audio, nil
}
