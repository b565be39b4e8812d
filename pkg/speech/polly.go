package speech

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"
)

const pollyDefaultContentType = "audio/mpeg"

type pollyAPI interface {
	SynthesizeSpeech(ctx context.Context, params *polly.SynthesizeSpeechInput, optFns ...func(*polly.Options)) (*polly.SynthesizeSpeechOutput, error)
}

// Polly synthesises mp3 audio with Amazon Polly.
type Polly struct {
	client pollyAPI
	voice  types.VoiceId
}

func NewPolly(ctx context.Context, region string, voice string) (*Polly, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}

	return &Polly{
		client: polly.NewFromConfig(cfg),
		voice:  types.VoiceId(voice),
	}, nil
}

func (p *Polly) Synthesize(ctx context.Context, text string) (*Audio, error) {
	output, err := p.client.SynthesizeSpeech(ctx, &polly.SynthesizeSpeechInput{
		OutputFormat: types.OutputFormatMp3,
		Text:         aws.String(text),
		TextType:     types.TextTypeText,
		VoiceId:      p.voice,
	})
	if err != nil {
		return nil, err
	}
	defer output.AudioStream.Close()

	data, err := io.ReadAll(output.AudioStream)
	if err != nil {
		return nil, err
	}

	contentType := aws.ToString(output.ContentType)
	if contentType == "" {
		contentType = pollyDefaultContentType
	}

	return &Audio{
		ContentType: contentType,
		Data:        data,
	}, nil
}
