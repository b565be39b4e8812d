package speech

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePolly struct {
	input *polly.SynthesizeSpeechInput
	err   error
}

func (f *fakePolly) SynthesizeSpeech(ctx context.Context, params *polly.SynthesizeSpeechInput, optFns ...func(*polly.Options)) (*polly.SynthesizeSpeechOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}

	return &polly.SynthesizeSpeechOutput{
		AudioStream: io.NopCloser(strings.NewReader("ID3-mp3-bytes")),
		ContentType: aws.String("audio/mpeg"),
	}, nil
}

func TestPollySynthesize(t *testing.T) {
	client := &fakePolly{}
	synthesizer := &Polly{client: client, voice: types.VoiceId("Mizuki")}

	audio, err := synthesizer.Synthesize(context.Background(), "新宿駅を08:07に出発")
	require.NoError(t, err)

	assert.Equal(t, "audio/mpeg", audio.ContentType)
	assert.Equal(t, []byte("ID3-mp3-bytes"), audio.Data)

	assert.Equal(t, "新宿駅を08:07に出発", aws.ToString(client.input.Text))
	assert.Equal(t, types.OutputFormatMp3, client.input.OutputFormat)
	assert.Equal(t, types.TextTypeText, client.input.TextType)
	assert.Equal(t, types.VoiceId("Mizuki"), client.input.VoiceId)
}

func TestPollySynthesizeError(t *testing.T) {
	synthesizer := &Polly{client: &fakePolly{err: errors.New("throttled")}, voice: types.VoiceId("Mizuki")}

	_, err := synthesizer.Synthesize(context.Background(), "テスト")
	assert.EqualError(t, err, "throttled")
}

func TestGoogleSynthesize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var request synthesizeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		assert.Equal(t, "テスト", request.Input.Text)
		assert.Equal(t, "ja-JP", request.Voice.LanguageCode)
		assert.Equal(t, "ja-JP-Standard-A", request.Voice.Name)
		assert.Equal(t, "MP3", request.AudioConfig.AudioEncoding)

		json.NewEncoder(w).Encode(synthesizeResponse{
			AudioContent: base64.StdEncoding.EncodeToString([]byte("mp3")),
		})
	}))
	defer server.Close()

	synthesizer := &Google{httpClient: server.Client(), endpoint: server.URL, voice: "ja-JP-Standard-A"}

	audio, err := synthesizer.Synthesize(context.Background(), "テスト")
	require.NoError(t, err)

	assert.Equal(t, "audio/mpeg", audio.ContentType)
	assert.Equal(t, []byte("mp3"), audio.Data)
}

func TestGoogleSynthesizeErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": {"message": "denied"}}`))
	}))
	defer server.Close()

	synthesizer := &Google{httpClient: server.Client(), endpoint: server.URL, voice: "ja-JP-Standard-A"}

	_, err := synthesizer.Synthesize(context.Background(), "テスト")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestNewGoogleRequiresCredentials(t *testing.T) {
	_, err := NewGoogle(context.Background(), "", "ja-JP-Standard-A")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
