package storage

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	put  *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.put = params
	f.body, _ = io.ReadAll(params.Body)

	return &s3.PutObjectOutput{}, nil
}

type fakePresigner struct {
	get     *s3.GetObjectInput
	options s3.PresignOptions
}

func (f *fakePresigner) PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	f.get = params
	for _, fn := range optFns {
		fn(&f.options)
	}

	return &v4.PresignedHTTPRequest{
		URL:    "https://announcements.s3.amazonaws.com/" + aws.ToString(params.Key) + "?X-Amz-Signature=abc",
		Method: "GET",
	}, nil
}

func TestS3Put(t *testing.T) {
	client := &fakeS3{}
	presigner := &fakePresigner{}
	store := &S3{client: client, presigner: presigner, bucket: "announcements", expiry: time.Hour}

	url, err := store.Put(context.Background(), "新宿-東京_20240501-080000.mp3", []byte("mp3"), "audio/mpeg")
	require.NoError(t, err)

	assert.Equal(t, "https://announcements.s3.amazonaws.com/新宿-東京_20240501-080000.mp3?X-Amz-Signature=abc", url)

	assert.Equal(t, "announcements", aws.ToString(client.put.Bucket))
	assert.Equal(t, "新宿-東京_20240501-080000.mp3", aws.ToString(client.put.Key))
	assert.Equal(t, "audio/mpeg", aws.ToString(client.put.ContentType))
	assert.Equal(t, []byte("mp3"), client.body)

	assert.Equal(t, "announcements", aws.ToString(presigner.get.Bucket))
	assert.Equal(t, time.Hour, presigner.options.Expires)
}

func TestS3PutFailure(t *testing.T) {
	presigner := &fakePresigner{}
	store := &S3{client: &fakeS3{err: errors.New("access denied")}, presigner: presigner, bucket: "announcements", expiry: time.Hour}

	_, err := store.Put(context.Background(), "a.mp3", []byte("mp3"), "audio/mpeg")
	assert.EqualError(t, err, "access denied")
	assert.Nil(t, presigner.get, "nothing should be presigned after a failed upload")
}

func TestNewS3RequiresBucket(t *testing.T) {
	_, err := NewS3(context.Background(), "", time.Hour)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNewGCSRequiresCredentials(t *testing.T) {
	_, err := NewGCS(context.Background(), "announcements", "", time.Hour)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
