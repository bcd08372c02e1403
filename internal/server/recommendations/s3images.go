package recommendations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/dmitrijs2005/nutriai/internal/common"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	headObject = func(c *s3.Client, ctx context.Context, in *s3.HeadObjectInput) error {
		_, err := c.HeadObject(ctx, in)
		return err
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// S3Options locates the recipe image catalog.
type S3Options struct {
	Bucket       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
	PresignTTL   time.Duration
}

// S3Finder serves images from a bucket laid out as recipes/<slug>.jpg and
// hands out presigned GET URLs.
type S3Finder struct {
	opts    S3Options
	client  *s3.Client
	presign *s3.PresignClient
}

func NewS3Finder(ctx context.Context, opts S3Options) (*S3Finder, error) {
	var loadOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")))
	}

	cfg, err := loadDefaultAWSConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(opts.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Finder{opts: opts, client: client, presign: s3.NewPresignClient(client)}, nil
}

func (f *S3Finder) FindImage(ctx context.Context, name string) (string, error) {
	key := ImageKey(name)
	if key == "" {
		return "", fmt.Errorf("%w: empty name", common.ErrImageLookup)
	}

	if err := headObject(f.client, ctx, &s3.HeadObjectInput{
		Bucket: aws.String(f.opts.Bucket),
		Key:    aws.String(key),
	}); err != nil {
		if isNotFound(err) {
			return "", fmt.Errorf("%w: %s: %w", common.ErrImageLookup, key, errNoImage)
		}
		return "", fmt.Errorf("%w: %s: %v", common.ErrImageLookup, key, err)
	}

	req, err := presignGetObject(f.presign, ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.opts.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(f.opts.PresignTTL))
	if err != nil {
		return "", fmt.Errorf("%w: presign %s: %v", common.ErrImageLookup, key, err)
	}
	return req.URL, nil
}

func isNotFound(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "NotFound", "NoSuchKey":
		return true
	}
	return false
}

// ImageKey maps a recipe name to its object key: lower case, runs of
// non-alphanumerics collapsed to a single '-'.
func ImageKey(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if b.Len() > 0 && !dash {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return ""
	}
	return "recipes/" + slug + ".jpg"
}
