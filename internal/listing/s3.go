package listing

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// maxPageSize is the largest page S3 will return per ListObjectsV2 call.
const maxPageSize = 1000

// S3API is the subset of the S3 client the lister needs.
type S3API interface {
	ListObjectsV2(
		ctx context.Context,
		input *s3.ListObjectsV2Input,
		opts ...func(*s3.Options),
	) (*s3.ListObjectsV2Output, error)
}

// NewAnonymousClient creates an S3 client with unsigned requests, matching
// the public-read access the corpora buckets allow.
func NewAnonymousClient(ctx context.Context, region string) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(aws.AnonymousCredentials{}),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

// S3Lister enumerates object keys under a bucket prefix via paginated
// ListObjectsV2 calls.
type S3Lister struct {
	client   S3API
	bucket   string
	prefix   string
	pageSize int32
}

// NewS3Lister creates a lister for the given bucket and prefix.
func NewS3Lister(client S3API, bucket, prefix string) *S3Lister {
	return &S3Lister{
		client:   client,
		bucket:   bucket,
		prefix:   prefix,
		pageSize: maxPageSize,
	}
}

// List accumulates up to max objects (all of them when max is 0), skipping
// directory-marker keys. A page request that fails returns the objects
// accumulated so far wrapped in a *PartialError; it is never retried here.
func (l *S3Lister) List(ctx context.Context, max int) ([]Object, error) {
	var (
		objects    []Object
		token      *string
		startAfter string
	)

	for {
		input := &s3.ListObjectsV2Input{
			Bucket:  aws.String(l.bucket),
			Prefix:  aws.String(l.prefix),
			MaxKeys: aws.Int32(l.pageSize),
		}
		if token != nil {
			input.ContinuationToken = token
		} else if startAfter != "" {
			input.StartAfter = aws.String(startAfter)
		}

		output, err := l.client.ListObjectsV2(ctx, input)
		if err != nil {
			return objects, &PartialError{Listed: len(objects), Err: err}
		}

		added := 0
		for _, obj := range output.Contents {
			key := aws.ToString(obj.Key)
			if strings.HasSuffix(key, "/") {
				continue
			}
			objects = append(objects, Object{Key: key, Size: aws.ToInt64(obj.Size)})
			added++
			if max > 0 && len(objects) >= max {
				return objects, nil
			}
		}

		if !aws.ToBool(output.IsTruncated) {
			return objects, nil
		}

		// Some S3-compatible stores set IsTruncated without handing back
		// a continuation token. Resume from the last accumulated key so
		// the cursor always moves forward.
		token = output.NextContinuationToken
		if token == nil {
			if added == 0 {
				return objects, nil
			}
			startAfter = objects[len(objects)-1].Key
		}
	}
}
