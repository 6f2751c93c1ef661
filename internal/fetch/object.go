package fetch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// partialSuffix marks in-flight downloads. A crashed run leaves at most a
// .partial file behind, which the existence filter never mistakes for a
// finished object.
const partialSuffix = ".partial"

// S3Getter is the subset of the S3 client the object fetcher needs.
type S3Getter interface {
	GetObject(
		ctx context.Context,
		input *s3.GetObjectInput,
		opts ...func(*s3.Options),
	) (*s3.GetObjectOutput, error)
}

// ObjectFetcher downloads single objects from an S3 bucket to local files.
type ObjectFetcher struct {
	client S3Getter
	bucket string
}

// NewObjectFetcher creates a fetcher reading from the given bucket.
func NewObjectFetcher(client S3Getter, bucket string) *ObjectFetcher {
	return &ObjectFetcher{client: client, bucket: bucket}
}

// Fetch downloads the object to a temporary file and renames it into
// place. On any failure the temporary is removed and LocalPath is left
// untouched.
func (f *ObjectFetcher) Fetch(ctx context.Context, task Task) error {
	if err := os.MkdirAll(filepath.Dir(task.LocalPath), 0o755); err != nil {
		return fmt.Errorf("create destination dir: %w", err)
	}

	output, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(task.Object.Key),
	})
	if err != nil {
		return fmt.Errorf("get object %s: %w", task.Object.Key, err)
	}
	defer output.Body.Close()

	tmpPath := task.LocalPath + partialSuffix
	if err := writeTemp(tmpPath, output.Body); err != nil {
		return fmt.Errorf("write %s: %w", task.Object.Key, err)
	}

	if err := os.Rename(tmpPath, task.LocalPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("finalize %s: %w", task.Object.Key, err)
	}

	return nil
}

// writeTemp streams body into tmpPath, removing it on any failure.
func writeTemp(tmpPath string, body io.Reader) error {
	out, err := os.Create(tmpPath)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, body); err != nil {
		out.Close()
		os.Remove(tmpPath)
		return err
	}

	if err := out.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	return nil
}
