package utils

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// Storage uploads item photos to an S3-compatible object store.
type Storage struct {
	client   *s3.S3
	bucket   string
	endpoint string
}

func NewStorage(accessKey, secretKey, bucket, region, endpoint string) (*Storage, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage: bucket is required")
	}
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Endpoint:    aws.String(endpoint),
		Credentials: credentials.NewStaticCredentials(accessKey, secretKey, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("storage: create session: %w", err)
	}
	return &Storage{client: s3.New(sess), bucket: bucket, endpoint: endpoint}, nil
}

// Upload stores the file under folder/name and returns its public URL.
func (s *Storage) Upload(file []byte, name string, folder string) (string, error) {
	filePath := fmt.Sprintf("%s/%s", folder, name)

	_, err := s.client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(filePath),
		Body:          bytes.NewReader(file),
		ContentLength: aws.Int64(int64(len(file))),
		ContentType:   aws.String("image/jpeg"),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload file to S3: %v", err)
	}

	host := strings.TrimPrefix(s.endpoint, "https://")
	return fmt.Sprintf("https://%s.%s/%s", s.bucket, host, filePath), nil
}
