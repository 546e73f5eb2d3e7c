package images

import (
	"context"
	"fmt"
	"path"

	"github.com/raushankrgupta/harvesthub-seeder/models"
	"github.com/raushankrgupta/harvesthub-seeder/utils"
)

// S3 downloads a single object from a bucket
type S3 struct {
	Bucket string
	Key    string
	Region string
	// Client is created lazily from the default AWS config when nil
	Client utils.S3ObjectGetter
}

// NewS3 creates an S3 provider for bucket/key
func NewS3(bucket, key, region string) *S3 {
	return &S3{Bucket: bucket, Key: key, Region: region}
}

func (s *S3) Describe() string {
	return fmt.Sprintf("s3://%s/%s", s.Bucket, s.Key)
}

func (s *S3) FindImage(ctx context.Context) (*models.ImageFile, error) {
	if s.Client == nil {
		client, err := utils.NewS3Client(ctx, s.Region)
		if err != nil {
			return nil, err
		}
		s.Client = client
	}

	data, _, err := utils.DownloadFromS3(ctx, s.Client, s.Bucket, s.Key)
	if err != nil {
		return nil, err
	}
	return &models.ImageFile{Name: path.Base(s.Key), Data: data}, nil
}
