package stores

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/nzai/divdash/constants"
	"github.com/nzai/divdash/quotes"
	"go.uber.org/zap"
)

// S3Config aws s3 store config, empty keys use the default credential chain
type S3Config struct {
	AccessKeyID     string `toml:"id"`
	SecretAccessKey string `toml:"secret"`
	Region          string `toml:"region"`
	Bucket          string `toml:"bucket"`
}

// S3 define aws s3 store
type S3 struct {
	config *S3Config
	client *s3.S3
}

// NewS3 create aws s3 store
func NewS3(config *S3Config) (*S3, error) {
	conf := aws.Config{
		Region:     aws.String(config.Region),
		MaxRetries: aws.Int(5),
	}

	if config.AccessKeyID != "" {
		conf.Credentials = credentials.NewStaticCredentialsFromCreds(credentials.Value{
			AccessKeyID:     config.AccessKeyID,
			SecretAccessKey: config.SecretAccessKey,
		})
	}

	sess, err := session.NewSession(&conf)
	if err != nil {
		zap.L().Error("create aws session failed", zap.Error(err), zap.String("bucket", config.Bucket), zap.String("region", config.Region))
		return nil, err
	}

	return &S3{
		config: config,
		client: s3.New(sess),
	}, nil
}

// storePath return {yyyy}/{mm}/{dd}/{ticker}
func (s S3) storePath(ticker string, date time.Time) string {
	return fmt.Sprintf("%s/%s", date.Format("2006/01/02"), ticker)
}

// Exists check snapshot exists
func (s S3) Exists(ticker string, date time.Time) (bool, error) {
	_, err := s.client.HeadObject(&s3.HeadObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(s.storePath(ticker, date)),
	})
	if err == nil {
		return true, nil
	}

	ae, ok := err.(awserr.Error)
	if ok && ae.Code() == "NotFound" {
		return false, nil
	}

	zap.L().Error("check snapshot exists failed",
		zap.Error(err),
		zap.String("ticker", ticker),
		zap.Time("date", date))

	return false, err
}

// Save save ticker snapshot
func (s S3) Save(ticker string, date time.Time, encoder quotes.Encoder) error {
	zipped, err := zip(encoder)
	if err != nil {
		return err
	}

	_, err = s.client.PutObject(&s3.PutObjectInput{
		Bucket:       aws.String(s.config.Bucket),
		Key:          aws.String(s.storePath(ticker, date)),
		Body:         bytes.NewReader(zipped),
		StorageClass: aws.String(s3.ObjectStorageClassStandardIa),
	})
	if err != nil {
		zap.L().Error("put snapshot failed",
			zap.Error(err),
			zap.String("ticker", ticker),
			zap.Time("date", date))
		return err
	}

	return nil
}

// Load load ticker snapshot
func (s S3) Load(ticker string, date time.Time, decoder quotes.Decoder) error {
	output, err := s.client.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(s.storePath(ticker, date)),
	})
	if err != nil {
		ae, ok := err.(awserr.Error)
		if ok && ae.Code() == s3.ErrCodeNoSuchKey {
			return constants.ErrRecordNotFound
		}

		zap.L().Error("get snapshot failed",
			zap.Error(err),
			zap.String("ticker", ticker),
			zap.Time("date", date))
		return err
	}
	defer output.Body.Close()

	zipped, err := io.ReadAll(output.Body)
	if err != nil {
		zap.L().Error("read snapshot failed",
			zap.Error(err),
			zap.String("ticker", ticker),
			zap.Time("date", date))
		return err
	}

	return unzip(zipped, decoder)
}

// Remove remove ticker snapshot
func (s S3) Remove(ticker string, date time.Time) error {
	_, err := s.client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(s.storePath(ticker, date)),
	})
	if err != nil {
		zap.L().Error("delete snapshot failed",
			zap.Error(err),
			zap.String("ticker", ticker),
			zap.Time("date", date))
		return err
	}

	return nil
}

// Close nothing to release
func (s S3) Close() error {
	return nil
}
