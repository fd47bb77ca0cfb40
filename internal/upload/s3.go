package upload

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/logger"

	"github.com/epilifcire-debug/PcD-Eventos-2.0/internal/domain"
)

// S3Uploader guarda os documentos dos cadastros em um bucket S3 (AWS ou
// MinIO via endpoint customizado) e devolve a URL pública do objeto.
// Sem bucket configurado o upload fica desabilitado; o resto do cadastro
// continua funcionando sem os anexos.
type S3Uploader struct {
	client   *s3.Client
	bucket   string
	region   string
	endpoint string
	logger   logger.Logger
}

type Config struct {
	Bucket          string
	Region          string
	Endpoint        string // opcional; habilita MinIO e afins
	PathStyle       bool
	AccessKeyID     string // opcional; cai na cadeia default de credenciais
	SecretAccessKey string
}

func NewS3(ctx context.Context, cfg Config, log logger.Logger) (*S3Uploader, error) {
	if cfg.Bucket == "" {
		log.Warn("s3 bucket is empty, document upload disabled")
		return &S3Uploader{logger: log}, nil
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return &S3Uploader{
		client:   client,
		bucket:   cfg.Bucket,
		region:   region,
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		logger:   log,
	}, nil
}

func (u *S3Uploader) Upload(ctx context.Context, nome, contentType string, r io.Reader) (string, error) {
	if u.client == nil {
		return "", domain.ErrUploadIndisponivel
	}

	key := fmt.Sprintf("documentos/%s/%s", uuid.New().String(), path.Base(nome))

	input := &s3.PutObjectInput{
		Bucket: &u.bucket,
		Key:    &key,
		Body:   r,
	}
	if contentType != "" {
		input.ContentType = &contentType
	}

	if _, err := u.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	u.logger.Info("document uploaded",
		logger.String("bucket", u.bucket),
		logger.String("key", key),
	)

	return u.urlDoObjeto(key), nil
}

func (u *S3Uploader) urlDoObjeto(key string) string {
	escaped := (&url.URL{Path: key}).EscapedPath()
	if u.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", u.endpoint, u.bucket, escaped)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, escaped)
}
