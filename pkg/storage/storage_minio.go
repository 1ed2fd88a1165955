package storage

import (
	"bytes"

	"github.com/corrigo/corrigo/pkg/ctx"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioStorage struct {
	Client *minio.Client
	s      *Storage
}

func newMinio(s *Storage) (*MinioStorage, error) {
	client, err := minio.New(s.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(s.AccessKey, s.SecretKey, ""),
		Secure: s.UseTLS,
	})
	if err != nil {
		return nil, err
	}

	return &MinioStorage{
		Client: client,
		s:      s,
	}, nil
}

func (m *MinioStorage) PutText(c *ctx.Context, objectName string, body []byte) (string, error) {
	fullPath := getFullPath(m.s.BasePath, objectName)
	_, err := m.Client.PutObject(c.GetCtx(), m.s.Bucket, fullPath, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "text/plain; charset=utf-8",
	})
	if err != nil {
		return "", err
	}
	return fullPath, nil
}

func (m *MinioStorage) GetText(c *ctx.Context, objectName string) ([]byte, error) {
	fullPath := getFullPath(m.s.BasePath, objectName)
	obj, err := m.Client.GetObject(c.GetCtx(), m.s.Bucket, fullPath, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(obj); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (m *MinioStorage) Delete(c *ctx.Context, objectName string) error {
	fullPath := getFullPath(m.s.BasePath, objectName)
	return m.Client.RemoveObject(c.GetCtx(), m.s.Bucket, fullPath, minio.RemoveObjectOptions{})
}
