// Package storage 封装 S3 兼容对象存储，承载文章配图的上传/删除。
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// AssetFolder 资产统一挂在该逻辑目录下；历史 URL 的解析依赖这个值，改动会废掉存量数据
const AssetFolder = "him-articles"

type Client struct {
	s3        *s3.Client
	bucket    string
	endpoint  string
	publicURL string
}

// New 配置不全返回 (nil, nil)：上传整体降级为 no-op，文章可以无图保存
func New(endpoint, region, accessKey, secretKey, bucket, publicURL string) (*Client, error) {
	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, nil
	}
	endpoint = strings.TrimRight(endpoint, "/")

	cl := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		UsePathStyle: true,
	})
	return &Client{
		s3:        cl,
		bucket:    bucket,
		endpoint:  endpoint,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// Upload 以 <folder>/<uuid>-<文件名> 为 key 公read存储，返回可直接引用的 URL。
// 未配置时返回空 URL 且不报错。
func (c *Client) Upload(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	if c == nil {
		return "", nil
	}
	key := AssetFolder + "/" + uuid.NewString() + "-" + sanitizeName(filename)
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
		ACL:           s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return c.fileURL(key), nil
}

// Delete 按 URL 删除资产：逻辑 id 来自 ExtractAssetID，再补回扩展名得到对象 key
func (c *Client) Delete(ctx context.Context, rawURL string) error {
	if c == nil {
		return nil
	}
	id := ExtractAssetID(rawURL)
	if id == "" {
		return fmt.Errorf("no asset id in url %q", rawURL)
	}
	key := id + path.Ext(rawURL)
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (c *Client) fileURL(key string) string {
	if c.publicURL != "" {
		return c.publicURL + "/" + key
	}
	return c.endpoint + "/" + c.bucket + "/" + key
}

// ExtractAssetID 从 URL 还原逻辑 id：取 "him-articles/" 起、最后一个 "." 止。
// 与旧系统发出的 URL 逐字节兼容，解析规则脆弱但不能动：
//   - 假设 URL 中恰好出现一次目录名；
//   - 假设最后一个 "." 属于文件扩展名。
//
// 不满足任一假设时返回 ""。
func ExtractAssetID(rawURL string) string {
	start := strings.Index(rawURL, AssetFolder+"/")
	end := strings.LastIndex(rawURL, ".")
	if start == -1 || end == -1 || end <= start {
		return ""
	}
	return rawURL[start:end]
}

// 文件名只保留 base，空格归一，避免奇怪的 key
func sanitizeName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, " ", "-")
	if name == "" || name == "." || name == "/" {
		name = "image"
	}
	return name
}
