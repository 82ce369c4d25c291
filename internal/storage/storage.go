// Package storage 图片等二进制对象的存储
package storage

import (
	"context"
	"io"
)

// ObjectStorage 对象存储的最小接口，便于测试时替换
type ObjectStorage interface {
	// Put 上传对象并返回对外访问 URL
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	// Remove 删除对象，对象不存在时不报错
	Remove(ctx context.Context, key string) error
}
