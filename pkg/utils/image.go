package utils

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// MaxImageBytes 扫描图片大小上限 (10MB)
const MaxImageBytes = 10 << 20

// DownloadImage 下载网络图片并返回字节切片
func DownloadImage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed with status: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body failed: %v", err)
	}
	if len(data) > MaxImageBytes {
		return nil, fmt.Errorf("image too large: > %d bytes", MaxImageBytes)
	}

	return data, nil
}

// DetectImageMime 基于内容嗅探图片 MIME 类型
func DetectImageMime(data []byte) string {
	return http.DetectContentType(data)
}
