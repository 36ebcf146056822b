package service

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

func TestNewAIService_DefaultConfig(t *testing.T) {
	svc := NewAIService(&AIConfig{}, nil)

	if svc.Config.Model != "gemini-2.5-flash" {
		t.Errorf("默认 Model 不正确: got %s, want gemini-2.5-flash", svc.Config.Model)
	}
}

func TestImageFormat(t *testing.T) {
	tests := []struct {
		name string
		mime string
		want string
	}{
		{"标准 MIME 去掉前缀", "image/jpeg", "jpeg"},
		{"png 同理", "image/png", "png"},
		{"裸格式名原样返回", "webp", "webp"},
		{"空输入回退到 jpeg", "", "jpeg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := imageFormat(tt.mime); got != tt.want {
				t.Errorf("imageFormat(%q) = %q, want %q", tt.mime, got, tt.want)
			}
		})
	}
}

func TestExtractFromFoto_OhneKeyFehler(t *testing.T) {
	svc := NewAIService(&AIConfig{}, nil)

	_, err := svc.ExtractFromFoto(context.Background(), []byte{0xff, 0xd8}, "image/jpeg")
	if err == nil {
		t.Fatal("没有 API Key 时识别应该失败")
	}

	var extErr *ExtractionError
	if !errors.As(err, &extErr) {
		t.Errorf("识别失败必须是 *ExtractionError: got %T", err)
	}
}

func TestExtractFromFoto_LeeresBildFehler(t *testing.T) {
	svc := NewAIService(&AIConfig{ApiKey: "dummy"}, nil)

	_, err := svc.ExtractFromFoto(context.Background(), nil, "image/jpeg")
	if err == nil {
		t.Fatal("空图片时识别应该失败")
	}

	var extErr *ExtractionError
	if !errors.As(err, &extErr) {
		t.Errorf("识别失败必须是 *ExtractionError: got %T", err)
	}
}

func TestAIService_ExtractFromFoto(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("跳过: 需要设置 GEMINI_API_KEY 环境变量")
	}

	imagePath := os.Getenv("TEST_FOTO_PATH")
	if imagePath == "" {
		t.Skip("跳过: 需要设置 TEST_FOTO_PATH 环境变量")
	}

	data, err := os.ReadFile(imagePath)
	if err != nil {
		t.Fatalf("读取测试图片失败: %v", err)
	}

	svc := NewAIService(&AIConfig{ApiKey: apiKey}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	felder, err := svc.ExtractFromFoto(ctx, data, "image/jpeg")
	if err != nil {
		t.Fatalf("ExtractFromFoto() 失败: %v", err)
	}

	t.Logf("识别出的字段: %v", felder.PresentFieldNames())
}
