package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/lib/pq"
	"google.golang.org/api/option"
	"gorm.io/datatypes"

	"marktplatz_dev_v1/internal/model"
	"marktplatz_dev_v1/internal/repository"
)

// ==================== 配置 ====================

// AIConfig AI 服务配置
type AIConfig struct {
	ApiKey string
	Model  string
}

// ==================== 错误 ====================

// ExtractionError Foto 识别失败 (网络错误, 返回不可解析, schema 不匹配都算)
// 识别失败绝不影响用户已输入的表单内容, 上层只做非致命提示
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("Foto 识别失败: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// ==================== 服务 ====================

type AIService struct {
	Config      *AIConfig
	scanLogRepo repository.ScanLogRepository
}

// NewAIService 创建 AI 服务
// scanLogRepo 可以为 nil (没配数据库时扫描照常工作, 只是不记日志)
func NewAIService(cfg *AIConfig, scanLogRepo repository.ScanLogRepository) *AIService {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}

	return &AIService{
		Config:      cfg,
		scanLogRepo: scanLogRepo,
	}
}

// ==================== Foto 识别 ====================

// felderSchema 识别目标 schema, 字段名和枚举拼写必须和 Felder 完全一致
// 模型识别不出的字段要求返回 null, 解析后自然落成 nil 指针
const felderSchema = `{
  "artikelname": string | null,
  "beschreibung": string | null,
  "preis": number | null,
  "zustand": "gut" | "zufriedenstellend" | "neu_mit_etikett" | "neu_ohne_etikett" | "sehr_gut" | null,
  "kategorie": "damenkleidung" | "herrenkleidung" | "kinderkleidung" | "schuhe" | "accessoires" | "taschen" | "schmuck" | "sonstiges" | null,
  "groesse": string | null,
  "marke": string | null,
  "farbe": string | null,
  "vorname": string | null,
  "nachname": string | null,
  "email": string | null,
  "telefon": string | null,
  "ort": string | null
}`

// ExtractFromFoto 把商品照片交给 Gemini, 识别出尽量多的 Inserat 字段
// 尽力而为: 返回的字段可以比 schema 少, 值可以是 null, 都不算失败
// 任何一步出错返回 *ExtractionError, 不产生部分结果
func (s *AIService) ExtractFromFoto(ctx context.Context, imageData []byte, mimeType string) (*model.Felder, error) {
	start := time.Now()

	felder, raw, err := s.doExtract(ctx, imageData, mimeType)
	s.logScan(len(imageData), mimeType, felder, raw, time.Since(start), err)

	if err != nil {
		return nil, &ExtractionError{Err: err}
	}
	return felder, nil
}

func (s *AIService) doExtract(ctx context.Context, imageData []byte, mimeType string) (*model.Felder, string, error) {
	if s.Config.ApiKey == "" {
		return nil, "", fmt.Errorf("Gemini API Key 未配置")
	}
	if len(imageData) == 0 {
		return nil, "", fmt.Errorf("图片内容为空")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.Config.ApiKey))
	if err != nil {
		return nil, "", fmt.Errorf("Gemini 初始化失败: %v", err)
	}
	defer client.Close()

	modelAI := client.GenerativeModel(s.Config.Model)
	modelAI.ResponseMIMEType = "application/json"

	prompt := fmt.Sprintf(`You are helping a user fill out a second-hand marketplace listing form (German field names).
Look at the product photo and extract as many fields as you can recognize.

Rules:
1. Output JSON only, exactly matching this schema. Use null for anything you cannot tell from the photo.
2. "preis" is a number in EUR. Only fill it if a price tag is visible.
3. Enum fields must use the exact lowercase values from the schema.
4. Free-text fields (artikelname, beschreibung, groesse, marke, farbe, ort) should be written in German.

Schema:
%s`, felderSchema)

	resp, err := modelAI.GenerateContent(ctx,
		genai.ImageData(imageFormat(mimeType), imageData),
		genai.Text(prompt),
	)
	if err != nil {
		return nil, "", fmt.Errorf("AI 识别请求失败: %v", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, "", fmt.Errorf("AI 返回为空")
	}

	// Gemini 返回的是 Parts, 通常第一个 Part 是文本
	var rawJSON string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			rawJSON = string(txt)
			break
		}
	}

	// 清洗可能存在的 markdown 符号 (```json ... ```)
	rawJSON = strings.TrimSpace(rawJSON)
	rawJSON = strings.TrimPrefix(rawJSON, "```json")
	rawJSON = strings.TrimPrefix(rawJSON, "```")
	rawJSON = strings.TrimSuffix(rawJSON, "```")

	var felder model.Felder
	if err := json.Unmarshal([]byte(rawJSON), &felder); err != nil {
		return nil, rawJSON, fmt.Errorf("JSON 解析失败: %v | 原始数据: %s", err, rawJSON)
	}

	return &felder, rawJSON, nil
}

// imageFormat genai 需要的图片格式名: "image/jpeg" -> "jpeg"
// 传进来的也可能已经是裸格式名, 原样返回
func imageFormat(mimeType string) string {
	format := strings.TrimPrefix(mimeType, "image/")
	if format == "" {
		return "jpeg"
	}
	return format
}

// ==================== 扫描日志 ====================

// logScan 记一条扫描日志, 失败只打日志, 绝不影响扫描结果本身
func (s *AIService) logScan(imageBytes int, mimeType string, felder *model.Felder, raw string, dur time.Duration, scanErr error) {
	if s.scanLogRepo == nil {
		return
	}

	entry := &model.ScanLog{
		ModelName:  s.Config.Model,
		ImageBytes: imageBytes,
		MimeType:   mimeType,
		DurationMs: dur.Milliseconds(),
		Status:     model.ScanStatusSuccess,
	}
	if raw != "" {
		entry.RawResult = datatypes.JSON(raw)
	}
	if felder != nil {
		entry.FeldNamen = pq.StringArray(felder.PresentFieldNames())
	}
	if scanErr != nil {
		entry.Status = model.ScanStatusFailed
		entry.ErrorMsg = scanErr.Error()
	}

	// 用独立的短超时 context, 避免请求 context 已取消时丢日志
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.scanLogRepo.Create(ctx, entry); err != nil {
		log.Printf("扫描日志写入失败: %v", err)
	}
}
