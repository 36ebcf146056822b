package livingapps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"marktplatz_dev_v1/internal/model"
	"marktplatz_dev_v1/pkg/utils"
)

// ==================== 配置 ====================

// Config records 网关配置
type Config struct {
	BaseURL  string // 例如 https://my.living-apps.de
	AppID    string // ArtikelEinstellen 应用的 app id
	APIToken string
	Timeout  time.Duration
}

// ==================== 客户端 ====================

// Client LivingApps records 网关客户端
// 只承担四个操作: List / Create / Update / Delete
// 每次调用只尝试一次, 不做重试; 没有记录的 List 返回空集合而不是错误
type Client struct {
	http  *resty.Client
	appID string
}

// NewClient 创建 records 网关客户端
func NewClient(cfg *Config) *Client {
	client := utils.NewAPIClient(cfg.Timeout)
	client.SetBaseURL(cfg.BaseURL)
	if cfg.APIToken != "" {
		client.SetHeader("Authorization", "Bearer "+cfg.APIToken)
	}

	return &Client{
		http:  client,
		appID: cfg.AppID,
	}
}

// ==================== 网关 DTO ====================

// listResp 网关返回的列表包装
type listResp struct {
	Records []model.ArtikelEinstellen `json:"records"`
}

// recordReq 创建/更新请求体
type recordReq struct {
	Fields model.Felder `json:"fields"`
}

// errorResp 网关的错误包装 (尽力解析, 解析不出来就用原始 body)
type errorResp struct {
	Message string `json:"message"`
}

// ==================== 四个操作 ====================

// List 全量拉取记录
func (c *Client) List(ctx context.Context) ([]model.ArtikelEinstellen, error) {
	var res listResp
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&res).
		Get(c.recordsPath())

	if err != nil {
		return nil, &TransportError{Op: "list", Err: err}
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &TransportError{Op: "list", StatusCode: resp.StatusCode(), Message: resp.String()}
	}

	// 没有记录不是错误
	if res.Records == nil {
		return []model.ArtikelEinstellen{}, nil
	}
	return res.Records, nil
}

// Create 创建记录, record_id 和 createdat 由服务端分配
func (c *Client) Create(ctx context.Context, fields model.Felder) (*model.ArtikelEinstellen, error) {
	var rec model.ArtikelEinstellen
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(recordReq{Fields: fields}).
		SetResult(&rec).
		Post(c.recordsPath())

	if err != nil {
		return nil, &TransportError{Op: "create", Err: err}
	}
	if err := c.checkWriteStatus("create", "", resp); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Update 整体提交字段集, 服务端刷新 updatedat
func (c *Client) Update(ctx context.Context, recordID string, fields model.Felder) (*model.ArtikelEinstellen, error) {
	var rec model.ArtikelEinstellen
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(recordReq{Fields: fields}).
		SetResult(&rec).
		Put(c.recordsPath() + "/" + recordID)

	if err != nil {
		return nil, &TransportError{Op: "update", Err: err}
	}
	if err := c.checkWriteStatus("update", recordID, resp); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Delete 按 record_id 删除
func (c *Client) Delete(ctx context.Context, recordID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete(c.recordsPath() + "/" + recordID)

	if err != nil {
		return &TransportError{Op: "delete", Err: err}
	}
	return c.checkWriteStatus("delete", recordID, resp)
}

// ==================== 内部辅助 ====================

func (c *Client) recordsPath() string {
	return fmt.Sprintf("/gateway/apps/%s/records", c.appID)
}

// checkWriteStatus 把网关状态码翻译成类型化错误
// 404 -> NotFoundError, 400/422 -> ValidationError, 其他非 2xx -> TransportError
func (c *Client) checkWriteStatus(op, recordID string, resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= 200 && code < 300 {
		return nil
	}

	switch code {
	case http.StatusNotFound:
		return &NotFoundError{RecordID: recordID}
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return &ValidationError{StatusCode: code, Message: errorMessage(resp)}
	default:
		return &TransportError{Op: op, StatusCode: code, Message: errorMessage(resp)}
	}
}

func errorMessage(resp *resty.Response) string {
	var er errorResp
	if err := json.Unmarshal(resp.Body(), &er); err == nil && er.Message != "" {
		return er.Message
	}
	return resp.String()
}
