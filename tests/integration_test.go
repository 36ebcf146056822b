package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"marktplatz_dev_v1/internal/controller"
	"marktplatz_dev_v1/internal/model"
	"marktplatz_dev_v1/internal/router"
	"marktplatz_dev_v1/internal/service"
	"marktplatz_dev_v1/pkg/livingapps"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==================== 模拟网关 ====================

// fakeGateway 有状态的 records 网关: 内存里维护记录, 行为和真网关一致
// record_id 和 createdat 由它分配, updatedat 在更新时刷新
type fakeGateway struct {
	mu      sync.Mutex
	nextID  int
	records []model.ArtikelEinstellen
}

func (g *fakeGateway) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		g.mu.Lock()
		defer g.mu.Unlock()

		// /gateway/apps/{app_id}/records[/{record_id}]
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		var recordID string
		if len(parts) == 5 {
			recordID = parts[4]
		}

		switch {
		case r.Method == http.MethodGet:
			json.NewEncoder(w).Encode(map[string]interface{}{"records": g.records})

		case r.Method == http.MethodPost:
			var req struct {
				Fields model.Felder `json:"fields"`
			}
			json.NewDecoder(r.Body).Decode(&req)

			g.nextID++
			rec := model.ArtikelEinstellen{
				RecordID:  fmt.Sprintf("r%d", g.nextID),
				CreatedAt: time.Now(),
				Fields:    req.Fields,
			}
			g.records = append(g.records, rec)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(rec)

		case r.Method == http.MethodPut:
			var req struct {
				Fields model.Felder `json:"fields"`
			}
			json.NewDecoder(r.Body).Decode(&req)

			for i := range g.records {
				if g.records[i].RecordID == recordID {
					now := time.Now()
					g.records[i].Fields = req.Fields
					g.records[i].UpdatedAt = &now
					json.NewEncoder(w).Encode(g.records[i])
					return
				}
			}
			w.WriteHeader(http.StatusNotFound)

		case r.Method == http.MethodDelete:
			for i := range g.records {
				if g.records[i].RecordID == recordID {
					g.records = append(g.records[:i], g.records[i+1:]...)
					w.WriteHeader(http.StatusNoContent)
					return
				}
			}
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

// ==================== 测试套件 ====================

type IntegrationSuite struct {
	Gateway *fakeGateway
	Server  *httptest.Server
	Router  *gin.Engine
}

func NewIntegrationSuite(t *testing.T) *IntegrationSuite {
	gateway := &fakeGateway{}
	server := httptest.NewServer(gateway.handler())
	t.Cleanup(server.Close)

	client := livingapps.NewClient(&livingapps.Config{
		BaseURL: server.URL,
		AppID:   "test-app",
		Timeout: 5 * time.Second,
	})
	artikelSvc := service.NewArtikelService(client)
	aiSvc := service.NewAIService(&service.AIConfig{}, nil)

	r := router.SetupRouter(&router.Controllers{
		Artikel: controller.NewArtikelController(artikelSvc, aiSvc, nil),
	})

	return &IntegrationSuite{Gateway: gateway, Server: server, Router: r}
}

func (s *IntegrationSuite) request(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

// ==================== Inserat 全流程 ====================

func TestIntegration_ArtikelCRUD(t *testing.T) {
	suite := NewIntegrationSuite(t)

	var recordID string

	t.Run("Create", func(t *testing.T) {
		w := suite.request(http.MethodPost, "/api/artikel", map[string]interface{}{
			"artikelname": "Lederjacke Vintage",
			"preis":       45.0,
			"kategorie":   "damenkleidung",
			"zustand":     "gut",
		})
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			Data model.ArtikelEinstellen `json:"data"`
		}
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.NotEmpty(t, resp.Data.RecordID, "record_id 应该由网关分配")
		recordID = resp.Data.RecordID
	})

	t.Run("List", func(t *testing.T) {
		w := suite.request(http.MethodGet, "/api/artikel", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Total int                       `json:"total"`
			Data  []model.ArtikelEinstellen `json:"data"`
		}
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, 1, resp.Total)
		assert.Equal(t, "Lederjacke Vintage", *resp.Data[0].Fields.Artikelname)
	})

	t.Run("Update", func(t *testing.T) {
		w := suite.request(http.MethodPut, "/api/artikel/"+recordID, map[string]interface{}{
			"artikelname": "Lederjacke Vintage",
			"preis":       39.0,
			"kategorie":   "damenkleidung",
			"zustand":     "gut",
		})
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			Data model.ArtikelEinstellen `json:"data"`
		}
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, 39.0, *resp.Data.Fields.Preis)
		assert.NotNil(t, resp.Data.UpdatedAt, "更新后 updatedat 应该有值")
	})

	t.Run("Delete", func(t *testing.T) {
		w := suite.request(http.MethodDelete, "/api/artikel/"+recordID, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = suite.request(http.MethodGet, "/api/artikel", nil)
		var resp struct {
			Total int `json:"total"`
		}
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, 0, resp.Total, "删除后列表应该为空")
	})
}

// ==================== 搜索和统计 ====================

func TestIntegration_SucheUndStatistik(t *testing.T) {
	suite := NewIntegrationSuite(t)

	seed := []map[string]interface{}{
		{"artikelname": "Lederjacke", "kategorie": "damenkleidung", "preis": 40.0, "zustand": "neu_mit_etikett"},
		{"artikelname": "Sneaker", "kategorie": "schuhe", "preis": 20.0, "zustand": "gut", "ort": "Berlin"},
		{"artikelname": "Handtasche", "kategorie": "taschen", "marke": "Picard"},
	}
	for _, fields := range seed {
		w := suite.request(http.MethodPost, "/api/artikel", fields)
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	t.Run("Suche", func(t *testing.T) {
		tests := []struct {
			url       string
			wantTotal int
		}{
			{"/api/artikel", 3},
			{"/api/artikel?q=leder", 1},
			{"/api/artikel?q=picard", 1},
			{"/api/artikel?q=berlin", 1},
			{"/api/artikel?kategorie=schuhe", 1},
			{"/api/artikel?q=leder&kategorie=schuhe", 0},
		}

		for _, tt := range tests {
			w := suite.request(http.MethodGet, tt.url, nil)
			var resp struct {
				Total int `json:"total"`
			}
			json.Unmarshal(w.Body.Bytes(), &resp)
			assert.Equal(t, tt.wantTotal, resp.Total, tt.url)
		}
	})

	t.Run("Statistik", func(t *testing.T) {
		w := suite.request(http.MethodGet, "/api/artikel/stats", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data service.Statistik `json:"data"`
		}
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, 3, resp.Data.Total)
		assert.Equal(t, 30.0, resp.Data.AvgPreis)
		assert.Equal(t, 1, resp.Data.NeuArtikel)
		assert.Equal(t, 3, resp.Data.Kategorien)
	})
}

// ==================== 错误处理 ====================

func TestIntegration_ErrorHandling(t *testing.T) {
	suite := NewIntegrationSuite(t)

	t.Run("UpdateNichtVorhanden", func(t *testing.T) {
		w := suite.request(http.MethodPut, "/api/artikel/gibt-es-nicht", map[string]interface{}{
			"artikelname": "x",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("DeleteNichtVorhanden", func(t *testing.T) {
		w := suite.request(http.MethodDelete, "/api/artikel/gibt-es-nicht", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("ValidierungNegativerPreis", func(t *testing.T) {
		w := suite.request(http.MethodPost, "/api/artikel", map[string]interface{}{
			"preis": -1,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GatewayNichtErreichbar", func(t *testing.T) {
		// 网关挂了: 读操作要把传输错误报成 502, 而不是崩溃或返回旧数据假装成功
		deadClient := livingapps.NewClient(&livingapps.Config{
			BaseURL: "http://127.0.0.1:1",
			AppID:   "test-app",
			Timeout: time.Second,
		})
		r := router.SetupRouter(&router.Controllers{
			Artikel: controller.NewArtikelController(
				service.NewArtikelService(deadClient),
				service.NewAIService(&service.AIConfig{}, nil),
				nil,
			),
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/artikel", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

// ==================== Foto 扫描 ====================

func TestIntegration_ScanRateLimit(t *testing.T) {
	suite := NewIntegrationSuite(t)

	scan := func() *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, _ := mw.CreateFormFile("foto", "test.jpg")
		fw.Write([]byte{0xff, 0xd8, 0xff})
		mw.Close()

		req, _ := http.NewRequest(http.MethodPost, "/api/artikel/scan", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.RemoteAddr = "10.8.8.8:40000"
		w := httptest.NewRecorder()
		suite.Router.ServeHTTP(w, req)
		return w
	}

	// AI 没配 Key, 第一次请求过限流后在识别阶段报 502
	w := scan()
	assert.Equal(t, http.StatusBadGateway, w.Code)

	// 冷却期内的第二次直接被限流挡下
	w = scan()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

// ==================== 并发读取 ====================

func TestIntegration_Concurrency(t *testing.T) {
	suite := NewIntegrationSuite(t)

	for i := 0; i < 10; i++ {
		suite.request(http.MethodPost, "/api/artikel", map[string]interface{}{
			"artikelname": fmt.Sprintf("Artikel %d", i),
		})
	}

	var wg sync.WaitGroup
	errCh := make(chan string, 100)

	// 读写混跑: 快照读取纪律保证读到的永远是完整一致的列表
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			if n%10 == 0 {
				w := suite.request(http.MethodPost, "/api/artikel", map[string]interface{}{
					"artikelname": fmt.Sprintf("Parallel %d", n),
				})
				if w.Code != http.StatusOK {
					errCh <- fmt.Sprintf("create: status %d", w.Code)
				}
				return
			}

			w := suite.request(http.MethodGet, "/api/artikel", nil)
			if w.Code != http.StatusOK {
				errCh <- fmt.Sprintf("list: status %d", w.Code)
			}
		}(i)
	}

	wg.Wait()
	close(errCh)

	for msg := range errCh {
		t.Errorf("并发请求失败: %s", msg)
	}
}
