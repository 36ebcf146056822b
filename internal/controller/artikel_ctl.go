package controller

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"marktplatz_dev_v1/internal/api/dto"
	"marktplatz_dev_v1/internal/model"
	"marktplatz_dev_v1/internal/service"
	"marktplatz_dev_v1/pkg/livingapps"
	"marktplatz_dev_v1/pkg/utils"
)

type ArtikelController struct {
	artikelService *service.ArtikelService
	aiService      *service.AIService
	storage        service.StorageProvider // 可以为 nil, 扫描时就不上传照片
}

func NewArtikelController(artikelService *service.ArtikelService, aiService *service.AIService, storage service.StorageProvider) *ArtikelController {
	return &ArtikelController{
		artikelService: artikelService,
		aiService:      aiService,
		storage:        storage,
	}
}

// ==================== 查询接口 ====================

// GetArtikel 获取 Inserat 列表
// @Summary 按搜索词和分类获取可见的 Inserate
// @Tags Artikel
// @Param q query string false "搜索词 (artikelname/marke/ort/beschreibung 子串)"
// @Param kategorie query string false "分类筛选" default(alle)
// @Success 200 {object} dto.ArtikelListResp
// @Router /api/artikel [get]
func (ctrl *ArtikelController) GetArtikel(c *gin.Context) {
	q := c.Query("q")
	kategorie := c.DefaultQuery("kategorie", model.KategorieAlle)

	list, err := ctrl.artikelService.Search(c.Request.Context(), q, kategorie)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ArtikelListResp{
		Code:    0,
		Message: "success",
		Data:    list,
		Total:   len(list),
	})
}

// GetStats 获取聚合统计
// @Summary Dashboard 统计卡片数据
// @Tags Artikel
// @Success 200 {object} dto.StatsResp
// @Router /api/artikel/stats [get]
func (ctrl *ArtikelController) GetStats(c *gin.Context) {
	stats, err := ctrl.artikelService.Stats(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatsResp{Code: 0, Message: "success", Data: stats})
}

// ==================== 变更接口 ====================

// CreateArtikel 创建 Inserat
// @Summary 创建一条 Inserat, record_id 由远端分配
// @Tags Artikel
// @Param body body dto.FelderReq true "字段集"
// @Success 200 {object} dto.ArtikelResp
// @Router /api/artikel [post]
func (ctrl *ArtikelController) CreateArtikel(c *gin.Context) {
	var req dto.FelderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	rec, err := ctrl.artikelService.Create(c.Request.Context(), req.ToFelder())
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ArtikelResp{Code: 0, Message: "success", Data: rec})
}

// UpdateArtikel 更新 Inserat
// @Summary 整体提交字段集, 远端刷新 updatedat
// @Tags Artikel
// @Param record_id path string true "记录ID"
// @Param body body dto.FelderReq true "字段集"
// @Success 200 {object} dto.ArtikelResp
// @Router /api/artikel/{record_id} [put]
func (ctrl *ArtikelController) UpdateArtikel(c *gin.Context) {
	recordID := c.Param("record_id")

	var req dto.FelderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	rec, err := ctrl.artikelService.Update(c.Request.Context(), recordID, req.ToFelder())
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ArtikelResp{Code: 0, Message: "success", Data: rec})
}

// DeleteArtikel 删除 Inserat
// @Summary 按 record_id 删除
// @Tags Artikel
// @Param record_id path string true "记录ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/artikel/{record_id} [delete]
func (ctrl *ArtikelController) DeleteArtikel(c *gin.Context) {
	recordID := c.Param("record_id")

	if err := ctrl.artikelService.Delete(c.Request.Context(), recordID); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success"})
}

// ==================== Foto 扫描 ====================

// ScanFoto 扫描商品照片并合并进表单字段
// @Summary AI 识别照片, 按"只填空"策略合并进已填字段后返回
// @Tags Artikel
// @Accept multipart/form-data
// @Param foto formData file true "商品照片"
// @Param fields formData string false "当前表单字段 (JSON)"
// @Success 200 {object} dto.ScanResp
// @Router /api/artikel/scan [post]
func (ctrl *ArtikelController) ScanFoto(c *gin.Context) {
	fileHeader, err := c.FormFile("foto")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "缺少照片文件"})
		return
	}
	if fileHeader.Size > utils.MaxImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "照片太大"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "照片读取失败"})
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "照片读取失败"})
		return
	}

	// 当前表单字段随请求一起提交, 识别结果只允许填空
	var existing model.Felder
	if raw := c.PostForm("fields"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &existing); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "fields 不是合法 JSON"})
			return
		}
	}

	mimeType := utils.DetectImageMime(imageData)
	extracted, err := ctrl.aiService.ExtractFromFoto(c.Request.Context(), imageData, mimeType)
	if err != nil {
		// 识别失败是非致命的: 已填的字段原样返回语义由前端保持, 这里只报错误
		c.JSON(http.StatusBadGateway, gin.H{"code": 502, "message": err.Error()})
		return
	}

	// 照片本身也是信息: 传了存储后端时上传一份, URL 作为 foto_1 候选参与合并
	if ctrl.storage != nil {
		if url, upErr := ctrl.storage.Upload(c.Request.Context(), imageData, fileHeader.Filename, mimeType); upErr == nil {
			if extracted.Foto1 == nil || *extracted.Foto1 == "" {
				extracted.Foto1 = &url
			}
		} else {
			log.Printf("扫描照片上传失败: %v", upErr)
		}
	}

	merged := service.MergeFelder(existing, *extracted)
	c.JSON(http.StatusOK, dto.ScanResp{Code: 0, Message: "success", Data: merged})
}

// ==================== 错误映射 ====================

// respondStoreError 把 records 后端的类型化错误翻译成 HTTP 状态码
// 不做本地恢复和重试, 错误信息原样透给前端展示
func respondStoreError(c *gin.Context, err error) {
	var notFound *livingapps.NotFoundError
	var validation *livingapps.ValidationError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"code": 404, "message": err.Error()})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": err.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"code": 502, "message": err.Error()})
	}
}
