package dto

import "marktplatz_dev_v1/internal/model"

// ==================== 请求 DTO ====================

// FelderReq 创建/更新 Inserat 的字段集
// 所有字段可选; 枚举和格式在绑定层先拦一道, 远端 schema 校验是最终权威
type FelderReq struct {
	Artikelname  *string  `json:"artikelname"`
	Beschreibung *string  `json:"beschreibung"`
	Preis        *float64 `json:"preis" binding:"omitempty,gte=0"`
	Zustand      *string  `json:"zustand" binding:"omitempty,oneof=gut zufriedenstellend neu_mit_etikett neu_ohne_etikett sehr_gut"`
	Kategorie    *string  `json:"kategorie" binding:"omitempty,oneof=damenkleidung herrenkleidung kinderkleidung schuhe accessoires taschen schmuck sonstiges"`
	Groesse      *string  `json:"groesse"`
	Marke        *string  `json:"marke"`
	Farbe        *string  `json:"farbe"`
	Foto1        *string  `json:"foto_1"`
	Foto2        *string  `json:"foto_2"`
	Foto3        *string  `json:"foto_3"`
	Foto4        *string  `json:"foto_4"`
	Vorname      *string  `json:"vorname"`
	Nachname     *string  `json:"nachname"`
	Email        *string  `json:"email" binding:"omitempty,email"`
	Telefon      *string  `json:"telefon"`
	Ort          *string  `json:"ort"`
}

// ToFelder DTO -> Model
func (r *FelderReq) ToFelder() model.Felder {
	f := model.Felder{
		Artikelname:  r.Artikelname,
		Beschreibung: r.Beschreibung,
		Preis:        r.Preis,
		Groesse:      r.Groesse,
		Marke:        r.Marke,
		Farbe:        r.Farbe,
		Foto1:        r.Foto1,
		Foto2:        r.Foto2,
		Foto3:        r.Foto3,
		Foto4:        r.Foto4,
		Vorname:      r.Vorname,
		Nachname:     r.Nachname,
		Email:        r.Email,
		Telefon:      r.Telefon,
		Ort:          r.Ort,
	}
	if r.Zustand != nil {
		z := model.Zustand(*r.Zustand)
		f.Zustand = &z
	}
	if r.Kategorie != nil {
		k := model.Kategorie(*r.Kategorie)
		f.Kategorie = &k
	}
	return f
}

// ==================== 响应 DTO ====================

// ArtikelListResp 列表响应
type ArtikelListResp struct {
	Code    int                       `json:"code"`
	Message string                    `json:"message"`
	Data    []model.ArtikelEinstellen `json:"data"`
	Total   int                       `json:"total"`
}

// ArtikelResp 单条响应
type ArtikelResp struct {
	Code    int                      `json:"code"`
	Message string                   `json:"message"`
	Data    *model.ArtikelEinstellen `json:"data"`
}

// StatsResp 统计响应, Data 为派生视图引擎的统计结果
type StatsResp struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// ScanResp 扫描响应, Data 为合并后的完整字段集
type ScanResp struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Data    model.Felder `json:"data"`
}
