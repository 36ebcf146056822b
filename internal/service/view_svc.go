package service

import (
	"strings"

	"marktplatz_dev_v1/internal/model"
)

// ==================== 派生视图引擎 ====================

// FilterArtikel 根据搜索词和分类计算 Dashboard 的可见子集
// 纯函数: 不修改输入, 不重排序, 返回结果保持集合原始顺序
// 搜索为大小写不敏感的子串匹配, 匹配范围: artikelname / marke / ort / beschreibung
// kategorie 传 "alle" 表示不过滤分类
func FilterArtikel(all []model.ArtikelEinstellen, query string, kategorie string) []model.ArtikelEinstellen {
	q := strings.ToLower(query)
	if q == "" && kategorie == model.KategorieAlle {
		return all
	}

	filtered := make([]model.ArtikelEinstellen, 0, len(all))
	for _, a := range all {
		matchSearch := q == "" ||
			strings.Contains(strings.ToLower(text(a.Fields.Artikelname)), q) ||
			strings.Contains(strings.ToLower(text(a.Fields.Marke)), q) ||
			strings.Contains(strings.ToLower(text(a.Fields.Ort)), q) ||
			strings.Contains(strings.ToLower(text(a.Fields.Beschreibung)), q)

		matchKat := kategorie == model.KategorieAlle ||
			(a.Fields.Kategorie != nil && string(*a.Fields.Kategorie) == kategorie)

		if matchSearch && matchKat {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

// text 可空文本字段取值, 未填按空字符串参与匹配
func text(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ==================== 统计 ====================

// Statistik Dashboard 头部的聚合统计卡片数据
type Statistik struct {
	Total      int     `json:"total"`       // Inserate 总数
	AvgPreis   float64 `json:"avg_preis"`   // 有价记录的平均价 (EUR), 没有有价记录时为 0
	NeuArtikel int     `json:"neu_artikel"` // 成色为全新 (带/不带标签) 的数量
	Kategorien int     `json:"kategorien"`  // 出现过的不同分类数
}

// ComputeStatistik 对整个记录集合单遍扫描计算统计
// 空集合返回全零结果, 不会出错也不会出现 NaN
func ComputeStatistik(all []model.ArtikelEinstellen) Statistik {
	var stats Statistik
	stats.Total = len(all)

	var preisSumme float64
	var mitPreis int
	kategorien := make(map[model.Kategorie]struct{})

	for _, a := range all {
		if a.Fields.Preis != nil {
			preisSumme += *a.Fields.Preis
			mitPreis++
		}
		if a.Fields.Zustand != nil && a.Fields.Zustand.IsNeu() {
			stats.NeuArtikel++
		}
		if a.Fields.Kategorie != nil && *a.Fields.Kategorie != "" {
			kategorien[*a.Fields.Kategorie] = struct{}{}
		}
	}

	if mitPreis > 0 {
		stats.AvgPreis = preisSumme / float64(mitPreis)
	}
	stats.Kategorien = len(kategorien)
	return stats
}
