package service

import "marktplatz_dev_v1/internal/model"

// ==================== 字段合并引擎 ====================

// MergeFelder 将 AI 识别结果合并进用户已填写的表单字段
//
// 策略: 只填空, 绝不覆盖 —— 扫描是异步的, 识别完成时用户可能已经手填了一部分,
// 识别结果只允许填进 nil 或空字符串的字段, 用户输入永远保留
// 对全部 17 个字段做显式逐字段合并, 不做动态 key 遍历
// 没有任何错误分支: 识别结果缺字段就当"没有信息", 原样保留已有值
func MergeFelder(existing, extracted model.Felder) model.Felder {
	merged := existing
	merged.Artikelname = fillText(existing.Artikelname, extracted.Artikelname)
	merged.Beschreibung = fillText(existing.Beschreibung, extracted.Beschreibung)
	merged.Preis = fillPreis(existing.Preis, extracted.Preis)
	merged.Zustand = fillZustand(existing.Zustand, extracted.Zustand)
	merged.Kategorie = fillKategorie(existing.Kategorie, extracted.Kategorie)
	merged.Groesse = fillText(existing.Groesse, extracted.Groesse)
	merged.Marke = fillText(existing.Marke, extracted.Marke)
	merged.Farbe = fillText(existing.Farbe, extracted.Farbe)
	merged.Foto1 = fillText(existing.Foto1, extracted.Foto1)
	merged.Foto2 = fillText(existing.Foto2, extracted.Foto2)
	merged.Foto3 = fillText(existing.Foto3, extracted.Foto3)
	merged.Foto4 = fillText(existing.Foto4, extracted.Foto4)
	merged.Vorname = fillText(existing.Vorname, extracted.Vorname)
	merged.Nachname = fillText(existing.Nachname, extracted.Nachname)
	merged.Email = fillText(existing.Email, extracted.Email)
	merged.Telefon = fillText(existing.Telefon, extracted.Telefon)
	merged.Ort = fillText(existing.Ort, extracted.Ort)
	return merged
}

// fillText 文本字段: 已有值非空则保留, nil 和 "" 都视为未填
func fillText(existing, extracted *string) *string {
	if extracted == nil {
		return existing
	}
	if existing == nil || *existing == "" {
		return extracted
	}
	return existing
}

// fillPreis 数值字段: 0 也算有效值, 只有 nil 视为未填
func fillPreis(existing, extracted *float64) *float64 {
	if extracted == nil {
		return existing
	}
	if existing == nil {
		return extracted
	}
	return existing
}

func fillZustand(existing, extracted *model.Zustand) *model.Zustand {
	if extracted == nil {
		return existing
	}
	if existing == nil || *existing == "" {
		return extracted
	}
	return existing
}

func fillKategorie(existing, extracted *model.Kategorie) *model.Kategorie {
	if extracted == nil {
		return existing
	}
	if existing == nil || *existing == "" {
		return extracted
	}
	return existing
}
