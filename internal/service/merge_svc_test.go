package service

import (
	"testing"

	"marktplatz_dev_v1/internal/model"
)

func strPtr(s string) *string { return &s }

func f64Ptr(f float64) *float64 { return &f }

func zustandPtr(z model.Zustand) *model.Zustand { return &z }

func kategoriePtr(k model.Kategorie) *model.Kategorie { return &k }

func TestMergeFelder_NieUeberschreiben(t *testing.T) {
	// 用户已填的非空值绝不能被识别结果覆盖
	existing := model.Felder{
		Artikelname: strPtr("Lederjacke Vintage"),
		Marke:       strPtr("Levi's"),
		Preis:       f64Ptr(45),
		Zustand:     zustandPtr(model.ZustandGut),
	}
	extracted := model.Felder{
		Artikelname: strPtr("Jacke"),
		Marke:       strPtr("Unbekannt"),
		Preis:       f64Ptr(30),
		Zustand:     zustandPtr(model.ZustandSehrGut),
	}

	merged := MergeFelder(existing, extracted)

	if *merged.Artikelname != "Lederjacke Vintage" {
		t.Errorf("Artikelname 被覆盖了: got %s", *merged.Artikelname)
	}
	if *merged.Marke != "Levi's" {
		t.Errorf("Marke 被覆盖了: got %s", *merged.Marke)
	}
	if *merged.Preis != 45 {
		t.Errorf("Preis 被覆盖了: got %v", *merged.Preis)
	}
	if *merged.Zustand != model.ZustandGut {
		t.Errorf("Zustand 被覆盖了: got %s", *merged.Zustand)
	}
}

func TestMergeFelder_FuelltLuecken(t *testing.T) {
	tests := []struct {
		name      string
		existing  model.Felder
		extracted model.Felder
		check     func(t *testing.T, merged model.Felder)
	}{
		{
			name:      "nil 字段被填充",
			existing:  model.Felder{},
			extracted: model.Felder{Marke: strPtr("Adidas"), Farbe: strPtr("schwarz")},
			check: func(t *testing.T, merged model.Felder) {
				if merged.Marke == nil || *merged.Marke != "Adidas" {
					t.Error("Marke 没有被填充")
				}
				if merged.Farbe == nil || *merged.Farbe != "schwarz" {
					t.Error("Farbe 没有被填充")
				}
			},
		},
		{
			name:      "空字符串视为未填, 同样被填充",
			existing:  model.Felder{Ort: strPtr("")},
			extracted: model.Felder{Ort: strPtr("Berlin")},
			check: func(t *testing.T, merged model.Felder) {
				if merged.Ort == nil || *merged.Ort != "Berlin" {
					t.Error("空字符串的 Ort 没有被填充")
				}
			},
		},
		{
			name:      "识别出的 0 价也算有效值",
			existing:  model.Felder{},
			extracted: model.Felder{Preis: f64Ptr(0)},
			check: func(t *testing.T, merged model.Felder) {
				if merged.Preis == nil || *merged.Preis != 0 {
					t.Error("Preis=0 应该被当作有效值填进去")
				}
			},
		},
		{
			name:      "已填 0 价不被覆盖",
			existing:  model.Felder{Preis: f64Ptr(0)},
			extracted: model.Felder{Preis: f64Ptr(99)},
			check: func(t *testing.T, merged model.Felder) {
				if *merged.Preis != 0 {
					t.Errorf("用户填的 0 价被覆盖了: got %v", *merged.Preis)
				}
			},
		},
		{
			name:      "枚举字段同样只填空",
			existing:  model.Felder{},
			extracted: model.Felder{Kategorie: kategoriePtr(model.KategorieSchuhe)},
			check: func(t *testing.T, merged model.Felder) {
				if merged.Kategorie == nil || *merged.Kategorie != model.KategorieSchuhe {
					t.Error("Kategorie 没有被填充")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged := MergeFelder(tt.existing, tt.extracted)
			tt.check(t, merged)
		})
	}
}

func TestMergeFelder_LeereExtraktionIstIdempotent(t *testing.T) {
	existing := model.Felder{
		Artikelname:  strPtr("Sneaker"),
		Beschreibung: strPtr("kaum getragen"),
		Preis:        f64Ptr(25),
		Kategorie:    kategoriePtr(model.KategorieSchuhe),
		Groesse:      strPtr("42"),
		Vorname:      strPtr("Anna"),
		Email:        strPtr("anna@example.de"),
	}

	merged := MergeFelder(existing, model.Felder{})

	if *merged.Artikelname != "Sneaker" ||
		*merged.Beschreibung != "kaum getragen" ||
		*merged.Preis != 25 ||
		*merged.Kategorie != model.KategorieSchuhe ||
		*merged.Groesse != "42" ||
		*merged.Vorname != "Anna" ||
		*merged.Email != "anna@example.de" {
		t.Error("空识别结果的合并必须原样保留所有已填字段")
	}
	if merged.Marke != nil || merged.Foto1 != nil {
		t.Error("未填字段在空合并后应该保持 nil")
	}
}

func TestMergeFelder_KeineSeiteneffekte(t *testing.T) {
	existing := model.Felder{Artikelname: strPtr("Tasche")}
	extracted := model.Felder{Marke: strPtr("Gucci")}

	MergeFelder(existing, extracted)

	// 合并是纯函数, 输入不能被改动
	if existing.Marke != nil {
		t.Error("existing 被合并修改了")
	}
	if *extracted.Marke != "Gucci" {
		t.Error("extracted 被合并修改了")
	}
}
